package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"model-sync/core/config"
	"model-sync/core/logger"
	"model-sync/core/reconcile"
	"model-sync/core/session"
	"model-sync/core/storage"
	"model-sync/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	modelFile   string
	desiredFile string
	outFile     string
	remoteModel bool
	exportFlag  bool
	fullSync    bool
	dryRunSync  bool
	yesConfirm  bool
)

// syncCmd runs a single sync pass from files and writes the resulting command script.
var syncCmd = &cobra.Command{
	Use:   "sync <stream>",
	Short: "Run a sync pass and write the command script",
	Long: `Run one sync pass for a stream.

The model's current records are read from --model (or from object storage with
--remote), the desired objects from --desired. The plan is always reported; the
commands are written to --out once confirmed.

Examples:
  # Report only
  sync abc123 --model model.gwa --desired objects.gwa --dry-run

  # Write the script with interactive confirmation
  sync abc123 --model model.gwa --desired objects.gwa --out pass.gwa

  # Blank and re-issue everything, auto-confirm, archive the script
  sync abc123 --remote --desired objects.gwa --full --yes --export`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&modelFile, "model", "", "File with the model's current records")
	syncCmd.Flags().StringVar(&desiredFile, "desired", "", "File with the desired objects (required)")
	syncCmd.Flags().StringVar(&outFile, "out", "-", "Script output file, '-' for stdout")
	syncCmd.Flags().BoolVar(&remoteModel, "remote", false, "Read the model's records from object storage")
	syncCmd.Flags().BoolVar(&exportFlag, "export", false, "Upload the command script to object storage")
	syncCmd.Flags().BoolVar(&fullSync, "full", false, "Blank every live record and re-issue every current record")
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Report the plan without writing commands")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm (non-interactive)")
	_ = syncCmd.MarkFlagRequired("desired")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	stream := args[0]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()
	l = logger.WithStream(l, stream)

	var store storage.Client
	if remoteModel || exportFlag {
		store, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	registry := session.NewRegistry(cfg.Sync, l)
	_, history := openHistory(cfg.Database, l)
	svc := sync.NewService(registry, history, store, cfg.Storage.Bucket, l)

	desired, err := readDesired(ctx, registry, desiredFile)
	if err != nil {
		return err
	}

	source := func() (sync.Source, func(), error) {
		switch {
		case remoteModel:
			return svc.ModelSource(stream), func() {}, nil
		case modelFile != "":
			f, err := os.Open(modelFile)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to open model file: %w", err)
			}
			return sync.ReaderSource{R: f}, func() { _ = f.Close() }, nil
		default:
			return nil, func() {}, nil
		}
	}

	opts := sync.PassOptions{
		Options: reconcile.Options{DryRun: true, DoBlank: true, DoSet: true, Full: fullSync},
	}

	// Step 1: Plan (always runs)
	src, done, err := source()
	if err != nil {
		return err
	}
	res, err := svc.RunPass(ctx, stream, src, desired, opts)
	done()
	if err != nil {
		return fmt.Errorf("failed to plan pass: %w", err)
	}
	printSyncReport(l, res)

	if dryRunSync {
		l.Info("Dry-run mode: No commands were written.")
		return nil
	}
	if len(res.Plan.Actions) == 0 {
		l.Info("Model is up to date.")
		return nil
	}

	// Step 2: Apply (if confirmed)
	if !confirmSync() {
		l.Warn("Operation cancelled by user. No commands were written.")
		return nil
	}

	opts.DryRun = false
	opts.Confirmed = true
	opts.Export = exportFlag

	src, done, err = source()
	if err != nil {
		return err
	}
	res, err = svc.RunPass(ctx, stream, src, desired, opts)
	done()
	if err != nil {
		return fmt.Errorf("failed to apply pass: %w", err)
	}

	if err := writeScript(outFile, res.Script); err != nil {
		return err
	}
	l.Info("Script written",
		zap.Int("commands", res.Executed),
		zap.String("out", outFile),
		zap.String("script_key", res.ScriptKey),
	)
	return nil
}

func readDesired(ctx context.Context, registry *session.Registry, path string) ([]sync.Desired, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open desired file: %w", err)
	}
	defer f.Close()

	lines, err := sync.ReaderSource{R: f}.Lines(ctx)
	if err != nil {
		return nil, err
	}
	return sync.ParseDesired(registry.Format(), lines)
}

func writeScript(path, script string) error {
	if path == "" || path == "-" {
		_, err := fmt.Fprint(os.Stdout, script)
		return err
	}
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	return nil
}

// printSyncReport prints a formatted pass report using logger.
func printSyncReport(l *zap.Logger, res *sync.PassResult) {
	s := res.Plan.Summary

	l.Info("Sync report",
		zap.Int("ingested", res.Ingested),
		zap.Int("skipped", res.Skipped),
		zap.Int("placed", res.Placed),
		zap.Int("live", s.Live),
		zap.Int("expired", s.Expired),
		zap.Int("pending", s.Pending),
	)

	if len(res.Plan.Actions) == 0 {
		return
	}

	l.Info("Planned actions",
		zap.Int("blank_actions", s.BlankActions),
		zap.Int("set_actions", s.SetActions),
		zap.Int("total_actions", len(res.Plan.Actions)),
	)

	maxShow := min(5, len(res.Plan.Actions))
	for _, action := range res.Plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("namespace", action.Namespace),
			zap.Int("index", action.Index),
			zap.String("reason", action.Reason),
		)
	}
	if len(res.Plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(res.Plan.Actions)-maxShow))
	}
}

// confirmSync prompts the user for confirmation or uses --yes flag.
func confirmSync() bool {
	if yesConfirm {
		fmt.Fprintln(os.Stderr, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(os.Stderr, "\n⚠️  Type 'yes' to write the commands: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
