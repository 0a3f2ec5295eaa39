package sync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"model-sync/core/gwa"
	"model-sync/core/reconcile"
	"model-sync/core/session"
	"model-sync/core/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnknownSession is returned when a stream has no live session.
	ErrUnknownSession = errors.New("unknown sync session")
	// ErrEmptyStream is returned for a blank stream id.
	ErrEmptyStream = errors.New("stream id is required")
)

// DefaultWorkers bounds how many keyword families are placed concurrently.
const DefaultWorkers = 4

// PassOptions controls a sync pass.
type PassOptions struct {
	reconcile.Options
	// Bridge receives the commands. Nil writes them to PassResult.Script.
	Bridge reconcile.Bridge
	// Export uploads the command script to object storage.
	Export bool
}

// PassResult reports the outcome of a sync pass.
type PassResult struct {
	ID        string              `json:"id"`
	Stream    string              `json:"stream"`
	Ingested  int                 `json:"ingested"`
	Skipped   int                 `json:"skipped"`
	Placed    int                 `json:"placed"`
	Executed  int                 `json:"executed"`
	Plan      *reconcile.SyncPlan `json:"plan"`
	Script    string              `json:"script,omitempty"`
	ScriptKey string              `json:"script_key,omitempty"`
}

// Service runs sync passes against the sessions of a registry.
type Service struct {
	registry *session.Registry
	history  *History
	client   storage.Client
	bucket   string
	logger   *zap.Logger
	workers  int
}

// NewService creates a sync service. history and client may be nil, which disables
// pass history and script export respectively.
func NewService(registry *session.Registry, history *History, client storage.Client, bucket string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry: registry,
		history:  history,
		client:   client,
		bucket:   bucket,
		logger:   logger,
		workers:  DefaultWorkers,
	}
}

// Registry returns the session registry of the service.
func (s *Service) Registry() *session.Registry {
	return s.registry
}

// History returns the pass history, or nil when disabled.
func (s *Service) History() *History {
	return s.history
}

// ModelSource returns the source of the model records stored for stream, or nil when
// no object storage is configured.
func (s *Service) ModelSource(stream string) Source {
	if s.client == nil {
		return nil
	}
	return StorageSource{Client: s.client, Bucket: s.bucket, Key: ModelKey(stream)}
}

// ModelKey is the object key of the model records of stream.
func ModelKey(stream string) string {
	return storage.ScriptKey(stream, "model")
}

// Session returns the live session of stream.
func (s *Service) Session(stream string) (*session.Session, error) {
	sess, ok := s.registry.Get(stream)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, stream)
	}
	return sess, nil
}

// RunPass synchronises stream: the model's records are loaded from existing when the
// stream has no live session, the previous pass is snapshotted, every desired object is
// placed, and the resulting plan is applied. Passes of one stream run one at a time.
func (s *Service) RunPass(ctx context.Context, stream string, existing Source, desired []Desired, opts PassOptions) (*PassResult, error) {
	stream = strings.TrimSpace(stream)
	if stream == "" {
		return nil, ErrEmptyStream
	}

	unlock, err := s.registry.LockPass(ctx, stream)
	if err != nil {
		return nil, fmt.Errorf("failed to start pass: %w", err)
	}
	defer unlock()

	res := &PassResult{ID: uuid.NewString(), Stream: stream}
	l := s.logger.With(zap.String("stream", stream), zap.String("pass", res.ID))

	sess, err := s.registry.GetOrCreate(ctx, stream, func(ctx context.Context, sess *session.Session) error {
		if existing == nil {
			return nil
		}
		lines, err := existing.Lines(ctx)
		if err != nil {
			return fmt.Errorf("failed to read model records: %w", err)
		}
		res.Ingested, res.Skipped = ingest(sess, lines, l)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sess.Snapshot()

	placed, err := s.place(ctx, sess, desired)
	res.Placed = placed
	if err != nil {
		s.discard(stream)
		return nil, fmt.Errorf("failed to place objects: %w", err)
	}

	var script bytes.Buffer
	bridge := opts.Bridge
	if bridge == nil {
		bridge = NewScriptBridge(&script)
	}

	plan, executed, err := reconcile.BuildAndApply(ctx, sess, bridge, opts.Options)
	res.Plan = plan
	res.Executed = executed
	if err != nil {
		s.discard(stream)
		return res, fmt.Errorf("failed to apply plan: %w", err)
	}
	if opts.DryRun || !opts.Confirmed {
		// Nothing reached the model, so the next pass must start from it again.
		s.discard(stream)
	}
	res.Script = script.String()

	if opts.Export && s.client != nil && res.Script != "" {
		key := storage.ScriptKey(stream, res.ID)
		if _, err := storage.PutText(ctx, s.client, s.bucket, key, []byte(res.Script)); err != nil {
			return res, fmt.Errorf("failed to export script: %w", err)
		}
		res.ScriptKey = key
	}

	if s.history != nil {
		if err := s.history.Record(ctx, res, opts); err != nil {
			l.Warn("Failed to record pass history", zap.Error(err))
		}
	}

	l.Info("Sync pass finished",
		zap.Int("placed", res.Placed),
		zap.Int("blank", plan.Summary.BlankActions),
		zap.Int("set", plan.Summary.SetActions),
		zap.Int("executed", res.Executed),
		zap.Bool("dry_run", opts.DryRun),
	)
	return res, nil
}

// place stores every desired object. Objects are grouped by base keyword; families run
// concurrently, objects within a family in order so allocation stays deterministic.
func (s *Service) place(ctx context.Context, sess *session.Session, desired []Desired) (int, error) {
	families := make(map[string][]Desired)
	var order []string
	for _, d := range desired {
		base := gwa.BaseKeyword(d.Namespace)
		if _, ok := families[base]; !ok {
			order = append(order, base)
		}
		families[base] = append(families[base], d)
	}

	var placed atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	f := sess.Format()
	for _, base := range order {
		items := families[base]
		g.Go(func() error {
			for _, d := range items {
				if err := ctx.Err(); err != nil {
					return err
				}
				idx, ok := sess.Place(d.Namespace, d.ExternalID, d.Kind(), d.Render(f, sess.Group()))
				if !ok {
					s.logger.Warn("Object not placed",
						zap.String("namespace", d.Namespace),
						zap.String("external_id", d.ExternalID))
					continue
				}
				if d.ObjectKind != "" {
					sess.AssignObject(d.Namespace, d.ExternalID, objectKind(d.ObjectKind))
				}
				s.logger.Debug("Object placed",
					zap.String("namespace", d.Namespace),
					zap.String("external_id", d.ExternalID),
					zap.Int("index", idx))
				placed.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	return int(placed.Load()), err
}

// discard drops the session of stream so the next pass rebuilds it from the model.
func (s *Service) discard(stream string) {
	s.registry.Invalidate(stream)
}
