package reconcile

import (
	"context"
	"fmt"
)

// ApplyPlan executes the actions in a sync plan.
// Returns the number of commands executed and any error encountered.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, bridge Bridge, plan *SyncPlan, opts Options) (executed int, err error) {
	// Safety check: do not execute if not confirmed or dry-run
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}
	if bridge == nil {
		return 0, fmt.Errorf("no bridge to apply plan for group %q", plan.Group)
	}

	// Blanks run before sets so re-issued indices are never removed afterwards.
	var blanks, sets []string
	for _, action := range plan.Actions {
		switch action.Type {
		case ActionBlank:
			blanks = append(blanks, action.Command)
		case ActionSet, ActionSetAt:
			sets = append(sets, action.Command)
		}
	}

	for _, group := range [][]string{blanks, sets} {
		n, err := execute(ctx, bridge, group)
		executed += n
		if err != nil {
			return executed, err
		}
	}

	return executed, nil
}

// execute issues commands through the batch API when the bridge offers one.
func execute(ctx context.Context, bridge Bridge, commands []string) (int, error) {
	if len(commands) == 0 {
		return 0, nil
	}

	if batcher, ok := bridge.(BatchBridge); ok {
		if err := batcher.ExecuteBatch(ctx, commands); err != nil {
			return 0, fmt.Errorf("failed to execute batch of %d commands: %w", len(commands), err)
		}
		return len(commands), nil
	}

	// Fallback to one-at-a-time
	executed := 0
	for _, cmd := range commands {
		if err := ctx.Err(); err != nil {
			return executed, err
		}
		if _, err := bridge.Execute(ctx, cmd); err != nil {
			return executed, fmt.Errorf("failed to execute %q: %w", cmd, err)
		}
		executed++
	}
	return executed, nil
}

// BuildAndApply is a convenience wrapper that plans and optionally applies actions.
// It returns the plan, number of commands executed, and any error.
func BuildAndApply(ctx context.Context, state State, bridge Bridge, opts Options) (*SyncPlan, int, error) {
	plan := BuildPlan(state, opts)
	executed, err := ApplyPlan(ctx, bridge, plan, opts)
	return plan, executed, err
}
