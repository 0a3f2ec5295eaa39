// Package reconcile turns the state of a synchronisation session into the commands
// that bring the model engine in line with the stream, and applies them.
//
// A plan has two kinds of action:
//
// 1. Blank: remove a record that the stream no longer holds. Blanks are ordered
// highest index first within each namespace, since removing an entry from some
// record types renumbers the entries above it.
//
// 2. Set / SetAt: issue a record that is new or changed in this pass.
//
// Planning never touches the engine. ApplyPlan executes a plan through a Bridge and
// only does so when the options are confirmed and not a dry run.
//
// # Usage Example
//
//	plan := reconcile.BuildPlan(sess, reconcile.Options{DoBlank: true, DoSet: true})
//	executed, err := reconcile.ApplyPlan(ctx, bridge, plan, opts)
//
// # Full resynchronisation
//
// With Options.Full every live record is blanked and every current record is issued
// again, regardless of what changed.
package reconcile
