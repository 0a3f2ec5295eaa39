package reconcile

import (
	"fmt"
	"sort"

	"model-sync/core/cache"
)

// BuildPlan builds the plan for state. It does not touch the engine.
func BuildPlan(state State, opts Options) *SyncPlan {
	f := state.Format()
	current := state.CurrentData()
	expired := staleBlanks(state.ExpiredData(), current)
	live := state.LiveData()
	pending := state.PendingData()

	plan := &SyncPlan{
		Group: state.Group(),
		Summary: PlanSummary{
			Live:    len(live),
			Expired: len(expired),
			Pending: len(pending),
		},
	}

	blanks := expired
	sets := pending
	if opts.Full {
		blanks = mergeBlanks(expired, live)
		sets = current
	}

	if opts.DoBlank || opts.Full {
		for _, d := range blanks {
			plan.Actions = append(plan.Actions, Action{
				Type:      ActionBlank,
				Namespace: d.Namespace,
				Index:     d.Index,
				Command:   f.BlankCommand(d.Namespace, d.Index),
				Reason:    blankReason(d, opts),
			})
			plan.Summary.BlankActions++
		}
	}

	if opts.DoSet || opts.Full {
		for _, d := range sets {
			t := ActionSet
			if d.Kind == cache.CommandPositionalInsert {
				t = ActionSetAt
			}
			plan.Actions = append(plan.Actions, Action{
				Type:      t,
				Namespace: d.Namespace,
				Index:     d.Index,
				Command:   d.Command(f),
				Reason:    setReason(opts),
			})
			plan.Summary.SetActions++
		}
	}

	return plan
}

type pairKey struct {
	ns  string
	idx int
}

// staleBlanks keeps one entry per expired (namespace, index) pair and drops pairs
// that hold a current record again, so a re-issued index is never blanked.
func staleBlanks(expired, current []cache.Data) []cache.Data {
	live := make(map[pairKey]struct{}, len(current))
	for _, d := range current {
		live[pairKey{d.Namespace, d.Index}] = struct{}{}
	}
	seen := make(map[pairKey]struct{}, len(expired))
	out := make([]cache.Data, 0, len(expired))
	for _, d := range expired {
		k := pairKey{d.Namespace, d.Index}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := live[k]; ok {
			continue
		}
		out = append(out, d)
	}
	return out
}

// mergeBlanks combines two blank lists without duplicate (namespace, index) pairs,
// highest index first within each namespace.
func mergeBlanks(a, b []cache.Data) []cache.Data {
	seen := make(map[pairKey]struct{}, len(a)+len(b))
	out := make([]cache.Data, 0, len(a)+len(b))
	for _, list := range [][]cache.Data{a, b} {
		for _, d := range list {
			k := pairKey{d.Namespace, d.Index}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}
		return out[i].Index > out[j].Index
	})
	return out
}

func blankReason(d cache.Data, opts Options) string {
	if opts.Full {
		return "full resync"
	}
	return fmt.Sprintf("%s %d no longer in stream", d.Namespace, d.Index)
}

func setReason(opts Options) string {
	if opts.Full {
		return "full resync"
	}
	return "new or changed"
}
