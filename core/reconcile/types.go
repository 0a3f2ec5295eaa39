package reconcile

import (
	"model-sync/core/cache"
	"model-sync/core/gwa"
)

// State is the view of a synchronisation session a plan is built from.
type State interface {
	// Group returns the group tag being synchronised.
	Group() string

	// Format returns the record format used to render commands.
	Format() gwa.Format

	// ExpiredData returns every displaced record, ordered by namespace ascending and
	// then by index descending. It may repeat a pair or list a pair that is current again.
	ExpiredData() []cache.Data

	// LiveData returns every current alterable record.
	LiveData() []cache.Data

	// PendingData returns the records of the group that are new or changed.
	PendingData() []cache.Data

	// CurrentData returns every current record in insertion order.
	CurrentData() []cache.Data
}

// ActionType represents the type of engine command.
type ActionType string

const (
	// ActionBlank removes the record at a native index.
	ActionBlank ActionType = "blank"
	// ActionSet replaces a whole record.
	ActionSet ActionType = "set"
	// ActionSetAt inserts or replaces an entry of an ordered list.
	ActionSetAt ActionType = "set_at"
)

// Action represents a planned engine command.
type Action struct {
	// Type specifies the command verb.
	Type ActionType `json:"type"`

	// Namespace is the record keyword.
	Namespace string `json:"namespace"`

	// Index is the native index the command addresses.
	Index int `json:"index"`

	// Command is the literal command line sent to the engine.
	Command string `json:"command"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// SyncPlan contains planned actions for one group.
type SyncPlan struct {
	// Group is the group tag the plan was built for.
	Group string `json:"group"`

	// Actions contains planned commands: blanks first, then sets.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a sync plan.
type PlanSummary struct {
	// Live counts current alterable records.
	Live int `json:"live"`

	// Expired counts displaced (namespace, index) pairs awaiting removal.
	Expired int `json:"expired"`

	// Pending counts new or changed records of the group.
	Pending int `json:"pending"`

	// BlankActions counts planned blank commands.
	BlankActions int `json:"blank_actions"`

	// SetActions counts planned SET and SET_AT commands.
	SetActions int `json:"set_actions"`
}

// Options controls which actions are planned and whether they run.
type Options struct {
	// DryRun prevents execution of any commands if true.
	DryRun bool

	// DoBlank enables removal of expired records.
	DoBlank bool

	// DoSet enables issuing of new and changed records.
	DoSet bool

	// Full blanks every live record and re-issues every current record.
	Full bool

	// Confirmed indicates the caller has confirmed execution.
	// If false, commands will not execute regardless of DryRun.
	Confirmed bool
}
