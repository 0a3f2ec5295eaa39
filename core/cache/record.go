package cache

import "model-sync/core/gwa"

// CommandKind selects how a record is re-issued to the engine.
type CommandKind int

const (
	// CommandReplace issues the record with SET.
	CommandReplace CommandKind = iota
	// CommandPositionalInsert issues the record with SET_AT at its native index.
	CommandPositionalInsert
)

func (k CommandKind) String() string {
	switch k {
	case CommandReplace:
		return "replace"
	case CommandPositionalInsert:
		return "positional_insert"
	default:
		return "unknown"
	}
}

// Object is a domain object derived from a record. ObjectKind is the tag used by the
// kind index, e.g. "Structural.Element1D".
type Object interface {
	ObjectKind() string
}

// Record is one version of one native record.
type Record struct {
	Namespace  string
	Index      int
	Payload    string
	GroupTag   string
	ExternalID string
	Latest     bool
	Superseded bool
	Object     Object
	Kind       CommandKind
}

// current reports whether this is the live version of its (namespace, index) pair.
func (r *Record) current() bool {
	return r.Latest && !r.Superseded
}

// expired reports whether this version was displaced and not reconfirmed.
func (r *Record) expired() bool {
	return r.Superseded && !r.Latest
}

// Data describes a record for the bridge.
type Data struct {
	Namespace string      `json:"namespace"`
	Index     int         `json:"index"`
	Payload   string      `json:"payload"`
	Kind      CommandKind `json:"kind"`
}

// Command renders the data as the SET or SET_AT command that issues it.
func (d Data) Command(f gwa.Format) string {
	if d.Kind == CommandPositionalInsert {
		return f.SetAtCommand(d.Index, d.Payload)
	}
	return f.SetCommand(d.Payload)
}

func (r *Record) data() Data {
	return Data{Namespace: r.Namespace, Index: r.Index, Payload: r.Payload, Kind: r.Kind}
}

type slotKey struct {
	namespace string
	index     int
}

type idKey struct {
	namespace  string
	externalID string
}
