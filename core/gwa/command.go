package gwa

import "strconv"

// Command verbs understood by the engine.
const (
	VerbSet   = "SET"
	VerbSetAt = "SET_AT"
	VerbBlank = "BLANK"
)

// SetCommand replaces a whole record.
func (f Format) SetCommand(payload string) string {
	return f.Join(VerbSet, payload)
}

// SetAtCommand inserts or replaces the entry at index of an ordered list.
func (f Format) SetAtCommand(index int, payload string) string {
	return f.Join(VerbSetAt, strconv.Itoa(index), payload)
}

// BlankCommand removes the record at index.
func (f Format) BlankCommand(namespace string, index int) string {
	return f.Join(VerbBlank, BaseKeyword(namespace), strconv.Itoa(index))
}
