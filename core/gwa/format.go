package gwa

import (
	"strconv"
	"strings"
)

// DefaultDelimiter separates the fields of a record line.
const DefaultDelimiter = "\t"

// Format joins and splits record lines with a configurable delimiter.
type Format struct {
	// Delimiter is the field separator. Empty means DefaultDelimiter.
	Delimiter string
}

// Default is the tab-delimited format used by the engine out of the box.
var Default = Format{Delimiter: DefaultDelimiter}

func (f Format) delim() string {
	if f.Delimiter == "" {
		return DefaultDelimiter
	}
	return f.Delimiter
}

// Split breaks a record line into its fields.
func (f Format) Split(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil
	}
	return strings.Split(line, f.delim())
}

// Join builds a record line from fields.
func (f Format) Join(fields ...string) string {
	return strings.Join(fields, f.delim())
}

// Keyword splits a namespace into its base keyword and version suffix.
// A namespace without a numeric suffix reports version 0.
func Keyword(namespace string) (string, int) {
	base, suffix, found := strings.Cut(namespace, ".")
	if !found {
		return namespace, 0
	}
	v, err := strconv.Atoi(suffix)
	if err != nil {
		return namespace, 0
	}
	return base, v
}

// BaseKeyword returns the keyword without its version suffix.
func BaseKeyword(namespace string) string {
	base, _ := Keyword(namespace)
	return base
}
