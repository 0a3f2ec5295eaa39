package gwa

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedRecord is returned for lines that do not carry a keyword and a native index.
var ErrMalformedRecord = errors.New("malformed record")

// Record is a parsed record line. Payload holds the line without any command verb.
type Record struct {
	Namespace     string
	Index         int
	ApplicationID string
	StreamID      string
	// Positional is set when the line was issued through SET_AT.
	Positional bool
	Payload    string
}

// ParseRecord parses a record line, with or without a leading SET or SET_AT verb.
func (f Format) ParseRecord(line string) (Record, error) {
	fields := f.Split(line)
	var rec Record

	switch {
	case len(fields) > 0 && fields[0] == VerbSet:
		fields = fields[1:]
	case len(fields) > 0 && fields[0] == VerbSetAt:
		if len(fields) < 3 {
			return rec, fmt.Errorf("%w: %q", ErrMalformedRecord, line)
		}
		idx, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil || idx <= 0 {
			return rec, fmt.Errorf("%w: bad position in %q", ErrMalformedRecord, line)
		}
		rec.Positional = true
		rec.Index = idx
		fields = fields[2:]
	}

	if len(fields) < 2 || strings.TrimSpace(fields[0]) == "" {
		return rec, fmt.Errorf("%w: %q", ErrMalformedRecord, line)
	}

	head, tags := ParseSID(strings.TrimSpace(fields[0]))
	rec.Namespace = head
	rec.ApplicationID = tags[TagApplicationID]
	rec.StreamID = tags[TagStreamID]

	if !rec.Positional {
		idxField, idxTags := ParseSID(strings.TrimSpace(fields[1]))
		idx, err := strconv.Atoi(idxField)
		if err != nil || idx <= 0 {
			return rec, fmt.Errorf("%w: bad index in %q", ErrMalformedRecord, line)
		}
		rec.Index = idx
		if rec.ApplicationID == "" {
			rec.ApplicationID = idxTags[TagApplicationID]
		}
		if rec.StreamID == "" {
			rec.StreamID = idxTags[TagStreamID]
		}
	}

	rec.Payload = f.Join(fields...)
	return rec, nil
}
