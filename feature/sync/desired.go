package sync

import (
	"fmt"
	"strconv"
	"strings"

	"model-sync/core/cache"
	"model-sync/core/gwa"
)

// Desired is an object the stream wants in the model. Its native index is allocated
// by the session.
type Desired struct {
	Namespace  string   `json:"namespace"`
	ExternalID string   `json:"external_id"`
	Fields     []string `json:"fields"`
	Positional bool     `json:"positional,omitempty"`
	// ObjectKind tags the placed records in the kind index, e.g. "Structural.Element1D".
	ObjectKind string `json:"object_kind,omitempty"`
}

// Kind returns the command kind the record is issued with.
func (d Desired) Kind() cache.CommandKind {
	if d.Positional {
		return cache.CommandPositionalInsert
	}
	return cache.CommandReplace
}

// Render returns the payload builder for this object in stream.
// Replace records carry their index as second field; positional records get it from SET_AT.
func (d Desired) Render(f gwa.Format, stream string) func(index int) string {
	keyword := gwa.AppendSID(d.Namespace,
		gwa.Tag{Name: gwa.TagApplicationID, Value: d.ExternalID},
		gwa.Tag{Name: gwa.TagStreamID, Value: stream},
	)
	return func(index int) string {
		fields := make([]string, 0, len(d.Fields)+2)
		fields = append(fields, keyword)
		if !d.Positional {
			fields = append(fields, strconv.Itoa(index))
		}
		fields = append(fields, d.Fields...)
		return f.Join(fields...)
	}
}

// ParseDesired reads desired objects from lines of the form
// [SET_AT<delim>]KEYWORD:{speckle_app_id:id}<delim>field...
// Empty lines and lines starting with '#' are ignored.
func ParseDesired(f gwa.Format, lines []string) ([]Desired, error) {
	var out []Desired
	for n, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := f.Split(line)
		var d Desired
		if fields[0] == gwa.VerbSetAt {
			d.Positional = true
			fields = fields[1:]
		}
		if len(fields) == 0 {
			return nil, fmt.Errorf("%w: line %d has no keyword", gwa.ErrMalformedRecord, n+1)
		}

		head, tags := gwa.ParseSID(strings.TrimSpace(fields[0]))
		d.Namespace = head
		d.ExternalID = strings.TrimSpace(tags[gwa.TagApplicationID])
		if d.Namespace == "" || d.ExternalID == "" {
			return nil, fmt.Errorf("%w: line %d needs a keyword and %s", gwa.ErrMalformedRecord, n+1, gwa.TagApplicationID)
		}
		d.Fields = append([]string(nil), fields[1:]...)
		out = append(out, d)
	}
	return out, nil
}

type objectKind string

func (k objectKind) ObjectKind() string { return string(k) }
