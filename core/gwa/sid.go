package gwa

import "strings"

// Reserved SID tag names.
const (
	// TagApplicationID identifies the logical object across passes.
	TagApplicationID = "speckle_app_id"
	// TagStreamID identifies the stream a record was received from.
	TagStreamID = "speckle_stream_id"
)

// sidSeparator joins a keyword field and its SID block.
const sidSeparator = ":"

// Tag is one SID key/value pair.
type Tag struct {
	Name  string
	Value string
}

// FormatSID renders tags as {name:value}{name:value}. Spaces are stripped from values
// and tags with an empty value are skipped.
func FormatSID(tags ...Tag) string {
	var sb strings.Builder
	for _, t := range tags {
		v := strings.ReplaceAll(t.Value, " ", "")
		if t.Name == "" || v == "" {
			continue
		}
		sb.WriteString("{")
		sb.WriteString(t.Name)
		sb.WriteString(":")
		sb.WriteString(v)
		sb.WriteString("}")
	}
	return sb.String()
}

// AppendSID attaches a SID block to a keyword field.
func AppendSID(field string, tags ...Tag) string {
	sid := FormatSID(tags...)
	if sid == "" {
		return field
	}
	return field + sidSeparator + sid
}

// ParseSID splits a field into its head and the tags of its SID block.
// Fields without a SID block return a nil map.
func ParseSID(field string) (string, map[string]string) {
	at := strings.Index(field, sidSeparator+"{")
	if at < 0 {
		return field, nil
	}
	head, block := field[:at], field[at+len(sidSeparator):]

	tags := make(map[string]string)
	for len(block) > 0 && block[0] == '{' {
		end := strings.IndexByte(block, '}')
		if end < 0 {
			break
		}
		name, value, ok := strings.Cut(block[1:end], ":")
		if ok && name != "" {
			tags[name] = value
		}
		block = block[end+1:]
	}
	return head, tags
}
