package cache

import (
	"sort"
	"strings"
)

// Get returns a copy of the current version at (namespace, index).
func (c *Collection) Get(namespace string, index int) (Record, bool) {
	for _, pos := range c.bySlot[slotKey{namespace: namespace, index: index}] {
		if rec := c.records[pos]; rec.current() {
			return *rec, true
		}
	}
	return Record{}, false
}

// Payload returns the payload of the current version at (namespace, index).
func (c *Collection) Payload(namespace string, index int) (string, bool) {
	rec, ok := c.Get(namespace, index)
	return rec.Payload, ok
}

// ExternalID returns the external id of the current version at (namespace, index).
func (c *Collection) ExternalID(namespace string, index int) string {
	rec, _ := c.Get(namespace, index)
	return rec.ExternalID
}

// LookupIndex returns the native index of the current version of externalID.
func (c *Collection) LookupIndex(namespace, externalID string) (int, bool) {
	for _, pos := range c.matching(namespace, externalID) {
		if rec := c.records[pos]; rec.current() {
			return rec.Index, true
		}
	}
	return 0, false
}

// LookupIndices returns the native indices of the external ids that have a current
// version, in argument order. Unknown ids are skipped.
func (c *Collection) LookupIndices(namespace string, externalIDs []string) []int {
	var out []int
	for _, id := range externalIDs {
		if idx, ok := c.LookupIndex(namespace, id); ok {
			out = append(out, idx)
		}
	}
	return out
}

// Indices returns the native indices of the current records of namespace, ascending.
func (c *Collection) Indices(namespace string) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, pos := range c.byNamespace[namespace] {
		rec := c.records[pos]
		if !rec.current() {
			continue
		}
		if _, dup := seen[rec.Index]; dup {
			continue
		}
		seen[rec.Index] = struct{}{}
		out = append(out, rec.Index)
	}
	sort.Ints(out)
	return out
}

// Payloads returns the payloads of the current records of namespace ordered by index.
func (c *Collection) Payloads(namespace string) []string {
	var out []string
	for _, idx := range c.Indices(namespace) {
		if p, ok := c.Payload(namespace, idx); ok {
			out = append(out, p)
		}
	}
	return out
}

// KeyCount returns the number of distinct external ids with a current version in
// namespace.
func (c *Collection) KeyCount(namespace string) int {
	ids := make(map[string]struct{})
	for _, pos := range c.byNamespace[namespace] {
		rec := c.records[pos]
		if rec.current() && rec.ExternalID != "" {
			ids[rec.ExternalID] = struct{}{}
		}
	}
	return len(ids)
}

// Namespaces returns every namespace holding at least one record, sorted.
func (c *Collection) Namespaces() []string {
	out := make([]string, 0, len(c.byNamespace))
	for ns := range c.byNamespace {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// ContainsKind reports whether a current record carries an object of kind.
func (c *Collection) ContainsKind(kind string) bool {
	for _, pos := range c.byKind[kind] {
		if c.records[pos].current() {
			return true
		}
	}
	return false
}

// Objects returns the attached objects of kind held by current records, optionally
// narrowed to an external id and a group tag.
func (c *Collection) Objects(kind, externalID, groupTag string) []Object {
	ps := c.byKind[kind]
	if id := strings.TrimSpace(externalID); id != "" {
		ps = ps.intersect(c.byExternalID[id])
	}
	if groupTag != "" {
		ps = ps.intersect(c.byGroup[groupTag])
	}
	var out []Object
	for _, pos := range ps {
		if rec := c.records[pos]; rec.current() {
			out = append(out, rec.Object)
		}
	}
	return out
}
