package cache

import (
	"strings"

	"model-sync/core/gwa"
)

// DefaultInternalPrefix marks external ids generated by the engine itself.
const DefaultInternalPrefix = "gsa"

// Options configure a Collection. The zero value is usable.
type Options struct {
	// Format renders SET and SET_AT commands. Zero means gwa.Default.
	Format gwa.Format
	// NodeKeywords lists base keywords of engine-owned record types. Nil means {"NODE"}.
	NodeKeywords []string
	// InternalPrefix marks engine-generated external ids. Empty means DefaultInternalPrefix.
	InternalPrefix string
}

// Collection stores every record version with five position indices.
type Collection struct {
	records []*Record

	byNamespace  positionIndex[string]
	bySlot       positionIndex[slotKey]
	byExternalID positionIndex[string]
	byGroup      positionIndex[string]
	byKind       positionIndex[string]

	// watermarks holds len(records) at the last snapshot of each group.
	watermarks map[string]int

	format         gwa.Format
	nodeKeywords   map[string]struct{}
	internalPrefix string
}

// NewCollection returns an empty collection.
func NewCollection(opts Options) *Collection {
	keywords := opts.NodeKeywords
	if keywords == nil {
		keywords = []string{"NODE"}
	}
	nodes := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		nodes[gwa.BaseKeyword(k)] = struct{}{}
	}

	prefix := opts.InternalPrefix
	if prefix == "" {
		prefix = DefaultInternalPrefix
	}

	c := &Collection{
		format:         opts.Format,
		nodeKeywords:   nodes,
		internalPrefix: prefix,
	}
	c.Clear()
	return c
}

// Clear drops every record and index entry.
func (c *Collection) Clear() {
	c.records = nil
	c.byNamespace = make(positionIndex[string])
	c.bySlot = make(positionIndex[slotKey])
	c.byExternalID = make(positionIndex[string])
	c.byGroup = make(positionIndex[string])
	c.byKind = make(positionIndex[string])
	c.watermarks = make(map[string]int)
}

// Upsert appends a new latest version. Earlier versions at the same (namespace, index)
// are left untouched; call MarkPrevious first to displace them. It returns false when
// namespace is empty or index is not positive.
func (c *Collection) Upsert(namespace string, index int, payload, groupTag, externalID string, kind CommandKind) bool {
	if namespace == "" || index <= 0 {
		return false
	}
	rec := &Record{
		Namespace:  namespace,
		Index:      index,
		Payload:    payload,
		GroupTag:   groupTag,
		ExternalID: strings.TrimSpace(externalID),
		Latest:     true,
		Kind:       kind,
	}
	pos := len(c.records)
	c.records = append(c.records, rec)

	c.byNamespace.add(namespace, pos)
	c.bySlot.add(slotKey{namespace: namespace, index: index}, pos)
	if rec.ExternalID != "" {
		c.byExternalID.add(rec.ExternalID, pos)
	}
	if groupTag != "" {
		c.byGroup.add(groupTag, pos)
	}
	return true
}

// MarkPrevious displaces every version of externalID in namespace.
func (c *Collection) MarkPrevious(namespace, externalID string) {
	for _, pos := range c.matching(namespace, externalID) {
		rec := c.records[pos]
		rec.Superseded = true
		rec.Latest = false
	}
}

// AssignExternalID gives the oldest version at (namespace, index) an external id.
func (c *Collection) AssignExternalID(namespace string, index int, externalID string) bool {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return false
	}
	ps := c.bySlot[slotKey{namespace: namespace, index: index}]
	if len(ps) == 0 {
		return false
	}
	pos := ps[0]
	rec := c.records[pos]
	if rec.ExternalID != "" {
		c.byExternalID.remove(rec.ExternalID, pos)
	}
	rec.ExternalID = externalID
	c.byExternalID.add(externalID, pos)
	return true
}

// AssignObject attaches obj to the versions of externalID in namespace, narrowed to
// groupTag when one is given.
func (c *Collection) AssignObject(namespace, externalID string, obj Object, groupTag string) bool {
	if obj == nil {
		return false
	}
	ps := c.matching(namespace, externalID)
	if groupTag != "" {
		ps = ps.intersect(c.byGroup[groupTag])
	}
	if len(ps) == 0 {
		return false
	}
	kind := obj.ObjectKind()
	for _, pos := range ps {
		rec := c.records[pos]
		if rec.Object != nil {
			c.byKind.remove(rec.Object.ObjectKind(), pos)
		}
		rec.Object = obj
		c.byKind.add(kind, pos)
	}
	return true
}

// Touch reconfirms externalID in namespace without a new version. When no current
// version exists, the newest displaced one is made current again. It reports whether a
// current version exists afterwards.
func (c *Collection) Touch(namespace, externalID string) bool {
	ps := c.matching(namespace, externalID)
	if len(ps) == 0 {
		return false
	}
	for _, pos := range ps {
		if c.records[pos].current() {
			return true
		}
	}
	rec := c.records[ps[len(ps)-1]]
	rec.Latest = true
	rec.Superseded = false
	return true
}

// matching returns the positions of externalID in namespace.
func (c *Collection) matching(namespace, externalID string) positions {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil
	}
	ns, ok := c.byNamespace[namespace]
	if !ok {
		return nil
	}
	ids, ok := c.byExternalID[externalID]
	if !ok {
		return nil
	}
	return ns.intersect(ids)
}

// remove strips positions from every index and nulls their slots.
func (c *Collection) remove(drop map[int]struct{}) {
	if len(drop) == 0 {
		return
	}
	c.byNamespace.strip(drop)
	c.bySlot.strip(drop)
	c.byExternalID.strip(drop)
	c.byGroup.strip(drop)
	c.byKind.strip(drop)
	for pos := range drop {
		c.records[pos] = nil
	}
}

// Alterable reports whether a record may be diffed away. Node-like records without an
// external id, or with an engine-generated one, are owned by the engine.
func (c *Collection) Alterable(namespace, externalID string) bool {
	if _, node := c.nodeKeywords[gwa.BaseKeyword(namespace)]; !node {
		return true
	}
	return externalID != "" && !strings.HasPrefix(externalID, c.internalPrefix)
}

// Len returns the number of occupied slots.
func (c *Collection) Len() int {
	n := 0
	for _, rec := range c.records {
		if rec != nil {
			n++
		}
	}
	return n
}
