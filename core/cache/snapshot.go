package cache

import "sort"

// Snapshot ends a pass for groupTag. Alterable records that are current are displaced;
// alterable records that were already displaced and never reconfirmed are removed.
// It returns the number of removed records.
func (c *Collection) Snapshot(groupTag string) int {
	drop := make(map[int]struct{})
	for _, pos := range c.byGroup[groupTag] {
		rec := c.records[pos]
		if rec == nil || !c.Alterable(rec.Namespace, rec.ExternalID) {
			continue
		}
		switch {
		case rec.Latest:
			rec.Latest = false
			rec.Superseded = true
		case rec.Superseded:
			drop[pos] = struct{}{}
		}
	}
	c.remove(drop)
	c.watermarks[groupTag] = len(c.records)
	return len(drop)
}

// LiveData describes every current alterable record, ordered by namespace then index.
// It is the full picture to re-issue when forcing a resynchronisation.
func (c *Collection) LiveData() []Data {
	var out []Data
	for _, rec := range c.records {
		if rec == nil || !rec.current() || !c.Alterable(rec.Namespace, rec.ExternalID) {
			continue
		}
		out = append(out, rec.data())
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// ExpiredData describes every displaced alterable record that was not reconfirmed.
// Results are ordered by namespace ascending, then by index descending within a
// namespace, since some record types renumber downwards when an entry is removed.
// A pair displaced more than once appears once per displaced version, and a pair
// that was re-issued in this pass is still listed for its older version.
func (c *Collection) ExpiredData() []Data {
	var out []Data
	for _, rec := range c.records {
		if rec == nil || !rec.expired() || !c.Alterable(rec.Namespace, rec.ExternalID) {
			continue
		}
		out = append(out, rec.data())
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}
		return out[i].Index > out[j].Index
	})
	return out
}

// CurrentData describes every current record in insertion order.
func (c *Collection) CurrentData() []Data {
	var out []Data
	for _, rec := range c.records {
		if rec != nil && rec.current() {
			out = append(out, rec.data())
		}
	}
	return out
}

// SetCommands renders every current record as a SET or SET_AT command, in insertion
// order.
func (c *Collection) SetCommands() []string {
	data := c.CurrentData()
	out := make([]string, 0, len(data))
	for _, d := range data {
		out = append(out, d.Command(c.format))
	}
	return out
}

// PendingData describes the current records of groupTag written since its last
// snapshot, in insertion order. A record is left out when the version it displaced
// at the same (namespace, index) carried the same payload and kind.
func (c *Collection) PendingData(groupTag string) []Data {
	mark := c.watermarks[groupTag]
	var out []Data
	for _, pos := range c.byGroup[groupTag] {
		rec := c.records[pos]
		if pos < mark || !rec.current() {
			continue
		}
		if prev := c.displaced(pos); prev != nil && prev.Payload == rec.Payload && prev.Kind == rec.Kind {
			continue
		}
		out = append(out, rec.data())
	}
	return out
}

// displaced returns the newest non-current version older than pos at the same slot.
func (c *Collection) displaced(pos int) *Record {
	rec := c.records[pos]
	ps := c.bySlot[slotKey{namespace: rec.Namespace, index: rec.Index}]
	for i := len(ps) - 1; i >= 0; i-- {
		if ps[i] >= pos {
			continue
		}
		if prev := c.records[ps[i]]; !prev.current() {
			return prev
		}
	}
	return nil
}
