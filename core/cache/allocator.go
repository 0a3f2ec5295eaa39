package cache

import (
	"sort"
	"strings"
)

// Allocator assigns native indices per namespace.
type Allocator struct {
	counters map[string]int
	reserved map[string]map[int]struct{}
	mapped   map[idKey]int
	baseline map[string]map[int]struct{}
}

// NewAllocator returns an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		counters: make(map[string]int),
		reserved: make(map[string]map[int]struct{}),
		mapped:   make(map[idKey]int),
		baseline: make(map[string]map[int]struct{}),
	}
}

// Resolve returns the index for externalID in namespace. An empty externalID always
// yields a fresh index that is not remembered. A known externalID returns its existing
// index; an unknown one is given the next free index, which is then remembered.
func (a *Allocator) Resolve(namespace, externalID string) int {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return a.next(namespace)
	}
	k := idKey{namespace: namespace, externalID: externalID}
	if idx, ok := a.mapped[k]; ok {
		return idx
	}
	idx := a.next(namespace)
	a.mapped[k] = idx
	return idx
}

// Lookup returns the index remembered for externalID without allocating.
func (a *Allocator) Lookup(namespace, externalID string) (int, bool) {
	idx, ok := a.mapped[idKey{namespace: namespace, externalID: strings.TrimSpace(externalID)}]
	return idx, ok
}

// next returns the smallest index at or above the running counter that is not
// reserved, and moves the counter past it.
func (a *Allocator) next(namespace string) int {
	c := a.counters[namespace]
	if c < 1 {
		c = 1
	}
	used := a.reserved[namespace]
	for {
		if _, taken := used[c]; !taken {
			break
		}
		c++
	}
	a.counters[namespace] = c + 1
	return c
}

// Reserve marks indices as in use so they are never handed out.
func (a *Allocator) Reserve(namespace string, indices ...int) {
	if len(indices) == 0 {
		return
	}
	set, ok := a.reserved[namespace]
	if !ok {
		set = make(map[int]struct{}, len(indices))
		a.reserved[namespace] = set
	}
	for _, idx := range indices {
		if idx > 0 {
			set[idx] = struct{}{}
		}
	}
}

// ReserveAndMap pairs indices with externalIDs, remembers each pair whose id is not
// already known, then reserves all indices. Extra entries of the longer slice are only
// reserved.
func (a *Allocator) ReserveAndMap(namespace string, indices []int, externalIDs []string) {
	for i := 0; i < len(indices) && i < len(externalIDs); i++ {
		id := strings.TrimSpace(externalIDs[i])
		if id == "" || indices[i] <= 0 {
			continue
		}
		k := idKey{namespace: namespace, externalID: id}
		if _, ok := a.mapped[k]; !ok {
			a.mapped[k] = indices[i]
		}
	}
	a.Reserve(namespace, indices...)
}

// SetBaseline records the current reserved indices of every namespace.
func (a *Allocator) SetBaseline() {
	a.baseline = copySets(a.reserved)
}

// ResetToBaseline forgets every remembered id and counter and restores the reserved
// indices recorded by the last SetBaseline.
func (a *Allocator) ResetToBaseline() {
	a.counters = make(map[string]int)
	a.mapped = make(map[idKey]int)
	a.reserved = copySets(a.baseline)
}

// InBaseline reports whether index was reserved when the baseline was taken.
func (a *Allocator) InBaseline(namespace string, index int) bool {
	_, ok := a.baseline[namespace][index]
	return ok
}

// Reserved returns the reserved indices of namespace in ascending order.
func (a *Allocator) Reserved(namespace string) []int {
	set := a.reserved[namespace]
	out := make([]int, 0, len(set))
	for idx := range set {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Highest returns the largest index reserved or handed out in namespace.
func (a *Allocator) Highest(namespace string) int {
	high := a.counters[namespace] - 1
	for idx := range a.reserved[namespace] {
		if idx > high {
			high = idx
		}
	}
	if high < 0 {
		return 0
	}
	return high
}

func copySets(src map[string]map[int]struct{}) map[string]map[int]struct{} {
	dst := make(map[string]map[int]struct{}, len(src))
	for ns, set := range src {
		cp := make(map[int]struct{}, len(set))
		for idx := range set {
			cp[idx] = struct{}{}
		}
		dst[ns] = cp
	}
	return dst
}
