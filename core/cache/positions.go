package cache

import "sort"

// positions is an ascending list of arena positions.
type positions []int

func (p positions) add(pos int) positions {
	i := sort.SearchInts(p, pos)
	if i < len(p) && p[i] == pos {
		return p
	}
	p = append(p, 0)
	copy(p[i+1:], p[i:])
	p[i] = pos
	return p
}

func (p positions) without(drop map[int]struct{}) positions {
	out := p[:0]
	for _, pos := range p {
		if _, ok := drop[pos]; !ok {
			out = append(out, pos)
		}
	}
	return out
}

func (p positions) intersect(o positions) positions {
	var out positions
	i, j := 0, 0
	for i < len(p) && j < len(o) {
		switch {
		case p[i] == o[j]:
			out = append(out, p[i])
			i++
			j++
		case p[i] < o[j]:
			i++
		default:
			j++
		}
	}
	return out
}

// positionIndex maps a key to the arena positions holding it.
type positionIndex[K comparable] map[K]positions

func (x positionIndex[K]) add(k K, pos int) {
	x[k] = x[k].add(pos)
}

func (x positionIndex[K]) remove(k K, pos int) {
	ps, ok := x[k]
	if !ok {
		return
	}
	ps = ps.without(map[int]struct{}{pos: {}})
	if len(ps) == 0 {
		delete(x, k)
		return
	}
	x[k] = ps
}

func (x positionIndex[K]) strip(drop map[int]struct{}) {
	for k, ps := range x {
		ps = ps.without(drop)
		if len(ps) == 0 {
			delete(x, k)
			continue
		}
		x[k] = ps
	}
}
