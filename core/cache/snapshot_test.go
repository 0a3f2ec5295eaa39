package cache_test

import (
	"testing"

	"model-sync/core/cache"
	"model-sync/core/gwa"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indicesOf(data []cache.Data) []int {
	out := make([]int, 0, len(data))
	for _, d := range data {
		out = append(out, d.Index)
	}
	return out
}

func TestSnapshot_ExpiredOrderedHighestFirst(t *testing.T) {
	c := cache.NewCollection(cache.Options{})
	for _, idx := range []int{3, 2, 5} {
		c.Upsert("MEMB.8", idx, "m", "s1", "", cache.CommandReplace)
	}

	assert.Equal(t, 0, c.Snapshot("s1"))
	assert.Empty(t, c.LiveData())
	assert.Equal(t, []int{5, 3, 2}, indicesOf(c.ExpiredData()))
}

func TestSnapshot_ExpiredKeepsReissuedPairs(t *testing.T) {
	c := cache.NewCollection(cache.Options{})
	c.Upsert("MEMB.8", 1, "m1", "s1", "a", cache.CommandReplace)
	c.Upsert("MEMB.8", 2, "m2", "s1", "b", cache.CommandReplace)

	c.Snapshot("s1")

	// "a" is received again in this pass, "b" is not.
	c.MarkPrevious("MEMB.8", "a")
	c.Upsert("MEMB.8", 1, "m1'", "s1", "a", cache.CommandReplace)

	// The displaced version of "a" is listed even though (MEMB.8, 1) is current again.
	expired := c.ExpiredData()
	require.Len(t, expired, 2)
	assert.Equal(t, []int{2, 1}, indicesOf(expired))
	assert.Equal(t, "m2", expired[0].Payload)
	assert.Equal(t, "m1", expired[1].Payload)

	live := c.LiveData()
	require.Len(t, live, 1)
	assert.Equal(t, "m1'", live[0].Payload)
}

func TestSnapshot_ExpiredOrderedByNamespaceThenIndex(t *testing.T) {
	c := cache.NewCollection(cache.Options{})
	c.Upsert("MEMB.8", 1, "m1", "s1", "", cache.CommandReplace)
	c.Upsert("MEMB.8", 4, "x", "s1", "a", cache.CommandReplace)
	c.Upsert("EL.4", 2, "e2", "s1", "", cache.CommandReplace)
	c.Upsert("MEMB.8", 4, "y", "s1", "b", cache.CommandReplace)
	c.Upsert("EL.4", 7, "e7", "s1", "", cache.CommandReplace)

	c.Snapshot("s1")

	var got []string
	for _, d := range c.ExpiredData() {
		got = append(got, d.Namespace+"/"+d.Payload)
	}
	// (MEMB.8, 4) was held by two records and both are listed.
	assert.Equal(t, []string{"EL.4/e7", "EL.4/e2", "MEMB.8/x", "MEMB.8/y", "MEMB.8/m1"}, got)
}

func TestSnapshot_RemovesRecordsExpiredInPreviousPass(t *testing.T) {
	c := cache.NewCollection(cache.Options{})
	c.Upsert("MEMB.8", 1, "m1", "s1", "a", cache.CommandReplace)
	c.Upsert("MEMB.8", 2, "m2", "s1", "b", cache.CommandReplace)

	// Pass 1: only "a" comes back.
	c.Snapshot("s1")
	c.MarkPrevious("MEMB.8", "a")
	c.Upsert("MEMB.8", 1, "m1", "s1", "a", cache.CommandReplace)
	assert.Equal(t, 3, c.Len())

	// Pass 2: "b" and the displaced version of "a" are dropped for good.
	assert.Equal(t, 2, c.Snapshot("s1"))
	assert.Equal(t, 1, c.Len())
	_, ok := c.LookupIndex("MEMB.8", "b")
	assert.False(t, ok)
	assert.Empty(t, c.Indices("MEMB.8"))

	// Positions of surviving records are still valid after removal.
	c.MarkPrevious("MEMB.8", "a")
	c.Upsert("MEMB.8", 1, "m1", "s1", "a", cache.CommandReplace)
	idx, ok := c.LookupIndex("MEMB.8", "a")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestSnapshot_ScopedToGroup(t *testing.T) {
	c := cache.NewCollection(cache.Options{})
	c.Upsert("MEMB.8", 1, "m1", "s1", "a", cache.CommandReplace)
	c.Upsert("MEMB.8", 2, "m2", "s2", "b", cache.CommandReplace)

	c.Snapshot("s1")

	assert.Equal(t, []int{1}, indicesOf(c.ExpiredData()))
	assert.Equal(t, []int{2}, indicesOf(c.LiveData()))
}

func TestSnapshot_EngineOwnedNodesAreKept(t *testing.T) {
	c := cache.NewCollection(cache.Options{})
	c.Upsert("NODE.3", 1, "n1", "s1", "", cache.CommandReplace)
	c.Upsert("NODE.3", 2, "n2", "s1", "gsa/generated", cache.CommandReplace)
	c.Upsert("NODE.3", 3, "n3", "s1", "node-3", cache.CommandReplace)

	c.Snapshot("s1")
	c.Snapshot("s1")

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []int{1, 2}, c.Indices("NODE.3"))
	assert.Empty(t, c.ExpiredData())
	assert.Empty(t, c.LiveData())
}

func TestSetCommands(t *testing.T) {
	c := cache.NewCollection(cache.Options{})
	c.Upsert("MEMB.8", 1, "MEMB.8\t1\tslab", "s1", "a", cache.CommandReplace)
	c.Upsert("LOAD_BEAM_UDL.2", 4, "LOAD_BEAM_UDL.2\tudl", "s1", "l", cache.CommandPositionalInsert)
	c.Upsert("MEMB.8", 2, "MEMB.8\t2\told", "s1", "b", cache.CommandReplace)
	c.MarkPrevious("MEMB.8", "b")

	assert.Equal(t, []string{
		"SET\tMEMB.8\t1\tslab",
		"SET_AT\t4\tLOAD_BEAM_UDL.2\tudl",
	}, c.SetCommands())
}

func TestSetCommands_RoundTrip(t *testing.T) {
	c := cache.NewCollection(cache.Options{})
	payloads := []string{"MEMB.8\t1\ta", "MEMB.8\t2\tb", "EL.4\t1\tc"}
	for i, p := range payloads {
		c.Upsert("X", i+1, p, "", "", cache.CommandReplace)
	}

	cmds := c.SetCommands()
	for _, p := range payloads {
		count := 0
		for _, cmd := range cmds {
			if cmd == "SET\t"+p {
				count++
			}
		}
		assert.Equal(t, 1, count, "payload %q", p)
	}
}

func TestPendingData(t *testing.T) {
	c := cache.NewCollection(cache.Options{})
	c.Upsert("MEMB.8", 1, "m1", "s1", "a", cache.CommandReplace)
	c.Upsert("MEMB.8", 2, "m2", "s1", "b", cache.CommandReplace)
	c.Upsert("MEMB.8", 9, "other", "s2", "z", cache.CommandReplace)

	// Before any snapshot everything current in the group is pending.
	assert.Equal(t, []int{1, 2}, indicesOf(c.PendingData("s1")))

	c.Snapshot("s1")
	assert.Empty(t, c.PendingData("s1"))

	// "a" comes back unchanged, "b" comes back modified, "c" is new.
	c.MarkPrevious("MEMB.8", "a")
	c.Upsert("MEMB.8", 1, "m1", "s1", "a", cache.CommandReplace)
	c.MarkPrevious("MEMB.8", "b")
	c.Upsert("MEMB.8", 2, "m2'", "s1", "b", cache.CommandReplace)
	c.Upsert("MEMB.8", 3, "m3", "s1", "c", cache.CommandReplace)

	pending := c.PendingData("s1")
	require.Len(t, pending, 2)
	assert.Equal(t, "m2'", pending[0].Payload)
	assert.Equal(t, "m3", pending[1].Payload)

	// Touched records were already in the model.
	c.Snapshot("s1")
	c.Touch("MEMB.8", "c")
	assert.Empty(t, c.PendingData("s1"))
}

func TestData_Command(t *testing.T) {
	replace := cache.Data{Namespace: "MEMB.8", Index: 1, Payload: "MEMB.8\t1", Kind: cache.CommandReplace}
	insert := cache.Data{Namespace: "LOAD_BEAM_UDL.2", Index: 2, Payload: "LOAD_BEAM_UDL.2", Kind: cache.CommandPositionalInsert}

	assert.Equal(t, "SET\tMEMB.8\t1", replace.Command(gwa.Default))
	assert.Equal(t, "SET_AT\t2\tLOAD_BEAM_UDL.2", insert.Command(gwa.Default))
}
