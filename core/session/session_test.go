package session

import (
	"fmt"
	"testing"

	"model-sync/core/cache"
	"model-sync/core/gwa"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func testConfig() Config {
	return Config{Delimiter: "\t", NodeKeywords: "NODE", InternalPrefix: "gsa", TTLSeconds: 60}
}

func TestSession_SlabScenario(t *testing.T) {
	s := New("stream-1", testConfig(), zap.NewNop())

	require.True(t, s.Upsert("MEMB", 1, "MEMB\t1\tSlab0", "Slab0", cache.CommandReplace))

	assert.Equal(t, 2, s.Resolve("MEMB", "Slab1"))
	assert.Equal(t, 3, s.Resolve("MEMB", "Slab2"))
	assert.Equal(t, 4, s.Resolve("MEMB", "Slab3"))

	require.True(t, s.Upsert("MEMB", 5, "MEMB\t5\tSlab4", "Slab4", cache.CommandReplace))
	assert.Equal(t, 2, s.KeyCount("MEMB"))

	// Confirming a provisional index does not add a fourth key.
	require.True(t, s.Upsert("MEMB", 2, "MEMB\t2\tSlab1", "Slab1", cache.CommandReplace))
	assert.Equal(t, 3, s.KeyCount("MEMB"))

	assert.Equal(t, 6, s.Resolve("MEMB", ""))
}

func TestSession_ReconfirmationKeepsCount(t *testing.T) {
	s := New("stream-1", testConfig(), nil)

	render := func(idx int) string { return fmt.Sprintf("MEMB.8\t%d\tE3", idx) }
	first, ok := s.Place("MEMB.8", "E3", cache.CommandReplace, render)
	require.True(t, ok)

	second, ok := s.Place("MEMB.8", "E3", cache.CommandReplace, render)
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.KeyCount("MEMB.8"))
	assert.Equal(t, []string{"SET\tMEMB.8\t1\tE3"}, s.SetCommands())
}

func TestSession_IngestReservesModelIndices(t *testing.T) {
	s := New("stream-1", testConfig(), nil)
	f := s.Format()

	for _, line := range []string{
		"MEMB.8:{speckle_app_id:a}{speckle_stream_id:stream-1}\t1\tx",
		"MEMB.8\t2\tunmanaged",
		"SET_AT\t1\tLOAD_BEAM_UDL.2:{speckle_app_id:l}{speckle_stream_id:stream-1}\tudl",
	} {
		rec, err := f.ParseRecord(line)
		require.NoError(t, err)
		assert.True(t, s.Ingest(rec))
	}

	assert.False(t, s.Ingest(gwa.Record{Namespace: "MEMB.8"}))

	// "a" keeps index 1 and index 2 belongs to the model.
	assert.Equal(t, 1, s.Resolve("MEMB.8", "a"))
	assert.Equal(t, 3, s.Resolve("MEMB.8", "b"))

	assert.Contains(t, s.SetCommands(), "SET_AT\t1\tLOAD_BEAM_UDL.2:{speckle_app_id:l}{speckle_stream_id:stream-1}\tudl")
}

func TestSession_PassLifecycle(t *testing.T) {
	s := New("stream-1", testConfig(), nil)
	f := s.Format()

	for _, line := range []string{
		"MEMB.8:{speckle_app_id:a}{speckle_stream_id:stream-1}\t1\ta",
		"MEMB.8:{speckle_app_id:b}{speckle_stream_id:stream-1}\t2\tb",
		"MEMB.8:{speckle_app_id:c}{speckle_stream_id:stream-1}\t3\tc",
	} {
		rec, err := f.ParseRecord(line)
		require.NoError(t, err)
		s.Ingest(rec)
	}

	assert.Equal(t, 0, s.Snapshot())

	// Only "b" is still in the stream.
	assert.True(t, s.Touch("MEMB.8", "b"))

	expired := s.ExpiredData()
	require.Len(t, expired, 2)
	assert.Equal(t, 3, expired[0].Index)
	assert.Equal(t, 1, expired[1].Index)

	live := s.LiveData()
	require.Len(t, live, 1)
	assert.Equal(t, 2, live[0].Index)

	// Next pass removes the expired records for good.
	assert.Equal(t, 2, s.Snapshot())
	s.Read(func(c *cache.Collection) {
		assert.Equal(t, 1, c.Len())
	})
}

func TestSession_Allocation(t *testing.T) {
	s := New("stream-1", testConfig(), nil)
	s.Reserve("EL", 4, 2)
	s.Resolve("EL", "x")
	s.Resolve("EL", "y")

	reserved, highest := s.Allocation("EL")
	assert.Equal(t, []int{2, 4}, reserved)
	assert.Equal(t, 4, highest)

	s.Resolve("EL", "z")
	_, highest = s.Allocation("EL")
	assert.Equal(t, 5, highest)

	reserved, highest = s.Allocation("MEMB")
	assert.Empty(t, reserved)
	assert.Equal(t, 0, highest)
}

func TestSession_AssignObjectAndExternalID(t *testing.T) {
	s := New("stream-1", testConfig(), nil)
	require.True(t, s.Upsert("EL.4", 7, "EL.4\t7", "", cache.CommandReplace))

	assert.False(t, s.AssignObject("EL.4", "beam", testObject{}))
	assert.True(t, s.AssignExternalID("EL.4", 7, "beam"))
	assert.True(t, s.AssignObject("EL.4", "beam", testObject{}))
	assert.Equal(t, 7, s.Resolve("EL.4", "beam"))

	s.Read(func(c *cache.Collection) {
		assert.True(t, c.ContainsKind("Structural.Element1D"))
	})
}

func TestSession_ConcurrentPlacement(t *testing.T) {
	s := New("stream-1", testConfig(), nil)

	var g errgroup.Group
	for w := 0; w < 4; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < 50; i++ {
				id := fmt.Sprintf("w%d-%d", w, i)
				if _, ok := s.Place("MEMB.8", id, cache.CommandReplace, func(idx int) string {
					return fmt.Sprintf("MEMB.8\t%d\t%s", idx, id)
				}); !ok {
					return fmt.Errorf("place %s failed", id)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 200, s.KeyCount("MEMB.8"))
	s.Read(func(c *cache.Collection) {
		indices := c.Indices("MEMB.8")
		assert.Len(t, indices, 200)
		assert.Equal(t, 1, indices[0])
		assert.Equal(t, 200, indices[len(indices)-1])
	})
}

func TestSession_Discard(t *testing.T) {
	s := New("stream-1", testConfig(), nil)
	s.Upsert("MEMB.8", 4, "x", "a", cache.CommandReplace)
	s.Discard()

	assert.Empty(t, s.SetCommands())
	assert.Equal(t, 1, s.Resolve("MEMB.8", "a"))
}

type testObject struct{}

func (testObject) ObjectKind() string { return "Structural.Element1D" }
