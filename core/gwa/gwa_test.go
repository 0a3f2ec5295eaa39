package gwa_test

import (
	"errors"
	"testing"

	"model-sync/core/gwa"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyword(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		base      string
		version   int
	}{
		{"Versioned", "MEMB.8", "MEMB", 8},
		{"Plain", "NODE", "NODE", 0},
		{"NonNumericSuffix", "LOAD_BEAM.x", "LOAD_BEAM.x", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, v := gwa.Keyword(tt.namespace)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.version, v)
		})
	}
}

func TestFormatSID(t *testing.T) {
	sid := gwa.FormatSID(
		gwa.Tag{Name: gwa.TagApplicationID, Value: "slab 01"},
		gwa.Tag{Name: gwa.TagStreamID, Value: "abc"},
		gwa.Tag{Name: "empty", Value: ""},
	)
	assert.Equal(t, "{speckle_app_id:slab01}{speckle_stream_id:abc}", sid)
}

func TestParseSID(t *testing.T) {
	t.Run("WithTags", func(t *testing.T) {
		head, tags := gwa.ParseSID("MEMB.8:{speckle_app_id:slab01}{speckle_stream_id:abc}")
		assert.Equal(t, "MEMB.8", head)
		assert.Equal(t, "slab01", tags[gwa.TagApplicationID])
		assert.Equal(t, "abc", tags[gwa.TagStreamID])
	})

	t.Run("WithoutTags", func(t *testing.T) {
		head, tags := gwa.ParseSID("NODE.3")
		assert.Equal(t, "NODE.3", head)
		assert.Nil(t, tags)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		field := gwa.AppendSID("EL.4", gwa.Tag{Name: gwa.TagApplicationID, Value: "beam-7"})
		head, tags := gwa.ParseSID(field)
		assert.Equal(t, "EL.4", head)
		assert.Equal(t, "beam-7", tags[gwa.TagApplicationID])
	})
}

func TestCommands(t *testing.T) {
	f := gwa.Default
	assert.Equal(t, "SET\tMEMB.8\t1\tslab", f.SetCommand("MEMB.8\t1\tslab"))
	assert.Equal(t, "SET_AT\t3\tLOAD_BEAM_UDL.2\tx", f.SetAtCommand(3, "LOAD_BEAM_UDL.2\tx"))
	assert.Equal(t, "BLANK\tMEMB\t4", f.BlankCommand("MEMB.8", 4))

	comma := gwa.Format{Delimiter: ","}
	assert.Equal(t, "SET,NODE.3,1", comma.SetCommand(comma.Join("NODE.3", "1")))
}

func TestParseRecord(t *testing.T) {
	f := gwa.Default

	t.Run("PlainLine", func(t *testing.T) {
		rec, err := f.ParseRecord("MEMB.8:{speckle_app_id:slab01}{speckle_stream_id:abc}\t4\tname\n")
		require.NoError(t, err)
		assert.Equal(t, "MEMB.8", rec.Namespace)
		assert.Equal(t, 4, rec.Index)
		assert.Equal(t, "slab01", rec.ApplicationID)
		assert.Equal(t, "abc", rec.StreamID)
		assert.False(t, rec.Positional)
		assert.Equal(t, "MEMB.8:{speckle_app_id:slab01}{speckle_stream_id:abc}\t4\tname", rec.Payload)
	})

	t.Run("SetVerb", func(t *testing.T) {
		rec, err := f.ParseRecord("SET\tNODE.3\t12\tnode\t0\t0\t0")
		require.NoError(t, err)
		assert.Equal(t, "NODE.3", rec.Namespace)
		assert.Equal(t, 12, rec.Index)
		assert.Equal(t, "NODE.3\t12\tnode\t0\t0\t0", rec.Payload)
	})

	t.Run("SetAtVerb", func(t *testing.T) {
		rec, err := f.ParseRecord("SET_AT\t2\tLOAD_BEAM_UDL.2:{speckle_app_id:l1}\tname")
		require.NoError(t, err)
		assert.True(t, rec.Positional)
		assert.Equal(t, 2, rec.Index)
		assert.Equal(t, "l1", rec.ApplicationID)
		assert.Equal(t, "LOAD_BEAM_UDL.2:{speckle_app_id:l1}\tname", rec.Payload)
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, line := range []string{"", "MEMB.8", "MEMB.8\tabc", "SET_AT\tx\tMEMB", "MEMB.8\t0"} {
			_, err := f.ParseRecord(line)
			assert.True(t, errors.Is(err, gwa.ErrMalformedRecord), "line %q", line)
		}
	})
}
