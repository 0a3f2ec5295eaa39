package sync

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"model-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReaderSource(t *testing.T) {
	src := ReaderSource{R: strings.NewReader("SET\tNODE\t1\r\n\n  \nNODE\t2\n")}

	lines, err := src.Lines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"SET\tNODE\t1", "NODE\t2"}, lines)
}

func TestReaderSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReaderSource{R: strings.NewReader("NODE\t1\n")}.Lines(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStorageSource(t *testing.T) {
	m := new(mocks.Client)
	m.On("GetObject", mock.Anything, "b", "s/model.gwa", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("NODE\t1\t0\n"))), nil)

	lines, err := StorageSource{Client: m, Bucket: "b", Key: "s/model.gwa"}.Lines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"NODE\t1\t0"}, lines)
}

func TestStorageSource_Missing(t *testing.T) {
	m := new(mocks.Client)
	m.On("GetObject", mock.Anything, "b", "s/model.gwa", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

	lines, err := StorageSource{Client: m, Bucket: "b", Key: "s/model.gwa"}.Lines(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, lines)
}

func TestScriptBridge(t *testing.T) {
	var buf bytes.Buffer
	b := NewScriptBridge(&buf)
	ctx := context.Background()

	_, err := b.Execute(ctx, "BLANK\tNODE\t2")
	require.NoError(t, err)
	require.NoError(t, b.ExecuteBatch(ctx, []string{"SET\tA", "SET\tB"}))
	require.NoError(t, b.ExecuteBatch(ctx, nil))

	assert.Equal(t, "BLANK\tNODE\t2\nSET\tA\nSET\tB\n", buf.String())
	assert.Equal(t, 3, b.Count())
}
