package sync

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"model-sync/core/gwa"
	"model-sync/core/session"
	"model-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Source yields the record lines the model currently holds.
type Source interface {
	Lines(ctx context.Context) ([]string, error)
}

// ReaderSource reads record lines from an io.Reader, one per line.
type ReaderSource struct {
	R io.Reader
}

// Lines implements Source.
func (s ReaderSource) Lines(ctx context.Context) ([]string, error) {
	return readLines(ctx, s.R)
}

// StorageSource reads record lines from an object in a bucket.
// A missing object reads as an empty model.
type StorageSource struct {
	Client storage.Client
	Bucket string
	Key    string
}

// Lines implements Source.
func (s StorageSource) Lines(ctx context.Context) ([]string, error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, s.Key, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.Key, err)
	}
	defer obj.Close()

	lines, err := readLines(ctx, obj)
	if err != nil && isNoSuchKey(err) {
		return nil, nil
	}
	return lines, err
}

func isNoSuchKey(err error) bool {
	var resp minio.ErrorResponse
	return errors.As(err, &resp) && resp.Code == "NoSuchKey"
}

func readLines(ctx context.Context, r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var lines []string
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read record lines: %w", err)
	}
	return lines, nil
}

// ingest stores every parsable line in the session and returns how many were
// stored and skipped.
func ingest(sess *session.Session, lines []string, logger *zap.Logger) (stored, skipped int) {
	f := sess.Format()
	for _, line := range lines {
		rec, err := f.ParseRecord(line)
		if err != nil {
			if errors.Is(err, gwa.ErrMalformedRecord) {
				logger.Debug("Skipping record line", zap.Error(err))
			}
			skipped++
			continue
		}
		if !sess.Ingest(rec) {
			skipped++
			continue
		}
		stored++
	}
	return stored, skipped
}
