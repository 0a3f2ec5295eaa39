package checks

import (
	"context"
	"fmt"
	"strings"

	"model-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// StorageReport describes the script bucket.
type StorageReport struct {
	Bucket  string `json:"bucket"`
	Exists  bool   `json:"exists"`
	Created bool   `json:"created"`
	// Streams lists the top-level stream prefixes holding models or scripts.
	Streams []string `json:"streams"`
}

// CheckStorage inspects the bucket. With fix set, a missing bucket is created.
func CheckStorage(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, fix bool) (*StorageReport, error) {
	report := &StorageReport{Bucket: bucket, Streams: []string{}}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.Exists = exists

	if !exists {
		if !fix {
			return report, nil
		}
		if err := storage.EnsureBucket(ctx, client, bucket); err != nil {
			return nil, err
		}
		logger.Info("Created missing bucket", zap.String("bucket", bucket))
		report.Exists = true
		report.Created = true
		return report, nil
	}

	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: false}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list bucket %s: %w", bucket, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			report.Streams = append(report.Streams, strings.TrimSuffix(obj.Key, "/"))
		}
	}
	return report, nil
}
