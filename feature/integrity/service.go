package integrity

import (
	"context"

	"model-sync/core/storage"
	"model-sync/feature/integrity/checks"
	"model-sync/feature/sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service. client and db may be nil.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
	}
}

// CheckStorage reports on the script bucket, creating it when fix is set.
func (s *Service) CheckStorage(ctx context.Context, fix bool) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, errStorageDisabled
	}
	return checks.CheckStorage(ctx, s.client, s.bucket, s.logger, fix)
}

// CheckHistory reports on the sync_passes table schema.
func (s *Service) CheckHistory() (*checks.HistoryReport, error) {
	return checks.CheckHistory(s.db, &sync.PassRecord{})
}
