package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"gorm.io/gorm"
)

// PassRecord is a persisted summary of one sync pass.
type PassRecord struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Stream    string    `gorm:"size:191;index" json:"stream"`
	CreatedAt time.Time `json:"created_at"`
	DryRun    bool      `json:"dry_run"`
	Full      bool      `json:"full"`
	Ingested  int       `json:"ingested"`
	Placed    int       `json:"placed"`
	Live      int       `json:"live"`
	Expired   int       `json:"expired"`
	Blanks    int       `json:"blanks"`
	Sets      int       `json:"sets"`
	Executed  int       `json:"executed"`
	ScriptKey string    `gorm:"size:255" json:"script_key,omitempty"`
	// Commands holds the msgpack-encoded command list.
	Commands []byte `json:"-"`
}

// TableName overrides the table name used by PassRecord.
func (PassRecord) TableName() string {
	return "sync_passes"
}

// History stores pass summaries in the database.
type History struct {
	db *gorm.DB
}

// NewHistory creates a history store on db.
func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

// Migrate creates or updates the sync_passes table.
func (h *History) Migrate() error {
	if err := h.db.AutoMigrate(&PassRecord{}); err != nil {
		return fmt.Errorf("failed to migrate sync_passes: %w", err)
	}
	return nil
}

// Record persists the outcome of a pass.
func (h *History) Record(ctx context.Context, res *PassResult, opts PassOptions) error {
	var commands []string
	if res.Plan != nil {
		for _, a := range res.Plan.Actions {
			commands = append(commands, a.Command)
		}
	}
	blob, err := msgpack.Marshal(commands)
	if err != nil {
		return fmt.Errorf("failed to encode commands: %w", err)
	}

	rec := PassRecord{
		ID:        res.ID,
		Stream:    res.Stream,
		DryRun:    opts.DryRun,
		Full:      opts.Full,
		Ingested:  res.Ingested,
		Placed:    res.Placed,
		Executed:  res.Executed,
		ScriptKey: res.ScriptKey,
		Commands:  blob,
	}
	if res.Plan != nil {
		rec.Live = res.Plan.Summary.Live
		rec.Expired = res.Plan.Summary.Expired
		rec.Blanks = res.Plan.Summary.BlankActions
		rec.Sets = res.Plan.Summary.SetActions
	}

	if err := h.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to record pass %s: %w", res.ID, err)
	}
	return nil
}

// List returns the most recent passes of stream, newest first.
func (h *History) List(ctx context.Context, stream string, limit int) ([]PassRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []PassRecord
	err := h.db.WithContext(ctx).
		Where("stream = ?", stream).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list passes of %s: %w", stream, err)
	}
	return out, nil
}

// DecodeCommands returns the commands stored with a pass.
func DecodeCommands(rec PassRecord) ([]string, error) {
	if len(rec.Commands) == 0 {
		return nil, nil
	}
	var out []string
	if err := msgpack.Unmarshal(rec.Commands, &out); err != nil {
		return nil, fmt.Errorf("failed to decode commands of pass %s: %w", rec.ID, err)
	}
	return out, nil
}
