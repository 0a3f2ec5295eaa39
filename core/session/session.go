package session

import (
	"strings"
	"sync"
	"time"

	"model-sync/core/cache"
	"model-sync/core/gwa"

	"go.uber.org/zap"
)

// Session is the record cache of one group tag.
type Session struct {
	mu      sync.Mutex
	group   string
	cfg     Config
	records *cache.Collection
	alloc   *cache.Allocator
	logger  *zap.Logger
	created time.Time
}

// New creates an empty session for group. A nil logger disables logging.
func New(group string, cfg Config, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		group:   group,
		cfg:     cfg,
		records: cache.NewCollection(cfg.CacheOptions()),
		alloc:   cache.NewAllocator(),
		logger:  logger.With(zap.String("group", group)),
		created: time.Now(),
	}
}

// Group returns the group tag this session synchronises.
func (s *Session) Group() string {
	return s.group
}

// Format returns the record format of this session.
func (s *Session) Format() gwa.Format {
	return s.cfg.Format()
}

// Ingest stores a record read from the model. Its index is reserved, and remembered
// for its application id, so it is never handed to another object.
func (s *Session) Ingest(rec gwa.Record) bool {
	kind := cache.CommandReplace
	if rec.Positional {
		kind = cache.CommandPositionalInsert
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.records.Upsert(rec.Namespace, rec.Index, rec.Payload, rec.StreamID, rec.ApplicationID, kind) {
		s.logger.Debug("Skipping record without namespace or index", zap.String("payload", rec.Payload))
		return false
	}
	s.alloc.ReserveAndMap(rec.Namespace, []int{rec.Index}, []string{rec.ApplicationID})
	return true
}

// Resolve returns the native index for externalID, allocating one if needed.
func (s *Session) Resolve(namespace, externalID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alloc.Resolve(namespace, externalID)
}

// Reserve keeps indices of namespace from being allocated.
func (s *Session) Reserve(namespace string, indices ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alloc.Reserve(namespace, indices...)
}

// Upsert stores a new current version at (namespace, index) for this session's group,
// displacing earlier versions of externalID. The index is reserved and remembered for
// externalID.
func (s *Session) Upsert(namespace string, index int, payload, externalID string, kind cache.CommandKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsert(namespace, index, payload, externalID, kind)
}

func (s *Session) upsert(namespace string, index int, payload, externalID string, kind cache.CommandKind) bool {
	externalID = strings.TrimSpace(externalID)
	if externalID != "" {
		s.records.MarkPrevious(namespace, externalID)
	}
	if !s.records.Upsert(namespace, index, payload, s.group, externalID, kind) {
		return false
	}
	s.alloc.ReserveAndMap(namespace, []int{index}, []string{externalID})
	return true
}

// Place resolves the index of externalID, renders the record for it and stores it as
// the current version. It returns the index used.
func (s *Session) Place(namespace, externalID string, kind cache.CommandKind, render func(index int) string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.alloc.Resolve(namespace, externalID)
	if !s.upsert(namespace, idx, render(idx), externalID, kind) {
		return 0, false
	}
	return idx, true
}

// Touch reconfirms externalID unchanged in this pass.
func (s *Session) Touch(namespace, externalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.Touch(namespace, externalID)
}

// AssignExternalID gives the record at (namespace, index) an external id.
func (s *Session) AssignExternalID(namespace string, index int, externalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.records.AssignExternalID(namespace, index, externalID) {
		return false
	}
	s.alloc.ReserveAndMap(namespace, []int{index}, []string{externalID})
	return true
}

// AssignObject attaches a converted object to the records of externalID in this group.
func (s *Session) AssignObject(namespace, externalID string, obj cache.Object) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.AssignObject(namespace, externalID, obj, s.group)
}

// Snapshot starts a new pass: the previous pass's records are displaced and those
// displaced before are removed.
func (s *Session) Snapshot() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.records.Snapshot(s.group)
	s.logger.Debug("Snapshot taken", zap.Int("removed", removed), zap.Int("records", s.records.Len()))
	return removed
}

// Discard drops every record and allocation.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records.Clear()
	s.alloc = cache.NewAllocator()
}

// Allocation returns the reserved indices of namespace in ascending order and the
// highest index reserved or handed out.
func (s *Session) Allocation(namespace string) ([]int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alloc.Reserved(namespace), s.alloc.Highest(namespace)
}

// ExpiredData returns every displaced record of the model, by namespace and then
// highest index first.
func (s *Session) ExpiredData() []cache.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.ExpiredData()
}

// LiveData returns every current alterable record.
func (s *Session) LiveData() []cache.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.LiveData()
}

// SetCommands returns the SET and SET_AT commands of every current record.
func (s *Session) SetCommands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.SetCommands()
}

// KeyCount returns the number of distinct external ids with a current record.
func (s *Session) KeyCount(namespace string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.KeyCount(namespace)
}

// Read runs fn with the collection locked. fn must not retain the collection.
func (s *Session) Read(fn func(c *cache.Collection)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.records)
}

// PendingData returns the records of this group written since the last snapshot that
// differ from what the model already holds.
func (s *Session) PendingData() []cache.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.PendingData(s.group)
}

// CurrentData returns every current record in insertion order.
func (s *Session) CurrentData() []cache.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.CurrentData()
}
