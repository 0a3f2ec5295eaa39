package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"model-sync/core/gwa"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// BuildFunc populates a fresh session, typically by ingesting the model's records.
type BuildFunc func(ctx context.Context, s *Session) error

type entry struct {
	session *Session
	used    time.Time
}

// passLock serialises the passes of one group. It outlives the group's sessions.
type passLock struct {
	ch   chan struct{}
	refs int
}

// Registry holds the live sessions of a process keyed by group tag.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	passes   map[string]*passLock
	sf       singleflight.Group
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(cfg Config, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*entry),
		passes:   make(map[string]*passLock),
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

func (r *Registry) expired(e *entry) bool {
	ttl := r.cfg.TTL()
	if ttl == 0 {
		return true // No reuse
	}
	return r.now().Sub(e.used) > ttl
}

// Get returns the live session of group, if any.
func (r *Registry) Get(group string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[group]
	if !ok {
		return nil, false
	}
	if r.expired(e) {
		delete(r.sessions, group)
		return nil, false
	}
	e.used = r.now()
	return e.session, true
}

// GetOrCreate returns the live session of group, or builds one with build.
// Concurrent callers for the same group share a single build.
func (r *Registry) GetOrCreate(ctx context.Context, group string, build BuildFunc) (*Session, error) {
	if s, ok := r.Get(group); ok {
		return s, nil
	}

	result, err, _ := r.sf.Do(group, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		if s, ok := r.Get(group); ok {
			return s, nil
		}

		s := New(group, r.cfg, r.logger)
		if build != nil {
			if err := build(ctx, s); err != nil {
				return nil, err
			}
		}

		r.mu.Lock()
		r.sessions[group] = &entry{session: s, used: r.now()}
		r.mu.Unlock()

		r.logger.Debug("Session created", zap.String("group", group))
		return s, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Session), nil
}

// LockPass waits until no other pass of group is running and returns the function
// that ends this one. The lock is held across session invalidation, so a pass that
// discards its session still excludes the next pass until it unlocks.
func (r *Registry) LockPass(ctx context.Context, group string) (func(), error) {
	r.mu.Lock()
	pl, ok := r.passes[group]
	if !ok {
		pl = &passLock{ch: make(chan struct{}, 1)}
		r.passes[group] = pl
	}
	pl.refs++
	r.mu.Unlock()

	release := func() {
		r.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(r.passes, group)
		}
		r.mu.Unlock()
	}

	select {
	case pl.ch <- struct{}{}:
	case <-ctx.Done():
		release()
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-pl.ch
			release()
		})
	}, nil
}

// Invalidate drops the session of group.
func (r *Registry) Invalidate(group string) {
	r.mu.Lock()
	delete(r.sessions, group)
	r.mu.Unlock()
}

// Groups returns the group tags of live sessions, sorted.
func (r *Registry) Groups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.sessions))
	for g, e := range r.sessions {
		if !r.expired(e) {
			out = append(out, g)
		}
	}
	sort.Strings(out)
	return out
}

// Format returns the record format sessions of this registry use.
func (r *Registry) Format() gwa.Format {
	return r.cfg.Format()
}
