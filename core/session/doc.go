// Package session owns the record cache for one synchronisation context.
//
// A Session pairs a cache.Collection with a cache.Allocator behind one mutex, so
// converters running in parallel can resolve indices and place records without
// stepping on each other. A session is created per group tag (stream), lives for as
// long as that stream is being synchronised, and is discarded and rebuilt when a pass
// fails.
//
// # Registry
//
// Registry keeps the live sessions of a process keyed by group tag. Sessions are built
// once per key (concurrent callers share the build through singleflight) and dropped
// once their TTL has elapsed since the last use. LockPass serialises whole passes of
// one group; its lock is kept while a failed pass invalidates the session.
//
// # Usage
//
//	s := session.New("stream-1", cfg, logger)
//	s.Ingest(existing, cache.CommandReplace)   // records already in the model
//	s.Snapshot()
//	idx, _ := s.Place("MEMB.8", "slab-01", cache.CommandReplace, render)
//	expired := s.ExpiredData()
package session
