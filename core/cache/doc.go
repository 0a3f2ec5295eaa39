// Package cache holds the record cache and index allocator that sit between the model
// engine and the stream service.
//
// # Collection
//
// Collection is an append-only arena of record versions. Five secondary indices map
// namespace, (namespace, native index), external id, group tag and attached object kind
// to arena positions. Removing a record nulls its slot and strips its position from the
// indices; positions are never reused or shifted.
//
// A synchronisation pass for one group looks like:
//
//	col.Snapshot(stream)                     // demote what the previous pass left current
//	col.MarkPrevious(ns, id)                 // for every object received again
//	col.Upsert(ns, index, payload, stream, id, cache.CommandReplace)
//	expired := col.ExpiredData()             // displaced versions, highest index first
//	cmds := col.SetCommands()                // then issue these
//
// # Allocator
//
// Allocator hands out native indices per namespace. Indices already present in the
// model are reserved and never handed out; external ids keep the index they were first
// given. SetBaseline and ResetToBaseline bracket a tentative pass so it can be undone.
//
// Neither type is safe for concurrent use. See package session for the owned,
// mutex-guarded pairing of both.
package cache
