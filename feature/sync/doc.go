// Package sync runs synchronisation passes between a stream and an engine model.
//
// A pass loads the records the model already holds (Source), snapshots the previous
// pass, places every desired object at a stable native index, and turns the result
// into BLANK, SET and SET_AT commands that a Bridge delivers. ScriptBridge writes them
// to a replayable script, which can be archived in object storage.
//
// # Components
//
//   - Service: Runs passes on the sessions of a session.Registry.
//   - History: Persists pass summaries in the sync_passes table.
//   - Handler: Fiber routes under /sync/:stream.
//   - Feature: Mounts the handler through core/loader.
package sync
