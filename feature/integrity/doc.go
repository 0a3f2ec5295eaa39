// Package integrity provides health checks for the infrastructure the sync feature
// depends on.
//
// # Checks Provided
//
//   - Storage: The script bucket exists (supports ?fix=true to create it) and which
//     stream prefixes it holds.
//   - History: The sync_passes table carries every column of the pass model.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Runs the storage check.
//   - GET /integrity/history : Runs the history schema check.
package integrity
