// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber app from these settings: listen port, the API
// key required by the auth middleware, the request body limit for uploaded record
// lists and the graceful shutdown timeout.
package server
