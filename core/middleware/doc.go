// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query parameter).
//   - rayid: Assigns each request a RayID, stored in locals and echoed in the
//     X-Ray-ID response header, so log lines of one request can be correlated.
package middleware
