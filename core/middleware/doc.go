// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: Authenticates callers by HS256 bearer token or static API key and
//     records the acting user, which sync jobs stamp on created and updated farmers.
//   - rayid: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
package middleware
