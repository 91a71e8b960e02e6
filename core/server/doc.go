// Package server holds the HTTP server configuration and constants.
//
// The main application entry point handles the server startup; this package only
// defines the configuration structure (port, body limit, environment) and the set of
// recognised deployment environments.
package server
