// Package utils provides common utility functions for the registry.
// It includes type conversion for loosely typed client payloads (GPS values may
// arrive as numbers or strings from offline devices) and small pointer helpers for
// optional fields.
package utils
