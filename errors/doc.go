// Package errors defines the coded error types used across the Courtly
// server: provider failures, persistence failures, unsupported export
// formats, and request validation errors, each carrying an HTTP status
// for the transport layer.
package errors
