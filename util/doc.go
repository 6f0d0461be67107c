// Package util holds small shared helpers: content digests, filename
// sanitization, and pointer utilities.
package util
