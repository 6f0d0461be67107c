// Package provider implements a small generic provider abstraction:
// named factories in a Registry, cached instances, and a Selector that
// picks one provider by fixed priority. The transcription package builds
// its backend selection on top of it.
package provider
