// Package config loads and validates the Courtly server configuration
// from config.yml, .env files, and the process environment via viper.
//
// Backend capability flags (whisper.cpp binary path, Deepgram API key)
// are presence-only: they select a transcription provider but are never
// validated for correctness at startup.
package config
