// Package logger provides structured logging for the Courtly server,
// backed by zerolog. A global logger is initialized from configuration
// at startup; components obtain tagged child loggers via Get or
// WithComponent.
package logger
