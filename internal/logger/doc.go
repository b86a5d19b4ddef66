// Package logger wraps zap with a process-wide sugared logger that writes to
// stderr, so report output on stdout stays clean, plus helpers that carry a
// named logger through a context.
package logger
