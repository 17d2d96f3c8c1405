// Package logging assembles structured slog loggers used across otctl.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so robot calls are tagged with
// run identifiers, command types, and correlation IDs. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
