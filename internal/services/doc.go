// Package services defines shared utilities consumed by the command builders
// and the robot HTTP integration.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, command types, and
//     correlation identifiers for logging and the command journal.
//   - Structured error markers plus the Wrap helper that separate rejected
//     calls (precondition violations) from robot-side failures.
//
// Use these helpers when adding new robot actions so error handling and
// observability stay uniform across builders.
package services
