// Package journal persists a local record of every command otctl sends to the
// robot.
//
// The journal is a single SQLite database under the configured state
// directory. Each entry captures the run, command type, marshaled parameters,
// the robot-assigned command id and status, the correlation id stamped on the
// request, and the outcome classification. The robot remains the source of
// truth for run state; the journal exists so operators can audit what a
// session sent after the fact.
package journal
