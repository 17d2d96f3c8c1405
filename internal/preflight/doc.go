// Package preflight provides readiness checks for the robot and the local
// state directory otctl depends on.
//
// The CLI "otctl status" command runs RunAll and renders each Result, and
// ProbeRobot produces the richer robot summary shown alongside them.
package preflight
