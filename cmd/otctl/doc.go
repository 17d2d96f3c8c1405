// Package main hosts the otctl CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into robot
// commands: run lifecycle actions, pipette and labware setup, heater-shaker
// and temperature module control, and the two liquid transfer sequences. It
// centralizes configuration resolution, robot client construction, the
// session lock, and structured logging setup so subcommands only parse flags
// and render results.
//
// Keep this package lean: new robot actions belong in internal/commands first
// and are surfaced here through a dedicated subcommand.
package main
