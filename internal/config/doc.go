// Package config loads, normalizes, and validates otctl configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// OT_ROBOT_URL and OT_RUN_ID. The Config type centralizes the robot endpoint,
// run pinning, local state paths, and logging knobs so the CLI discovers them
// in one pass.
package config
