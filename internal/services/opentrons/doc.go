// Package opentrons provides the HTTP client for the robot's automation API.
//
// It creates and inspects runs, resolves the robot's current run, enqueues
// commands against a run, and queries mounted pipettes, attached modules, and
// server health. Every request carries the Opentrons-Version header. Non-2xx
// replies surface as *APIError tagged with services.ErrRemote; transport
// failures are tagged with services.ErrTransient. Nothing here retries.
package opentrons
