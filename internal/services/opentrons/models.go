package opentrons

import (
	"encoding/json"
	"time"
)

// Intent classifies a command on the robot side.
type Intent string

// IntentSetup marks commands issued outside a protocol file.
const IntentSetup Intent = "setup"

// Command is the robot's view of an enqueued command.
type Command struct {
	ID          string          `json:"id"`
	Key         string          `json:"key,omitempty"`
	CommandType string          `json:"commandType"`
	Status      string          `json:"status"`
	Intent      Intent          `json:"intent,omitempty"`
	Params      json.RawMessage `json:"params,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       *CommandError   `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

// CommandError is populated when the robot failed to execute a command.
type CommandError struct {
	ID        string `json:"id,omitempty"`
	ErrorType string `json:"errorType"`
	Detail    string `json:"detail"`
}

// DecodeResult unmarshals the command result payload into out.
func (c *Command) DecodeResult(out any) error {
	if c == nil || len(c.Result) == 0 {
		return nil
	}
	return json.Unmarshal(c.Result, out)
}

// Command statuses reported by the robot.
const (
	CommandSucceeded = "succeeded"
	CommandFailed    = "failed"
)

// Run is a server-side execution context accumulating commands.
type Run struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Current   bool      `json:"current"`
	CreatedAt time.Time `json:"createdAt"`
	Actions   []struct {
		ID         string `json:"id"`
		ActionType string `json:"actionType"`
	} `json:"actions,omitempty"`
}

// Run actions accepted by RunAction.
const (
	ActionPlay  = "play"
	ActionPause = "pause"
	ActionStop  = "stop"
)

// PipetteInfo describes the instrument on one mount. Name is nil when the
// mount is empty.
type PipetteInfo struct {
	Name        *string `json:"name"`
	Model       *string `json:"model"`
	ID          *string `json:"id"`
	MountAxis   string  `json:"mount_axis"`
	PlungerAxis string  `json:"plunger_axis"`
}

// MountedPipettes is the GET /pipettes payload.
type MountedPipettes struct {
	Left  PipetteInfo `json:"left"`
	Right PipetteInfo `json:"right"`
}

// Module describes an attached hardware module.
type Module struct {
	ID                 string          `json:"id"`
	SerialNumber       string          `json:"serialNumber"`
	ModuleModel        string          `json:"moduleModel"`
	ModuleType         string          `json:"moduleType"`
	FirmwareVersion    string          `json:"firmwareVersion"`
	HardwareRevision   string          `json:"hardwareRevision"`
	HasAvailableUpdate bool            `json:"hasAvailableUpdate"`
	Data               json.RawMessage `json:"data,omitempty"`
}

// Health is the GET /health payload subset we surface.
type Health struct {
	Name                      string `json:"name"`
	APIVersion                string `json:"api_version"`
	FirmwareVersion           string `json:"fw_version"`
	RobotModel                string `json:"robot_model"`
	RobotSerial               string `json:"robot_serial"`
	SystemVersion             string `json:"system_version"`
	MinimumProtocolAPIVersion []int  `json:"minimum_protocol_api_version"`
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

type runsResponse struct {
	Data  []Run `json:"data"`
	Links struct {
		Current *struct {
			Href string `json:"href"`
		} `json:"current"`
	} `json:"links"`
}

type commandRequest struct {
	CommandType string `json:"commandType"`
	Params      any    `json:"params"`
	Intent      Intent `json:"intent"`
}
