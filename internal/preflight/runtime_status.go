package preflight

import (
	"context"
	"fmt"
	"strings"

	"otctl/internal/services/opentrons"
)

// InstrumentQuerier reads attached pipettes and modules.
type InstrumentQuerier interface {
	HealthChecker
	Pipettes(ctx context.Context) (*opentrons.MountedPipettes, error)
	Modules(ctx context.Context) ([]opentrons.Module, error)
}

// RobotProbe is a snapshot of robot identity and attached hardware.
type RobotProbe struct {
	Reachable  bool     `json:"reachable"`
	Name       string   `json:"name,omitempty"`
	Model      string   `json:"model,omitempty"`
	APIVersion string   `json:"api_version,omitempty"`
	Left       string   `json:"left,omitempty"`
	Right      string   `json:"right,omitempty"`
	Modules    []string `json:"modules,omitempty"`
}

// ProbeRobot collects a RobotProbe. Instrument and module lookups are best
// effort once health succeeds.
func ProbeRobot(ctx context.Context, robot InstrumentQuerier) RobotProbe {
	if robot == nil {
		return RobotProbe{}
	}
	checkCtx, cancel := context.WithTimeout(ctx, robotCheckTimeout)
	defer cancel()

	health, err := robot.Health(checkCtx)
	if err != nil {
		return RobotProbe{}
	}
	probe := RobotProbe{
		Reachable:  true,
		Name:       health.Name,
		Model:      health.RobotModel,
		APIVersion: health.APIVersion,
	}
	if pipettes, err := robot.Pipettes(checkCtx); err == nil && pipettes != nil {
		probe.Left = instrumentName(pipettes.Left)
		probe.Right = instrumentName(pipettes.Right)
	}
	if modules, err := robot.Modules(checkCtx); err == nil {
		for _, m := range modules {
			probe.Modules = append(probe.Modules, fmt.Sprintf("%s (%s)", m.ModuleModel, m.ID))
		}
	}
	return probe
}

func instrumentName(info opentrons.PipetteInfo) string {
	if info.Name == nil {
		return ""
	}
	return strings.TrimSpace(*info.Name)
}

// MountDetail renders a display-friendly summary of one mount.
func MountDetail(name string) string {
	if name == "" {
		return "empty"
	}
	return name
}

// RobotDetail renders a display-friendly summary for status UIs.
func (p RobotProbe) RobotDetail() string {
	if !p.Reachable {
		return "Robot unreachable"
	}
	model := p.Model
	if model == "" {
		model = "robot"
	}
	return fmt.Sprintf("%s '%s' (api %s)", model, p.Name, p.APIVersion)
}
