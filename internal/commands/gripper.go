package commands

import (
	"context"

	"otctl/internal/services/opentrons"
)

// The robot accepts home axes either as a single name or as a list; both
// forms are used below.

// HomeExtensionJaw homes the gripper jaw.
func (d *Dispatcher) HomeExtensionJaw(ctx context.Context, runID string) (*opentrons.Command, error) {
	return d.withRunContext(ctx, "home", map[string]any{"axes": "extensionJaw"}, runID)
}

// HomeExtensionZ homes the gripper Z axis.
func (d *Dispatcher) HomeExtensionZ(ctx context.Context, runID string) (*opentrons.Command, error) {
	return d.withRunContext(ctx, "home", map[string]any{"axes": "extensionZ"}, runID)
}

// HomeGripper homes the gripper.
func (d *Dispatcher) HomeGripper(ctx context.Context, runID string) (*opentrons.Command, error) {
	return d.withRunContext(ctx, "home", map[string]any{"axes": []string{"extensionJaw"}}, runID)
}
