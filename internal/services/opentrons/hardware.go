package opentrons

import (
	"context"
	"net/http"
)

// Health reports robot identity and software versions.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var resp Health
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Pipettes returns the instruments currently attached to each mount.
func (c *Client) Pipettes(ctx context.Context) (*MountedPipettes, error) {
	var resp MountedPipettes
	if err := c.doJSON(ctx, http.MethodGet, "/pipettes", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Modules returns the hardware modules attached to the robot.
func (c *Client) Modules(ctx context.Context) ([]Module, error) {
	var resp dataEnvelope[[]Module]
	if err := c.doJSON(ctx, http.MethodGet, "/modules", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
