package opentrons

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"otctl/internal/logging"
	"otctl/internal/services"
)

// CreateRun starts an empty run on the robot.
func (c *Client) CreateRun(ctx context.Context) (*Run, error) {
	body := dataEnvelope[map[string]any]{Data: map[string]any{}}
	var resp dataEnvelope[Run]
	if err := c.doJSON(ctx, http.MethodPost, "/runs", nil, body, &resp); err != nil {
		return nil, err
	}
	c.logger.Info("run created", logging.RunID(resp.Data.ID))
	return &resp.Data, nil
}

// ListRuns returns every run the robot knows about together with the id of
// the current run, if any.
func (c *Client) ListRuns(ctx context.Context) ([]Run, string, error) {
	var resp runsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/runs", nil, nil, &resp); err != nil {
		return nil, "", err
	}
	current := ""
	if resp.Links.Current != nil {
		current = path.Base(strings.TrimRight(resp.Links.Current.Href, "/"))
	}
	if current == "" {
		for _, run := range resp.Data {
			if run.Current {
				current = run.ID
				break
			}
		}
	}
	return resp.Data, current, nil
}

// GetRun fetches a single run.
func (c *Client) GetRun(ctx context.Context, runID string) (*Run, error) {
	if strings.TrimSpace(runID) == "" {
		return nil, services.Invalid("opentrons", "get run", "run id required")
	}
	var resp dataEnvelope[Run]
	if err := c.doJSON(ctx, http.MethodGet, "/runs/"+url.PathEscape(runID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CurrentRunID resolves the robot's current run. When the robot has none the
// call fails with services.ErrNotFound, unless the client was built with
// WithCreateRunIfMissing.
func (c *Client) CurrentRunID(ctx context.Context) (string, error) {
	_, current, err := c.ListRuns(ctx)
	if err != nil {
		return "", fmt.Errorf("list runs: %w", err)
	}
	if current != "" {
		return current, nil
	}
	if !c.createRun {
		return "", services.Wrap(services.ErrNotFound, "opentrons", "resolve run", "robot has no current run", nil)
	}
	run, err := c.CreateRun(ctx)
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	return run.ID, nil
}

// RunAction issues a play, pause, or stop action against a run.
func (c *Client) RunAction(ctx context.Context, runID, actionType string) error {
	switch actionType {
	case ActionPlay, ActionPause, ActionStop:
	default:
		return services.Invalid("opentrons", "run action", "unsupported action %q", actionType)
	}
	if strings.TrimSpace(runID) == "" {
		return services.Invalid("opentrons", "run action", "run id required")
	}
	body := dataEnvelope[map[string]string]{Data: map[string]string{"actionType": actionType}}
	return c.doJSON(ctx, http.MethodPost, "/runs/"+url.PathEscape(runID)+"/actions", nil, body, nil)
}

// EnqueueCommand posts a command to the run. The returned command is the
// robot's record of it. When the robot reports the command as failed, both
// the command and an error tagged with services.ErrRemote are returned.
func (c *Client) EnqueueCommand(ctx context.Context, commandType string, params any, intent Intent, runID string) (*Command, error) {
	if strings.TrimSpace(commandType) == "" {
		return nil, services.Invalid("opentrons", "enqueue command", "command type required")
	}
	if strings.TrimSpace(runID) == "" {
		return nil, services.Invalid("opentrons", "enqueue command", "run id required")
	}
	if intent == "" {
		intent = IntentSetup
	}

	query := url.Values{}
	if c.waitUntilComplete {
		query.Set("waitUntilComplete", "true")
		if c.commandTimeout > 0 {
			query.Set("timeout", strconv.FormatInt(c.commandTimeout.Milliseconds(), 10))
		}
	}

	body := dataEnvelope[commandRequest]{Data: commandRequest{
		CommandType: commandType,
		Params:      params,
		Intent:      intent,
	}}
	var resp dataEnvelope[Command]
	if err := c.doJSON(ctx, http.MethodPost, "/runs/"+url.PathEscape(runID)+"/commands", query, body, &resp); err != nil {
		return nil, err
	}
	cmd := &resp.Data
	if cmd.Status == CommandFailed {
		detail := "command failed"
		if cmd.Error != nil {
			detail = strings.TrimSpace(cmd.Error.ErrorType + ": " + cmd.Error.Detail)
		}
		return cmd, services.Wrap(services.ErrRemote, "opentrons", commandType, detail, nil)
	}
	return cmd, nil
}

// ListCommands returns the commands enqueued on a run.
func (c *Client) ListCommands(ctx context.Context, runID string) ([]Command, error) {
	if strings.TrimSpace(runID) == "" {
		return nil, services.Invalid("opentrons", "list commands", "run id required")
	}
	var resp dataEnvelope[[]Command]
	if err := c.doJSON(ctx, http.MethodGet, "/runs/"+url.PathEscape(runID)+"/commands", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
