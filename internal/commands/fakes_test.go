package commands_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"otctl/internal/commands"
	"otctl/internal/journal"
	"otctl/internal/services/opentrons"
)

type enqueued struct {
	CommandType string
	Params      map[string]any
	Intent      opentrons.Intent
	RunID       string
}

type recordingEnqueuer struct {
	calls   []enqueued
	failOn  string
	failErr error
	results map[string]string
}

func (r *recordingEnqueuer) EnqueueCommand(_ context.Context, commandType string, params any, intent opentrons.Intent, runID string) (*opentrons.Command, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, err
	}
	r.calls = append(r.calls, enqueued{CommandType: commandType, Params: decoded, Intent: intent, RunID: runID})
	if commandType == r.failOn {
		return nil, r.failErr
	}
	cmd := &opentrons.Command{
		ID:          fmt.Sprintf("cmd-%d", len(r.calls)),
		CommandType: commandType,
		Status:      opentrons.CommandSucceeded,
		Intent:      intent,
	}
	if result, ok := r.results[commandType]; ok {
		cmd.Result = json.RawMessage(result)
	}
	return cmd, nil
}

func (r *recordingEnqueuer) types() []string {
	out := make([]string, 0, len(r.calls))
	for _, call := range r.calls {
		out = append(out, call.CommandType)
	}
	return out
}

func (r *recordingEnqueuer) last(t *testing.T) enqueued {
	t.Helper()
	if len(r.calls) == 0 {
		t.Fatal("expected an enqueued command")
	}
	return r.calls[len(r.calls)-1]
}

type staticResolver struct {
	runID string
	err   error
	calls int
}

func (s *staticResolver) CurrentRunID(context.Context) (string, error) {
	s.calls++
	return s.runID, s.err
}

type fakeHardware struct {
	pipettes *opentrons.MountedPipettes
	modules  []opentrons.Module
	err      error
}

func (f *fakeHardware) Pipettes(context.Context) (*opentrons.MountedPipettes, error) {
	return f.pipettes, f.err
}

func (f *fakeHardware) Modules(context.Context) ([]opentrons.Module, error) {
	return f.modules, f.err
}

type memoryRecorder struct {
	entries []journal.Entry
	err     error
}

func (m *memoryRecorder) Record(_ context.Context, entry journal.Entry) error {
	m.entries = append(m.entries, entry)
	return m.err
}

// newDispatcher returns a dispatcher pinned to run-1 with a recording enqueuer.
func newDispatcher(t *testing.T, opts ...commands.Option) (*commands.Dispatcher, *recordingEnqueuer) {
	t.Helper()
	enqueuer := &recordingEnqueuer{}
	d, err := commands.New(enqueuer, append([]commands.Option{commands.WithDefaultRunID("run-1")}, opts...)...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return d, enqueuer
}

func wellLoc(origin string, x, y, z float64) map[string]any {
	return map[string]any{
		"origin": origin,
		"offset": map[string]any{"x": x, "y": y, "z": z},
	}
}

func coords(x, y, z float64) map[string]any {
	return map[string]any{"x": x, "y": y, "z": z}
}
