package testsupport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// EnqueuedCommand captures one POST /runs/{id}/commands request seen by a
// FakeRobot.
type EnqueuedCommand struct {
	RunID       string
	CommandType string
	Intent      string
	Params      map[string]any
}

// FakeRobot is a minimal in-memory robot HTTP API.
type FakeRobot struct {
	Server *httptest.Server

	mu         sync.Mutex
	commands   []EnqueuedCommand
	currentRun string
	left       *string
	right      *string
	modules    []map[string]any
	failType   string
}

// NewFakeRobot starts a fake robot with a current run named run-1.
func NewFakeRobot(t testing.TB) *FakeRobot {
	t.Helper()

	robot := &FakeRobot{currentRun: "run-1"}
	robot.Server = httptest.NewServer(http.HandlerFunc(robot.serve))
	t.Cleanup(robot.Server.Close)
	return robot
}

// URL returns the robot base URL.
func (r *FakeRobot) URL() string {
	return r.Server.URL
}

// SetPipettes sets the instruments reported by GET /pipettes. Empty names
// report an empty mount.
func (r *FakeRobot) SetPipettes(left, right string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.left = nilIfEmpty(left)
	r.right = nilIfEmpty(right)
}

// SetModules sets the GET /modules payload.
func (r *FakeRobot) SetModules(modules ...map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules = modules
}

// SetCurrentRun changes the current run. Empty means no current run.
func (r *FakeRobot) SetCurrentRun(runID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currentRun = runID
}

// FailCommand makes the robot report commands of the given type as failed.
func (r *FakeRobot) FailCommand(commandType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failType = commandType
}

// Commands returns the commands enqueued so far.
func (r *FakeRobot) Commands() []EnqueuedCommand {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EnqueuedCommand, len(r.commands))
	copy(out, r.commands)
	return out
}

// CommandTypes returns the enqueued command types in order.
func (r *FakeRobot) CommandTypes() []string {
	commands := r.Commands()
	types := make([]string, 0, len(commands))
	for _, cmd := range commands {
		types = append(types, cmd.CommandType)
	}
	return types
}

func (r *FakeRobot) serve(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	path := strings.Trim(req.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case path == "health":
		writeJSON(w, http.StatusOK, map[string]any{"name": "fake-flex", "api_version": "8.0.0", "robot_model": "OT-3 Standard"})
	case path == "pipettes":
		writeJSON(w, http.StatusOK, map[string]any{
			"left":  map[string]any{"name": r.left, "mount_axis": "z", "plunger_axis": "b"},
			"right": map[string]any{"name": r.right, "mount_axis": "a", "plunger_axis": "c"},
		})
	case path == "modules":
		modules := r.modules
		if modules == nil {
			modules = []map[string]any{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": modules})
	case path == "runs" && req.Method == http.MethodGet:
		runs := []map[string]any{}
		links := map[string]any{}
		if r.currentRun != "" {
			runs = append(runs, map[string]any{"id": r.currentRun, "status": "idle", "current": true})
			links["current"] = map[string]any{"href": "/runs/" + r.currentRun}
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": runs, "links": links})
	case path == "runs" && req.Method == http.MethodPost:
		r.currentRun = fmt.Sprintf("run-%d", len(r.commands)+100)
		writeJSON(w, http.StatusCreated, map[string]any{"data": map[string]any{"id": r.currentRun, "status": "idle", "current": true}})
	case len(parts) == 2 && parts[0] == "runs" && req.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"id": parts[1], "status": "idle", "current": parts[1] == r.currentRun}})
	case len(parts) == 3 && parts[0] == "runs" && parts[2] == "actions":
		writeJSON(w, http.StatusCreated, map[string]any{"data": map[string]any{"id": "action-1"}})
	case len(parts) == 3 && parts[0] == "runs" && parts[2] == "commands" && req.Method == http.MethodPost:
		r.enqueue(w, req, parts[1])
	case len(parts) == 3 && parts[0] == "runs" && parts[2] == "commands":
		data := make([]map[string]any, 0, len(r.commands))
		for i, cmd := range r.commands {
			if cmd.RunID == parts[1] {
				data = append(data, map[string]any{"id": fmt.Sprintf("cmd-%d", i+1), "commandType": cmd.CommandType, "status": "succeeded"})
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": data})
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"errors": []map[string]any{{"title": "Not Found", "detail": "no route " + req.URL.Path}}})
	}
}

func (r *FakeRobot) enqueue(w http.ResponseWriter, req *http.Request, runID string) {
	var body struct {
		Data struct {
			CommandType string         `json:"commandType"`
			Intent      string         `json:"intent"`
			Params      map[string]any `json:"params"`
		} `json:"data"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": []map[string]any{{"detail": err.Error()}}})
		return
	}
	r.commands = append(r.commands, EnqueuedCommand{
		RunID:       runID,
		CommandType: body.Data.CommandType,
		Intent:      body.Data.Intent,
		Params:      body.Data.Params,
	})
	id := fmt.Sprintf("cmd-%d", len(r.commands))
	status := "succeeded"
	var cmdErr any
	if body.Data.CommandType == r.failType {
		status = "failed"
		cmdErr = map[string]any{"errorType": "CommandFailed", "detail": "simulated failure"}
	}
	result := map[string]any{}
	if body.Data.CommandType == "loadPipette" {
		result["pipetteId"] = "pipette-" + fmt.Sprint(body.Data.Params["mount"])
	}
	writeJSON(w, http.StatusCreated, map[string]any{"data": map[string]any{
		"id":          id,
		"commandType": body.Data.CommandType,
		"status":      status,
		"intent":      body.Data.Intent,
		"params":      body.Data.Params,
		"result":      result,
		"error":       cmdErr,
	}})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func nilIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
