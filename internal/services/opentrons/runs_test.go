package opentrons_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"otctl/internal/services"
	"otctl/internal/services/opentrons"
)

func TestCurrentRunIDFromLinks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"run-a"},{"id":"run-b"}],"links":{"current":{"href":"/runs/run-b"}}}`))
	})
	id, err := client.CurrentRunID(context.Background())
	if err != nil {
		t.Fatalf("CurrentRunID returned error: %v", err)
	}
	if id != "run-b" {
		t.Fatalf("expected run-b, got %q", id)
	}
}

func TestCurrentRunIDFromFlag(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"run-a","current":false},{"id":"run-c","current":true}],"links":{}}`))
	})
	id, err := client.CurrentRunID(context.Background())
	if err != nil {
		t.Fatalf("CurrentRunID returned error: %v", err)
	}
	if id != "run-c" {
		t.Fatalf("expected run-c, got %q", id)
	}
}

func TestCurrentRunIDMissing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected %s without create-if-missing", r.Method)
		}
		_, _ = w.Write([]byte(`{"data":[],"links":{}}`))
	})
	if _, err := client.CurrentRunID(context.Background()); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCurrentRunIDCreatesWhenConfigured(t *testing.T) {
	created := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"data":[],"links":{}}`))
		case http.MethodPost:
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if _, ok := body["data"]; !ok {
				t.Fatalf("expected data envelope, got %v", body)
			}
			created = true
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"data":{"id":"run-new","status":"idle","current":true}}`))
		}
	}, opentrons.WithCreateRunIfMissing(true))

	id, err := client.CurrentRunID(context.Background())
	if err != nil {
		t.Fatalf("CurrentRunID returned error: %v", err)
	}
	if !created || id != "run-new" {
		t.Fatalf("expected created run-new, got %q (created=%v)", id, created)
	}
}

func TestGetRun(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/runs/run-7" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":{"id":"run-7","status":"paused","current":true,"actions":[{"id":"a1","actionType":"pause"}]}}`))
	})
	run, err := client.GetRun(context.Background(), "run-7")
	if err != nil {
		t.Fatalf("GetRun returned error: %v", err)
	}
	if run.ID != "run-7" || run.Status != "paused" || !run.Current {
		t.Fatalf("unexpected run %+v", run)
	}
	if len(run.Actions) != 1 || run.Actions[0].ActionType != "pause" {
		t.Fatalf("unexpected actions %+v", run.Actions)
	}
}

func TestGetRunRequiresID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("empty run id must not hit the robot, got %s", r.URL.Path)
	})
	if _, err := client.GetRun(context.Background(), "  "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRunActionValidatesType(t *testing.T) {
	var action string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/runs/run-1/actions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var body struct {
			Data struct {
				ActionType string `json:"actionType"`
			} `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		action = body.Data.ActionType
		w.WriteHeader(http.StatusCreated)
	})
	if err := client.RunAction(context.Background(), "run-1", "rewind"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := client.RunAction(context.Background(), "run-1", opentrons.ActionPause); err != nil {
		t.Fatalf("RunAction returned error: %v", err)
	}
	if action != "pause" {
		t.Fatalf("expected pause action, got %q", action)
	}
}

func TestListCommands(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/runs/run-1/commands" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"c1","commandType":"home","status":"succeeded"},{"id":"c2","commandType":"aspirate","status":"queued"}]}`))
	})
	commands, err := client.ListCommands(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("ListCommands returned error: %v", err)
	}
	if len(commands) != 2 || commands[1].CommandType != "aspirate" {
		t.Fatalf("unexpected commands: %#v", commands)
	}
}
