package opentrons

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError describes a non-2xx reply from the robot.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s %s returned %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Detail)
}

type errorEnvelope struct {
	Errors []struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
	Message string `json:"message"`
}

// errorDetail extracts a readable message from a robot error body, falling
// back to the raw text.
func errorDetail(body []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		parts := make([]string, 0, len(envelope.Errors))
		for _, item := range envelope.Errors {
			msg := strings.TrimSpace(item.Detail)
			if msg == "" {
				msg = strings.TrimSpace(item.Title)
			}
			if msg != "" {
				parts = append(parts, msg)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
		if msg := strings.TrimSpace(envelope.Message); msg != "" {
			return msg
		}
	}
	return strings.TrimSpace(string(body))
}
