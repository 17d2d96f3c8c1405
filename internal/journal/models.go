package journal

import (
	"time"

	"otctl/internal/services"
)

// Entry is one journaled command.
type Entry struct {
	ID            int64
	CorrelationID string
	RunID         string
	CommandType   string
	ParamsJSON    string
	CommandID     string
	Status        string
	Outcome       services.Outcome
	ErrorMessage  string
	CreatedAt     time.Time
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	RunID       string
	CommandType string
	Limit       int
}

const defaultListLimit = 50
