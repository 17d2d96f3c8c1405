package journal

import (
	"database/sql"
	"fmt"
	"time"

	"otctl/internal/services"
)

const entryColumns = "id, correlation_id, run_id, command_type, params_json, command_id, status, outcome, error_message, created_at"

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		id            int64
		correlationID string
		runID         string
		commandType   string
		params        sql.NullString
		commandID     sql.NullString
		status        sql.NullString
		outcome       string
		errorMessage  sql.NullString
		createdRaw    string
	)
	if err := scanner.Scan(
		&id,
		&correlationID,
		&runID,
		&commandType,
		&params,
		&commandID,
		&status,
		&outcome,
		&errorMessage,
		&createdRaw,
	); err != nil {
		return nil, fmt.Errorf("scan journal entry: %w", err)
	}
	return &Entry{
		ID:            id,
		CorrelationID: correlationID,
		RunID:         runID,
		CommandType:   commandType,
		ParamsJSON:    params.String,
		CommandID:     commandID.String,
		Status:        status.String,
		Outcome:       services.Outcome(outcome),
		ErrorMessage:  errorMessage.String,
		CreatedAt:     parseTime(createdRaw),
	}, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
