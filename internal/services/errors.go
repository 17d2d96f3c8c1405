package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrRemote        = errors.New("robot rejected request")
	ErrNotFound      = errors.New("not found")
	ErrTransient     = errors.New("transient failure")
)

// Outcome labels how a failed robot call should be reported.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected"
	OutcomeRemote   Outcome = "remote_error"
	OutcomeFailed   Outcome = "failed"
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Invalid is shorthand for a precondition violation raised before any
// request reaches the robot.
func Invalid(component, operation, format string, args ...any) error {
	return Wrap(ErrValidation, component, operation, fmt.Sprintf(format, args...), nil)
}

// Classify maps an error to the outcome recorded in the journal and used for
// CLI exit codes.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration):
		return OutcomeRejected
	case errors.Is(err, ErrRemote), errors.Is(err, ErrNotFound):
		return OutcomeRemote
	default:
		return OutcomeFailed
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "robot call failure"
	}
	return strings.Join(parts, ": ")
}
