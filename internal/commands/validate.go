package commands

import (
	"math"
	"strings"

	"otctl/internal/services"
)

func invalid(operation, format string, args ...any) error {
	return services.Invalid(component, operation, format, args...)
}

func requireID(operation, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(operation, "%s required", field)
	}
	return nil
}

func requireVolume(operation string, volume float64) error {
	if math.IsNaN(volume) || math.IsInf(volume, 0) || volume < 0 {
		return invalid(operation, "volume must be >= 0, got %v", volume)
	}
	return nil
}

func requireFlowRate(operation string, flowRate float64) error {
	if math.IsNaN(flowRate) || math.IsInf(flowRate, 0) || flowRate <= 0 {
		return invalid(operation, "flow rate must be > 0, got %v", flowRate)
	}
	return nil
}

func requireFinite(operation, field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return invalid(operation, "%s must be a finite number", field)
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
