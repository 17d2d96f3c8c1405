package preflight

import (
	"context"

	"otctl/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Robot is the client surface RunAll exercises.
type Robot interface {
	HealthChecker
	RunLister
}

// RunAll executes every readiness check for the given config. The run check
// only runs once the robot itself answered.
func RunAll(ctx context.Context, cfg *config.Config, robot Robot) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("State directory", cfg.Paths.StateDir)}

	robotResult := CheckRobot(ctx, robot)
	results = append(results, robotResult)
	if robotResult.Passed {
		results = append(results, CheckCurrentRun(ctx, robot, cfg.Runs.RunID))
	}
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
