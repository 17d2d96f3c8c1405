package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"otctl/internal/services"
	"otctl/internal/services/opentrons"
)

const robotCheckTimeout = 5 * time.Second

// HealthChecker is the subset of the robot client the checks need.
type HealthChecker interface {
	Health(ctx context.Context) (*opentrons.Health, error)
}

// RunLister resolves the robot's current run.
type RunLister interface {
	ListRuns(ctx context.Context) ([]opentrons.Run, string, error)
}

// CheckRobot verifies the robot answers GET /health.
func CheckRobot(ctx context.Context, client HealthChecker) Result {
	const name = "Robot"
	if client == nil {
		return Result{Name: name, Detail: "not configured"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, robotCheckTimeout)
	defer cancel()

	health, err := client.Health(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeRobotError(err)}
	}
	detail := health.Name
	if health.APIVersion != "" {
		detail = fmt.Sprintf("%s (api %s)", health.Name, health.APIVersion)
	}
	if detail == "" {
		detail = "Reachable"
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckCurrentRun reports whether commands have a run to attach to. A pinned
// run id always passes.
func CheckCurrentRun(ctx context.Context, client RunLister, pinned string) Result {
	const name = "Run"
	if pinned != "" {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (pinned)", pinned)}
	}
	if client == nil {
		return Result{Name: name, Detail: "not configured"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, robotCheckTimeout)
	defer cancel()

	_, current, err := client.ListRuns(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeRobotError(err)}
	}
	if current == "" {
		return Result{Name: name, Detail: "no current run (use 'otctl run create')"}
	}
	return Result{Name: name, Passed: true, Detail: current}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// summarizeRobotError produces a human-readable summary for robot check failures.
func summarizeRobotError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (robot unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (robot unreachable)"
	}
	var apiErr *opentrons.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("robot returned %d", apiErr.StatusCode)
	}
	if errors.Is(err, services.ErrTransient) {
		return "unreachable"
	}
	return err.Error()
}
