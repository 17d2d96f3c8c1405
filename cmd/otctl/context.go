package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"otctl/internal/commands"
	"otctl/internal/config"
	"otctl/internal/journal"
	"otctl/internal/logging"
	"otctl/internal/runlock"
	"otctl/internal/services"
	"otctl/internal/services/opentrons"
)

type commandContext struct {
	configFlag *string
	runFlag    *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, runFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		runFlag:    runFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonMode() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) runID() string {
	if c.runFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.runFlag)
}

func (c *commandContext) log() *slog.Logger {
	c.loggerOnce.Do(func() {
		c.logger = logging.NewNop()
		cfg, err := c.ensureConfig()
		if err != nil {
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) robotClient() (*opentrons.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return opentrons.New(cfg.Robot.BaseURL,
		opentrons.WithAPIVersion(cfg.Robot.APIVersion),
		opentrons.WithLogger(c.log()),
		opentrons.WithWaitUntilComplete(cfg.Runs.WaitUntilComplete),
		opentrons.WithCommandTimeout(time.Duration(cfg.Runs.CommandTimeoutMS)*time.Millisecond),
		opentrons.WithCreateRunIfMissing(cfg.Runs.CreateIfMissing),
		opentrons.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout()}),
	)
}

// withLock runs fn while holding the session lock.
func (c *commandContext) withLock(fn func() error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	return runlock.With(cfg.LockPath(), fn)
}

// withDispatcher holds the session lock, opens the journal when enabled, and
// runs fn against a dispatcher bound to the robot.
func (c *commandContext) withDispatcher(cmd *cobra.Command, fn func(context.Context, *commands.Dispatcher) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	client, err := c.robotClient()
	if err != nil {
		return err
	}

	return c.withLock(func() error {
		opts := []commands.Option{
			commands.WithLogger(c.log()),
			commands.WithDefaultRunID(cfg.Runs.RunID),
		}
		if cfg.Journal.Enabled {
			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()
			opts = append(opts, commands.WithRecorder(store))
		}
		dispatcher, err := commands.NewForClient(client, opts...)
		if err != nil {
			return err
		}
		return fn(cmd.Context(), dispatcher)
	})
}

// resolveRun applies the --run flag, then the configured run, then the
// robot's current run.
func (c *commandContext) resolveRun(ctx context.Context, client *opentrons.Client) (string, error) {
	if run := c.runID(); run != "" {
		return run, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.Runs.RunID != "" {
		return cfg.Runs.RunID, nil
	}
	return client.CurrentRunID(ctx)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// exitCode maps error classes to process exit codes: 2 for rejected input,
// 3 for robot-side failures, 4 when another session holds the lock.
func exitCode(err error) int {
	switch services.Classify(err) {
	case services.OutcomeOK:
		return 0
	case services.OutcomeRejected:
		return 2
	case services.OutcomeRemote:
		return 3
	default:
		if errors.Is(err, runlock.ErrHeld) {
			return 4
		}
		return 1
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
