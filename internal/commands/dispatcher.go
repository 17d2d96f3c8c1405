package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"otctl/internal/journal"
	"otctl/internal/logging"
	"otctl/internal/services"
	"otctl/internal/services/opentrons"
)

const component = "commands"

// Enqueuer sends one command to a run on the robot.
type Enqueuer interface {
	EnqueueCommand(ctx context.Context, commandType string, params any, intent opentrons.Intent, runID string) (*opentrons.Command, error)
}

// RunResolver supplies the robot's current run when the caller gave none.
type RunResolver interface {
	CurrentRunID(ctx context.Context) (string, error)
}

// HardwareQuerier reads attached instruments and modules.
type HardwareQuerier interface {
	Pipettes(ctx context.Context) (*opentrons.MountedPipettes, error)
	Modules(ctx context.Context) ([]opentrons.Module, error)
}

// Recorder persists a record of each dispatched command.
type Recorder interface {
	Record(ctx context.Context, entry journal.Entry) error
}

// Dispatcher is the single path from command builders to the robot.
type Dispatcher struct {
	enqueuer     Enqueuer
	resolver     RunResolver
	hardware     HardwareQuerier
	recorder     Recorder
	defaultRunID string
	logger       *slog.Logger
	newID        func() string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRunResolver sets the collaborator used when no run id is supplied.
func WithRunResolver(resolver RunResolver) Option {
	return func(d *Dispatcher) {
		d.resolver = resolver
	}
}

// WithHardware sets the instrument and module query collaborator.
func WithHardware(hardware HardwareQuerier) Option {
	return func(d *Dispatcher) {
		d.hardware = hardware
	}
}

// WithRecorder journals every dispatched command.
func WithRecorder(recorder Recorder) Option {
	return func(d *Dispatcher) {
		d.recorder = recorder
	}
}

// WithDefaultRunID pins commands without an explicit run id to runID.
func WithDefaultRunID(runID string) Option {
	return func(d *Dispatcher) {
		d.defaultRunID = strings.TrimSpace(runID)
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logging.NewComponentLogger(logger, component)
		}
	}
}

// New returns a dispatcher that enqueues through enqueuer.
func New(enqueuer Enqueuer, opts ...Option) (*Dispatcher, error) {
	if enqueuer == nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "new dispatcher", "enqueuer required", nil)
	}
	d := &Dispatcher{
		enqueuer: enqueuer,
		logger:   logging.NewNop(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// NewForClient wires a dispatcher whose enqueue, run resolution and hardware
// queries all go to client.
func NewForClient(client *opentrons.Client, opts ...Option) (*Dispatcher, error) {
	if client == nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "new dispatcher", "robot client required", nil)
	}
	base := []Option{WithRunResolver(client), WithHardware(client)}
	return New(client, append(base, opts...)...)
}

// ResolveRunID returns runID when set, then the dispatcher default, then the
// resolver's current run.
func (d *Dispatcher) ResolveRunID(ctx context.Context, runID string) (string, error) {
	if runID = strings.TrimSpace(runID); runID != "" {
		return runID, nil
	}
	if d.defaultRunID != "" {
		return d.defaultRunID, nil
	}
	if d.resolver == nil {
		return "", services.Wrap(services.ErrConfiguration, component, "resolve run", "no run id given and no run resolver configured", nil)
	}
	resolved, err := d.resolver.CurrentRunID(ctx)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

// withRunContext is the one place a built command leaves this package.
func (d *Dispatcher) withRunContext(ctx context.Context, commandType string, params any, runID string) (*opentrons.Command, error) {
	resolved, err := d.ResolveRunID(ctx, runID)
	if err != nil {
		return nil, err
	}

	correlationID := d.newID()
	ctx = services.WithRunID(ctx, resolved)
	ctx = services.WithCommandType(ctx, commandType)
	ctx = services.WithRequestID(ctx, correlationID)
	logger := logging.WithContext(ctx, d.logger)

	logger.Debug("enqueue command")
	cmd, err := d.enqueuer.EnqueueCommand(ctx, commandType, params, opentrons.IntentSetup, resolved)
	d.record(ctx, logger, correlationID, resolved, commandType, params, cmd, err)
	if err != nil {
		logger.Warn("command rejected by robot", logging.Error(err))
		return cmd, err
	}

	attrs := []logging.Attr{}
	if cmd != nil {
		attrs = append(attrs,
			logging.CommandID(cmd.ID),
			logging.CommandStatus(cmd.Status),
		)
	}
	logger.Info("command enqueued", logging.Args(attrs...)...)
	return cmd, nil
}

func (d *Dispatcher) record(ctx context.Context, logger *slog.Logger, correlationID, runID, commandType string, params any, cmd *opentrons.Command, cmdErr error) {
	if d.recorder == nil {
		return
	}
	entry := journal.Entry{
		CorrelationID: correlationID,
		RunID:         runID,
		CommandType:   commandType,
		Outcome:       services.Classify(cmdErr),
	}
	if encoded, err := json.Marshal(params); err == nil {
		entry.ParamsJSON = string(encoded)
	}
	if cmd != nil {
		entry.CommandID = cmd.ID
		entry.Status = cmd.Status
	}
	if cmdErr != nil {
		entry.ErrorMessage = cmdErr.Error()
	}
	// The command already reached the robot; a journal failure must not mask that.
	if err := d.recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		logger.Warn("journal write failed", logging.Error(err))
	}
}

func (d *Dispatcher) requireHardware(operation string) error {
	if d.hardware == nil {
		return services.Wrap(services.ErrConfiguration, component, operation, "hardware querier not configured", nil)
	}
	return nil
}
