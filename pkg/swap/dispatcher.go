package swap

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lugondev/swapcpi/internal/common"
	swaperrors "github.com/lugondev/swapcpi/internal/errors"
	"github.com/lugondev/swapcpi/internal/metrics"
	"github.com/lugondev/swapcpi/pkg/host"
	"github.com/lugondev/swapcpi/pkg/types"
)

// Dispatcher is the single swap entry point. It detects the protocol from the
// account list, encodes the instruction and invokes it through its host.
//
// The dispatcher never retries: an instruction either succeeds within the
// enclosing transaction or the whole transaction fails.
type Dispatcher struct {
	common.LoggerMixin

	registry *Registry
	host     host.Host
	metrics  metrics.Metrics
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithMetrics sets the metrics sink.
func WithMetrics(m metrics.Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		if m != nil {
			d.metrics = m
		}
	}
}

// WithDispatcherLogger sets the dispatcher logger.
func WithDispatcherLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.SetLogger(logger)
	}
}

// NewDispatcher creates a Dispatcher over registry that invokes through h.
func NewDispatcher(registry *Registry, h host.Host, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		LoggerMixin: common.NewLoggerMixin(),
		registry:    registry,
		host:        h,
		metrics:     metrics.NewNoopMetrics(),
	}
	for _, opt := range opts {
		opt(d)
	}
	_ = d.metrics.UpdateGauge(context.Background(), metrics.MetricRegisteredProtocols, float64(registry.Len()))
	return d
}

// WithLogger sets a custom logger for the dispatcher.
func (d *Dispatcher) WithLogger(logger *slog.Logger) *Dispatcher {
	d.SetLogger(logger)
	return d
}

// Registry returns the adapter registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Host returns the host instructions are invoked through.
func (d *Dispatcher) Host() host.Host {
	return d.host
}

// TryFromAccounts detects and decodes the protocol accounts.
func (d *Dispatcher) TryFromAccounts(accounts []*types.AccountInfo) (*Context, error) {
	return d.registry.TryFromAccounts(accounts)
}

// Swap is SwapSigned with no signers.
func (d *Dispatcher) Swap(ctx context.Context, accounts []*types.AccountInfo, amountIn, amountOut uint64, mode Mode) error {
	return d.SwapSigned(ctx, accounts, amountIn, amountOut, mode, nil)
}

// SwapSigned detects the protocol owning accounts[0], encodes the swap and
// invokes it with the given PDA signer seeds. Errors returned by the host are
// passed through unchanged.
func (d *Dispatcher) SwapSigned(ctx context.Context, accounts []*types.AccountInfo, amountIn, amountOut uint64, mode Mode, signers types.Signers) error {
	logger := d.GetLogger().With("invocation_id", uuid.New().String())
	_ = d.metrics.IncrementCounter(ctx, metrics.MetricDispatchTotal, 1)

	sc, err := d.registry.TryFromAccounts(accounts)
	if err != nil {
		if swaperrors.Is(err, swaperrors.ErrInvalidAccountData) {
			_ = d.metrics.IncrementCounter(ctx, metrics.MetricUnknownProtocol, 1)
		}
		return d.fail(ctx, logger, "protocol detection failed", err)
	}

	logger = logger.With(
		"protocol", sc.Protocol(),
		"program_id", sc.Adapter.ProgramID().String(),
		"mode", mode.String(),
	)

	ix, err := sc.Instruction(amountIn, amountOut, mode)
	if err != nil {
		return d.fail(ctx, logger, "instruction encoding failed", err)
	}

	logger.Debug("invoking swap",
		"amount_in", amountIn,
		"amount_out", amountOut,
		"accounts", len(ix.Accounts),
		"signers", len(signers),
	)

	start := time.Now()
	err = d.host.Invoke(ctx, ix, sc.Accounts.Infos(), signers)
	elapsed := time.Since(start)
	_ = d.metrics.RecordHistogram(ctx, metrics.MetricInvokeTimeMilliseconds, float64(elapsed.Microseconds())/1000)

	if err != nil {
		return d.fail(ctx, logger, "invoke failed", err)
	}

	_ = d.metrics.IncrementCounter(ctx, metrics.MetricDispatchSucceeded, 1)
	logger.Debug("swap invoked", "elapsed", elapsed)
	return nil
}

func (d *Dispatcher) fail(ctx context.Context, logger *slog.Logger, msg string, err error) error {
	_ = d.metrics.IncrementCounter(ctx, metrics.MetricDispatchFailed, 1)
	logger.Warn(msg, "error", err)
	return err
}
