package solana

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/time/rate"

	"github.com/lugondev/swapcpi/internal/common"
	swaperrors "github.com/lugondev/swapcpi/internal/errors"
	"github.com/lugondev/swapcpi/internal/metrics"
	"github.com/lugondev/swapcpi/pkg/host"
	programlog "github.com/lugondev/swapcpi/pkg/log"
	"github.com/lugondev/swapcpi/pkg/types"
)

var _ host.Host = (*RPCHost)(nil)

// Result describes the outcome of the last RPCHost invoke.
type Result struct {
	Simulated     bool
	Signature     solana.Signature
	Logs          []string
	UnitsConsumed uint64
}

// RPCHost executes swap instructions as top-level transactions against a
// cluster. The wallet pays and signs; extra wallets co-sign any signer metas
// they own. Program-derived signers cannot be produced off-chain.
type RPCHost struct {
	common.LoggerMixin

	client   TransactionClient
	payer    *Wallet
	signers  keyring
	limiter  *rate.Limiter
	simulate bool
	metrics  metrics.Metrics

	mu   sync.Mutex
	last *Result
}

// RPCHostOption configures an RPCHost.
type RPCHostOption func(*RPCHost)

// WithSimulate chooses between simulateTransaction and sendTransaction.
func WithSimulate(simulate bool) RPCHostOption {
	return func(h *RPCHost) { h.simulate = simulate }
}

// WithRateLimit throttles RPC calls to rps requests per second. Zero disables throttling.
func WithRateLimit(rps float64, burst int) RPCHostOption {
	return func(h *RPCHost) {
		if rps <= 0 {
			h.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithCoSigners adds wallets that sign alongside the payer.
func WithCoSigners(wallets ...*Wallet) RPCHostOption {
	return func(h *RPCHost) { h.signers = append(h.signers, wallets...) }
}

// WithHostMetrics sets the metrics sink for RPC calls.
func WithHostMetrics(m metrics.Metrics) RPCHostOption {
	return func(h *RPCHost) {
		if m != nil {
			h.metrics = m
		}
	}
}

// NewRPCHost creates a host that pays with payer. It simulates by default.
func NewRPCHost(client TransactionClient, payer *Wallet, opts ...RPCHostOption) *RPCHost {
	h := &RPCHost{
		LoggerMixin: common.NewLoggerMixin(),
		client:      client,
		payer:       payer,
		signers:     keyring{payer},
		simulate:    true,
		metrics:     metrics.NewNoopMetrics(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// WithLogger sets a custom logger for the host.
func (h *RPCHost) WithLogger(logger *slog.Logger) *RPCHost {
	h.SetLogger(logger)
	return h
}

// Payer returns the fee payer.
func (h *RPCHost) Payer() solana.PublicKey {
	return h.payer.PublicKey()
}

// Last returns the result of the most recent successful invoke.
func (h *RPCHost) Last() (Result, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last == nil {
		return Result{}, false
	}
	return *h.last, true
}

// Invoke wraps ix in a transaction, signs it and simulates or sends it.
// infos are not consulted: the cluster loads accounts itself.
func (h *RPCHost) Invoke(ctx context.Context, ix *types.Instruction, _ []*types.AccountInfo, signers types.Signers) error {
	if len(signers) > 0 {
		return swaperrors.ErrPDASigningUnsupported.WithDetails(map[string]any{
			"signer_sets": len(signers),
		})
	}

	tx, err := h.buildTransaction(ctx, ix)
	if err != nil {
		return err
	}

	logger := h.GetLogger().With(
		"program_id", ix.ProgramID.String(),
		"payer", h.payer.PublicKey().String(),
		"simulate", h.simulate,
	)

	if h.simulate {
		return h.simulateTransaction(ctx, tx, logger)
	}
	return h.sendTransaction(ctx, tx, logger)
}

func (h *RPCHost) buildTransaction(ctx context.Context, ix *types.Instruction) (*solana.Transaction, error) {
	if err := h.wait(ctx); err != nil {
		return nil, err
	}
	blockhash, err := h.client.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, swaperrors.InvokeFailed(err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix.ToSolana()},
		blockhash,
		solana.TransactionPayer(h.payer.PublicKey()),
	)
	if err != nil {
		return nil, swaperrors.InvokeFailed(fmt.Errorf("failed to build transaction: %w", err))
	}

	if _, err := tx.Sign(h.signers.get); err != nil {
		return nil, swaperrors.ErrMissingSigner.WithCause(err)
	}
	return tx, nil
}

func (h *RPCHost) simulateTransaction(ctx context.Context, tx *solana.Transaction, logger *slog.Logger) error {
	if err := h.wait(ctx); err != nil {
		return err
	}
	_ = h.metrics.IncrementCounter(ctx, metrics.MetricRPCSimulations, 1)

	result, err := h.client.SimulateTransaction(ctx, tx)
	if err != nil {
		return swaperrors.InvokeFailed(err)
	}

	res := &Result{Simulated: true, Logs: result.Logs}
	if result.UnitsConsumed != nil {
		res.UnitsConsumed = *result.UnitsConsumed
	}

	if result.Err != nil {
		details := map[string]any{
			"logs":           result.Logs,
			"units_consumed": res.UnitsConsumed,
		}
		if failure, ok := programlog.FindFailure(result.Logs); ok {
			details["failed_program"] = failure.ProgramID
			details["reason"] = failure.Reason
			if failure.CustomCode != nil {
				details["custom_code"] = *failure.CustomCode
			}
		}
		logger.Warn("simulation failed", "error", result.Err, "failed_program", details["failed_program"])
		return swaperrors.InvokeFailed(fmt.Errorf("simulation failed: %v", result.Err)).WithDetails(details)
	}

	logger.Debug("simulation succeeded", "units_consumed", res.UnitsConsumed)
	h.setLast(res)
	return nil
}

func (h *RPCHost) sendTransaction(ctx context.Context, tx *solana.Transaction, logger *slog.Logger) error {
	if err := h.wait(ctx); err != nil {
		return err
	}
	_ = h.metrics.IncrementCounter(ctx, metrics.MetricRPCTransactionsSent, 1)

	sig, err := h.client.SendTransaction(ctx, tx)
	if err != nil {
		logger.Warn("send failed", "error", err)
		return swaperrors.InvokeFailed(err)
	}

	logger.Info("transaction sent", "signature", sig.String())
	h.setLast(&Result{Signature: sig})
	return nil
}

// wait blocks until the limiter admits one more RPC call.
func (h *RPCHost) wait(ctx context.Context) error {
	if h.limiter == nil {
		return ctx.Err()
	}
	start := time.Now()
	if err := h.limiter.Wait(ctx); err != nil {
		return err
	}
	_ = h.metrics.RecordHistogram(ctx, metrics.MetricRPCThrottleWaitMillisecs, float64(time.Since(start).Milliseconds()))
	return nil
}

func (h *RPCHost) setLast(res *Result) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = res
}
