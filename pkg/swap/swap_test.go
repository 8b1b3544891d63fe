package swap

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"log/slog"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	swaperrors "github.com/lugondev/swapcpi/internal/errors"
	"github.com/lugondev/swapcpi/internal/metrics"
	"github.com/lugondev/swapcpi/pkg/host"
	"github.com/lugondev/swapcpi/pkg/types"
)

// pairAccounts is a minimal two-account protocol used to exercise dispatch.
type pairAccounts struct {
	payer *types.AccountInfo
	pool  *types.AccountInfo
}

func (p *pairAccounts) Metas() []types.AccountMeta {
	return []types.AccountMeta{types.ReadonlySigner(p.payer.Key), types.Writable(p.pool.Key)}
}

func (p *pairAccounts) Infos() []*types.AccountInfo {
	return []*types.AccountInfo{p.payer, p.pool}
}

type pairAdapter struct {
	name      string
	programID types.Pubkey
}

func (a *pairAdapter) Name() string            { return a.name }
func (a *pairAdapter) ProgramID() types.Pubkey { return a.programID }

func (a *pairAdapter) DecodeAccounts(accounts []*types.AccountInfo) (Accounts, error) {
	if len(accounts) < 3 {
		return nil, swaperrors.NotEnoughAccountKeys(a.name, 3, len(accounts))
	}
	return &pairAccounts{payer: accounts[1], pool: accounts[2]}, nil
}

func (a *pairAdapter) EncodeInstruction(accounts Accounts, amountIn, amountOut uint64, mode Mode) (*types.Instruction, error) {
	if !mode.Valid() {
		return nil, swaperrors.ErrInvalidMode
	}
	data := make([]byte, 17)
	data[0] = byte(mode)
	binary.LittleEndian.PutUint64(data[1:], amountIn)
	binary.LittleEndian.PutUint64(data[9:], amountOut)
	return &types.Instruction{ProgramID: a.programID, Accounts: accounts.Metas(), Data: data}, nil
}

func (a *pairAdapter) DecodeInstruction(data []byte) (*Args, error) {
	if len(data) != 17 {
		return nil, swaperrors.ErrInvalidInstructionData
	}
	return &Args{
		Mode:      Mode(data[0]),
		AmountIn:  binary.LittleEndian.Uint64(data[1:]),
		AmountOut: binary.LittleEndian.Uint64(data[9:]),
	}, nil
}

func newPairAdapter(name string) *pairAdapter {
	return &pairAdapter{name: name, programID: solana.NewWallet().PublicKey()}
}

func pairAccountList(program types.Pubkey) []*types.AccountInfo {
	return []*types.AccountInfo{
		types.NewAccountInfo(program, false, false),
		types.NewAccountInfo(solana.NewWallet().PublicKey(), true, false),
		types.NewAccountInfo(solana.NewWallet().PublicKey(), false, true),
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	a := newPairAdapter("b_pair")
	b := newPairAdapter("a_pair")

	require.NoError(t, r.Register(a))
	require.NoError(t, r.Register(b))
	assert.Equal(t, 2, r.Len())

	dup := &pairAdapter{name: "dup", programID: a.programID}
	err := r.Register(dup)
	assert.True(t, errors.Is(err, swaperrors.ErrDuplicateProgram))
	assert.Panics(t, func() { r.MustRegister(dup) })

	adapters := r.Adapters()
	require.Len(t, adapters, 2)
	assert.Equal(t, "a_pair", adapters[0].Name())
	assert.Equal(t, "b_pair", adapters[1].Name())

	got, ok := r.Lookup(a.programID)
	require.True(t, ok)
	assert.Same(t, a, got)

	got, ok = r.LookupName("a_pair")
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = r.LookupName("missing")
	assert.False(t, ok)
}

func TestRegistryTryFromAccounts(t *testing.T) {
	r := NewRegistry()
	a := newPairAdapter("pair")
	r.MustRegister(a)

	tests := []struct {
		name     string
		accounts []*types.AccountInfo
		wantErr  error
	}{
		{"empty", nil, swaperrors.ErrNotEnoughAccountKeys},
		{"nil first account", []*types.AccountInfo{nil}, swaperrors.ErrInvalidAccountData},
		{"unknown program", pairAccountList(solana.SystemProgramID), swaperrors.ErrInvalidAccountData},
		{"too few for adapter", pairAccountList(a.programID)[:2], swaperrors.ErrNotEnoughAccountKeys},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.TryFromAccounts(tt.accounts)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	sc, err := r.TryFromAccounts(pairAccountList(a.programID))
	require.NoError(t, err)
	assert.Equal(t, "pair", sc.Protocol())
}

func TestRegistryDecodeInstruction(t *testing.T) {
	r := NewRegistry()
	a := newPairAdapter("pair")
	r.MustRegister(a)

	ix, err := a.EncodeInstruction(&pairAccounts{
		payer: types.NewAccountInfo(solana.NewWallet().PublicKey(), true, false),
		pool:  types.NewAccountInfo(solana.NewWallet().PublicKey(), false, true),
	}, 5, 4, ExactOut)
	require.NoError(t, err)

	args, err := r.DecodeInstruction(a.programID, ix.Data)
	require.NoError(t, err)
	assert.Equal(t, &Args{Mode: ExactOut, AmountIn: 5, AmountOut: 4}, args)

	_, err = r.DecodeInstruction(solana.SystemProgramID, ix.Data)
	assert.True(t, errors.Is(err, swaperrors.ErrInvalidAccountData))
}

func TestDispatcherSwap(t *testing.T) {
	r := NewRegistry()
	a := newPairAdapter("pair")
	r.MustRegister(a)

	rec := host.NewRecorder(solana.NewWallet().PublicKey())
	m := metrics.NewLogMetrics(nil)
	d := NewDispatcher(r, rec, WithMetrics(m))

	accounts := pairAccountList(a.programID)
	require.NoError(t, d.Swap(context.Background(), accounts, 100, 95, ExactIn))

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, a.programID, last.Instruction.ProgramID)
	assert.Equal(t, []types.Pubkey{accounts[1].Key, accounts[2].Key}, last.Infos)

	assert.Equal(t, uint64(1), m.Counter(metrics.MetricDispatchTotal))
	assert.Equal(t, uint64(1), m.Counter(metrics.MetricDispatchSucceeded))
	assert.Equal(t, uint64(1), m.HistogramCount(metrics.MetricInvokeTimeMilliseconds))
	assert.Equal(t, float64(1), m.Gauge(metrics.MetricRegisteredProtocols))
}

func TestDispatcherReturnsHostErrorUnchanged(t *testing.T) {
	r := NewRegistry()
	a := newPairAdapter("pair")
	r.MustRegister(a)

	hostErr := errors.New("program failed to complete")
	calls := 0
	h := host.HostFunc(func(context.Context, *types.Instruction, []*types.AccountInfo, types.Signers) error {
		calls++
		return hostErr
	})

	m := metrics.NewLogMetrics(nil)
	d := NewDispatcher(r, h, WithMetrics(m))

	err := d.SwapSigned(context.Background(), pairAccountList(a.programID), 1, 1, ExactOut, nil)
	assert.Same(t, hostErr, err)
	assert.Equal(t, 1, calls, "no retry")
	assert.Equal(t, uint64(1), m.Counter(metrics.MetricDispatchFailed))
}

func TestDispatcherUnknownProtocol(t *testing.T) {
	m := metrics.NewLogMetrics(nil)
	d := NewDispatcher(NewRegistry(), host.NewRecorder(solana.NewWallet().PublicKey()), WithMetrics(m))

	err := d.Swap(context.Background(), pairAccountList(solana.SystemProgramID), 1, 1, ExactIn)
	assert.True(t, errors.Is(err, swaperrors.ErrInvalidAccountData))
	assert.Equal(t, uint64(1), m.Counter(metrics.MetricUnknownProtocol))
	assert.Equal(t, uint64(1), m.Counter(metrics.MetricDispatchFailed))
}

func TestDispatcherPassesSigners(t *testing.T) {
	r := NewRegistry()
	a := newPairAdapter("pair")
	r.MustRegister(a)

	var got types.Signers
	h := host.HostFunc(func(_ context.Context, _ *types.Instruction, _ []*types.AccountInfo, signers types.Signers) error {
		got = signers
		return nil
	})

	signers := types.Signers{types.NewSigner([]byte("seed"), []byte{255})}
	d := NewDispatcher(r, h)
	require.NoError(t, d.SwapSigned(context.Background(), pairAccountList(a.programID), 1, 1, ExactIn, signers))
	assert.Equal(t, signers, got)
}

func TestDispatcherLogsInvocation(t *testing.T) {
	r := NewRegistry()
	a := newPairAdapter("pair")
	r.MustRegister(a)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d := NewDispatcher(r, host.NewRecorder(solana.NewWallet().PublicKey())).WithLogger(logger)

	require.NoError(t, d.Swap(context.Background(), pairAccountList(a.programID), 1, 1, ExactIn))
	assert.Contains(t, buf.String(), "protocol=pair")
	assert.Contains(t, buf.String(), "invocation_id=")
	assert.Contains(t, buf.String(), "mode=exact_in")
}

func TestDispatcherInvalidMode(t *testing.T) {
	r := NewRegistry()
	a := newPairAdapter("pair")
	r.MustRegister(a)

	rec := host.NewRecorder(solana.NewWallet().PublicKey())
	err := NewDispatcher(r, rec).Swap(context.Background(), pairAccountList(a.programID), 1, 1, Mode(9))
	assert.True(t, errors.Is(err, swaperrors.ErrInvalidMode))
	assert.Empty(t, rec.Invocations())
}

func TestContextSwapEqualsSwapSigned(t *testing.T) {
	r := NewRegistry()
	a := newPairAdapter("pair")
	r.MustRegister(a)

	sc, err := r.TryFromAccounts(pairAccountList(a.programID))
	require.NoError(t, err)

	rec := host.NewRecorder(solana.NewWallet().PublicKey())
	require.NoError(t, sc.Swap(context.Background(), rec, 9, 8, ExactIn))
	require.NoError(t, sc.SwapSigned(context.Background(), rec, 9, 8, ExactIn, nil))

	inv := rec.Invocations()
	require.Len(t, inv, 2)
	assert.Equal(t, inv[0].Instruction, inv[1].Instruction)
}
