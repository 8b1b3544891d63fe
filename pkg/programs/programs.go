// Package programs wires the built-in DEX adapters into a swap registry and
// offers one-call entry points over it.
package programs

import (
	"context"

	"github.com/lugondev/swapcpi/pkg/host"
	"github.com/lugondev/swapcpi/pkg/programs/raydiumclmm"
	"github.com/lugondev/swapcpi/pkg/programs/raydiumcpmm"
	"github.com/lugondev/swapcpi/pkg/swap"
	"github.com/lugondev/swapcpi/pkg/types"
)

// Adapters returns a fresh instance of every built-in adapter.
func Adapters() []swap.Adapter {
	return []swap.Adapter{
		raydiumcpmm.NewAdapter(),
		raydiumclmm.NewAdapter(),
	}
}

// NewRegistry returns a registry holding every built-in adapter.
func NewRegistry() *swap.Registry {
	registry := swap.NewRegistry()
	for _, adapter := range Adapters() {
		registry.MustRegister(adapter)
	}
	return registry
}

// NewDispatcher returns a dispatcher over the built-in adapters.
func NewDispatcher(h host.Host, opts ...swap.DispatcherOption) *swap.Dispatcher {
	return swap.NewDispatcher(NewRegistry(), h, opts...)
}

// TryFromAccounts detects the built-in protocol owning accounts[0].
func TryFromAccounts(accounts []*types.AccountInfo) (*swap.Context, error) {
	return NewRegistry().TryFromAccounts(accounts)
}

// Swap runs a swap through h against whichever built-in protocol owns
// accounts[0].
func Swap(ctx context.Context, h host.Host, accounts []*types.AccountInfo, amountIn, amountOut uint64, mode swap.Mode) error {
	return SwapSigned(ctx, h, accounts, amountIn, amountOut, mode, nil)
}

// SwapSigned is Swap with PDA signer seeds.
func SwapSigned(ctx context.Context, h host.Host, accounts []*types.AccountInfo, amountIn, amountOut uint64, mode swap.Mode, signers types.Signers) error {
	sc, err := TryFromAccounts(accounts)
	if err != nil {
		return err
	}
	return sc.SwapSigned(ctx, h, amountIn, amountOut, mode, signers)
}
