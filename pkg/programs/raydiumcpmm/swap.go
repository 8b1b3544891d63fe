package raydiumcpmm

import (
	"context"
	"fmt"

	swaperrors "github.com/lugondev/swapcpi/internal/errors"
	"github.com/lugondev/swapcpi/pkg/host"
	"github.com/lugondev/swapcpi/pkg/swap"
	"github.com/lugondev/swapcpi/pkg/types"
)

var (
	_ swap.Swapper[*Accounts] = Swapper{}
	_ swap.Adapter            = (*Adapter)(nil)
)

// Swapper invokes CPMM swaps over already decoded accounts.
type Swapper struct{}

// Swap implements swap.Swapper.
func (s Swapper) Swap(ctx context.Context, h host.Host, accounts *Accounts, amountIn, amountOut uint64, mode swap.Mode) error {
	return s.SwapSigned(ctx, h, accounts, amountIn, amountOut, mode, nil)
}

// SwapSigned implements swap.Swapper.
func (Swapper) SwapSigned(ctx context.Context, h host.Host, accounts *Accounts, amountIn, amountOut uint64, mode swap.Mode, signers types.Signers) error {
	return swap.Invoke(ctx, h, NewAdapter(), accounts, amountIn, amountOut, mode, signers)
}

// Adapter registers the CPMM program with a swap.Registry.
type Adapter struct{}

// NewAdapter creates a CPMM adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Name implements swap.Adapter.
func (*Adapter) Name() string { return Name }

// ProgramID implements swap.Adapter.
func (*Adapter) ProgramID() types.Pubkey { return ProgramID }

// DecodeAccounts implements swap.Adapter.
func (*Adapter) DecodeAccounts(accounts []*types.AccountInfo) (swap.Accounts, error) {
	return NewAccounts(accounts)
}

// EncodeInstruction implements swap.Adapter.
func (*Adapter) EncodeInstruction(accounts swap.Accounts, amountIn, amountOut uint64, mode swap.Mode) (*types.Instruction, error) {
	accs, ok := accounts.(*Accounts)
	if !ok {
		return nil, swaperrors.ErrInvalidAccountData.WithDetails(map[string]any{
			"protocol": Name,
			"accounts": fmt.Sprintf("%T", accounts),
		})
	}
	return NewSwapInstruction(accs, amountIn, amountOut, mode)
}

// DecodeInstruction implements swap.Adapter.
func (*Adapter) DecodeInstruction(data []byte) (*swap.Args, error) {
	return DecodeSwapData(data)
}
