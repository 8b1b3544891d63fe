// Package swap turns a uniform swap request into a protocol-specific
// instruction and hands it to a host for execution.
//
// Each supported DEX program is described by an Adapter. Adapters are kept in
// a Registry keyed by program ID, and the Dispatcher picks the adapter from the
// first account of the caller's account list:
//
//	registry := swap.NewRegistry()
//	registry.MustRegister(raydiumcpmm.NewAdapter())
//
//	d := swap.NewDispatcher(registry, h)
//	err := d.Swap(ctx, accounts, amountIn, amountOut, swap.ExactIn)
//
// Protocols are added by registering an adapter, never by editing dispatch.
package swap

import (
	"context"

	"github.com/lugondev/swapcpi/pkg/host"
	"github.com/lugondev/swapcpi/pkg/types"
)

// Accounts is a decoded, protocol-specific account structure.
type Accounts interface {
	// Metas returns the instruction account metas in the order the program expects.
	Metas() []types.AccountMeta

	// Infos returns the account infos the host needs to honour the metas.
	Infos() []*types.AccountInfo
}

// Args are the swap arguments carried in an instruction payload.
type Args struct {
	Mode      Mode   `json:"mode" yaml:"mode"`
	AmountIn  uint64 `json:"amount_in" yaml:"amount_in"`
	AmountOut uint64 `json:"amount_out" yaml:"amount_out"`
}

// Swapper is the two-method swap capability implemented by every protocol
// over its own account structure A.
//
// Swap must behave exactly like SwapSigned with no signers. Host failures are
// returned unchanged.
type Swapper[A Accounts] interface {
	Swap(ctx context.Context, h host.Host, accounts A, amountIn, amountOut uint64, mode Mode) error
	SwapSigned(ctx context.Context, h host.Host, accounts A, amountIn, amountOut uint64, mode Mode, signers types.Signers) error
}

// Adapter is the type-erased codec for one DEX program.
type Adapter interface {
	// Name returns a short, unique protocol name such as "raydium_cpmm".
	Name() string

	// ProgramID returns the program this adapter encodes instructions for.
	ProgramID() types.Pubkey

	// DecodeAccounts validates and destructures a raw account list whose first
	// entry is the program account.
	DecodeAccounts(accounts []*types.AccountInfo) (Accounts, error)

	// EncodeInstruction builds the swap instruction for accounts previously
	// returned by DecodeAccounts.
	EncodeInstruction(accounts Accounts, amountIn, amountOut uint64, mode Mode) (*types.Instruction, error)

	// DecodeInstruction parses a swap payload produced by EncodeInstruction.
	DecodeInstruction(data []byte) (*Args, error)
}

// Context is the result of protocol detection: the adapter owning the first
// account together with the decoded accounts.
type Context struct {
	Adapter  Adapter
	Accounts Accounts
}

// Protocol returns the detected protocol name.
func (c *Context) Protocol() string {
	return c.Adapter.Name()
}

// Instruction encodes the swap instruction for the detected protocol.
func (c *Context) Instruction(amountIn, amountOut uint64, mode Mode) (*types.Instruction, error) {
	return c.Adapter.EncodeInstruction(c.Accounts, amountIn, amountOut, mode)
}

// Swap is SwapSigned with no signers.
func (c *Context) Swap(ctx context.Context, h host.Host, amountIn, amountOut uint64, mode Mode) error {
	return c.SwapSigned(ctx, h, amountIn, amountOut, mode, nil)
}

// SwapSigned encodes the instruction and invokes it through h. Errors returned
// by h are passed through as-is.
func (c *Context) SwapSigned(ctx context.Context, h host.Host, amountIn, amountOut uint64, mode Mode, signers types.Signers) error {
	ix, err := c.Instruction(amountIn, amountOut, mode)
	if err != nil {
		return err
	}
	return h.Invoke(ctx, ix, c.Accounts.Infos(), signers)
}

// Invoke is a helper for Swapper implementations: it encodes accounts with
// adapter and invokes the result through h.
func Invoke[A Accounts](ctx context.Context, h host.Host, adapter Adapter, accounts A, amountIn, amountOut uint64, mode Mode, signers types.Signers) error {
	c := Context{Adapter: adapter, Accounts: accounts}
	return c.SwapSigned(ctx, h, amountIn, amountOut, mode, signers)
}
