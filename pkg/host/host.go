// Package host defines the boundary between swapcpi and the runtime that
// actually executes an instruction.
//
// A Host receives a fully encoded instruction, the account infos backing its
// metas and the PDA seed sets the caller signs with. What "invoke" means is up
// to the implementation: the in-process Recorder checks privileges the way the
// Solana runtime does and records the call, while internal/solana.RPCHost
// submits a transaction to a cluster.
package host

import (
	"context"

	"github.com/lugondev/swapcpi/pkg/types"
)

// Host executes instructions on behalf of a swap dispatch.
type Host interface {
	// Invoke executes ix with the given account infos and signer seeds.
	// The returned error is propagated to the swap caller unchanged.
	Invoke(ctx context.Context, ix *types.Instruction, infos []*types.AccountInfo, signers types.Signers) error
}

// HostFunc is a function type that implements Host.
type HostFunc func(ctx context.Context, ix *types.Instruction, infos []*types.AccountInfo, signers types.Signers) error

// Invoke implements Host interface.
func (f HostFunc) Invoke(ctx context.Context, ix *types.Instruction, infos []*types.AccountInfo, signers types.Signers) error {
	return f(ctx, ix, infos, signers)
}
