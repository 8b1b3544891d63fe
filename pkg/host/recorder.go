package host

import (
	"context"
	"log/slog"
	"sync"

	swaperrors "github.com/lugondev/swapcpi/internal/errors"
	"github.com/lugondev/swapcpi/pkg/types"
)

// Invocation is one instruction accepted by a Recorder.
type Invocation struct {
	// Instruction is a copy of the invoked instruction.
	Instruction types.Instruction

	// Infos are the keys of the account infos passed alongside the instruction.
	Infos []types.Pubkey

	// Signers are the PDA seed sets supplied to the invoke.
	Signers types.Signers

	// SignedPDAs are the addresses derived from Signers under the caller program.
	SignedPDAs []types.Pubkey
}

// Recorder is an in-process Host. It enforces the runtime's cross-program
// privilege rules and records every instruction that passes them.
//
// A meta may only be writable if its account info is writable, and may only be
// a signer if its account info signed the transaction or its key is a PDA
// derived from one of the signer seed sets under the caller program.
type Recorder struct {
	callerProgram types.Pubkey
	logger        *slog.Logger

	mu          sync.Mutex
	invocations []Invocation
	failWith    func(ix *types.Instruction) error
}

// NewRecorder creates a Recorder acting as callerProgram.
func NewRecorder(callerProgram types.Pubkey) *Recorder {
	return &Recorder{
		callerProgram: callerProgram,
		logger:        slog.Default(),
	}
}

// WithLogger sets a custom logger for the Recorder.
func (r *Recorder) WithLogger(logger *slog.Logger) *Recorder {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// FailWith makes every subsequent invoke return err after the privilege checks
// pass. The instruction is still recorded, as the runtime would have executed it.
func (r *Recorder) FailWith(err error) *Recorder {
	return r.FailWhen(func(*types.Instruction) error { return err })
}

// FailWhen installs a hook deciding the outcome of each accepted instruction.
func (r *Recorder) FailWhen(fn func(ix *types.Instruction) error) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith = fn
	return r
}

// CallerProgram returns the program the recorder signs PDAs for.
func (r *Recorder) CallerProgram() types.Pubkey {
	return r.callerProgram
}

// Invoke implements Host interface.
func (r *Recorder) Invoke(ctx context.Context, ix *types.Instruction, infos []*types.AccountInfo, signers types.Signers) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pdas, err := signers.Addresses(r.callerProgram)
	if err != nil {
		return swaperrors.ErrMissingSigner.WithCause(err)
	}

	if err := checkPrivileges(ix, infos, pdas); err != nil {
		r.logger.Debug("invoke rejected",
			"program_id", ix.ProgramID.String(),
			"error", err,
		)
		return err
	}

	inv := Invocation{
		Instruction: cloneInstruction(ix),
		Infos:       make([]types.Pubkey, 0, len(infos)),
		Signers:     signers,
		SignedPDAs:  pdas,
	}
	for _, info := range infos {
		inv.Infos = append(inv.Infos, info.Key)
	}

	r.mu.Lock()
	r.invocations = append(r.invocations, inv)
	fail := r.failWith
	r.mu.Unlock()

	r.logger.Debug("invoke recorded",
		"program_id", ix.ProgramID.String(),
		"accounts", len(ix.Accounts),
		"data_len", len(ix.Data),
		"signers", len(signers),
	)

	if fail != nil {
		return fail(ix)
	}
	return nil
}

// Invocations returns a snapshot of the recorded invocations.
func (r *Recorder) Invocations() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Invocation, len(r.invocations))
	copy(out, r.invocations)
	return out
}

// Last returns the most recent invocation.
func (r *Recorder) Last() (Invocation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.invocations) == 0 {
		return Invocation{}, false
	}
	return r.invocations[len(r.invocations)-1], true
}

// Reset clears the recorded invocations.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invocations = nil
}

func checkPrivileges(ix *types.Instruction, infos []*types.AccountInfo, pdas []types.Pubkey) error {
	for i, meta := range ix.Accounts {
		info := findInfo(infos, meta.Pubkey)
		if info == nil {
			return swaperrors.ErrMissingAccount.WithDetails(map[string]any{
				"index":  i,
				"pubkey": meta.Pubkey.String(),
			})
		}

		if meta.IsWritable && !info.IsWritable {
			return swaperrors.ErrReadonlyAccount.WithDetails(map[string]any{
				"index":  i,
				"pubkey": meta.Pubkey.String(),
			})
		}

		if meta.IsSigner && !info.IsSigner && !containsKey(pdas, meta.Pubkey) {
			return swaperrors.ErrMissingSigner.WithDetails(map[string]any{
				"index":  i,
				"pubkey": meta.Pubkey.String(),
			})
		}
	}
	return nil
}

func findInfo(infos []*types.AccountInfo, key types.Pubkey) *types.AccountInfo {
	for _, info := range infos {
		if info != nil && info.Key.Equals(key) {
			return info
		}
	}
	return nil
}

func containsKey(keys []types.Pubkey, key types.Pubkey) bool {
	for _, k := range keys {
		if k.Equals(key) {
			return true
		}
	}
	return false
}

func cloneInstruction(ix *types.Instruction) types.Instruction {
	out := types.Instruction{
		ProgramID: ix.ProgramID,
		Accounts:  make([]types.AccountMeta, len(ix.Accounts)),
		Data:      make([]byte, len(ix.Data)),
	}
	copy(out.Accounts, ix.Accounts)
	copy(out.Data, ix.Data)
	return out
}
