// Package types provides the base Solana types used throughout swapcpi.
// It wraps and extends the solana-go library types for consistency and convenience.
package types

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Pubkey is a Solana public key (32 bytes).
type Pubkey = solana.PublicKey

// Signature is a Solana transaction signature (64 bytes).
type Signature = solana.Signature

// Hash is a Solana hash (32 bytes), typically used for blockhashes.
type Hash = solana.Hash

// AccountInfo is the host's view of an account handed to a swap call.
//
// The privilege flags describe what the caller was granted for this account,
// not what the invoked program asks for; the host compares the two on invoke.
type AccountInfo struct {
	// Key is the address of the account.
	Key Pubkey `json:"key" yaml:"key"`

	// Owner is the program that owns this account.
	Owner Pubkey `json:"owner" yaml:"owner"`

	// Lamports is the number of lamports owned by this account.
	Lamports uint64 `json:"lamports" yaml:"lamports"`

	// Data is the data held in this account.
	Data []byte `json:"data" yaml:"-"`

	// IsSigner indicates the account signed the outer transaction.
	IsSigner bool `json:"is_signer" yaml:"signer"`

	// IsWritable indicates the account may be mutated.
	IsWritable bool `json:"is_writable" yaml:"writable"`

	// Executable indicates if the account contains a program.
	Executable bool `json:"executable" yaml:"executable"`
}

// NewAccountInfo creates an AccountInfo with the given key and privileges.
func NewAccountInfo(key Pubkey, isSigner, isWritable bool) *AccountInfo {
	return &AccountInfo{
		Key:        key,
		IsSigner:   isSigner,
		IsWritable: isWritable,
	}
}

// AccountMeta describes a single account involved in an instruction.
type AccountMeta struct {
	// Pubkey is the public key of the account.
	Pubkey Pubkey `json:"pubkey"`

	// IsSigner indicates if the account is a signer.
	IsSigner bool `json:"is_signer"`

	// IsWritable indicates if the account is writable.
	IsWritable bool `json:"is_writable"`
}

// Readonly returns a read-only, non-signer meta.
func Readonly(key Pubkey) AccountMeta {
	return AccountMeta{Pubkey: key}
}

// Writable returns a writable, non-signer meta.
func Writable(key Pubkey) AccountMeta {
	return AccountMeta{Pubkey: key, IsWritable: true}
}

// ReadonlySigner returns a read-only signer meta.
func ReadonlySigner(key Pubkey) AccountMeta {
	return AccountMeta{Pubkey: key, IsSigner: true}
}

// WritableSigner returns a writable signer meta.
func WritableSigner(key Pubkey) AccountMeta {
	return AccountMeta{Pubkey: key, IsSigner: true, IsWritable: true}
}

// ToSolanaAccountMeta converts to solana-go AccountMeta.
func (am *AccountMeta) ToSolanaAccountMeta() *solana.AccountMeta {
	return &solana.AccountMeta{
		PublicKey:  am.Pubkey,
		IsSigner:   am.IsSigner,
		IsWritable: am.IsWritable,
	}
}

// FromSolanaAccountMeta creates AccountMeta from solana-go AccountMeta.
func FromSolanaAccountMeta(meta *solana.AccountMeta) AccountMeta {
	return AccountMeta{
		Pubkey:     meta.PublicKey,
		IsSigner:   meta.IsSigner,
		IsWritable: meta.IsWritable,
	}
}

// Instruction represents a Solana instruction.
type Instruction struct {
	// ProgramID is the program that will process this instruction.
	ProgramID Pubkey `json:"program_id"`

	// Accounts is the list of accounts to pass to the program.
	Accounts []AccountMeta `json:"accounts"`

	// Data is the instruction data.
	Data []byte `json:"data"`
}

// ToSolana converts the instruction into a solana-go instruction suitable for
// transaction building.
func (ix *Instruction) ToSolana() solana.Instruction {
	metas := make(solana.AccountMetaSlice, 0, len(ix.Accounts))
	for i := range ix.Accounts {
		metas = append(metas, ix.Accounts[i].ToSolanaAccountMeta())
	}
	return solana.NewInstruction(ix.ProgramID, metas, ix.Data)
}

// Signer is one set of PDA seeds the calling program signs with.
type Signer [][]byte

// NewSigner creates a Signer from the given seeds.
func NewSigner(seeds ...[]byte) Signer {
	return Signer(seeds)
}

// Address derives the program address these seeds sign for under program.
func (s Signer) Address(program Pubkey) (Pubkey, error) {
	addr, err := solana.CreateProgramAddress(s, program)
	if err != nil {
		return Pubkey{}, fmt.Errorf("failed to derive program address: %w", err)
	}
	return addr, nil
}

// Signers is the list of seed sets passed to a signed invoke.
type Signers []Signer

// Addresses derives every PDA the seed sets sign for. Seed sets that do not
// produce a valid off-curve address are reported as an error.
func (s Signers) Addresses(program Pubkey) ([]Pubkey, error) {
	out := make([]Pubkey, 0, len(s))
	for i, signer := range s {
		addr, err := signer.Address(program)
		if err != nil {
			return nil, fmt.Errorf("signer %d: %w", i, err)
		}
		out = append(out, addr)
	}
	return out, nil
}
