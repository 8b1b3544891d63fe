// Package raydiumcpmm encodes swaps for the Raydium constant-product AMM
// (CPMM) program.
package raydiumcpmm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/swapcpi/pkg/discriminator"
)

// Name is the protocol name used in the swap registry.
const Name = "raydium_cpmm"

// ProgramID is the mainnet Raydium CPMM program.
var ProgramID = solana.MustPublicKeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C")

// Instruction discriminators.
var (
	SwapBaseInputDiscriminator  = discriminator.ForInstruction("swap_base_input")
	SwapBaseOutputDiscriminator = discriminator.ForInstruction("swap_base_output")
)

// AuthSeed is the seed of the pool vault and LP mint authority PDA.
const AuthSeed = "vault_and_lp_mint_auth_seed"

const (
	// AccountsLen is the number of leading accounts a swap needs, program included.
	AccountsLen = 14

	// SwapDataLen is the size of a swap instruction payload.
	SwapDataLen = discriminator.Size + 8 + 8
)

// Authority returns the vault authority PDA of the CPMM program.
func Authority() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(AuthSeed)}, ProgramID)
}
