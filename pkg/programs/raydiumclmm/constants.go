// Package raydiumclmm encodes swap_v2 instructions for the Raydium
// concentrated liquidity (CLMM) program.
package raydiumclmm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/swapcpi/pkg/discriminator"
)

// Name is the protocol name used in the swap registry.
const Name = "raydium_clmm"

// Program IDs.
var (
	ProgramID     = solana.MustPublicKeyFromBase58("CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK")
	Token2022ID   = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")
	MemoProgramID = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")
)

// SwapV2Discriminator selects the swap_v2 handler.
var SwapV2Discriminator = discriminator.ForInstruction("swap_v2")

// BitmapExtensionSeed is the seed of the tick array bitmap extension PDA.
const BitmapExtensionSeed = "pool_tick_array_bitmap_extension"

const (
	// AccountsLen is the number of fixed accounts a swap needs, program included.
	AccountsLen = 14

	// SwapDataLen is the size of a swap_v2 payload: discriminator, amount,
	// other_amount_threshold, sqrt_price_limit_x64 and is_base_input.
	SwapDataLen = discriminator.Size + 8 + 8 + 16 + 1
)

// BitmapExtension returns the tick array bitmap extension PDA of pool. It is
// usually passed as the first remaining account.
func BitmapExtension(pool solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(BitmapExtensionSeed), pool.Bytes()}, ProgramID)
}
