package raydiumcpmm

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	swaperrors "github.com/lugondev/swapcpi/internal/errors"
	"github.com/lugondev/swapcpi/pkg/host"
	"github.com/lugondev/swapcpi/pkg/swap"
	"github.com/lugondev/swapcpi/pkg/types"
)

// testAccounts returns a valid account list with n entries after the program.
// Every account except the program is writable and the payer signs.
func testAccounts(n int) []*types.AccountInfo {
	accounts := []*types.AccountInfo{types.NewAccountInfo(ProgramID, false, false)}
	for i := 0; i < n; i++ {
		accounts = append(accounts, types.NewAccountInfo(solana.NewWallet().PublicKey(), i == 0, true))
	}
	return accounts
}

func TestProgramIDBytes(t *testing.T) {
	expected := [32]byte{
		169, 42, 90, 139, 79, 41, 89, 82, 132, 37, 80, 170, 147, 253, 91, 149, 181, 172, 230, 168, 235,
		146, 12, 147, 148, 46, 67, 105, 12, 32, 236, 115,
	}
	assert.Equal(t, expected, [32]byte(ProgramID))
}

func TestDiscriminators(t *testing.T) {
	assert.Equal(t, []byte{143, 190, 90, 218, 196, 30, 51, 222}, SwapBaseInputDiscriminator.Bytes())
	assert.Equal(t, []byte{55, 217, 98, 86, 163, 74, 180, 173}, SwapBaseOutputDiscriminator.Bytes())
}

func TestEncodeSwapData(t *testing.T) {
	tests := []struct {
		name      string
		amountIn  uint64
		amountOut uint64
		mode      swap.Mode
		expected  []byte
	}{
		{
			name:      "exact in",
			amountIn:  1_000_000,
			amountOut: 990_000,
			mode:      swap.ExactIn,
			expected: []byte{
				143, 190, 90, 218, 196, 30, 51, 222,
				0x40, 0x42, 0x0f, 0, 0, 0, 0, 0,
				0x30, 0x1b, 0x0f, 0, 0, 0, 0, 0,
			},
		},
		{
			name:      "exact out",
			amountIn:  math.MaxUint64,
			amountOut: 1,
			mode:      swap.ExactOut,
			expected: []byte{
				55, 217, 98, 86, 163, 74, 180, 173,
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
				1, 0, 0, 0, 0, 0, 0, 0,
			},
		},
		{
			name:      "zero amounts",
			amountIn:  0,
			amountOut: 0,
			mode:      swap.ExactIn,
			expected: []byte{
				143, 190, 90, 218, 196, 30, 51, 222,
				0, 0, 0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 0, 0, 0, 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeSwapData(tt.amountIn, tt.amountOut, tt.mode)
			require.NoError(t, err)
			assert.Len(t, data, SwapDataLen)
			assert.Equal(t, tt.expected, data)

			args, err := DecodeSwapData(data)
			require.NoError(t, err)
			assert.Equal(t, swap.Args{Mode: tt.mode, AmountIn: tt.amountIn, AmountOut: tt.amountOut}, *args)
		})
	}
}

func TestEncodeSwapDataInvalidMode(t *testing.T) {
	_, err := EncodeSwapData(1, 1, swap.Mode(7))
	assert.True(t, errors.Is(err, swaperrors.ErrInvalidMode))
}

func TestDecodeSwapDataErrors(t *testing.T) {
	valid, err := EncodeSwapData(5, 6, swap.ExactIn)
	require.NoError(t, err)

	unknown := append([]byte{}, valid...)
	unknown[0] ^= 0xff

	for name, data := range map[string][]byte{
		"short":                 valid[:23],
		"long":                  append(append([]byte{}, valid...), 0),
		"unknown discriminator": unknown,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSwapData(data)
			assert.True(t, errors.Is(err, swaperrors.ErrInvalidInstructionData), "got %v", err)
		})
	}
}

func TestNewAccountsNotEnoughKeys(t *testing.T) {
	for n := 0; n < AccountsLen-1; n++ {
		_, err := NewAccounts(testAccounts(n))
		assert.True(t, errors.Is(err, swaperrors.ErrNotEnoughAccountKeys), "n=%d: %v", n, err)
	}
}

func TestNewAccountsIgnoresExtra(t *testing.T) {
	raw := testAccounts(AccountsLen + 2)
	accs, err := NewAccounts(raw)
	require.NoError(t, err)

	assert.Equal(t, raw[0], accs.Program)
	assert.Equal(t, raw[1], accs.Payer)
	assert.Equal(t, raw[13], accs.ObservationState)
	assert.Len(t, accs.Metas(), 13)
	assert.Len(t, accs.Infos(), 13)
}

func TestMetasOrderAndFlags(t *testing.T) {
	raw := testAccounts(AccountsLen - 1)
	accs, err := NewAccounts(raw)
	require.NoError(t, err)

	type flags struct{ signer, writable bool }
	expected := []flags{
		{true, false},  // payer
		{false, false}, // authority
		{false, false}, // amm_config
		{false, true},  // pool_state
		{false, true},  // input_token_account
		{false, true},  // output_token_account
		{false, true},  // input_vault
		{false, true},  // output_vault
		{false, false}, // input_token_program
		{false, false}, // output_token_program
		{false, false}, // input_token_mint
		{false, false}, // output_token_mint
		{false, true},  // observation_state
	}

	metas := accs.Metas()
	require.Len(t, metas, len(expected))
	for i, meta := range metas {
		assert.Equal(t, raw[i+1].Key, meta.Pubkey, "meta %d key", i)
		assert.Equal(t, expected[i], flags{meta.IsSigner, meta.IsWritable}, "meta %d flags", i)
		assert.Equal(t, raw[i+1], accs.Infos()[i], "info %d", i)
	}
}

func TestSwapperInvokesHost(t *testing.T) {
	raw := testAccounts(AccountsLen - 1)
	accs, err := NewAccounts(raw)
	require.NoError(t, err)

	rec := host.NewRecorder(solana.NewWallet().PublicKey())
	require.NoError(t, Swapper{}.Swap(context.Background(), rec, accs, 100, 90, swap.ExactIn))

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, ProgramID, last.Instruction.ProgramID)
	assert.Equal(t, accs.Metas(), last.Instruction.Accounts)

	expected, err := EncodeSwapData(100, 90, swap.ExactIn)
	require.NoError(t, err)
	assert.Equal(t, expected, last.Instruction.Data)
	assert.Empty(t, last.Signers)
}

func TestSwapperForwardsHostError(t *testing.T) {
	accs, err := NewAccounts(testAccounts(AccountsLen - 1))
	require.NoError(t, err)

	hostErr := errors.New("custom program error: 0x1771")
	rec := host.NewRecorder(solana.NewWallet().PublicKey()).FailWith(hostErr)

	err = Swapper{}.SwapSigned(context.Background(), rec, accs, 1, 1, swap.ExactOut, nil)
	assert.Same(t, hostErr, err)
}

func TestSwapperPDAPayer(t *testing.T) {
	caller := solana.NewWallet().PublicKey()
	seed := []byte("vault")
	pda, bump, err := solana.FindProgramAddress([][]byte{seed}, caller)
	require.NoError(t, err)

	raw := testAccounts(AccountsLen - 1)
	raw[1] = types.NewAccountInfo(pda, false, true)
	accs, err := NewAccounts(raw)
	require.NoError(t, err)

	rec := host.NewRecorder(caller)
	err = Swapper{}.Swap(context.Background(), rec, accs, 1, 1, swap.ExactIn)
	assert.True(t, errors.Is(err, swaperrors.ErrMissingSigner))

	signers := types.Signers{types.NewSigner(seed, []byte{bump})}
	require.NoError(t, Swapper{}.SwapSigned(context.Background(), rec, accs, 1, 1, swap.ExactIn, signers))
}

func TestAdapter(t *testing.T) {
	a := NewAdapter()
	assert.Equal(t, Name, a.Name())
	assert.Equal(t, ProgramID, a.ProgramID())

	decoded, err := a.DecodeAccounts(testAccounts(AccountsLen - 1))
	require.NoError(t, err)

	ix, err := a.EncodeInstruction(decoded, 7, 8, swap.ExactOut)
	require.NoError(t, err)

	args, err := a.DecodeInstruction(ix.Data)
	require.NoError(t, err)
	assert.Equal(t, swap.ExactOut, args.Mode)
	assert.Equal(t, uint64(7), args.AmountIn)
	assert.Equal(t, uint64(8), args.AmountOut)
}

type otherAccounts struct{}

func (otherAccounts) Metas() []types.AccountMeta   { return nil }
func (otherAccounts) Infos() []*types.AccountInfo { return nil }

func TestAdapterRejectsForeignAccounts(t *testing.T) {
	_, err := NewAdapter().EncodeInstruction(otherAccounts{}, 1, 1, swap.ExactIn)
	assert.True(t, errors.Is(err, swaperrors.ErrInvalidAccountData))
}

func TestAuthority(t *testing.T) {
	addr, _, err := Authority()
	require.NoError(t, err)
	assert.False(t, addr.IsOnCurve())
}
