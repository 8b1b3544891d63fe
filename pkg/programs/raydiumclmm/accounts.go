package raydiumclmm

import (
	swaperrors "github.com/lugondev/swapcpi/internal/errors"
	"github.com/lugondev/swapcpi/pkg/types"
)

// Accounts are the accounts of a CLMM swap_v2 call.
type Accounts struct {
	Program            *types.AccountInfo
	Payer              *types.AccountInfo
	AmmConfig          *types.AccountInfo
	PoolState          *types.AccountInfo
	InputTokenAccount  *types.AccountInfo
	OutputTokenAccount *types.AccountInfo
	InputVault         *types.AccountInfo
	OutputVault        *types.AccountInfo
	ObservationState   *types.AccountInfo
	TokenProgram       *types.AccountInfo
	TokenProgram2022   *types.AccountInfo
	MemoProgram        *types.AccountInfo
	InputVaultMint     *types.AccountInfo
	OutputVaultMint    *types.AccountInfo

	// Remaining holds the bitmap extension and tick arrays the swap crosses.
	Remaining []*types.AccountInfo
}

// NewAccounts destructures a raw account list laid out as
//
//	[0] program, [1] payer, [2] amm_config, [3] pool_state,
//	[4] input_token_account, [5] output_token_account, [6] input_vault,
//	[7] output_vault, [8] observation_state, [9] token_program,
//	[10] token_program_2022, [11] memo_program, [12] input_vault_mint,
//	[13] output_vault_mint, [14..] remaining accounts
func NewAccounts(accounts []*types.AccountInfo) (*Accounts, error) {
	if len(accounts) < AccountsLen {
		return nil, swaperrors.NotEnoughAccountKeys(Name, AccountsLen, len(accounts))
	}
	for i, acc := range accounts {
		if acc == nil {
			return nil, swaperrors.ErrMissingAccount.WithDetails(map[string]any{
				"protocol": Name,
				"index":    i,
			})
		}
	}

	a := &Accounts{
		Program:            accounts[0],
		Payer:              accounts[1],
		AmmConfig:          accounts[2],
		PoolState:          accounts[3],
		InputTokenAccount:  accounts[4],
		OutputTokenAccount: accounts[5],
		InputVault:         accounts[6],
		OutputVault:        accounts[7],
		ObservationState:   accounts[8],
		TokenProgram:       accounts[9],
		TokenProgram2022:   accounts[10],
		MemoProgram:        accounts[11],
		InputVaultMint:     accounts[12],
		OutputVaultMint:    accounts[13],
	}
	if len(accounts) > AccountsLen {
		a.Remaining = append([]*types.AccountInfo(nil), accounts[AccountsLen:]...)
	}
	return a, nil
}

// Metas returns the instruction metas: 13 fixed accounts followed by the
// remaining accounts, which are always writable.
func (a *Accounts) Metas() []types.AccountMeta {
	metas := make([]types.AccountMeta, 0, AccountsLen-1+len(a.Remaining))
	metas = append(metas,
		types.ReadonlySigner(a.Payer.Key),
		types.Readonly(a.AmmConfig.Key),
		types.Writable(a.PoolState.Key),
		types.Writable(a.InputTokenAccount.Key),
		types.Writable(a.OutputTokenAccount.Key),
		types.Writable(a.InputVault.Key),
		types.Writable(a.OutputVault.Key),
		types.Writable(a.ObservationState.Key),
		types.Readonly(a.TokenProgram.Key),
		types.Readonly(a.TokenProgram2022.Key),
		types.Readonly(a.MemoProgram.Key),
		types.Readonly(a.InputVaultMint.Key),
		types.Readonly(a.OutputVaultMint.Key),
	)
	for _, acc := range a.Remaining {
		metas = append(metas, types.Writable(acc.Key))
	}
	return metas
}

// Infos returns the account infos backing Metas, in the same order.
func (a *Accounts) Infos() []*types.AccountInfo {
	infos := make([]*types.AccountInfo, 0, AccountsLen-1+len(a.Remaining))
	infos = append(infos,
		a.Payer,
		a.AmmConfig,
		a.PoolState,
		a.InputTokenAccount,
		a.OutputTokenAccount,
		a.InputVault,
		a.OutputVault,
		a.ObservationState,
		a.TokenProgram,
		a.TokenProgram2022,
		a.MemoProgram,
		a.InputVaultMint,
		a.OutputVaultMint,
	)
	return append(infos, a.Remaining...)
}
