package raydiumcpmm

import (
	swaperrors "github.com/lugondev/swapcpi/internal/errors"
	"github.com/lugondev/swapcpi/pkg/types"
)

// Accounts are the accounts of a CPMM swap_base_input / swap_base_output call.
type Accounts struct {
	Program            *types.AccountInfo
	Payer              *types.AccountInfo
	Authority          *types.AccountInfo
	AmmConfig          *types.AccountInfo
	PoolState          *types.AccountInfo
	InputTokenAccount  *types.AccountInfo
	OutputTokenAccount *types.AccountInfo
	InputVault         *types.AccountInfo
	OutputVault        *types.AccountInfo
	InputTokenProgram  *types.AccountInfo
	OutputTokenProgram *types.AccountInfo
	InputTokenMint     *types.AccountInfo
	OutputTokenMint    *types.AccountInfo
	ObservationState   *types.AccountInfo
}

// NewAccounts destructures a raw account list laid out as
//
//	[0] program, [1] payer, [2] authority, [3] amm_config, [4] pool_state,
//	[5] input_token_account, [6] output_token_account, [7] input_vault,
//	[8] output_vault, [9] input_token_program, [10] output_token_program,
//	[11] input_token_mint, [12] output_token_mint, [13] observation_state
//
// Anything after index 13 is ignored.
func NewAccounts(accounts []*types.AccountInfo) (*Accounts, error) {
	if len(accounts) < AccountsLen {
		return nil, swaperrors.NotEnoughAccountKeys(Name, AccountsLen, len(accounts))
	}
	for i, acc := range accounts[:AccountsLen] {
		if acc == nil {
			return nil, swaperrors.ErrMissingAccount.WithDetails(map[string]any{
				"protocol": Name,
				"index":    i,
			})
		}
	}

	return &Accounts{
		Program:            accounts[0],
		Payer:              accounts[1],
		Authority:          accounts[2],
		AmmConfig:          accounts[3],
		PoolState:          accounts[4],
		InputTokenAccount:  accounts[5],
		OutputTokenAccount: accounts[6],
		InputVault:         accounts[7],
		OutputVault:        accounts[8],
		InputTokenProgram:  accounts[9],
		OutputTokenProgram: accounts[10],
		InputTokenMint:     accounts[11],
		OutputTokenMint:    accounts[12],
		ObservationState:   accounts[13],
	}, nil
}

// Metas returns the 13 instruction metas in program order.
func (a *Accounts) Metas() []types.AccountMeta {
	return []types.AccountMeta{
		types.ReadonlySigner(a.Payer.Key),
		types.Readonly(a.Authority.Key),
		types.Readonly(a.AmmConfig.Key),
		types.Writable(a.PoolState.Key),
		types.Writable(a.InputTokenAccount.Key),
		types.Writable(a.OutputTokenAccount.Key),
		types.Writable(a.InputVault.Key),
		types.Writable(a.OutputVault.Key),
		types.Readonly(a.InputTokenProgram.Key),
		types.Readonly(a.OutputTokenProgram.Key),
		types.Readonly(a.InputTokenMint.Key),
		types.Readonly(a.OutputTokenMint.Key),
		types.Writable(a.ObservationState.Key),
	}
}

// Infos returns the account infos backing Metas, in the same order.
func (a *Accounts) Infos() []*types.AccountInfo {
	return []*types.AccountInfo{
		a.Payer,
		a.Authority,
		a.AmmConfig,
		a.PoolState,
		a.InputTokenAccount,
		a.OutputTokenAccount,
		a.InputVault,
		a.OutputVault,
		a.InputTokenProgram,
		a.OutputTokenProgram,
		a.InputTokenMint,
		a.OutputTokenMint,
		a.ObservationState,
	}
}
