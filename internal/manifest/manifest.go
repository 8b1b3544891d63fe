// Package manifest loads swap invocations described in YAML.
//
// A manifest lists the accounts exactly as a program would receive them,
// the amounts and mode, and optionally the PDA seed sets to sign with:
//
//	caller_program: 11111111111111111111111111111111
//	mode: exact_in
//	amount_in: 1_000_000
//	amount_out: 990_000
//	accounts:
//	  - key: CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C
//	  - key: 7YttLkHDoNj9wyDur5pM1ejNaAvT9X4eqaYcHQqtj2G5
//	    signer: true
//	  - name: vault
//	    pda:
//	      program: 11111111111111111111111111111111
//	      seeds: ["vault", "hex:01"]
//	    writable: true
//	signers:
//	  - ["vault", "u8:254"]
package manifest

import (
	"fmt"
	"io"
	"os"

	"github.com/gagliardetto/solana-go"
	"gopkg.in/yaml.v3"

	"github.com/lugondev/swapcpi/pkg/swap"
	"github.com/lugondev/swapcpi/pkg/types"
)

// Manifest is the YAML form of a swap invocation.
type Manifest struct {
	CallerProgram string     `yaml:"caller_program"`
	Mode          string     `yaml:"mode"`
	AmountIn      string     `yaml:"amount_in"`
	AmountOut     string     `yaml:"amount_out"`
	InDecimals    *uint8     `yaml:"in_decimals,omitempty"`
	OutDecimals   *uint8     `yaml:"out_decimals,omitempty"`
	Accounts      []Account  `yaml:"accounts"`
	Signers       [][]string `yaml:"signers,omitempty"`
}

// Account is one entry of the account list.
type Account struct {
	Name     string `yaml:"name,omitempty"`
	Key      string `yaml:"key,omitempty"`
	PDA      *PDA   `yaml:"pda,omitempty"`
	Signer   bool   `yaml:"signer,omitempty"`
	Writable bool   `yaml:"writable,omitempty"`
}

// PDA derives an account key with FindProgramAddress.
type PDA struct {
	Program string   `yaml:"program"`
	Seeds   []string `yaml:"seeds"`
}

// Invocation is a resolved manifest ready for dispatch.
type Invocation struct {
	CallerProgram types.Pubkey
	Mode          swap.Mode
	AmountIn      uint64
	AmountOut     uint64
	Accounts      []*types.AccountInfo
	Signers       types.Signers
}

// Parse decodes a manifest from r. Unknown fields are rejected.
func Parse(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Resolve turns the manifest into keys, amounts and seed sets.
func (m *Manifest) Resolve() (*Invocation, error) {
	inv := &Invocation{}

	if m.CallerProgram != "" {
		key, err := solana.PublicKeyFromBase58(m.CallerProgram)
		if err != nil {
			return nil, fmt.Errorf("caller_program: %w", err)
		}
		inv.CallerProgram = key
	}

	mode := m.Mode
	if mode == "" {
		mode = swap.ExactIn.String()
	}
	var err error
	if inv.Mode, err = swap.ParseMode(mode); err != nil {
		return nil, fmt.Errorf("mode: %w", err)
	}
	if inv.AmountIn, err = resolveAmount(m.AmountIn, m.InDecimals); err != nil {
		return nil, fmt.Errorf("amount_in: %w", err)
	}
	if inv.AmountOut, err = resolveAmount(m.AmountOut, m.OutDecimals); err != nil {
		return nil, fmt.Errorf("amount_out: %w", err)
	}

	inv.Accounts = make([]*types.AccountInfo, 0, len(m.Accounts))
	for i, a := range m.Accounts {
		key, err := a.resolveKey()
		if err != nil {
			return nil, fmt.Errorf("accounts[%d] %s: %w", i, a.Name, err)
		}
		inv.Accounts = append(inv.Accounts, types.NewAccountInfo(key, a.Signer, a.Writable))
	}

	for i, set := range m.Signers {
		seeds, err := ParseSeeds(set)
		if err != nil {
			return nil, fmt.Errorf("signers[%d]: %w", i, err)
		}
		inv.Signers = append(inv.Signers, types.NewSigner(seeds...))
	}
	return inv, nil
}

func (a Account) resolveKey() (types.Pubkey, error) {
	switch {
	case a.Key != "" && a.PDA != nil:
		return types.Pubkey{}, fmt.Errorf("key and pda are mutually exclusive")
	case a.Key != "":
		return solana.PublicKeyFromBase58(a.Key)
	case a.PDA != nil:
		program, err := solana.PublicKeyFromBase58(a.PDA.Program)
		if err != nil {
			return types.Pubkey{}, fmt.Errorf("pda program: %w", err)
		}
		seeds, err := ParseSeeds(a.PDA.Seeds)
		if err != nil {
			return types.Pubkey{}, err
		}
		key, _, err := solana.FindProgramAddress(seeds, program)
		return key, err
	default:
		return types.Pubkey{}, fmt.Errorf("missing key")
	}
}

func resolveAmount(s string, decimals *uint8) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	if decimals != nil {
		return swap.ParseUIAmount(s, *decimals)
	}
	return swap.ParseAmount(s)
}
