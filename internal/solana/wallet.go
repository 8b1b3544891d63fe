package solana

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// Wallet is a keypair able to pay for and sign RPC host transactions.
type Wallet struct {
	privateKey solana.PrivateKey
}

// NewWallet generates a new random wallet
func NewWallet() *Wallet {
	return &Wallet{privateKey: solana.NewWallet().PrivateKey}
}

// WalletFromPrivateKey creates a wallet from an existing private key
func WalletFromPrivateKey(pk solana.PrivateKey) (*Wallet, error) {
	if err := pk.Validate(); err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &Wallet{privateKey: pk}, nil
}

// WalletFromBase58 creates a wallet from a base58-encoded private key
func WalletFromBase58(key string) (*Wallet, error) {
	pk, err := solana.PrivateKeyFromBase58(strings.TrimSpace(key))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return WalletFromPrivateKey(pk)
}

// WalletFromFile loads a wallet from a JSON keypair file (Solana CLI format)
func WalletFromFile(path string) (*Wallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keypair file: %w", err)
	}
	pk, err := solana.PrivateKeyFromSolanaKeygenFileBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse keypair %s: %w", path, err)
	}
	return WalletFromPrivateKey(pk)
}

// LoadWallet accepts either a keypair file path or a base58 private key.
// A leading "~/" is expanded to the home directory.
func LoadWallet(keypair string) (*Wallet, error) {
	keypair = strings.TrimSpace(keypair)
	if keypair == "" {
		return nil, errors.New("no keypair configured")
	}

	path := keypair
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = home + path[1:]
	}

	if _, err := os.Stat(path); err == nil {
		return WalletFromFile(path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat keypair file: %w", err)
	}
	return WalletFromBase58(keypair)
}

// PublicKey returns the wallet's public key
func (w *Wallet) PublicKey() solana.PublicKey {
	return w.privateKey.PublicKey()
}

// PrivateKey returns the wallet's private key
func (w *Wallet) PrivateKey() solana.PrivateKey {
	return w.privateKey
}

// SaveToFile saves the keypair to a JSON file (Solana CLI format)
func (w *Wallet) SaveToFile(path string) error {
	ints := make([]int, len(w.privateKey))
	for i, b := range w.privateKey {
		ints[i] = int(b)
	}
	data, err := json.Marshal(ints)
	if err != nil {
		return fmt.Errorf("failed to marshal keypair: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write keypair file: %w", err)
	}
	return nil
}

// String returns the public key as a string
func (w *Wallet) String() string {
	return w.PublicKey().String()
}

// keyring resolves signer keys for transaction signing.
type keyring []*Wallet

func (k keyring) get(key solana.PublicKey) *solana.PrivateKey {
	for _, w := range k {
		if w.PublicKey().Equals(key) {
			pk := w.privateKey
			return &pk
		}
	}
	return nil
}
