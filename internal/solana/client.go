package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/lugondev/swapcpi/internal/config"
)

// TransactionClient is the slice of the RPC surface RPCHost needs.
type TransactionClient interface {
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
	SimulateTransaction(ctx context.Context, tx *solana.Transaction) (*rpc.SimulateTransactionResult, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

var _ TransactionClient = (*Client)(nil)

// Client wraps the Solana RPC client
type Client struct {
	rpc        *rpc.Client
	commitment rpc.CommitmentType
}

// NewClient creates a client for endpoint reading at commitment.
func NewClient(endpoint string, commitment rpc.CommitmentType) *Client {
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	return &Client{
		rpc:        rpc.New(endpoint),
		commitment: commitment,
	}
}

// NewClientFromConfig creates a client for the configured network.
func NewClientFromConfig(cfg *config.SolanaConfig) *Client {
	return NewClient(cfg.GetRPCEndpoint(), rpc.CommitmentType(cfg.Commitment))
}

// RPC exposes the underlying rpc.Client.
func (c *Client) RPC() *rpc.Client {
	return c.rpc
}

// Commitment returns the commitment used for reads and preflight.
func (c *Client) Commitment() rpc.CommitmentType {
	return c.commitment
}

// GetLatestBlockhash returns the latest blockhash
func (c *Client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	result, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}
	if result == nil || result.Value == nil {
		return solana.Hash{}, fmt.Errorf("failed to get latest blockhash: empty result")
	}
	return result.Value.Blockhash, nil
}

// GetAccountInfo returns the account info for a given public key
func (c *Client) GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	result, err := c.rpc.GetAccountInfoWithOpts(ctx, pubkey, &rpc.GetAccountInfoOpts{Commitment: c.commitment})
	if err != nil {
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}
	return result, nil
}

// SimulateTransaction simulates tx without verifying signatures.
func (c *Client) SimulateTransaction(ctx context.Context, tx *solana.Transaction) (*rpc.SimulateTransactionResult, error) {
	result, err := c.rpc.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		Commitment: c.commitment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to simulate transaction: %w", err)
	}
	if result == nil || result.Value == nil {
		return nil, fmt.Errorf("failed to simulate transaction: empty result")
	}
	return result.Value, nil
}

// SendTransaction sends a transaction with preflight at the client commitment.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	return sig, nil
}

// Close closes the client connection
func (c *Client) Close() error {
	return c.rpc.Close()
}
