package swap

import (
	"fmt"
	"sort"
	"sync"

	swaperrors "github.com/lugondev/swapcpi/internal/errors"
	"github.com/lugondev/swapcpi/pkg/types"
)

// Registry maps program IDs to adapters. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	adapters map[types.Pubkey]Adapter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[types.Pubkey]Adapter),
	}
}

// Register adds an adapter. Registering a second adapter for the same
// program ID fails with ErrDuplicateProgram.
func (r *Registry) Register(adapter Adapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	programID := adapter.ProgramID()
	if existing, exists := r.adapters[programID]; exists {
		return swaperrors.ErrDuplicateProgram.WithDetails(map[string]any{
			"program_id": programID.String(),
			"existing":   existing.Name(),
			"adapter":    adapter.Name(),
		})
	}

	r.adapters[programID] = adapter
	return nil
}

// MustRegister registers an adapter and panics on error.
func (r *Registry) MustRegister(adapter Adapter) {
	if err := r.Register(adapter); err != nil {
		panic(fmt.Sprintf("failed to register adapter: %v", err))
	}
}

// Lookup returns the adapter registered for programID.
func (r *Registry) Lookup(programID types.Pubkey) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, exists := r.adapters[programID]
	return adapter, exists
}

// LookupName returns the adapter with the given protocol name.
func (r *Registry) LookupName(name string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, adapter := range r.adapters {
		if adapter.Name() == name {
			return adapter, true
		}
	}
	return nil, false
}

// Adapters returns all registered adapters sorted by name.
func (r *Registry) Adapters() []Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Adapter, 0, len(r.adapters))
	for _, adapter := range r.adapters {
		out = append(out, adapter)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})
	return out
}

// Len returns the number of registered adapters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.adapters)
}

// TryFromAccounts detects the protocol from the first account's key and
// decodes the account list with its adapter.
//
// An empty list fails with ErrNotEnoughAccountKeys and an unregistered first
// key with ErrInvalidAccountData.
func (r *Registry) TryFromAccounts(accounts []*types.AccountInfo) (*Context, error) {
	if len(accounts) == 0 {
		return nil, swaperrors.NotEnoughAccountKeys("", 1, 0)
	}
	if accounts[0] == nil {
		return nil, swaperrors.ErrInvalidAccountData
	}

	programID := accounts[0].Key
	adapter, ok := r.Lookup(programID)
	if !ok {
		return nil, swaperrors.ErrInvalidAccountData.WithDetails(map[string]any{
			"program_id": programID.String(),
		})
	}

	decoded, err := adapter.DecodeAccounts(accounts)
	if err != nil {
		return nil, err
	}

	return &Context{Adapter: adapter, Accounts: decoded}, nil
}

// DecodeInstruction parses swap instruction data addressed to programID.
func (r *Registry) DecodeInstruction(programID types.Pubkey, data []byte) (*Args, error) {
	adapter, ok := r.Lookup(programID)
	if !ok {
		return nil, swaperrors.ErrInvalidAccountData.WithDetails(map[string]any{
			"program_id": programID.String(),
		})
	}
	return adapter.DecodeInstruction(data)
}
