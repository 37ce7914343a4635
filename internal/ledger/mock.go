package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
)

// MockClient is an in-memory ledger used for local runs and tests, selected
// the same way a mock transport would be. Every submission is accepted and
// advances the account sequence.
type MockClient struct {
	mu       sync.Mutex
	accounts map[string]*AccountSnapshot
}

func NewMockClient() *MockClient {
	return &MockClient{accounts: make(map[string]*AccountSnapshot)}
}

// SeedAccount installs an account with the given balances.
func (m *MockClient) SeedAccount(address string, sequence int64, balances []Balance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[address] = &AccountSnapshot{
		Sequence: sequence,
		Balances: append([]Balance(nil), balances...),
	}
}

func (m *MockClient) LoadAccount(_ context.Context, address string) (AccountSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[address]
	if !ok {
		return AccountSnapshot{}, fmt.Errorf("account %s not found", address)
	}
	return AccountSnapshot{
		Sequence: acct.Sequence,
		Balances: append([]Balance(nil), acct.Balances...),
	}, nil
}

func (m *MockClient) SubmitTransaction(_ context.Context, tx SignedTransaction) (SubmitResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[tx.Envelope.SourceAccount]
	if !ok {
		return SubmitResult{}, fmt.Errorf("account %s not found", tx.Envelope.SourceAccount)
	}
	if tx.Envelope.Sequence != acct.Sequence+1 {
		return SubmitResult{}, &SubmitError{TransactionCode: TxBadSeq}
	}
	acct.Sequence++
	sum := sha256.Sum256(tx.Signature)
	return SubmitResult{Hash: hex.EncodeToString(sum[:])}, nil
}
