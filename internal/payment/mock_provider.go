package payment

import (
	"context"
	"sync"
)

// Charge is a payment recorded by MockPaymentProvider.
type Charge struct {
	AccountID int64
	Amount    int
}

// MockPaymentProvider accepts every payment and keeps it in memory.
type MockPaymentProvider struct {
	mu      sync.RWMutex
	charges []Charge
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{
		charges: make([]Charge, 0),
	}
}

func (m *MockPaymentProvider) MakePayment(ctx context.Context, accountID int64, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.charges = append(m.charges, Charge{AccountID: accountID, Amount: amount})

	return nil
}

func (m *MockPaymentProvider) Charges() []Charge {
	m.mu.RLock()
	defer m.mu.RUnlock()

	charges := make([]Charge, len(m.charges))
	copy(charges, m.charges)

	return charges
}

func (m *MockPaymentProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.charges = make([]Charge, 0)
}
