package payment

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tadeyina/stayhaven/internal/domain/providers"
)

// MockPaymentAdapter is a deterministic in-memory payment provider for local
// development and tests. Every charge succeeds; repeated idempotency keys
// return the same charge id.
type MockPaymentAdapter struct {
	mu      sync.Mutex
	charges map[string]string
	counter int64
}

func NewMockPaymentAdapter() providers.PaymentProvider {
	return &MockPaymentAdapter{charges: make(map[string]string)}
}

func (m *MockPaymentAdapter) Charge(_ context.Context, params providers.ChargeParams) (*providers.ChargeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if params.IdempotencyKey != "" {
		if id, ok := m.charges[params.IdempotencyKey]; ok {
			return &providers.ChargeResult{ChargeID: id}, nil
		}
	}

	id := fmt.Sprintf("ch_mock_%d", atomic.AddInt64(&m.counter, 1))
	if params.IdempotencyKey != "" {
		m.charges[params.IdempotencyKey] = id
	}
	return &providers.ChargeResult{ChargeID: id}, nil
}

func (m *MockPaymentAdapter) Connect(_ context.Context, code string) (string, error) {
	return "acct_mock_" + code, nil
}
