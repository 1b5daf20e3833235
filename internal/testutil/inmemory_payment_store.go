package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/subflow/subflow/internal/domain/payment"
	ierr "github.com/subflow/subflow/internal/errors"
	"github.com/subflow/subflow/internal/types"
)

// InMemoryPaymentStore implements payment.Repository
type InMemoryPaymentStore struct {
	mu       sync.RWMutex
	payments map[string]*payment.Payment
}

// NewInMemoryPaymentStore creates a new in-memory payment store
func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		payments: make(map[string]*payment.Payment),
	}
}

func (s *InMemoryPaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	if p == nil {
		return fmt.Errorf("payment cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.payments[p.ID] = &cp
	return nil
}

func (s *InMemoryPaymentStore) Get(ctx context.Context, id string) (*payment.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, ierr.NewError("payment not found").
			WithHintf("Payment with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (s *InMemoryPaymentStore) GetLatestSucceeded(ctx context.Context, subscriberID string) (*payment.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *payment.Payment
	for _, p := range s.payments {
		if p.SubscriberID != subscriberID || p.PaymentStatus != types.PaymentStatusSucceeded {
			continue
		}
		if latest == nil || p.PaidAt.After(latest.PaidAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, ierr.NewError("no confirmed payment").
			WithHint("Subscriber has no confirmed payment").
			Mark(ierr.ErrNotFound)
	}
	cp := *latest
	return &cp, nil
}

// Clear clears the payment store
func (s *InMemoryPaymentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = make(map[string]*payment.Payment)
}
