package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/subflow/subflow/internal/domain/subscription"
	ierr "github.com/subflow/subflow/internal/errors"
	"github.com/subflow/subflow/internal/types"
)

// InMemorySubscriptionStore implements subscription.Repository
type InMemorySubscriptionStore struct {
	mu   sync.RWMutex
	subs map[string]*subscription.Subscription
}

// NewInMemorySubscriptionStore creates a new in-memory subscription store
func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		subs: make(map[string]*subscription.Subscription),
	}
}

func (s *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return fmt.Errorf("subscription cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// mirrors the partial unique index on the active slot
	if !sub.IsCancelled {
		for _, existing := range s.subs {
			if existing.SubscriberID == sub.SubscriberID && !existing.IsCancelled {
				return ierr.NewError("subscriber already has an active subscription").
					WithHint("Subscriber already has an active subscription").
					Mark(ierr.ErrInvalidOperation)
			}
		}
	}

	cp := *sub
	s.subs[sub.ID] = &cp
	return nil
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[id]
	if !ok {
		return nil, ierr.NewError("subscription not found").
			WithHintf("Subscription with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	cp := *sub
	return &cp, nil
}

func (s *InMemorySubscriptionStore) GetActive(ctx context.Context, subscriberID string) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.subs {
		if sub.SubscriberID == subscriberID && !sub.IsCancelled {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, ierr.NewError("no active subscription").
		WithHint("Subscriber has no active subscription").
		Mark(ierr.ErrNotFound)
}

func (s *InMemorySubscriptionStore) CancelActive(ctx context.Context, subscriberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subs {
		if sub.SubscriberID == subscriberID && !sub.IsCancelled {
			sub.IsCancelled = true
			sub.UpdatedAt = time.Now().UTC()
			sub.UpdatedBy = types.GetUserID(ctx)
		}
	}
	return nil
}

func (s *InMemorySubscriptionStore) ListBySubscriber(ctx context.Context, subscriberID string) ([]*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs := make([]*subscription.Subscription, 0)
	for _, sub := range s.subs {
		if sub.SubscriberID == subscriberID {
			cp := *sub
			subs = append(subs, &cp)
		}
	}

	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})
	return subs, nil
}

// Clear clears the subscription store
func (s *InMemorySubscriptionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = make(map[string]*subscription.Subscription)
}
