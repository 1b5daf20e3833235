package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/subflow/subflow/internal/domain/plan"
	ierr "github.com/subflow/subflow/internal/errors"
)

// InMemoryPlanStore implements plan.Repository
type InMemoryPlanStore struct {
	mu    sync.RWMutex
	plans map[string]*plan.Plan
}

// NewInMemoryPlanStore creates a new in-memory plan store
func NewInMemoryPlanStore() *InMemoryPlanStore {
	return &InMemoryPlanStore{
		plans: make(map[string]*plan.Plan),
	}
}

func (s *InMemoryPlanStore) Create(ctx context.Context, p *plan.Plan) error {
	if p == nil {
		return fmt.Errorf("plan cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.plans {
		if existing.Name == p.Name {
			return ierr.NewError("plan name is already taken").
				WithHintf("A plan named %q already exists", p.Name).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	cp := *p
	s.plans[p.ID] = &cp
	return nil
}

func (s *InMemoryPlanStore) Get(ctx context.Context, id string) (*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.plans[id]
	if !ok {
		return nil, ierr.NewError("plan not found").
			WithHintf("Plan with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (s *InMemoryPlanStore) GetByName(ctx context.Context, name string) (*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.plans {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ierr.NewError("plan not found").
		WithHintf("Plan named %q was not found", name).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryPlanStore) List(ctx context.Context) ([]*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plans := make([]*plan.Plan, 0, len(s.plans))
	for _, p := range s.plans {
		cp := *p
		plans = append(plans, &cp)
	}

	sort.Slice(plans, func(i, j int) bool {
		return plans[i].Price.LessThan(plans[j].Price)
	})
	return plans, nil
}

func (s *InMemoryPlanStore) Update(ctx context.Context, p *plan.Plan) error {
	if p == nil {
		return fmt.Errorf("plan cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[p.ID]; !ok {
		return ierr.NewError("plan not found").
			WithHintf("Plan with ID %s was not found", p.ID).
			Mark(ierr.ErrNotFound)
	}

	for _, existing := range s.plans {
		if existing.ID != p.ID && existing.Name == p.Name {
			return ierr.NewError("plan name is already taken").
				WithHintf("A plan named %q already exists", p.Name).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	cp := *p
	s.plans[p.ID] = &cp
	return nil
}

// Clear clears the plan store
func (s *InMemoryPlanStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = make(map[string]*plan.Plan)
}
