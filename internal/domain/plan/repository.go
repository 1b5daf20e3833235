package plan

import (
	"context"
)

// Repository defines the interface for plan persistence
type Repository interface {
	Create(ctx context.Context, plan *Plan) error
	Get(ctx context.Context, id string) (*Plan, error)
	// GetByName returns the plan holding the given name, marked ErrNotFound
	// when no plan has it. Used to enforce name uniqueness.
	GetByName(ctx context.Context, name string) (*Plan, error)
	// List returns all plans ordered ascending by price
	List(ctx context.Context) ([]*Plan, error)
	Update(ctx context.Context, plan *Plan) error
}
