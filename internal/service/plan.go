package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/subflow/subflow/internal/api/dto"
	"github.com/subflow/subflow/internal/domain/plan"
	ierr "github.com/subflow/subflow/internal/errors"
	"github.com/subflow/subflow/internal/types"
)

type PlanService interface {
	CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanResponse, error)
	GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error)
	ListPlans(ctx context.Context) (*dto.ListPlansResponse, error)
	UpdatePlan(ctx context.Context, id string, req dto.UpdatePlanRequest) (*dto.PlanResponse, error)
}

type planService struct {
	ServiceParams
}

func NewPlanService(params ServiceParams) PlanService {
	return &planService{
		ServiceParams: params,
	}
}

func (s *planService) CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkNameAvailable(ctx, req.Name, ""); err != nil {
		return nil, err
	}

	p := req.ToPlan(ctx)
	if err := s.PlanRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("created plan",
		"plan_id", p.ID,
		"name", p.Name,
		"price", p.Price,
	)

	return &dto.PlanResponse{Plan: p}, nil
}

func (s *planService) GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error) {
	if id == "" {
		return nil, ierr.NewError("plan ID is required").
			WithHint("Plan ID is required").
			Mark(ierr.ErrValidation)
	}

	p, err := s.PlanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.PlanResponse{Plan: p}, nil
}

func (s *planService) ListPlans(ctx context.Context) (*dto.ListPlansResponse, error) {
	plans, err := s.PlanRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(plans, func(p *plan.Plan, _ int) *dto.PlanResponse {
		return &dto.PlanResponse{Plan: p}
	})

	return &dto.ListPlansResponse{
		Items: items,
		Total: len(items),
	}, nil
}

func (s *planService) UpdatePlan(ctx context.Context, id string, req dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PlanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkNameAvailable(ctx, req.Name, id); err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.Price = req.Price
	p.UpdatedAt = time.Now().UTC()
	p.UpdatedBy = types.GetUserID(ctx)

	if err := s.PlanRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("updated plan",
		"plan_id", p.ID,
		"name", p.Name,
		"price", p.Price,
	)

	return &dto.PlanResponse{Plan: p}, nil
}

// checkNameAvailable enforces plan name uniqueness. excludeID skips the plan
// being updated so renaming a plan to its own name stays legal. The unique
// index on plans.name backstops the read-then-write race.
func (s *planService) checkNameAvailable(ctx context.Context, name string, excludeID string) error {
	existing, err := s.PlanRepo.GetByName(ctx, name)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil
		}
		return err
	}

	if existing.ID != excludeID {
		return ierr.NewError("plan name is already taken").
			WithHintf("A plan named %q already exists", name).
			WithReportableDetails(map[string]any{
				"name": name,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}
