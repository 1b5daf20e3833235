package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/subflow/subflow/internal/api/dto"
	ierr "github.com/subflow/subflow/internal/errors"
	"github.com/subflow/subflow/internal/testutil"
)

type PlanServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PlanService
}

func TestPlanService(t *testing.T) {
	suite.Run(t, new(PlanServiceSuite))
}

func (s *PlanServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPlanService(ServiceParams{
		Logger:              s.GetLogger(),
		Config:              s.GetConfig(),
		DB:                  s.GetDB(),
		PlanRepo:            s.GetStores().PlanRepo,
		SubRepo:             s.GetStores().SubRepo,
		PaymentRepo:         s.GetStores().PaymentRepo,
		ProrationCalculator: s.GetCalculator(),
	})
	// plan mutations require the admin capability
	s.SetContext(testutil.SetupAdminContext())
}

func (s *PlanServiceSuite) TestCreatePlan() {
	resp, err := s.service.CreatePlan(s.GetContext(), dto.CreatePlanRequest{
		Name:  "Tier 1",
		Price: decimal.NewFromInt(10),
	})
	s.NoError(err)
	s.NotNil(resp)
	s.Equal("Tier 1", resp.Name)
	s.True(decimal.NewFromInt(10).Equal(resp.Price))
	s.NotEmpty(resp.ID)
}

func (s *PlanServiceSuite) TestCreatePlanRequiresAdmin() {
	s.SetContext(testutil.SetupContext())

	resp, err := s.service.CreatePlan(s.GetContext(), dto.CreatePlanRequest{
		Name:  "Tier 1",
		Price: decimal.NewFromInt(10),
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *PlanServiceSuite) TestCreatePlanNegativePrice() {
	resp, err := s.service.CreatePlan(s.GetContext(), dto.CreatePlanRequest{
		Name:  "Tier 1",
		Price: decimal.NewFromInt(-10),
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsValidation(err))

	// no state change
	plans, err := s.service.ListPlans(s.GetContext())
	s.NoError(err)
	s.Equal(0, plans.Total)
}

func (s *PlanServiceSuite) TestCreatePlanNameTaken() {
	_, err := s.service.CreatePlan(s.GetContext(), dto.CreatePlanRequest{
		Name:  "Tier 1",
		Price: decimal.NewFromInt(10),
	})
	s.NoError(err)

	resp, err := s.service.CreatePlan(s.GetContext(), dto.CreatePlanRequest{
		Name:  "Tier 1",
		Price: decimal.NewFromInt(20),
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *PlanServiceSuite) TestUpdatePlan() {
	created, err := s.service.CreatePlan(s.GetContext(), dto.CreatePlanRequest{
		Name:  "Tier 1",
		Price: decimal.NewFromInt(10),
	})
	s.NoError(err)

	updated, err := s.service.UpdatePlan(s.GetContext(), created.ID, dto.UpdatePlanRequest{
		Name:  "Free Tier",
		Price: decimal.Zero,
	})
	s.NoError(err)
	s.Equal("Free Tier", updated.Name)
	s.True(updated.Price.IsZero())
	s.Equal(created.ID, updated.ID)
	s.Equal(created.CreatedAt, updated.CreatedAt)
}

func (s *PlanServiceSuite) TestUpdatePlanKeepingOwnName() {
	created, err := s.service.CreatePlan(s.GetContext(), dto.CreatePlanRequest{
		Name:  "Tier 1",
		Price: decimal.NewFromInt(10),
	})
	s.NoError(err)

	// repricing without renaming must not trip the uniqueness check
	updated, err := s.service.UpdatePlan(s.GetContext(), created.ID, dto.UpdatePlanRequest{
		Name:  "Tier 1",
		Price: decimal.NewFromInt(15),
	})
	s.NoError(err)
	s.True(decimal.NewFromInt(15).Equal(updated.Price))
}

func (s *PlanServiceSuite) TestUpdatePlanNameTakenByOther() {
	first, err := s.service.CreatePlan(s.GetContext(), dto.CreatePlanRequest{
		Name:  "Tier 1",
		Price: decimal.NewFromInt(10),
	})
	s.NoError(err)

	_, err = s.service.CreatePlan(s.GetContext(), dto.CreatePlanRequest{
		Name:  "Budget Tier",
		Price: decimal.NewFromInt(10),
	})
	s.NoError(err)

	resp, err := s.service.UpdatePlan(s.GetContext(), first.ID, dto.UpdatePlanRequest{
		Name:  "Budget Tier",
		Price: decimal.NewFromInt(10),
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *PlanServiceSuite) TestUpdatePlanNegativePrice() {
	created, err := s.service.CreatePlan(s.GetContext(), dto.CreatePlanRequest{
		Name:  "Tier 1",
		Price: decimal.NewFromInt(10),
	})
	s.NoError(err)

	resp, err := s.service.UpdatePlan(s.GetContext(), created.ID, dto.UpdatePlanRequest{
		Name:  "New Name",
		Price: decimal.NewFromInt(-5),
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsValidation(err))
}

func (s *PlanServiceSuite) TestUpdatePlanNotFound() {
	resp, err := s.service.UpdatePlan(s.GetContext(), "plan_missing", dto.UpdatePlanRequest{
		Name:  "Tier 1",
		Price: decimal.NewFromInt(10),
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
}

func (s *PlanServiceSuite) TestUpdatePlanRequiresAdmin() {
	created, err := s.service.CreatePlan(s.GetContext(), dto.CreatePlanRequest{
		Name:  "Tier 1",
		Price: decimal.NewFromInt(10),
	})
	s.NoError(err)

	s.SetContext(testutil.SetupContext())
	resp, err := s.service.UpdatePlan(s.GetContext(), created.ID, dto.UpdatePlanRequest{
		Name:  "Tier 2",
		Price: decimal.NewFromInt(20),
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *PlanServiceSuite) TestListPlansSortedByPrice() {
	// insert out of price order
	for _, p := range []struct {
		name  string
		price int64
	}{
		{"Premium", 60},
		{"Free Tier", 0},
		{"Standard", 30},
	} {
		_, err := s.service.CreatePlan(s.GetContext(), dto.CreatePlanRequest{
			Name:  p.name,
			Price: decimal.NewFromInt(p.price),
		})
		s.NoError(err)
	}

	resp, err := s.service.ListPlans(s.GetContext())
	s.NoError(err)
	s.Equal(3, resp.Total)
	s.Equal("Free Tier", resp.Items[0].Name)
	s.Equal("Standard", resp.Items[1].Name)
	s.Equal("Premium", resp.Items[2].Name)
}

func (s *PlanServiceSuite) TestListPlansEmpty() {
	resp, err := s.service.ListPlans(s.GetContext())
	s.NoError(err)
	s.Equal(0, resp.Total)
	s.Empty(resp.Items)
}
