package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/subflow/subflow/internal/api/dto"
	"github.com/subflow/subflow/internal/domain/payment"
	"github.com/subflow/subflow/internal/domain/plan"
	ierr "github.com/subflow/subflow/internal/errors"
	"github.com/subflow/subflow/internal/testutil"
	"github.com/subflow/subflow/internal/types"
)

type SubscriptionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  SubscriptionService
	basic    *plan.Plan
	premium  *plan.Plan
	freeTier *plan.Plan
}

func TestSubscriptionService(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceSuite))
}

func (s *SubscriptionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewSubscriptionService(ServiceParams{
		Logger:              s.GetLogger(),
		Config:              s.GetConfig(),
		DB:                  s.GetDB(),
		PlanRepo:            s.GetStores().PlanRepo,
		SubRepo:             s.GetStores().SubRepo,
		PaymentRepo:         s.GetStores().PaymentRepo,
		ProrationCalculator: s.GetCalculator(),
	})

	s.basic = s.seedPlan("Basic", 30)
	s.premium = s.seedPlan("Premium", 60)
	s.freeTier = s.seedPlan("Free Tier", 0)
}

func (s *SubscriptionServiceSuite) seedPlan(name string, price int64) *plan.Plan {
	p := &plan.Plan{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		Name:      name,
		Price:     decimal.NewFromInt(price),
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PlanRepo.Create(s.GetContext(), p))
	return p
}

// seedPayment records a succeeded charge whose cycle started at paidAt
func (s *SubscriptionServiceSuite) seedPayment(subscriptionID string, amount int64, paidAt time.Time) {
	pay := &payment.Payment{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		SubscriptionID: subscriptionID,
		SubscriberID:   testutil.DefaultUserID,
		AmountPaid:     decimal.NewFromInt(amount),
		PaymentStatus:  types.PaymentStatusSucceeded,
		PaidAt:         paidAt,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), pay))
}

func (s *SubscriptionServiceSuite) TestSubscribe() {
	resp, err := s.service.Subscribe(s.GetContext(), dto.SubscribeRequest{PlanID: s.basic.ID})
	s.NoError(err)
	s.NotNil(resp)
	s.Equal(s.basic.ID, resp.PlanID)
	s.Equal(testutil.DefaultUserID, resp.SubscriberID)
	s.False(resp.IsCancelled)

	active, err := s.GetStores().SubRepo.GetActive(s.GetContext(), testutil.DefaultUserID)
	s.NoError(err)
	s.Equal(resp.ID, active.ID)
}

func (s *SubscriptionServiceSuite) TestSubscribeUnknownPlan() {
	resp, err := s.service.Subscribe(s.GetContext(), dto.SubscribeRequest{PlanID: "plan_missing"})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))

	// nothing was written
	subs, err := s.GetStores().SubRepo.ListBySubscriber(s.GetContext(), testutil.DefaultUserID)
	s.NoError(err)
	s.Empty(subs)
}

func (s *SubscriptionServiceSuite) TestSubscribeReplacesActiveSubscription() {
	first, err := s.service.Subscribe(s.GetContext(), dto.SubscribeRequest{PlanID: s.basic.ID})
	s.NoError(err)

	second, err := s.service.Subscribe(s.GetContext(), dto.SubscribeRequest{PlanID: s.premium.ID})
	s.NoError(err)
	s.NotEqual(first.ID, second.ID)

	// exactly one active subscription, the new one
	active, err := s.GetStores().SubRepo.GetActive(s.GetContext(), testutil.DefaultUserID)
	s.NoError(err)
	s.Equal(second.ID, active.ID)
	s.Equal(s.premium.ID, active.PlanID)

	cancelled, err := s.GetStores().SubRepo.Get(s.GetContext(), first.ID)
	s.NoError(err)
	s.True(cancelled.IsCancelled)
}

func (s *SubscriptionServiceSuite) TestSubscribeUnauthenticated() {
	resp, err := s.service.Subscribe(context.Background(), dto.SubscribeRequest{PlanID: s.basic.ID})
	s.Error(err)
	s.Nil(resp)
}

func (s *SubscriptionServiceSuite) TestQuoteUpgradeWithoutSubscription() {
	resp, err := s.service.QuoteUpgrade(s.GetContext(), dto.UpgradeQuoteRequest{PlanID: s.premium.ID})
	s.NoError(err)
	s.True(s.premium.Price.Equal(resp.Price))
}

func (s *SubscriptionServiceSuite) TestQuoteUpgradeWithoutConfirmedPayment() {
	_, err := s.service.Subscribe(s.GetContext(), dto.SubscribeRequest{PlanID: s.basic.ID})
	s.NoError(err)

	// subscribed but nothing charged yet: no cycle to credit
	resp, err := s.service.QuoteUpgrade(s.GetContext(), dto.UpgradeQuoteRequest{PlanID: s.premium.ID})
	s.NoError(err)
	s.True(s.premium.Price.Equal(resp.Price))
}

func (s *SubscriptionServiceSuite) TestQuoteUpgradeMidCycle() {
	sub, err := s.service.Subscribe(s.GetContext(), dto.SubscribeRequest{PlanID: s.basic.ID})
	s.NoError(err)

	// 15 full days left in the cycle; the extra minute absorbs test runtime
	paidAt := time.Now().UTC().Add(-15*24*time.Hour + time.Minute)
	s.seedPayment(sub.ID, 30, paidAt)

	resp, err := s.service.QuoteUpgrade(s.GetContext(), dto.UpgradeQuoteRequest{PlanID: s.premium.ID})
	s.NoError(err)
	// 60 - floor(15 * 30 / 30) = 45
	s.True(decimal.NewFromInt(45).Equal(resp.Price), "got %s", resp.Price)
}

func (s *SubscriptionServiceSuite) TestQuoteUpgradeExpiredCycle() {
	sub, err := s.service.Subscribe(s.GetContext(), dto.SubscribeRequest{PlanID: s.basic.ID})
	s.NoError(err)

	s.seedPayment(sub.ID, 30, time.Now().UTC().Add(-31*24*time.Hour))

	resp, err := s.service.QuoteUpgrade(s.GetContext(), dto.UpgradeQuoteRequest{PlanID: s.premium.ID})
	s.NoError(err)
	s.True(s.premium.Price.Equal(resp.Price))
}

func (s *SubscriptionServiceSuite) TestQuoteUpgradeClampsToZero() {
	sub, err := s.service.Subscribe(s.GetContext(), dto.SubscribeRequest{PlanID: s.premium.ID})
	s.NoError(err)

	// paid 100 yesterday, 29 days left: credit 96 exceeds the 60 target
	paidAt := time.Now().UTC().Add(-24*time.Hour + time.Minute)
	s.seedPayment(sub.ID, 100, paidAt)

	resp, err := s.service.QuoteUpgrade(s.GetContext(), dto.UpgradeQuoteRequest{PlanID: s.premium.ID})
	s.NoError(err)
	s.True(resp.Price.IsZero(), "got %s", resp.Price)
}

func (s *SubscriptionServiceSuite) TestQuoteUpgradeCreditsAmountPaidNotCurrentPrice() {
	sub, err := s.service.Subscribe(s.GetContext(), dto.SubscribeRequest{PlanID: s.basic.ID})
	s.NoError(err)

	paidAt := time.Now().UTC().Add(-15*24*time.Hour + time.Minute)
	s.seedPayment(sub.ID, 30, paidAt)

	// repricing the plan after the charge must not change the credit
	s.basic.Price = decimal.NewFromInt(90)
	s.NoError(s.GetStores().PlanRepo.Update(s.GetContext(), s.basic))

	resp, err := s.service.QuoteUpgrade(s.GetContext(), dto.UpgradeQuoteRequest{PlanID: s.premium.ID})
	s.NoError(err)
	// still 60 - floor(15 * 30 / 30), not 60 - floor(15 * 90 / 30)
	s.True(decimal.NewFromInt(45).Equal(resp.Price), "got %s", resp.Price)
}

func (s *SubscriptionServiceSuite) TestQuoteUpgradeUnknownPlan() {
	resp, err := s.service.QuoteUpgrade(s.GetContext(), dto.UpgradeQuoteRequest{PlanID: "plan_missing"})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
}

func (s *SubscriptionServiceSuite) TestGetActiveSubscription() {
	created, err := s.service.Subscribe(s.GetContext(), dto.SubscribeRequest{PlanID: s.basic.ID})
	s.NoError(err)

	resp, err := s.service.GetActiveSubscription(s.GetContext(), "")
	s.NoError(err)
	s.Equal(created.ID, resp.ID)
}

func (s *SubscriptionServiceSuite) TestGetActiveSubscriptionNone() {
	resp, err := s.service.GetActiveSubscription(s.GetContext(), "")
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
}
