package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/subflow/subflow/internal/api/dto"
	"github.com/subflow/subflow/internal/domain/subscription"
	ierr "github.com/subflow/subflow/internal/errors"
	"github.com/subflow/subflow/internal/testutil"
	"github.com/subflow/subflow/internal/types"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PaymentService
	sub     *subscription.Subscription
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPaymentService(ServiceParams{
		Logger:              s.GetLogger(),
		Config:              s.GetConfig(),
		DB:                  s.GetDB(),
		PlanRepo:            s.GetStores().PlanRepo,
		SubRepo:             s.GetStores().SubRepo,
		PaymentRepo:         s.GetStores().PaymentRepo,
		ProrationCalculator: s.GetCalculator(),
	})

	s.sub = &subscription.Subscription{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		SubscriberID: testutil.DefaultUserID,
		PlanID:       types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		ValidTo:      time.Now().UTC().Add(types.BillingCycleDuration),
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().SubRepo.Create(s.GetContext(), s.sub))

	s.SetContext(testutil.SetupAdminContext())
}

func (s *PaymentServiceSuite) TestRecordPayment() {
	resp, err := s.service.RecordPayment(s.GetContext(), dto.RecordPaymentRequest{
		SubscriptionID: s.sub.ID,
		AmountPaid:     decimal.NewFromInt(30),
	})
	s.NoError(err)
	s.NotNil(resp)
	s.Equal(s.sub.ID, resp.SubscriptionID)
	s.Equal(s.sub.SubscriberID, resp.SubscriberID)
	s.Equal(types.PaymentStatusSucceeded, resp.PaymentStatus)
	s.False(resp.PaidAt.IsZero())

	latest, err := s.GetStores().PaymentRepo.GetLatestSucceeded(s.GetContext(), s.sub.SubscriberID)
	s.NoError(err)
	s.Equal(resp.ID, latest.ID)
}

func (s *PaymentServiceSuite) TestRecordPaymentWithExplicitPaidAt() {
	paidAt := time.Now().UTC().Add(-10 * 24 * time.Hour)
	resp, err := s.service.RecordPayment(s.GetContext(), dto.RecordPaymentRequest{
		SubscriptionID: s.sub.ID,
		AmountPaid:     decimal.NewFromInt(30),
		PaidAt:         &paidAt,
	})
	s.NoError(err)
	s.True(paidAt.Equal(resp.PaidAt))
	s.True(paidAt.Add(types.BillingCycleDuration).Equal(resp.CycleEnd()))
}

func (s *PaymentServiceSuite) TestRecordPaymentRequiresAdmin() {
	s.SetContext(testutil.SetupContext())

	resp, err := s.service.RecordPayment(s.GetContext(), dto.RecordPaymentRequest{
		SubscriptionID: s.sub.ID,
		AmountPaid:     decimal.NewFromInt(30),
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *PaymentServiceSuite) TestRecordPaymentUnknownSubscription() {
	resp, err := s.service.RecordPayment(s.GetContext(), dto.RecordPaymentRequest{
		SubscriptionID: "subs_missing",
		AmountPaid:     decimal.NewFromInt(30),
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
}

func (s *PaymentServiceSuite) TestRecordPaymentNegativeAmount() {
	resp, err := s.service.RecordPayment(s.GetContext(), dto.RecordPaymentRequest{
		SubscriptionID: s.sub.ID,
		AmountPaid:     decimal.NewFromInt(-5),
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsValidation(err))
}
