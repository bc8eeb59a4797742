package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbase/sepa_payments_app/internal/apperrors"
	"github.com/finbase/sepa_payments_app/internal/core/domain"
	portssvc "github.com/finbase/sepa_payments_app/internal/core/ports/services"
	"github.com/finbase/sepa_payments_app/internal/core/services"
	"github.com/finbase/sepa_payments_app/internal/dto"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockMandateRepo *MockMandateRepository
	mockJournalRepo *MockJournalRepository
	mockPartyRepo   *MockPartyRepository
	service         portssvc.PaymentSvcFacade
	ctx             context.Context

	testUserID    string
	testPartyID   string
	testJournalID string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockMandateRepo = new(MockMandateRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewPaymentService(
		suite.mockPaymentRepo,
		suite.mockMandateRepo,
		suite.mockJournalRepo,
		suite.mockPartyRepo,
	)
	suite.ctx = context.Background()

	suite.testUserID = uuid.NewString()
	suite.testPartyID = uuid.NewString()
	suite.testJournalID = uuid.NewString()
}

func (suite *PaymentServiceTestSuite) createRequest(amount string) dto.CreatePaymentRequest {
	return dto.CreatePaymentRequest{
		JournalID:    suite.testJournalID,
		PartyID:      suite.testPartyID,
		Kind:         domain.Receivable,
		Amount:       decimal.RequireFromString(amount),
		CurrencyCode: "EUR",
		Description:  "INV-2025-0042",
		Date:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *PaymentServiceTestSuite) eurJournal() *domain.PaymentJournal {
	return &domain.PaymentJournal{
		JournalID:    suite.testJournalID,
		Name:         "EUR SEPA",
		CurrencyCode: "EUR",
		Method:       domain.ProcessSEPACore,
	}
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_Success() {
	req := suite.createRequest("100.00")

	suite.mockJournalRepo.On("FindJournalByID", suite.ctx, suite.testJournalID).Return(suite.eurJournal(), nil).Once()
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, suite.testPartyID).Return(&domain.Party{PartyID: suite.testPartyID}, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", suite.ctx, mock.AnythingOfType("domain.Payment")).Return(nil).Once()

	payment, err := suite.service.CreatePayment(suite.ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal(domain.PaymentDraft, payment.State)
	suite.Equal("SLEV", payment.ChargeBearer())
	suite.Equal("INV-2025-0042", payment.EndToEndID())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_NonPositiveAmount() {
	req := suite.createRequest("0")

	suite.mockJournalRepo.On("FindJournalByID", suite.ctx, suite.testJournalID).Return(suite.eurJournal(), nil).Once()
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, suite.testPartyID).Return(&domain.Party{PartyID: suite.testPartyID}, nil).Once()

	payment, err := suite.service.CreatePayment(suite.ctx, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_CurrencyMismatch() {
	req := suite.createRequest("100.00")
	req.CurrencyCode = "USD"

	suite.mockJournalRepo.On("FindJournalByID", suite.ctx, suite.testJournalID).Return(suite.eurJournal(), nil).Once()
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, suite.testPartyID).Return(&domain.Party{PartyID: suite.testPartyID}, nil).Once()

	payment, err := suite.service.CreatePayment(suite.ctx, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestAssignMandate_Success() {
	payment := &domain.Payment{
		PaymentID: uuid.NewString(),
		PartyID:   suite.testPartyID,
		Kind:      domain.Receivable,
	}
	// A mandate may be linked before it is validated.
	mandate := &domain.Mandate{
		MandateID: uuid.NewString(),
		PartyID:   suite.testPartyID,
		State:     domain.MandateRequested,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", suite.ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()
	suite.mockPaymentRepo.On("UpdatePaymentMandate", suite.ctx, payment.PaymentID, mandate.MandateID, suite.testUserID).Return(nil).Once()

	updated, err := suite.service.AssignMandate(suite.ctx, payment.PaymentID, mandate.MandateID, suite.testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated.MandateID)
	suite.Equal(mandate.MandateID, *updated.MandateID)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestAssignMandate_PayableRejected() {
	payment := &domain.Payment{
		PaymentID: uuid.NewString(),
		PartyID:   suite.testPartyID,
		Kind:      domain.Payable,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", suite.ctx, payment.PaymentID).Return(payment, nil).Once()

	updated, err := suite.service.AssignMandate(suite.ctx, payment.PaymentID, uuid.NewString(), suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePaymentMandate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestAssignMandate_OtherPartyRejected() {
	payment := &domain.Payment{
		PaymentID: uuid.NewString(),
		PartyID:   suite.testPartyID,
		Kind:      domain.Receivable,
	}
	mandate := &domain.Mandate{
		MandateID: uuid.NewString(),
		PartyID:   uuid.NewString(),
		State:     domain.MandateValidated,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", suite.ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()

	updated, err := suite.service.AssignMandate(suite.ctx, payment.PaymentID, mandate.MandateID, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePaymentMandate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
