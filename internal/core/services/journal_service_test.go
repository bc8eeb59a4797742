package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbase/sepa_payments_app/internal/apperrors"
	"github.com/finbase/sepa_payments_app/internal/core/domain"
	portssvc "github.com/finbase/sepa_payments_app/internal/core/ports/services"
	"github.com/finbase/sepa_payments_app/internal/core/services"
	"github.com/finbase/sepa_payments_app/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockPartyRepo   *MockPartyRepository
	service         portssvc.JournalSvcFacade
	ctx             context.Context

	testUserID    string
	testCompanyID string
	testNumberID  string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockPartyRepo)
	suite.ctx = context.Background()

	suite.testUserID = uuid.NewString()
	suite.testCompanyID = uuid.NewString()
	suite.testNumberID = uuid.NewString()
}

func (suite *JournalServiceTestSuite) expectCompany() {
	suite.mockPartyRepo.On("FindCompanyByID", suite.ctx, suite.testCompanyID).Return(&domain.Company{
		CompanyID: suite.testCompanyID,
		Name:      "Acme SA",
	}, nil).Once()
}

func (suite *JournalServiceTestSuite) expectIBANNumber() {
	suite.mockPartyRepo.On("FindBankAccountNumberByID", suite.ctx, suite.testNumberID).Return(&domain.BankAccountNumber{
		NumberID: suite.testNumberID,
		Type:     domain.NumberIBAN,
		Number:   "FR7630006000011234567890189",
	}, nil).Once()
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Manual_Success() {
	req := dto.CreateJournalRequest{
		Name:         "Manual EUR",
		CompanyID:    suite.testCompanyID,
		CurrencyCode: "EUR",
		Method:       domain.ProcessManual,
	}

	suite.expectCompany()
	suite.mockJournalRepo.On("SaveJournal", suite.ctx, mock.AnythingOfType("domain.PaymentJournal")).Return(nil).Once()

	journal, err := suite.service.CreateJournal(suite.ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.False(journal.IsSEPA())
	suite.mockJournalRepo.AssertExpectations(suite.T())
	// Manual journals skip the SEPA account checks entirely.
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "FindBankAccountNumberByID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_SEPACore_Success() {
	req := dto.CreateJournalRequest{
		Name:                    "Direct debit EUR",
		CompanyID:               suite.testCompanyID,
		CurrencyCode:            "EUR",
		Method:                  domain.ProcessSEPACore,
		SEPABankAccountNumberID: &suite.testNumberID,
		ReceivableFlavor:        domain.FlavorPain008V02,
	}

	suite.expectCompany()
	suite.expectIBANNumber()
	suite.mockJournalRepo.On("SaveJournal", suite.ctx, mock.AnythingOfType("domain.PaymentJournal")).Return(nil).Once()

	journal, err := suite.service.CreateJournal(suite.ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal("CORE", journal.SEPAMethod())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_SEPACore_MissingAccount() {
	req := dto.CreateJournalRequest{
		Name:             "Direct debit EUR",
		CompanyID:        suite.testCompanyID,
		CurrencyCode:     "EUR",
		Method:           domain.ProcessSEPACore,
		ReceivableFlavor: domain.FlavorPain008V02,
	}

	suite.expectCompany()

	journal, err := suite.service.CreateJournal(suite.ctx, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_SEPACore_NonIBANAccount() {
	req := dto.CreateJournalRequest{
		Name:                    "Direct debit EUR",
		CompanyID:               suite.testCompanyID,
		CurrencyCode:            "EUR",
		Method:                  domain.ProcessSEPACore,
		SEPABankAccountNumberID: &suite.testNumberID,
		ReceivableFlavor:        domain.FlavorPain008V02,
	}

	suite.expectCompany()
	suite.mockPartyRepo.On("FindBankAccountNumberByID", suite.ctx, suite.testNumberID).Return(&domain.BankAccountNumber{
		NumberID: suite.testNumberID,
		Type:     domain.NumberOther,
		Number:   "12345678",
	}, nil).Once()

	journal, err := suite.service.CreateJournal(suite.ctx, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_SEPATrf_MissingPayableFlavor() {
	req := dto.CreateJournalRequest{
		Name:                    "Credit transfer EUR",
		CompanyID:               suite.testCompanyID,
		CurrencyCode:            "EUR",
		Method:                  domain.ProcessSEPATrf,
		SEPABankAccountNumberID: &suite.testNumberID,
	}

	suite.expectCompany()
	suite.expectIBANNumber()

	journal, err := suite.service.CreateJournal(suite.ctx, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_SwitchToSEPAWithoutFlavor() {
	journalID := uuid.NewString()
	existing := &domain.PaymentJournal{
		JournalID:               journalID,
		Name:                    "Manual EUR",
		CompanyID:               suite.testCompanyID,
		CurrencyCode:            "EUR",
		Method:                  domain.ProcessManual,
		SEPABankAccountNumberID: &suite.testNumberID,
	}
	method := domain.ProcessSEPACore
	req := dto.UpdateJournalRequest{Method: &method}

	suite.mockJournalRepo.On("FindJournalByID", suite.ctx, journalID).Return(existing, nil).Once()
	suite.expectIBANNumber()

	journal, err := suite.service.UpdateJournal(suite.ctx, journalID, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_Success() {
	journalID := uuid.NewString()
	existing := &domain.PaymentJournal{
		JournalID:               journalID,
		Name:                    "Direct debit EUR",
		CompanyID:               suite.testCompanyID,
		CurrencyCode:            "EUR",
		Method:                  domain.ProcessSEPACore,
		SEPABankAccountNumberID: &suite.testNumberID,
		ReceivableFlavor:        domain.FlavorPain008V02,
	}
	newFlavor := domain.FlavorPain008V04
	req := dto.UpdateJournalRequest{ReceivableFlavor: &newFlavor}

	suite.mockJournalRepo.On("FindJournalByID", suite.ctx, journalID).Return(existing, nil).Once()
	suite.expectIBANNumber()
	suite.mockJournalRepo.On("UpdateJournal", suite.ctx, mock.AnythingOfType("domain.PaymentJournal")).Return(nil).Once()

	journal, err := suite.service.UpdateJournal(suite.ctx, journalID, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.FlavorPain008V04, journal.ReceivableFlavor)
	suite.Equal(suite.testUserID, journal.LastUpdatedBy)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
