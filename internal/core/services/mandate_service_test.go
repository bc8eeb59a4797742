package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbase/sepa_payments_app/internal/apperrors"
	"github.com/finbase/sepa_payments_app/internal/core/domain"
	portssvc "github.com/finbase/sepa_payments_app/internal/core/ports/services"
	"github.com/finbase/sepa_payments_app/internal/core/services"
	"github.com/finbase/sepa_payments_app/internal/dto"
)

type MandateServiceTestSuite struct {
	suite.Suite
	mockMandateRepo *MockMandateRepository
	mockPartyRepo   *MockPartyRepository
	service         portssvc.MandateSvcFacade
	ctx             context.Context

	testUserID    string
	testPartyID   string
	testCompanyID string
	testNumberID  string
	testAccountID string
}

func (suite *MandateServiceTestSuite) SetupTest() {
	suite.mockMandateRepo = new(MockMandateRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewMandateService(suite.mockMandateRepo, suite.mockPartyRepo)
	suite.ctx = context.Background()

	suite.testUserID = uuid.NewString()
	suite.testPartyID = uuid.NewString()
	suite.testCompanyID = uuid.NewString()
	suite.testNumberID = uuid.NewString()
	suite.testAccountID = uuid.NewString()
}

// mandateInState builds a mandate fixture that satisfies the validation
// prerequisites, in the given lifecycle state.
func (suite *MandateServiceTestSuite) mandateInState(state domain.MandateState) *domain.Mandate {
	signed := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return &domain.Mandate{
		MandateID:       uuid.NewString(),
		PartyID:         suite.testPartyID,
		CompanyID:       suite.testCompanyID,
		AccountNumberID: &suite.testNumberID,
		Identification:  "MNDT-2025-0001",
		Type:            domain.MandateRecurrent,
		SignatureDate:   &signed,
		State:           state,
	}
}

func (suite *MandateServiceTestSuite) TestCreateMandate_Success() {
	req := dto.CreateMandateRequest{
		PartyID:        suite.testPartyID,
		CompanyID:      suite.testCompanyID,
		Identification: "MNDT-2025-0001",
	}

	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, suite.testPartyID).Return(&domain.Party{PartyID: suite.testPartyID}, nil).Once()
	suite.mockPartyRepo.On("FindCompanyByID", suite.ctx, suite.testCompanyID).Return(&domain.Company{CompanyID: suite.testCompanyID}, nil).Once()
	suite.mockMandateRepo.On("SaveMandate", suite.ctx, mock.AnythingOfType("domain.Mandate")).Return(nil).Once()

	mandate, err := suite.service.CreateMandate(suite.ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(mandate)
	suite.Equal(domain.MandateDraft, mandate.State)
	suite.Equal(domain.MandateRecurrent, mandate.Type, "type defaults to recurrent")
	suite.Equal(suite.testUserID, mandate.CreatedBy)
	suite.mockPartyRepo.AssertExpectations(suite.T())
	suite.mockMandateRepo.AssertExpectations(suite.T())
}

func (suite *MandateServiceTestSuite) TestCreateMandate_IdentificationTooLong() {
	req := dto.CreateMandateRequest{
		PartyID:        suite.testPartyID,
		CompanyID:      suite.testCompanyID,
		Identification: strings.Repeat("X", domain.MaxIdentificationLen+1),
	}

	mandate, err := suite.service.CreateMandate(suite.ctx, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(mandate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMandateRepo.AssertNotCalled(suite.T(), "SaveMandate", mock.Anything, mock.Anything)
}

func (suite *MandateServiceTestSuite) TestCreateMandate_AccountNotOwnedByParty() {
	otherPartyID := uuid.NewString()
	req := dto.CreateMandateRequest{
		PartyID:         suite.testPartyID,
		CompanyID:       suite.testCompanyID,
		AccountNumberID: &suite.testNumberID,
	}

	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, suite.testPartyID).Return(&domain.Party{PartyID: suite.testPartyID}, nil).Once()
	suite.mockPartyRepo.On("FindCompanyByID", suite.ctx, suite.testCompanyID).Return(&domain.Company{CompanyID: suite.testCompanyID}, nil).Once()
	suite.mockPartyRepo.On("FindBankAccountNumberByID", suite.ctx, suite.testNumberID).Return(&domain.BankAccountNumber{
		NumberID:      suite.testNumberID,
		BankAccountID: suite.testAccountID,
		Type:          domain.NumberIBAN,
		Number:        "DE89370400440532013000",
	}, nil).Once()
	suite.mockPartyRepo.On("FindBankAccountByID", suite.ctx, suite.testAccountID).Return(&domain.BankAccount{
		BankAccountID: suite.testAccountID,
		OwnerPartyID:  otherPartyID,
	}, nil).Once()

	mandate, err := suite.service.CreateMandate(suite.ctx, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(mandate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMandateRepo.AssertNotCalled(suite.T(), "SaveMandate", mock.Anything, mock.Anything)
}

func (suite *MandateServiceTestSuite) TestRequestMandate_Success() {
	mandate := suite.mandateInState(domain.MandateDraft)

	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()
	suite.mockMandateRepo.On("UpdateMandateState", suite.ctx, mandate.MandateID, domain.MandateRequested, suite.testUserID).Return(nil).Once()

	updated, err := suite.service.RequestMandate(suite.ctx, mandate.MandateID, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.MandateRequested, updated.State)
	suite.mockMandateRepo.AssertExpectations(suite.T())
}

func (suite *MandateServiceTestSuite) TestRequestMandate_FromValidated_Conflict() {
	mandate := suite.mandateInState(domain.MandateValidated)

	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()

	updated, err := suite.service.RequestMandate(suite.ctx, mandate.MandateID, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockMandateRepo.AssertNotCalled(suite.T(), "UpdateMandateState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MandateServiceTestSuite) TestRecallMandate_BackToDraft() {
	mandate := suite.mandateInState(domain.MandateRequested)

	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()
	suite.mockMandateRepo.On("UpdateMandateState", suite.ctx, mandate.MandateID, domain.MandateDraft, suite.testUserID).Return(nil).Once()

	updated, err := suite.service.RecallMandate(suite.ctx, mandate.MandateID, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.MandateDraft, updated.State)
	suite.mockMandateRepo.AssertExpectations(suite.T())
}

func (suite *MandateServiceTestSuite) TestValidateMandate_Success() {
	mandate := suite.mandateInState(domain.MandateRequested)

	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()
	suite.mockMandateRepo.On("UpdateMandateState", suite.ctx, mandate.MandateID, domain.MandateValidated, suite.testUserID).Return(nil).Once()

	updated, err := suite.service.ValidateMandate(suite.ctx, mandate.MandateID, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.MandateValidated, updated.State)
	suite.mockMandateRepo.AssertExpectations(suite.T())
}

func (suite *MandateServiceTestSuite) TestValidateMandate_MissingSignatureDate() {
	mandate := suite.mandateInState(domain.MandateRequested)
	mandate.SignatureDate = nil

	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()

	updated, err := suite.service.ValidateMandate(suite.ctx, mandate.MandateID, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMandateRepo.AssertNotCalled(suite.T(), "UpdateMandateState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MandateServiceTestSuite) TestCancelMandate_FromDraft_Conflict() {
	mandate := suite.mandateInState(domain.MandateDraft)

	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()

	updated, err := suite.service.CancelMandate(suite.ctx, mandate.MandateID, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *MandateServiceTestSuite) TestCancelMandate_FromValidated() {
	mandate := suite.mandateInState(domain.MandateValidated)

	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()
	suite.mockMandateRepo.On("UpdateMandateState", suite.ctx, mandate.MandateID, domain.MandateCanceled, suite.testUserID).Return(nil).Once()

	updated, err := suite.service.CancelMandate(suite.ctx, mandate.MandateID, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.MandateCanceled, updated.State)
	suite.mockMandateRepo.AssertExpectations(suite.T())
}

func (suite *MandateServiceTestSuite) TestCancelMandate_FromCanceled_Conflict() {
	mandate := suite.mandateInState(domain.MandateCanceled)

	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()

	updated, err := suite.service.CancelMandate(suite.ctx, mandate.MandateID, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *MandateServiceTestSuite) TestUpdateMandate_Success() {
	mandate := suite.mandateInState(domain.MandateDraft)
	newIdentification := "MNDT-2025-0002"
	req := dto.UpdateMandateRequest{Identification: &newIdentification}

	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()
	suite.mockMandateRepo.On("UpdateMandate", suite.ctx, mock.AnythingOfType("domain.Mandate")).Return(nil).Once()

	updated, err := suite.service.UpdateMandate(suite.ctx, mandate.MandateID, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(newIdentification, updated.Identification)
	suite.Equal(suite.testUserID, updated.LastUpdatedBy)
	suite.mockMandateRepo.AssertExpectations(suite.T())
}

func (suite *MandateServiceTestSuite) TestUpdateMandate_FrozenOnceValidated() {
	mandate := suite.mandateInState(domain.MandateValidated)
	newIdentification := "MNDT-2025-0002"
	req := dto.UpdateMandateRequest{Identification: &newIdentification}

	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()

	updated, err := suite.service.UpdateMandate(suite.ctx, mandate.MandateID, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockMandateRepo.AssertNotCalled(suite.T(), "UpdateMandate", mock.Anything, mock.Anything)
}

func (suite *MandateServiceTestSuite) TestUpdateMandate_NoFieldsIsANoOp() {
	mandate := suite.mandateInState(domain.MandateValidated)

	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()

	updated, err := suite.service.UpdateMandate(suite.ctx, mandate.MandateID, dto.UpdateMandateRequest{}, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal(mandate.MandateID, updated.MandateID)
	suite.mockMandateRepo.AssertNotCalled(suite.T(), "UpdateMandate", mock.Anything, mock.Anything)
}

func (suite *MandateServiceTestSuite) TestDeleteMandate_Draft_Success() {
	mandate := suite.mandateInState(domain.MandateDraft)

	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()
	suite.mockMandateRepo.On("DeleteMandate", suite.ctx, mandate.MandateID).Return(nil).Once()

	err := suite.service.DeleteMandate(suite.ctx, mandate.MandateID, suite.testUserID)

	suite.Require().NoError(err)
	suite.mockMandateRepo.AssertExpectations(suite.T())
}

func (suite *MandateServiceTestSuite) TestDeleteMandate_ValidatedRejected() {
	mandate := suite.mandateInState(domain.MandateValidated)

	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()

	err := suite.service.DeleteMandate(suite.ctx, mandate.MandateID, suite.testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMandateRepo.AssertNotCalled(suite.T(), "DeleteMandate", mock.Anything, mock.Anything)
}

func (suite *MandateServiceTestSuite) TestGetMandateByID_PopulatesHasPayments() {
	mandate := suite.mandateInState(domain.MandateValidated)

	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandate.MandateID).Return(mandate, nil).Once()
	suite.mockMandateRepo.On("HasPayments", suite.ctx, []string{mandate.MandateID}).Return(map[string]bool{mandate.MandateID: true}, nil).Once()

	found, err := suite.service.GetMandateByID(suite.ctx, mandate.MandateID)

	suite.Require().NoError(err)
	suite.True(found.HasPayments)
	suite.mockMandateRepo.AssertExpectations(suite.T())
}

func (suite *MandateServiceTestSuite) TestGetMandateByID_NotFound() {
	mandateID := uuid.NewString()

	suite.mockMandateRepo.On("FindMandateByID", suite.ctx, mandateID).Return(nil, apperrors.ErrNotFound).Once()

	found, err := suite.service.GetMandateByID(suite.ctx, mandateID)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestMandateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MandateServiceTestSuite))
}
