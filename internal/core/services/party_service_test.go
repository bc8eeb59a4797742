package services_test

import (
	"context"
	"fmt"
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

type PartyServiceTestSuite struct {
	suite.Suite
	mockPartyRepo *MockPartyRepository
	service       portssvc.PartySvcFacade
	ctx           context.Context

	testUserID  string
	testPartyID string
}

func (suite *PartyServiceTestSuite) SetupTest() {
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewPartyService(suite.mockPartyRepo)
	suite.ctx = context.Background()

	suite.testUserID = uuid.NewString()
	suite.testPartyID = uuid.NewString()
}

func (suite *PartyServiceTestSuite) TestCreateParty_Success() {
	req := dto.CreatePartyRequest{Name: "Acme SA", SEPACreditorIdentifier: "FR72ZZZ123456"}

	suite.mockPartyRepo.On("SaveParty", suite.ctx, mock.AnythingOfType("domain.Party")).Return(nil).Once()

	party, err := suite.service.CreateParty(suite.ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal("Acme SA", party.Name)
	suite.Equal("FR72ZZZ123456", party.SEPACreditorIdentifier)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestAddBankAccount_NormalizesIBAN() {
	req := dto.CreateBankAccountRequest{
		OwnerPartyID: suite.testPartyID,
		BankName:     "Commerzbank",
		BIC:          "cobadeffxxx",
		Numbers: []dto.BankAccountNumberRequest{
			{Type: domain.NumberIBAN, Number: "de89 3704 0044 0532 0130 00"},
		},
	}

	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, suite.testPartyID).Return(&domain.Party{PartyID: suite.testPartyID}, nil).Once()

	var savedNumbers []domain.BankAccountNumber
	suite.mockPartyRepo.On("SaveBankAccount", suite.ctx, mock.AnythingOfType("domain.BankAccount"), mock.AnythingOfType("[]domain.BankAccountNumber")).
		Run(func(args mock.Arguments) { savedNumbers = args.Get(2).([]domain.BankAccountNumber) }).
		Return(nil).Once()

	account, err := suite.service.AddBankAccount(suite.ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.Equal("COBADEFFXXX", account.BIC)
	suite.Require().Len(savedNumbers, 1)
	suite.Equal("DE89370400440532013000", savedNumbers[0].Number, "spaces stripped, uppercased")
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestAddBankAccount_InvalidIBAN() {
	req := dto.CreateBankAccountRequest{
		OwnerPartyID: suite.testPartyID,
		Numbers: []dto.BankAccountNumberRequest{
			// Bad check digits.
			{Type: domain.NumberIBAN, Number: "DE00370400440532013000"},
		},
	}

	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, suite.testPartyID).Return(&domain.Party{PartyID: suite.testPartyID}, nil).Once()

	account, err := suite.service.AddBankAccount(suite.ctx, req, suite.testUserID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "SaveBankAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PartyServiceTestSuite) TestAddBankAccount_LegacyNumberNotChecked() {
	req := dto.CreateBankAccountRequest{
		OwnerPartyID: suite.testPartyID,
		Numbers: []dto.BankAccountNumberRequest{
			{Type: domain.NumberOther, Number: "12345678"},
		},
	}

	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, suite.testPartyID).Return(&domain.Party{PartyID: suite.testPartyID}, nil).Once()
	suite.mockPartyRepo.On("SaveBankAccount", suite.ctx, mock.AnythingOfType("domain.BankAccount"), mock.AnythingOfType("[]domain.BankAccountNumber")).Return(nil).Once()

	account, err := suite.service.AddBankAccount(suite.ctx, req, suite.testUserID)

	suite.Require().NoError(err)
	suite.NotNil(account)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestDeleteBankAccountNumber_ConflictSurfaces() {
	numberID := uuid.NewString()

	suite.mockPartyRepo.On("FindBankAccountNumberByID", suite.ctx, numberID).Return(&domain.BankAccountNumber{NumberID: numberID}, nil).Once()
	suite.mockPartyRepo.On("DeleteBankAccountNumber", suite.ctx, numberID).
		Return(fmt.Errorf("%w: account number is referenced by a mandate", apperrors.ErrConflict)).Once()

	err := suite.service.DeleteBankAccountNumber(suite.ctx, numberID, suite.testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func TestPartyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PartyServiceTestSuite))
}
