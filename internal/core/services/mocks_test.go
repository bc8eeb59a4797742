package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
	portsrepo "github.com/finbase/sepa_payments_app/internal/core/ports/repositories"
)

// Hand-written repository mocks shared by the service test suites.

// --- MockMandateRepository ---

type MockMandateRepository struct {
	mock.Mock
}

var _ portsrepo.MandateRepositoryFacade = (*MockMandateRepository)(nil)

func (m *MockMandateRepository) FindMandateByID(ctx context.Context, mandateID string) (*domain.Mandate, error) {
	args := m.Called(ctx, mandateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mandate), args.Error(1)
}

func (m *MockMandateRepository) ListMandatesByParty(ctx context.Context, partyID string, limit int, nextToken *string) ([]domain.Mandate, *string, error) {
	args := m.Called(ctx, partyID, limit, nextToken)
	var mandates []domain.Mandate
	if args.Get(0) != nil {
		mandates = args.Get(0).([]domain.Mandate)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return mandates, token, args.Error(2)
}

func (m *MockMandateRepository) HasPayments(ctx context.Context, mandateIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, mandateIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockMandateRepository) CountPaymentsByMandate(ctx context.Context, mandateID string) (int, error) {
	args := m.Called(ctx, mandateID)
	return args.Int(0), args.Error(1)
}

func (m *MockMandateRepository) SaveMandate(ctx context.Context, mandate domain.Mandate) error {
	args := m.Called(ctx, mandate)
	return args.Error(0)
}

func (m *MockMandateRepository) UpdateMandate(ctx context.Context, mandate domain.Mandate) error {
	args := m.Called(ctx, mandate)
	return args.Error(0)
}

func (m *MockMandateRepository) UpdateMandateState(ctx context.Context, mandateID string, state domain.MandateState, updatedBy string) error {
	args := m.Called(ctx, mandateID, state, updatedBy)
	return args.Error(0)
}

func (m *MockMandateRepository) DeleteMandate(ctx context.Context, mandateID string) error {
	args := m.Called(ctx, mandateID)
	return args.Error(0)
}

// --- MockPaymentRepository ---

type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByGroup(ctx context.Context, groupID string) ([]domain.Payment, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByParty(ctx context.Context, partyID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, partyID, limit, nextToken)
	var payments []domain.Payment
	if args.Get(0) != nil {
		payments = args.Get(0).([]domain.Payment)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return payments, token, args.Error(2)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePaymentMandate(ctx context.Context, paymentID string, mandateID string, updatedBy string) error {
	args := m.Called(ctx, paymentID, mandateID, updatedBy)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePaymentGroup(ctx context.Context, paymentID string, groupID string, updatedBy string) error {
	args := m.Called(ctx, paymentID, groupID, updatedBy)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePaymentState(ctx context.Context, paymentID string, state domain.PaymentState, updatedBy string) error {
	args := m.Called(ctx, paymentID, state, updatedBy)
	return args.Error(0)
}

// --- MockGroupRepository ---

type MockGroupRepository struct {
	mock.Mock
}

var _ portsrepo.GroupRepositoryFacade = (*MockGroupRepository)(nil)

func (m *MockGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) ListGroupsByJournal(ctx context.Context, journalID string, limit int, nextToken *string) ([]domain.Group, *string, error) {
	args := m.Called(ctx, journalID, limit, nextToken)
	var groups []domain.Group
	if args.Get(0) != nil {
		groups = args.Get(0).([]domain.Group)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return groups, token, args.Error(2)
}

func (m *MockGroupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) UpdateGroupMessage(ctx context.Context, groupID string, message string, updatedBy string) error {
	args := m.Called(ctx, groupID, message, updatedBy)
	return args.Error(0)
}

// --- MockJournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.PaymentJournal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentJournal), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, companyID string) ([]domain.PaymentJournal, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentJournal), args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.PaymentJournal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournal(ctx context.Context, journal domain.PaymentJournal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

// --- MockPartyRepository ---

type MockPartyRepository struct {
	mock.Mock
}

var _ portsrepo.PartyRepositoryFacade = (*MockPartyRepository)(nil)

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockPartyRepository) ListBankAccountsByParty(ctx context.Context, partyID string) ([]domain.BankAccount, map[string][]domain.BankAccountNumber, error) {
	args := m.Called(ctx, partyID)
	var accounts []domain.BankAccount
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.BankAccount)
	}
	var numbers map[string][]domain.BankAccountNumber
	if args.Get(1) != nil {
		numbers = args.Get(1).(map[string][]domain.BankAccountNumber)
	}
	return accounts, numbers, args.Error(2)
}

func (m *MockPartyRepository) FindBankAccountNumberByID(ctx context.Context, numberID string) (*domain.BankAccountNumber, error) {
	args := m.Called(ctx, numberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccountNumber), args.Error(1)
}

func (m *MockPartyRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount, numbers []domain.BankAccountNumber) error {
	args := m.Called(ctx, account, numbers)
	return args.Error(0)
}

func (m *MockPartyRepository) DeleteBankAccountNumber(ctx context.Context, numberID string) error {
	args := m.Called(ctx, numberID)
	return args.Error(0)
}
