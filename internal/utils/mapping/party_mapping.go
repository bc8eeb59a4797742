package mapping

import (
	"github.com/finbase/sepa_payments_app/internal/core/domain"
	"github.com/finbase/sepa_payments_app/internal/models"
)

// ToModelParty converts a domain Party to a model Party
func ToModelParty(d domain.Party) models.Party {
	return models.Party{
		PartyID:                d.PartyID,
		Name:                   d.Name,
		SEPACreditorIdentifier: d.SEPACreditorIdentifier,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainParty converts a model Party to a domain Party
func ToDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID:                m.PartyID,
		Name:                   m.Name,
		SEPACreditorIdentifier: m.SEPACreditorIdentifier,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		PartyID:     m.PartyID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBankAccount converts a domain BankAccount to a model BankAccount
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID: d.BankAccountID,
		OwnerPartyID:  d.OwnerPartyID,
		BankName:      d.BankName,
		BIC:           d.BIC,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID: m.BankAccountID,
		OwnerPartyID:  m.OwnerPartyID,
		BankName:      m.BankName,
		BIC:           m.BIC,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBankAccountNumber converts a domain BankAccountNumber to its model
func ToModelBankAccountNumber(d domain.BankAccountNumber) models.BankAccountNumber {
	return models.BankAccountNumber{
		NumberID:      d.NumberID,
		BankAccountID: d.BankAccountID,
		Type:          models.BankAccountNumberType(d.Type),
		Number:        d.Number,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankAccountNumber converts a model BankAccountNumber to its domain
func ToDomainBankAccountNumber(m models.BankAccountNumber) domain.BankAccountNumber {
	return domain.BankAccountNumber{
		NumberID:      m.NumberID,
		BankAccountID: m.BankAccountID,
		Type:          domain.BankAccountNumberType(m.Type),
		Number:        m.Number,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
