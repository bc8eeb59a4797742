package mapping

import (
	"github.com/finbase/sepa_payments_app/internal/core/domain"
	"github.com/finbase/sepa_payments_app/internal/models"
)

// ToModelJournal converts a domain PaymentJournal to a model PaymentJournal
func ToModelJournal(d domain.PaymentJournal) models.PaymentJournal {
	return models.PaymentJournal{
		JournalID:               d.JournalID,
		Name:                    d.Name,
		CompanyID:               d.CompanyID,
		CurrencyCode:            d.CurrencyCode,
		Method:                  models.ProcessMethod(d.Method),
		SEPABankAccountNumberID: d.SEPABankAccountNumberID,
		PayableFlavor:           d.PayableFlavor,
		ReceivableFlavor:        d.ReceivableFlavor,
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model PaymentJournal to a domain PaymentJournal
func ToDomainJournal(m models.PaymentJournal) domain.PaymentJournal {
	return domain.PaymentJournal{
		JournalID:               m.JournalID,
		Name:                    m.Name,
		CompanyID:               m.CompanyID,
		CurrencyCode:            m.CurrencyCode,
		Method:                  domain.ProcessMethod(m.Method),
		SEPABankAccountNumberID: m.SEPABankAccountNumberID,
		PayableFlavor:           m.PayableFlavor,
		ReceivableFlavor:        m.ReceivableFlavor,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalSlice converts a slice of model PaymentJournals to domain
// PaymentJournals
func ToDomainJournalSlice(ms []models.PaymentJournal) []domain.PaymentJournal {
	ds := make([]domain.PaymentJournal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournal(m)
	}
	return ds
}
