package mapping

import (
	"github.com/finbase/sepa_payments_app/internal/core/domain"
	"github.com/finbase/sepa_payments_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:    d.PaymentID,
		JournalID:    d.JournalID,
		PartyID:      d.PartyID,
		Kind:         models.PaymentKind(d.Kind),
		Amount:       d.Amount,
		CurrencyCode: d.CurrencyCode,
		Description:  d.Description,
		OriginRef:    d.OriginRef,
		MandateID:    d.MandateID,
		GroupID:      d.GroupID,
		State:        models.PaymentState(d.State),
		Date:         d.Date,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:    m.PaymentID,
		JournalID:    m.JournalID,
		PartyID:      m.PartyID,
		Kind:         domain.PaymentKind(m.Kind),
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
		Description:  m.Description,
		OriginRef:    m.OriginRef,
		MandateID:    m.MandateID,
		GroupID:      m.GroupID,
		State:        domain.PaymentState(m.State),
		Date:         m.Date,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
