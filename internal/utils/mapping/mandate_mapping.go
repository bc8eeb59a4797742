package mapping

import (
	"github.com/finbase/sepa_payments_app/internal/core/domain"
	"github.com/finbase/sepa_payments_app/internal/models"
)

// ToModelMandate converts a domain Mandate to a model Mandate
func ToModelMandate(d domain.Mandate) models.Mandate {
	return models.Mandate{
		MandateID:       d.MandateID,
		PartyID:         d.PartyID,
		AccountNumberID: d.AccountNumberID,
		Identification:  d.Identification,
		CompanyID:       d.CompanyID,
		Type:            models.MandateType(d.Type),
		SignatureDate:   d.SignatureDate,
		State:           models.MandateState(d.State),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMandate converts a model Mandate to a domain Mandate. The
// HasPayments flag is a computed aggregate, not a column; callers populate it
// separately.
func ToDomainMandate(m models.Mandate) domain.Mandate {
	return domain.Mandate{
		MandateID:       m.MandateID,
		PartyID:         m.PartyID,
		AccountNumberID: m.AccountNumberID,
		Identification:  m.Identification,
		CompanyID:       m.CompanyID,
		Type:            domain.MandateType(m.Type),
		SignatureDate:   m.SignatureDate,
		State:           domain.MandateState(m.State),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMandateSlice converts a slice of model Mandates to domain Mandates
func ToDomainMandateSlice(ms []models.Mandate) []domain.Mandate {
	ds := make([]domain.Mandate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMandate(m)
	}
	return ds
}
