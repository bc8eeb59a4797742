package mapping

import (
	"github.com/finbase/sepa_payments_app/internal/core/domain"
	"github.com/finbase/sepa_payments_app/internal/models"
)

// ToModelGroup converts a domain Group to a model Group
func ToModelGroup(d domain.Group) models.Group {
	return models.Group{
		GroupID:     d.GroupID,
		JournalID:   d.JournalID,
		CompanyID:   d.CompanyID,
		Kind:        models.PaymentKind(d.Kind),
		RecName:     d.RecName,
		Message:     d.Message,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGroup converts a model Group to a domain Group
func ToDomainGroup(m models.Group) domain.Group {
	return domain.Group{
		GroupID:     m.GroupID,
		JournalID:   m.JournalID,
		CompanyID:   m.CompanyID,
		Kind:        domain.PaymentKind(m.Kind),
		RecName:     m.RecName,
		Message:     m.Message,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGroupSlice converts a slice of model Groups to domain Groups
func ToDomainGroupSlice(ms []models.Group) []domain.Group {
	ds := make([]domain.Group, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGroup(m)
	}
	return ds
}
