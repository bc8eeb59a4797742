package models

// Group represents a row of the payment_groups table. Message holds the
// generated SEPA XML, empty until the group is processed.
type Group struct {
	GroupID   string      `json:"groupID"` // Primary Key (UUID)
	JournalID string      `json:"journalID"`
	CompanyID string      `json:"companyID"`
	Kind      PaymentKind `json:"kind"`
	RecName   string      `json:"recName"`
	Message   string      `json:"message"`
	AuditFields
}
