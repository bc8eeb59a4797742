package domain

// Group is a batch of payments sharing a journal and direction, processed
// into a single SEPA file.
type Group struct {
	GroupID   string      `json:"groupID"`
	JournalID string      `json:"journalID"`
	CompanyID string      `json:"companyID"`
	Kind      PaymentKind `json:"kind"`
	// RecName is the batch's display name, used to derive the export filename.
	RecName string `json:"recName"`
	// Message holds the generated SEPA XML once the group has been processed.
	Message string `json:"message,omitempty"`
	AuditFields
}

// File returns the UTF-8 encoded bytes of the generated message, or nil when
// the group has not been processed yet.
func (g Group) File() []byte {
	if g.Message == "" {
		return nil
	}
	return []byte(g.Message)
}

// Filename returns the export filename for the generated message, empty while
// there is nothing to export.
func (g Group) Filename() string {
	if g.Message == "" {
		return ""
	}
	return g.RecName + ".xml"
}
