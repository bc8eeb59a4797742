package models

// ProcessMethod mirrors the method column of payment_journals.
type ProcessMethod string

// PaymentJournal represents a row of the payment_journals table.
type PaymentJournal struct {
	JournalID               string        `json:"journalID"` // Primary Key (UUID)
	Name                    string        `json:"name"`
	CompanyID               string        `json:"companyID"`
	CurrencyCode            string        `json:"currencyCode"`
	Method                  ProcessMethod `json:"method"`
	SEPABankAccountNumberID *string       `json:"sepaBankAccountNumberID"` // Nullable FK
	PayableFlavor           string        `json:"payableFlavor"`
	ReceivableFlavor        string        `json:"receivableFlavor"`
	AuditFields
}
