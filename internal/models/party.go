package models

// Party represents a row of the parties table.
type Party struct {
	PartyID                string `json:"partyID"` // Primary Key (UUID)
	Name                   string `json:"name"`
	SEPACreditorIdentifier string `json:"sepaCreditorIdentifier"`
	AuditFields
}

// Company represents a row of the companies table.
type Company struct {
	CompanyID string `json:"companyID"` // Primary Key (UUID)
	Name      string `json:"name"`
	PartyID   string `json:"partyID"`
	AuditFields
}

// BankAccountNumberType mirrors the type column of bank_account_numbers.
type BankAccountNumberType string

// BankAccount represents a row of the bank_accounts table.
type BankAccount struct {
	BankAccountID string `json:"bankAccountID"` // Primary Key (UUID)
	OwnerPartyID  string `json:"ownerPartyID"`
	BankName      string `json:"bankName"`
	BIC           string `json:"bic"`
	AuditFields
}

// BankAccountNumber represents a row of the bank_account_numbers table.
type BankAccountNumber struct {
	NumberID      string                `json:"numberID"` // Primary Key (UUID)
	BankAccountID string                `json:"bankAccountID"`
	Type          BankAccountNumberType `json:"type"`
	Number        string                `json:"number"`
	AuditFields
}
