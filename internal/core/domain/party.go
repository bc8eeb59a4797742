package domain

// Party is anyone the company pays or collects from.
type Party struct {
	PartyID string `json:"partyID"`
	Name    string `json:"name"`
	// SEPACreditorIdentifier identifies the party as a SEPA creditor when it
	// collects direct debits. Max 35 chars.
	SEPACreditorIdentifier string `json:"sepaCreditorIdentifier"`
	AuditFields
}

// Company is the legal entity operating the journals; its party is the
// initiating party of every generated file.
type Company struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	PartyID   string `json:"partyID"`
	AuditFields
}

// BankAccountNumberType distinguishes IBANs from legacy account numbers.
type BankAccountNumberType string

const (
	NumberIBAN  BankAccountNumberType = "iban"
	NumberOther BankAccountNumberType = "other"
)

// BankAccount groups the numbers a party holds at one bank.
type BankAccount struct {
	BankAccountID string `json:"bankAccountID"`
	OwnerPartyID  string `json:"ownerPartyID"`
	BankName      string `json:"bankName"`
	BIC           string `json:"bic"`
	AuditFields
}

// BankAccountNumber is a single routable number of a bank account. SEPA only
// ever uses the iban-typed ones.
type BankAccountNumber struct {
	NumberID      string                `json:"numberID"`
	BankAccountID string                `json:"bankAccountID"`
	Type          BankAccountNumberType `json:"type"`
	Number        string                `json:"number"`
	AuditFields
}
