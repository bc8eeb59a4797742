package models

import "time"

// MandateState mirrors the lifecycle state column of sepa_mandates.
type MandateState string

// MandateType mirrors the one_off/recurrent column of sepa_mandates.
type MandateType string

// Mandate represents a row of the sepa_mandates table.
type Mandate struct {
	MandateID       string       `json:"mandateID"`       // Primary Key (UUID)
	PartyID         string       `json:"partyID"`         // Debtor party
	AccountNumberID *string      `json:"accountNumberID"` // Nullable until validation
	Identification  string       `json:"identification"`  // Unique mandate reference, max 35
	CompanyID       string       `json:"companyID"`
	Type            MandateType  `json:"type"`
	SignatureDate   *time.Time   `json:"signatureDate"` // Nullable until validation
	State           MandateState `json:"state"`
	AuditFields
}
