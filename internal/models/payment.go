package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentKind mirrors the direction column of payments.
type PaymentKind string

// PaymentState mirrors the processing state column of payments.
type PaymentState string

// Payment represents a row of the payments table.
type Payment struct {
	PaymentID    string          `json:"paymentID"` // Primary Key (UUID)
	JournalID    string          `json:"journalID"`
	PartyID      string          `json:"partyID"`
	Kind         PaymentKind     `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Description  string          `json:"description"`
	OriginRef    *string         `json:"originRef"` // Nullable originating document reference
	MandateID    *string         `json:"mandateID"` // Nullable FK, ON DELETE RESTRICT
	GroupID      *string         `json:"groupID"`   // Nullable until grouped
	State        PaymentState    `json:"state"`
	Date         time.Time       `json:"date"`
	AuditFields
}
