package domain

import (
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// PaymentKind is the direction of a payment from the company's point of view.
type PaymentKind string

const (
	Payable    PaymentKind = "payable"    // credit transfer out
	Receivable PaymentKind = "receivable" // direct debit in
)

// PaymentState tracks a payment through its processing lifecycle.
type PaymentState string

const (
	PaymentDraft      PaymentState = "draft"
	PaymentApproved   PaymentState = "approved"
	PaymentProcessing PaymentState = "processing"
	PaymentSucceeded  PaymentState = "succeeded"
	PaymentFailed     PaymentState = "failed"
)

// ChargeBearerSLEV is the only charge bearer SEPA schemes allow: charges are
// split following the scheme's service level.
const ChargeBearerSLEV = "SLEV"

// Payment represents a single amount to pay or collect.
type Payment struct {
	PaymentID    string          `json:"paymentID"`
	JournalID    string          `json:"journalID"`
	PartyID      string          `json:"partyID"`
	Kind         PaymentKind     `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Description  string          `json:"description"`
	// OriginRef is the record name of the originating document (invoice,
	// statement line...), when there is one.
	OriginRef *string      `json:"originRef"`
	MandateID *string      `json:"mandateID"` // restrict-on-delete reference to a SEPA mandate
	GroupID   *string      `json:"groupID"`
	State     PaymentState `json:"state"`
	Date      time.Time    `json:"date"`
	AuditFields
}

// ChargeBearer returns the SEPA charge bearer code for the payment.
func (p Payment) ChargeBearer() string {
	return ChargeBearerSLEV
}

// EndToEndID derives the end-to-end identifier transported unchanged through
// the whole payment chain: the originating document reference when present,
// else the payment description, else the payment's own identifier. Always at
// most 35 characters.
func (p Payment) EndToEndID() string {
	if p.OriginRef != nil && *p.OriginRef != "" {
		return truncate(*p.OriginRef, MaxIdentificationLen)
	}
	if p.Description != "" {
		return truncate(p.Description, MaxIdentificationLen)
	}
	return truncate(p.PaymentID, MaxIdentificationLen)
}

// RecName is the payment's display name used in error messages.
func (p Payment) RecName() string {
	if p.Description != "" {
		return p.Description
	}
	return p.PaymentID
}

// truncate cuts s down to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
