// Package sepa builds ISO 20022 customer payment initiation messages
// (pain.001 credit transfers and pain.008 direct debits) in the schema
// flavors accepted by the SEPA schemes.
package sepa

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbase/sepa_payments_app/internal/apperrors"
)

// ErrUnknownFlavor is returned when no builder is registered for a flavor
// name. It wraps apperrors.ErrUnimplemented: an unconfigured or unknown
// flavor is a configuration error, not a user mistake.
var ErrUnknownFlavor = fmt.Errorf("%w: unknown SEPA flavor", apperrors.ErrUnimplemented)

// PartyInfo names one side of a transaction.
type PartyInfo struct {
	Name string
}

// AccountInfo routes to a bank account.
type AccountInfo struct {
	IBAN string
	BIC  string
}

// Transaction is one payment inside a message. The mandate fields are only
// meaningful for direct debits.
type Transaction struct {
	EndToEndID          string
	Amount              decimal.Decimal
	Currency            string
	ChargeBearer        string
	Counterparty        PartyInfo
	CounterpartyAccount AccountInfo

	MandateID     string
	SignatureDate time.Time
	SequenceType  string // OOFF, FRST, RCUR
}

// Message is the flavor-independent input to a builder: one payment group's
// worth of transactions plus the initiating side.
type Message struct {
	MessageID        string
	CreationDateTime time.Time
	RequestedDate    time.Time // requested execution (payable) or collection (receivable) date
	Method           string    // CORE, B2B, TRF, CHK
	InitiatingParty  PartyInfo
	CompanyAccount   AccountInfo
	// CreditorSchemeID is the company party's SEPA creditor identifier,
	// required for direct debits.
	CreditorSchemeID string
	Transactions     []Transaction
}

// ControlSum returns the sum of all transaction amounts.
func (m Message) ControlSum() decimal.Decimal {
	return controlSum(m.Transactions)
}

func controlSum(txs []Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}
	return sum
}

// Builder renders a Message into the XML text of one schema flavor.
type Builder interface {
	Build(msg Message) (string, error)
}

// builders maps flavor names (as configured on payment journals) to their
// document builder.
var builders = map[string]Builder{
	"pain.001.001.03": pain001Builder{namespace: "urn:iso:std:iso:20022:tech:xsd:pain.001.001.03", bicfi: false},
	"pain.001.001.05": pain001Builder{namespace: "urn:iso:std:iso:20022:tech:xsd:pain.001.001.05", bicfi: true},
	"pain.008.001.02": pain008Builder{namespace: "urn:iso:std:iso:20022:tech:xsd:pain.008.001.02", bicfi: false},
	"pain.008.001.04": pain008Builder{namespace: "urn:iso:std:iso:20022:tech:xsd:pain.008.001.04", bicfi: true},
}

// BuilderFor resolves the builder registered for a flavor name.
func BuilderFor(flavor string) (Builder, error) {
	if flavor == "" {
		return nil, fmt.Errorf("%w: no flavor configured", apperrors.ErrUnimplemented)
	}
	b, ok := builders[flavor]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownFlavor, flavor)
	}
	return b, nil
}

// Flavors lists the registered flavor names.
func Flavors() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	return names
}

var commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)

// StripComments removes XML comment nodes from rendered output before it is
// stored or exported.
func StripComments(xmlText string) string {
	return commentRe.ReplaceAllString(xmlText, "")
}
