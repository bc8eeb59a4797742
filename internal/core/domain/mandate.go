package domain

import "time"

// MandateState is the lifecycle state of a SEPA mandate.
type MandateState string

const (
	MandateDraft     MandateState = "draft"
	MandateRequested MandateState = "requested"
	MandateValidated MandateState = "validated"
	MandateCanceled  MandateState = "canceled"
)

// MandateType distinguishes single-use mandates from recurring ones.
type MandateType string

const (
	MandateRecurrent MandateType = "recurrent"
	MandateOneOff    MandateType = "one-off"
)

// SequenceType is the SEPA direct-debit sequence-type code carried in the
// pain.008 transaction information.
type SequenceType string

const (
	SequenceOneOff    SequenceType = "OOFF"
	SequenceFirst     SequenceType = "FRST"
	SequenceRecurring SequenceType = "RCUR"
	// SequenceFinal (FNAL) is declared for completeness but never produced;
	// closing collections are not tracked yet.
	SequenceFinal SequenceType = "FNAL"
)

// MaxIdentificationLen is the SEPA limit for the mandate reference (Max35Text).
const MaxIdentificationLen = 35

// mandateTransitions is the set of legal state transitions. Everything not
// listed here is rejected; in particular nothing exits the canceled state.
var mandateTransitions = map[MandateState][]MandateState{
	MandateDraft:     {MandateRequested},
	MandateRequested: {MandateValidated, MandateCanceled, MandateDraft},
	MandateValidated: {MandateCanceled},
	MandateCanceled:  {},
}

// Mandate is a debtor's authorization allowing the company to collect
// direct-debit payments from one of the debtor's bank accounts.
type Mandate struct {
	MandateID       string       `json:"mandateID"`
	PartyID         string       `json:"partyID"`
	AccountNumberID *string      `json:"accountNumberID"` // iban-typed bank account number owned by the party
	Identification  string       `json:"identification"`  // mandate reference, max 35 chars
	CompanyID       string       `json:"companyID"`
	Type            MandateType  `json:"type"`
	SignatureDate   *time.Time   `json:"signatureDate"`
	State           MandateState `json:"state"`
	// HasPayments is computed on read by aggregating linked payments; it is
	// never stored.
	HasPayments bool `json:"hasPayments"`
	AuditFields
}

// RecName is the human-readable identifier used in error messages and
// generated files.
func (m Mandate) RecName() string {
	if m.Identification != "" {
		return m.Identification
	}
	return m.MandateID
}

// CanTransition reports whether moving to the target state is a legal
// lifecycle transition from the mandate's current state.
func (m Mandate) CanTransition(to MandateState) bool {
	for _, s := range mandateTransitions[m.State] {
		if s == to {
			return true
		}
	}
	return false
}

// IsValid reports whether the mandate may be assigned to a new payment.
// A one-off mandate is single-use: once any payment links to it, it is spent.
func (m Mandate) IsValid() bool {
	if m.State != MandateValidated {
		return false
	}
	if m.Type == MandateOneOff {
		return !m.HasPayments
	}
	return true
}

// SequenceTypeFor derives the SEPA sequence type for a collection, given the
// number of payments currently linked to the mandate (including the one being
// collected). FNAL is not produced; final collections are indistinguishable
// from recurring ones here.
func (m Mandate) SequenceTypeFor(linkedPayments int) SequenceType {
	if m.Type == MandateOneOff {
		return SequenceOneOff
	}
	if linkedPayments == 1 {
		return SequenceFirst
	}
	return SequenceRecurring
}

// Deletable reports whether the mandate may be deleted. Only draft and
// canceled mandates can go; everything else is a live legal document.
func (m Mandate) Deletable() bool {
	return m.State == MandateDraft || m.State == MandateCanceled
}

// ReadyForValidation checks the fields that become mandatory when the mandate
// enters the validated state.
func (m Mandate) ReadyForValidation() bool {
	return m.AccountNumberID != nil && *m.AccountNumberID != "" &&
		m.Identification != "" &&
		m.SignatureDate != nil
}
