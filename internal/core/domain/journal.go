package domain

// ProcessMethod selects how a payment journal's groups are turned into
// payment orders.
type ProcessMethod string

const (
	ProcessManual   ProcessMethod = "manual"
	ProcessSEPACore ProcessMethod = "sepa_core" // SEPA core direct debit
	ProcessSEPAB2B  ProcessMethod = "sepa_b2b"  // SEPA B2B direct debit
	ProcessSEPATrf  ProcessMethod = "sepa_trf"  // SEPA credit transfer
	ProcessSEPAChk  ProcessMethod = "sepa_chk"  // SEPA credit check
)

// SEPA flavor names, matching the ISO 20022 message identifiers the journal
// can be configured with.
const (
	FlavorPain001V03 = "pain.001.001.03"
	FlavorPain001V05 = "pain.001.001.05"
	FlavorPain008V02 = "pain.008.001.02"
	FlavorPain008V04 = "pain.008.001.04"
)

// PaymentJournal is the configuration entity for a family of payment groups:
// processing method, originating bank account and the XML schema flavor to
// use per direction.
type PaymentJournal struct {
	JournalID    string        `json:"journalID"`
	Name         string        `json:"name"`
	CompanyID    string        `json:"companyID"`
	CurrencyCode string        `json:"currencyCode"`
	Method       ProcessMethod `json:"method"`
	// SEPABankAccountNumberID is the company-owned IBAN payments are issued
	// from (payable) or collected into (receivable). Required for the SEPA
	// processing methods.
	SEPABankAccountNumberID *string `json:"sepaBankAccountNumberID"`
	// PayableFlavor / ReceivableFlavor name the pain.001 / pain.008 schema
	// generation used when rendering groups of that direction. Empty means
	// not configured.
	PayableFlavor    string `json:"payableFlavor"`
	ReceivableFlavor string `json:"receivableFlavor"`
	AuditFields
}

// SEPAMethod returns the scheme code written into the generated file's
// payment information block, empty for non-SEPA journals.
func (j PaymentJournal) SEPAMethod() string {
	switch j.Method {
	case ProcessSEPACore:
		return "CORE"
	case ProcessSEPAB2B:
		return "B2B"
	case ProcessSEPATrf:
		return "TRF"
	case ProcessSEPAChk:
		return "CHK"
	}
	return ""
}

// IsSEPA reports whether the journal uses one of the SEPA processing methods.
func (j PaymentJournal) IsSEPA() bool {
	return j.SEPAMethod() != ""
}

// FlavorFor returns the configured schema flavor for a payment direction.
func (j PaymentJournal) FlavorFor(kind PaymentKind) string {
	if kind == Payable {
		return j.PayableFlavor
	}
	return j.ReceivableFlavor
}
