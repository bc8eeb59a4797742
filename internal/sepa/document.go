package sepa

import (
	"github.com/moov-io/iso20022/pkg/common"
	"github.com/shopspring/decimal"
)

// Subset of the ISO 20022 schema shared by the pain.001 and pain.008
// flavors we generate. Leaf values reuse the moov-io/iso20022 common types;
// the document shapes are declared here because the EPC SEPA generations
// (pain.001.001.03/05, pain.008.001.02/04) are not among the message
// versions that library ships.

type groupHeader struct {
	MsgID    common.Max35Text    `xml:"MsgId"`
	CreDtTm  common.ISODateTime  `xml:"CreDtTm"`
	NbOfTxs  string              `xml:"NbOfTxs"`
	CtrlSum  string              `xml:"CtrlSum"`
	InitgPty partyIdentification `xml:"InitgPty"`
}

type partyIdentification struct {
	Nm common.Max140Text      `xml:"Nm,omitempty"`
	ID *partyIdentificationID `xml:"Id,omitempty"`
}

type partyIdentificationID struct {
	PrvtID *personIdentification `xml:"PrvtId,omitempty"`
}

type personIdentification struct {
	Othr genericPersonIdentification `xml:"Othr"`
}

type genericPersonIdentification struct {
	ID      common.Max35Text `xml:"Id"`
	SchmeNm *schemeName      `xml:"SchmeNm,omitempty"`
}

type schemeName struct {
	Prtry string `xml:"Prtry,omitempty"`
}

type cashAccount struct {
	ID accountID `xml:"Id"`
}

type accountID struct {
	IBAN string `xml:"IBAN"`
}

// branchAndFinancialInstitution carries the agent BIC. The element was
// renamed BIC -> BICFI between the 2009 and 2013 schema generations, so both
// spellings exist here and the builder fills exactly one.
type branchAndFinancialInstitution struct {
	FinInstnID financialInstitutionID `xml:"FinInstnId"`
}

type financialInstitutionID struct {
	BIC   string `xml:"BIC,omitempty"`
	BICFI string `xml:"BICFI,omitempty"`
}

func agentFor(bic string, bicfi bool) branchAndFinancialInstitution {
	if bicfi {
		return branchAndFinancialInstitution{FinInstnID: financialInstitutionID{BICFI: bic}}
	}
	return branchAndFinancialInstitution{FinInstnID: financialInstitutionID{BIC: bic}}
}

type paymentTypeInformation struct {
	SvcLvl    *serviceLevel    `xml:"SvcLvl,omitempty"`
	LclInstrm *localInstrument `xml:"LclInstrm,omitempty"`
	SeqTp     string           `xml:"SeqTp,omitempty"`
}

type serviceLevel struct {
	Cd string `xml:"Cd"`
}

type localInstrument struct {
	Cd string `xml:"Cd"`
}

type paymentIdentification struct {
	EndToEndID common.Max35Text `xml:"EndToEndId"`
}

// currencyAndAmount renders an amount element with its Ccy attribute. SEPA
// amounts always carry two decimals.
type currencyAndAmount struct {
	Ccy   common.ActiveCurrencyCode `xml:"Ccy,attr"`
	Value string                    `xml:",chardata"`
}

func amountOf(amount decimal.Decimal, currency string) currencyAndAmount {
	return currencyAndAmount{
		Ccy:   common.ActiveCurrencyCode(currency),
		Value: amount.StringFixed(2),
	}
}

func decimalString(d decimal.Decimal) string {
	return d.StringFixed(2)
}
