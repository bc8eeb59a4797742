package sepa

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/moov-io/iso20022/pkg/common"
)

// pain008Document is the CustomerDirectDebitInitiation message used for
// receivable groups (incoming SEPA direct debits).
type pain008Document struct {
	XMLName           xml.Name
	CstmrDrctDbtInitn customerDirectDebitInitiation `xml:"CstmrDrctDbtInitn"`
}

type customerDirectDebitInitiation struct {
	GrpHdr groupHeader               `xml:"GrpHdr"`
	PmtInf []debitPaymentInstruction `xml:"PmtInf"`
}

type debitPaymentInstruction struct {
	PmtInfID     common.Max35Text              `xml:"PmtInfId"`
	PmtMtd       string                        `xml:"PmtMtd"`
	NbOfTxs      string                        `xml:"NbOfTxs"`
	CtrlSum      string                        `xml:"CtrlSum"`
	PmtTpInf     paymentTypeInformation        `xml:"PmtTpInf"`
	ReqdColltnDt common.ISODate                `xml:"ReqdColltnDt"`
	Cdtr         partyIdentification           `xml:"Cdtr"`
	CdtrAcct     cashAccount                   `xml:"CdtrAcct"`
	CdtrAgt      branchAndFinancialInstitution `xml:"CdtrAgt"`
	ChrgBr       string                        `xml:"ChrgBr"`
	CdtrSchmeID  *partyIdentification          `xml:"CdtrSchmeId,omitempty"`
	DrctDbtTxInf []directDebitTransaction      `xml:"DrctDbtTxInf"`
}

type directDebitTransaction struct {
	PmtID     paymentIdentification          `xml:"PmtId"`
	InstdAmt  currencyAndAmount              `xml:"InstdAmt"`
	DrctDbtTx directDebitTransactionInfo     `xml:"DrctDbtTx"`
	DbtrAgt   *branchAndFinancialInstitution `xml:"DbtrAgt,omitempty"`
	Dbtr      partyIdentification            `xml:"Dbtr"`
	DbtrAcct  cashAccount                    `xml:"DbtrAcct"`
}

type directDebitTransactionInfo struct {
	MndtRltdInf mandateRelatedInformation `xml:"MndtRltdInf"`
}

type mandateRelatedInformation struct {
	MndtID    common.Max35Text `xml:"MndtId"`
	DtOfSgntr common.ISODate   `xml:"DtOfSgntr"`
}

// pain008Builder renders a message as one pain.008 schema generation.
type pain008Builder struct {
	namespace string
	bicfi     bool
}

var _ Builder = pain008Builder{}

// sequenceOrder fixes the order payment instructions appear in the file.
var sequenceOrder = []string{"FRST", "RCUR", "OOFF", "FNAL"}

func (b pain008Builder) Build(msg Message) (string, error) {
	// The schemes require one payment instruction per sequence type, so the
	// batch is partitioned before rendering.
	bySequence := make(map[string][]Transaction)
	for _, tx := range msg.Transactions {
		bySequence[tx.SequenceType] = append(bySequence[tx.SequenceType], tx)
	}

	creditorScheme := &partyIdentification{
		ID: &partyIdentificationID{
			PrvtID: &personIdentification{
				Othr: genericPersonIdentification{
					ID:      common.Max35Text(msg.CreditorSchemeID),
					SchmeNm: &schemeName{Prtry: "SEPA"},
				},
			},
		},
	}
	if msg.CreditorSchemeID == "" {
		creditorScheme = nil
	}

	var localInstr *localInstrument
	if msg.Method != "" {
		localInstr = &localInstrument{Cd: msg.Method}
	}

	var instructions []debitPaymentInstruction
	for _, seq := range sequenceOrder {
		txs := bySequence[seq]
		if len(txs) == 0 {
			continue
		}
		out := make([]directDebitTransaction, 0, len(txs))
		for _, tx := range txs {
			ddTx := directDebitTransaction{
				PmtID:    paymentIdentification{EndToEndID: common.Max35Text(tx.EndToEndID)},
				InstdAmt: amountOf(tx.Amount, tx.Currency),
				DrctDbtTx: directDebitTransactionInfo{
					MndtRltdInf: mandateRelatedInformation{
						MndtID:    common.Max35Text(tx.MandateID),
						DtOfSgntr: common.ISODate(tx.SignatureDate),
					},
				},
				Dbtr: partyIdentification{Nm: common.Max140Text(tx.Counterparty.Name)},
				DbtrAcct: cashAccount{
					ID: accountID{IBAN: tx.CounterpartyAccount.IBAN},
				},
			}
			if tx.CounterpartyAccount.BIC != "" {
				agent := agentFor(tx.CounterpartyAccount.BIC, b.bicfi)
				ddTx.DbtrAgt = &agent
			}
			out = append(out, ddTx)
		}
		instructions = append(instructions, debitPaymentInstruction{
			PmtInfID: common.Max35Text(msg.MessageID + "-" + seq),
			PmtMtd:   "DD",
			NbOfTxs:  strconv.Itoa(len(txs)),
			CtrlSum:  decimalString(controlSum(txs)),
			PmtTpInf: paymentTypeInformation{
				SvcLvl:    &serviceLevel{Cd: "SEPA"},
				LclInstrm: localInstr,
				SeqTp:     seq,
			},
			ReqdColltnDt: common.ISODate(msg.RequestedDate),
			Cdtr:         partyIdentification{Nm: common.Max140Text(msg.InitiatingParty.Name)},
			CdtrAcct: cashAccount{
				ID: accountID{IBAN: msg.CompanyAccount.IBAN},
			},
			CdtrAgt:      agentFor(msg.CompanyAccount.BIC, b.bicfi),
			ChrgBr:       "SLEV",
			CdtrSchmeID:  creditorScheme,
			DrctDbtTxInf: out,
		})
	}

	doc := pain008Document{
		XMLName: xml.Name{Space: b.namespace, Local: "Document"},
		CstmrDrctDbtInitn: customerDirectDebitInitiation{
			GrpHdr: groupHeader{
				MsgID:    common.Max35Text(msg.MessageID),
				CreDtTm:  common.ISODateTime(msg.CreationDateTime),
				NbOfTxs:  strconv.Itoa(len(msg.Transactions)),
				CtrlSum:  decimalString(msg.ControlSum()),
				InitgPty: partyIdentification{Nm: common.Max140Text(msg.InitiatingParty.Name)},
			},
			PmtInf: instructions,
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal pain.008 document: %w", err)
	}
	return xml.Header + string(out), nil
}
