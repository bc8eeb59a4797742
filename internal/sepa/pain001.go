package sepa

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/moov-io/iso20022/pkg/common"
)

// pain001Document is the CustomerCreditTransferInitiation message used for
// payable groups (outgoing SEPA credit transfers).
type pain001Document struct {
	XMLName          xml.Name
	CstmrCdtTrfInitn customerCreditTransferInitiation `xml:"CstmrCdtTrfInitn"`
}

type customerCreditTransferInitiation struct {
	GrpHdr groupHeader                `xml:"GrpHdr"`
	PmtInf []creditPaymentInstruction `xml:"PmtInf"`
}

type creditPaymentInstruction struct {
	PmtInfID    common.Max35Text              `xml:"PmtInfId"`
	PmtMtd      string                        `xml:"PmtMtd"`
	NbOfTxs     string                        `xml:"NbOfTxs"`
	CtrlSum     string                        `xml:"CtrlSum"`
	PmtTpInf    paymentTypeInformation        `xml:"PmtTpInf"`
	ReqdExctnDt common.ISODate                `xml:"ReqdExctnDt"`
	Dbtr        partyIdentification           `xml:"Dbtr"`
	DbtrAcct    cashAccount                   `xml:"DbtrAcct"`
	DbtrAgt     branchAndFinancialInstitution `xml:"DbtrAgt"`
	ChrgBr      string                        `xml:"ChrgBr"`
	CdtTrfTxInf []creditTransferTransaction   `xml:"CdtTrfTxInf"`
}

type creditTransferTransaction struct {
	PmtID    paymentIdentification          `xml:"PmtId"`
	Amt      creditAmount                   `xml:"Amt"`
	CdtrAgt  *branchAndFinancialInstitution `xml:"CdtrAgt,omitempty"`
	Cdtr     partyIdentification            `xml:"Cdtr"`
	CdtrAcct cashAccount                    `xml:"CdtrAcct"`
}

type creditAmount struct {
	InstdAmt currencyAndAmount `xml:"InstdAmt"`
}

// pain001Builder renders a message as one pain.001 schema generation; the
// two SEPA flavors differ only in namespace and the agent BIC element name.
type pain001Builder struct {
	namespace string
	bicfi     bool
}

var _ Builder = pain001Builder{}

func (b pain001Builder) Build(msg Message) (string, error) {
	txs := make([]creditTransferTransaction, 0, len(msg.Transactions))
	for _, tx := range msg.Transactions {
		out := creditTransferTransaction{
			PmtID: paymentIdentification{EndToEndID: common.Max35Text(tx.EndToEndID)},
			Amt:   creditAmount{InstdAmt: amountOf(tx.Amount, tx.Currency)},
			Cdtr:  partyIdentification{Nm: common.Max140Text(tx.Counterparty.Name)},
			CdtrAcct: cashAccount{
				ID: accountID{IBAN: tx.CounterpartyAccount.IBAN},
			},
		}
		if tx.CounterpartyAccount.BIC != "" {
			agent := agentFor(tx.CounterpartyAccount.BIC, b.bicfi)
			out.CdtrAgt = &agent
		}
		txs = append(txs, out)
	}

	nbOfTxs := strconv.Itoa(len(txs))
	ctrlSum := decimalString(msg.ControlSum())

	doc := pain001Document{
		XMLName: xml.Name{Space: b.namespace, Local: "Document"},
		CstmrCdtTrfInitn: customerCreditTransferInitiation{
			GrpHdr: groupHeader{
				MsgID:    common.Max35Text(msg.MessageID),
				CreDtTm:  common.ISODateTime(msg.CreationDateTime),
				NbOfTxs:  nbOfTxs,
				CtrlSum:  ctrlSum,
				InitgPty: partyIdentification{Nm: common.Max140Text(msg.InitiatingParty.Name)},
			},
			PmtInf: []creditPaymentInstruction{
				{
					PmtInfID: common.Max35Text(msg.MessageID),
					PmtMtd:   "TRF",
					NbOfTxs:  nbOfTxs,
					CtrlSum:  ctrlSum,
					PmtTpInf: paymentTypeInformation{
						SvcLvl: &serviceLevel{Cd: "SEPA"},
					},
					ReqdExctnDt: common.ISODate(msg.RequestedDate),
					Dbtr:        partyIdentification{Nm: common.Max140Text(msg.InitiatingParty.Name)},
					DbtrAcct: cashAccount{
						ID: accountID{IBAN: msg.CompanyAccount.IBAN},
					},
					DbtrAgt:     agentFor(msg.CompanyAccount.BIC, b.bicfi),
					ChrgBr:      "SLEV",
					CdtTrfTxInf: txs,
				},
			},
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal pain.001 document: %w", err)
	}
	return xml.Header + string(out), nil
}
