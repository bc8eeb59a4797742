package sepa_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbase/sepa_payments_app/internal/apperrors"
	"github.com/finbase/sepa_payments_app/internal/sepa"
)

func testMessage() sepa.Message {
	return sepa.Message{
		MessageID:        "MSG-001",
		CreationDateTime: time.Date(2025, 6, 20, 9, 30, 0, 0, time.UTC),
		RequestedDate:    time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC),
		Method:           "CORE",
		InitiatingParty:  sepa.PartyInfo{Name: "Acme SA"},
		CompanyAccount:   sepa.AccountInfo{IBAN: "FR7630006000011234567890189", BIC: "AGRIFRPPXXX"},
		CreditorSchemeID: "FR72ZZZ123456",
	}
}

func debitTransaction(endToEnd, amount, seqType string) sepa.Transaction {
	return sepa.Transaction{
		EndToEndID:          endToEnd,
		Amount:              decimal.RequireFromString(amount),
		Currency:            "EUR",
		ChargeBearer:        "SLEV",
		Counterparty:        sepa.PartyInfo{Name: "Debtor GmbH"},
		CounterpartyAccount: sepa.AccountInfo{IBAN: "DE89370400440532013000", BIC: "COBADEFFXXX"},
		MandateID:           "MNDT-" + endToEnd,
		SignatureDate:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		SequenceType:        seqType,
	}
}

func TestBuilderFor_UnknownFlavor(t *testing.T) {
	b, err := sepa.BuilderFor("pain.001.001.99")
	require.Error(t, err)
	assert.Nil(t, b)
	assert.ErrorIs(t, err, apperrors.ErrUnimplemented)
	assert.ErrorIs(t, err, sepa.ErrUnknownFlavor)
}

func TestBuilderFor_EmptyFlavor(t *testing.T) {
	b, err := sepa.BuilderFor("")
	require.Error(t, err)
	assert.Nil(t, b)
	assert.ErrorIs(t, err, apperrors.ErrUnimplemented)
}

func TestFlavors_AllResolve(t *testing.T) {
	flavors := sepa.Flavors()
	require.Len(t, flavors, 4)
	for _, flavor := range flavors {
		b, err := sepa.BuilderFor(flavor)
		require.NoError(t, err, flavor)
		assert.NotNil(t, b, flavor)
	}
}

func TestPain001_Build(t *testing.T) {
	msg := testMessage()
	msg.Method = "TRF"
	msg.CreditorSchemeID = ""
	msg.Transactions = []sepa.Transaction{
		{
			EndToEndID:          "INV-001",
			Amount:              decimal.RequireFromString("100.25"),
			Currency:            "EUR",
			ChargeBearer:        "SLEV",
			Counterparty:        sepa.PartyInfo{Name: "Supplier BV"},
			CounterpartyAccount: sepa.AccountInfo{IBAN: "NL91ABNA0417164300", BIC: "ABNANL2AXXX"},
		},
		{
			EndToEndID:          "INV-002",
			Amount:              decimal.RequireFromString("200.25"),
			Currency:            "EUR",
			ChargeBearer:        "SLEV",
			Counterparty:        sepa.PartyInfo{Name: "Supplier GmbH"},
			CounterpartyAccount: sepa.AccountInfo{IBAN: "DE89370400440532013000"},
		},
	}

	builder, err := sepa.BuilderFor("pain.001.001.03")
	require.NoError(t, err)
	out, err := builder.Build(msg)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `urn:iso:std:iso:20022:tech:xsd:pain.001.001.03`)
	assert.Contains(t, out, "<MsgId>MSG-001</MsgId>")
	assert.Contains(t, out, "<NbOfTxs>2</NbOfTxs>")
	assert.Contains(t, out, "<CtrlSum>300.50</CtrlSum>")
	assert.Contains(t, out, "<PmtMtd>TRF</PmtMtd>")
	assert.Contains(t, out, "<EndToEndId>INV-001</EndToEndId>")
	assert.Contains(t, out, `Ccy="EUR">100.25`)
	assert.Contains(t, out, "<IBAN>NL91ABNA0417164300</IBAN>")
	assert.Contains(t, out, "<ChrgBr>SLEV</ChrgBr>")
	// The 2009 generation spells the agent element BIC, never BICFI.
	assert.Contains(t, out, "<BIC>AGRIFRPPXXX</BIC>")
	assert.NotContains(t, out, "<BICFI>")
}

func TestPain001_V05UsesBICFI(t *testing.T) {
	msg := testMessage()
	msg.Method = "TRF"
	msg.Transactions = []sepa.Transaction{
		{
			EndToEndID:          "INV-001",
			Amount:              decimal.RequireFromString("50.00"),
			Currency:            "EUR",
			Counterparty:        sepa.PartyInfo{Name: "Supplier BV"},
			CounterpartyAccount: sepa.AccountInfo{IBAN: "NL91ABNA0417164300", BIC: "ABNANL2AXXX"},
		},
	}

	builder, err := sepa.BuilderFor("pain.001.001.05")
	require.NoError(t, err)
	out, err := builder.Build(msg)
	require.NoError(t, err)

	assert.Contains(t, out, `urn:iso:std:iso:20022:tech:xsd:pain.001.001.05`)
	assert.Contains(t, out, "<BICFI>AGRIFRPPXXX</BICFI>")
	assert.NotContains(t, out, "<BIC>")
}

func TestPain008_SequencePartitioning(t *testing.T) {
	msg := testMessage()
	// Deliberately scrambled input order.
	msg.Transactions = []sepa.Transaction{
		debitTransaction("C1", "10.00", "OOFF"),
		debitTransaction("C2", "20.00", "FRST"),
		debitTransaction("C3", "30.00", "RCUR"),
		debitTransaction("C4", "40.00", "RCUR"),
	}

	builder, err := sepa.BuilderFor("pain.008.001.02")
	require.NoError(t, err)
	out, err := builder.Build(msg)
	require.NoError(t, err)

	assert.Contains(t, out, `urn:iso:std:iso:20022:tech:xsd:pain.008.001.02`)
	assert.Contains(t, out, "<PmtMtd>DD</PmtMtd>")
	// Group header totals cover the whole batch.
	assert.Contains(t, out, "<NbOfTxs>4</NbOfTxs>")
	assert.Contains(t, out, "<CtrlSum>100.00</CtrlSum>")

	// One payment instruction per sequence type, in FRST/RCUR/OOFF order,
	// each carrying its own totals.
	frst := strings.Index(out, "<PmtInfId>MSG-001-FRST</PmtInfId>")
	rcur := strings.Index(out, "<PmtInfId>MSG-001-RCUR</PmtInfId>")
	ooff := strings.Index(out, "<PmtInfId>MSG-001-OOFF</PmtInfId>")
	require.GreaterOrEqual(t, frst, 0)
	require.GreaterOrEqual(t, rcur, 0)
	require.GreaterOrEqual(t, ooff, 0)
	assert.Less(t, frst, rcur)
	assert.Less(t, rcur, ooff)
	assert.Contains(t, out, "<CtrlSum>70.00</CtrlSum>", "RCUR instruction total")

	assert.Contains(t, out, "<SeqTp>FRST</SeqTp>")
	assert.Contains(t, out, "<LclInstrm>")
	assert.Contains(t, out, "<Cd>CORE</Cd>")
	assert.Contains(t, out, "<MndtId>MNDT-C2</MndtId>")
	assert.Contains(t, out, "<DtOfSgntr>2025-03-10</DtOfSgntr>")
	assert.Contains(t, out, "<ReqdColltnDt>2025-06-25</ReqdColltnDt>")
}

func TestPain008_OmitsLocalInstrumentWithoutMethod(t *testing.T) {
	msg := testMessage()
	msg.Method = ""
	msg.Transactions = []sepa.Transaction{debitTransaction("C1", "10.00", "RCUR")}

	builder, err := sepa.BuilderFor("pain.008.001.02")
	require.NoError(t, err)
	out, err := builder.Build(msg)
	require.NoError(t, err)

	assert.NotContains(t, out, "<LclInstrm>")
	assert.Contains(t, out, "<SvcLvl>")
}

func TestPain008_CreditorScheme(t *testing.T) {
	msg := testMessage()
	msg.Transactions = []sepa.Transaction{debitTransaction("C1", "10.00", "RCUR")}

	builder, err := sepa.BuilderFor("pain.008.001.02")
	require.NoError(t, err)

	out, err := builder.Build(msg)
	require.NoError(t, err)
	assert.Contains(t, out, "<CdtrSchmeId>")
	assert.Contains(t, out, "<Id>FR72ZZZ123456</Id>")
	assert.Contains(t, out, "<Prtry>SEPA</Prtry>")

	msg.CreditorSchemeID = ""
	out, err = builder.Build(msg)
	require.NoError(t, err)
	assert.NotContains(t, out, "<CdtrSchmeId>")
}

func TestPain008_OmitsAgentWithoutBIC(t *testing.T) {
	msg := testMessage()
	tx := debitTransaction("C1", "10.00", "RCUR")
	tx.CounterpartyAccount.BIC = ""
	msg.Transactions = []sepa.Transaction{tx}

	builder, err := sepa.BuilderFor("pain.008.001.02")
	require.NoError(t, err)
	out, err := builder.Build(msg)
	require.NoError(t, err)

	assert.NotContains(t, out, "<DbtrAgt>")
	assert.Contains(t, out, "<CdtrAgt>", "the creditor side always carries its agent")
}

func TestStripComments(t *testing.T) {
	in := "<Doc><!-- generated\nby tooling --><A>1</A><!--x--></Doc>"
	assert.Equal(t, "<Doc><A>1</A></Doc>", sepa.StripComments(in))
	assert.Equal(t, "<Doc/>", sepa.StripComments("<Doc/>"))
}

func TestControlSum(t *testing.T) {
	msg := testMessage()
	msg.Transactions = []sepa.Transaction{
		debitTransaction("C1", "0.10", "RCUR"),
		debitTransaction("C2", "0.20", "RCUR"),
		debitTransaction("C3", "0.30", "RCUR"),
	}
	assert.True(t, msg.ControlSum().Equal(decimal.RequireFromString("0.60")))
}
