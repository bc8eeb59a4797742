package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPayment_EndToEndID(t *testing.T) {
	originRef := "STMT-LINE-42"

	withOrigin := Payment{PaymentID: "pay-1", Description: "June rent", OriginRef: &originRef}
	assert.Equal(t, "STMT-LINE-42", withOrigin.EndToEndID())

	withDescription := Payment{PaymentID: "pay-1", Description: "June rent"}
	assert.Equal(t, "June rent", withDescription.EndToEndID())

	bare := Payment{PaymentID: "pay-1"}
	assert.Equal(t, "pay-1", bare.EndToEndID())

	long := Payment{PaymentID: "pay-1", Description: strings.Repeat("x", 50)}
	assert.Len(t, long.EndToEndID(), MaxIdentificationLen)
}

func TestPayment_EndToEndIDKeepsRunesWhole(t *testing.T) {
	// 20 two-byte runes, so the 35-byte cut lands mid-rune.
	multiByte := Payment{PaymentID: "pay-1", Description: strings.Repeat("é", 20)}
	id := multiByte.EndToEndID()
	assert.True(t, utf8.ValidString(id))
	assert.LessOrEqual(t, len(id), MaxIdentificationLen)
	assert.Equal(t, strings.Repeat("é", 17), id)
}

func TestPayment_ChargeBearer(t *testing.T) {
	assert.Equal(t, "SLEV", Payment{}.ChargeBearer())
}
