package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
)

// CreatePaymentRequest defines the data needed to create a payment.
type CreatePaymentRequest struct {
	JournalID    string             `json:"journalID" binding:"required"`
	PartyID      string             `json:"partyID" binding:"required"`
	Kind         domain.PaymentKind `json:"kind" binding:"required,oneof=payable receivable"`
	Amount       decimal.Decimal    `json:"amount" binding:"required"`
	CurrencyCode string             `json:"currencyCode" binding:"required,len=3"`
	Description  string             `json:"description"`
	OriginRef    *string            `json:"originRef"`
	Date         time.Time          `json:"date" binding:"required"`
}

// AssignMandateRequest names the mandate to assign to a payment.
type AssignMandateRequest struct {
	MandateID string `json:"mandateID" binding:"required"`
}

// PaymentResponse defines the data returned for a payment, including the
// SEPA attributes derived on read.
type PaymentResponse struct {
	PaymentID    string              `json:"paymentID"`
	JournalID    string              `json:"journalID"`
	PartyID      string              `json:"partyID"`
	Kind         domain.PaymentKind  `json:"kind"`
	Amount       decimal.Decimal     `json:"amount"`
	CurrencyCode string              `json:"currencyCode"`
	Description  string              `json:"description"`
	OriginRef    *string             `json:"originRef"`
	MandateID    *string             `json:"mandateID"`
	GroupID      *string             `json:"groupID"`
	State        domain.PaymentState `json:"state"`
	Date         time.Time           `json:"date"`
	ChargeBearer string              `json:"chargeBearer"`
	EndToEndID   string              `json:"endToEndID"`
	CreatedAt    time.Time           `json:"createdAt"`
	CreatedBy    string              `json:"createdBy"`
}

// ToPaymentResponse converts a domain.Payment to its response DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:    p.PaymentID,
		JournalID:    p.JournalID,
		PartyID:      p.PartyID,
		Kind:         p.Kind,
		Amount:       p.Amount,
		CurrencyCode: p.CurrencyCode,
		Description:  p.Description,
		OriginRef:    p.OriginRef,
		MandateID:    p.MandateID,
		GroupID:      p.GroupID,
		State:        p.State,
		Date:         p.Date,
		ChargeBearer: p.ChargeBearer(),
		EndToEndID:   p.EndToEndID(),
		CreatedAt:    p.CreatedAt,
		CreatedBy:    p.CreatedBy,
	}
}

// ToPaymentResponses converts a slice of payments.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i])
	}
	return res
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListPaymentsResponse wraps a page of payments.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}
