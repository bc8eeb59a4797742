package dto

import (
	"time"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
)

// CreatePartyRequest defines the data needed to create a party.
type CreatePartyRequest struct {
	Name                   string `json:"name" binding:"required"`
	SEPACreditorIdentifier string `json:"sepaCreditorIdentifier" binding:"omitempty,max=35"`
}

// PartyResponse defines the data returned for a party.
type PartyResponse struct {
	PartyID                string    `json:"partyID"`
	Name                   string    `json:"name"`
	SEPACreditorIdentifier string    `json:"sepaCreditorIdentifier,omitempty"`
	CreatedAt              time.Time `json:"createdAt"`
	CreatedBy              string    `json:"createdBy"`
}

// ToPartyResponse converts a domain.Party to its response DTO.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:                p.PartyID,
		Name:                   p.Name,
		SEPACreditorIdentifier: p.SEPACreditorIdentifier,
		CreatedAt:              p.CreatedAt,
		CreatedBy:              p.CreatedBy,
	}
}

// BankAccountNumberRequest is one number of a bank account being created.
// IBAN format is checked by the party service for iban-typed numbers.
type BankAccountNumberRequest struct {
	Type   domain.BankAccountNumberType `json:"type" binding:"required,oneof=iban other"`
	Number string                       `json:"number" binding:"required,max=34"`
}

// CreateBankAccountRequest defines the data needed to attach a bank account
// to a party.
type CreateBankAccountRequest struct {
	OwnerPartyID string                     `json:"ownerPartyID" binding:"required"`
	BankName     string                     `json:"bankName"`
	BIC          string                     `json:"bic" binding:"omitempty,bic"`
	Numbers      []BankAccountNumberRequest `json:"numbers" binding:"required,min=1,dive"`
}

// BankAccountNumberResponse is one number of a bank account.
type BankAccountNumberResponse struct {
	NumberID string                       `json:"numberID"`
	Type     domain.BankAccountNumberType `json:"type"`
	Number   string                       `json:"number"`
}

// BankAccountResponse defines the data returned for a bank account with its
// numbers.
type BankAccountResponse struct {
	BankAccountID string                      `json:"bankAccountID"`
	OwnerPartyID  string                      `json:"ownerPartyID"`
	BankName      string                      `json:"bankName,omitempty"`
	BIC           string                      `json:"bic,omitempty"`
	Numbers       []BankAccountNumberResponse `json:"numbers"`
}

// ToBankAccountResponse converts a bank account and its numbers.
func ToBankAccountResponse(a *domain.BankAccount, numbers []domain.BankAccountNumber) BankAccountResponse {
	nums := make([]BankAccountNumberResponse, len(numbers))
	for i, n := range numbers {
		nums[i] = BankAccountNumberResponse{
			NumberID: n.NumberID,
			Type:     n.Type,
			Number:   n.Number,
		}
	}
	return BankAccountResponse{
		BankAccountID: a.BankAccountID,
		OwnerPartyID:  a.OwnerPartyID,
		BankName:      a.BankName,
		BIC:           a.BIC,
		Numbers:       nums,
	}
}
