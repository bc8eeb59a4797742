package dto

import (
	"time"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
)

// CreateMandateRequest defines the data needed to create a mandate.
// Mandates always start in the draft state.
type CreateMandateRequest struct {
	PartyID         string             `json:"partyID" binding:"required"`
	CompanyID       string             `json:"companyID" binding:"required"`
	AccountNumberID *string            `json:"accountNumberID"`
	Identification  string             `json:"identification" binding:"max=35"`
	Type            domain.MandateType `json:"type" binding:"omitempty,oneof=recurrent one-off"`
	SignatureDate   *time.Time         `json:"signatureDate"`
}

// UpdateMandateRequest defines the fields that may be changed on a mandate.
// Pointers distinguish "not provided" from zero values. Which fields are
// still editable depends on the mandate's state.
type UpdateMandateRequest struct {
	AccountNumberID *string             `json:"accountNumberID"`
	Identification  *string             `json:"identification" binding:"omitempty,max=35"`
	Type            *domain.MandateType `json:"type" binding:"omitempty,oneof=recurrent one-off"`
	SignatureDate   *time.Time          `json:"signatureDate"`
}

// MandateResponse defines the data returned for a mandate.
type MandateResponse struct {
	MandateID       string              `json:"mandateID"`
	PartyID         string              `json:"partyID"`
	CompanyID       string              `json:"companyID"`
	AccountNumberID *string             `json:"accountNumberID"`
	Identification  string              `json:"identification"`
	Type            domain.MandateType  `json:"type"`
	SignatureDate   *time.Time          `json:"signatureDate"`
	State           domain.MandateState `json:"state"`
	HasPayments     bool                `json:"hasPayments"`
	IsValid         bool                `json:"isValid"`
	CreatedAt       time.Time           `json:"createdAt"`
	CreatedBy       string              `json:"createdBy"`
	LastUpdatedAt   time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy   string              `json:"lastUpdatedBy"`
}

// ToMandateResponse converts a domain.Mandate to its response DTO.
func ToMandateResponse(m *domain.Mandate) MandateResponse {
	return MandateResponse{
		MandateID:       m.MandateID,
		PartyID:         m.PartyID,
		CompanyID:       m.CompanyID,
		AccountNumberID: m.AccountNumberID,
		Identification:  m.Identification,
		Type:            m.Type,
		SignatureDate:   m.SignatureDate,
		State:           m.State,
		HasPayments:     m.HasPayments,
		IsValid:         m.IsValid(),
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
		LastUpdatedAt:   m.LastUpdatedAt,
		LastUpdatedBy:   m.LastUpdatedBy,
	}
}

// ListMandatesParams defines query parameters for listing mandates.
type ListMandatesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListMandatesResponse wraps a page of mandates.
type ListMandatesResponse struct {
	Mandates  []MandateResponse `json:"mandates"`
	NextToken *string           `json:"nextToken,omitempty"`
}
