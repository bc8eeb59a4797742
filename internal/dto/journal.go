package dto

import (
	"time"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
)

// CreateJournalRequest defines the data needed to create a payment journal.
// The sepaflavor validation is registered on the binding engine at startup.
type CreateJournalRequest struct {
	Name                    string               `json:"name" binding:"required"`
	CompanyID               string               `json:"companyID" binding:"required"`
	CurrencyCode            string               `json:"currencyCode" binding:"required,len=3"`
	Method                  domain.ProcessMethod `json:"method" binding:"required,oneof=manual sepa_core sepa_b2b sepa_trf sepa_chk"`
	SEPABankAccountNumberID *string              `json:"sepaBankAccountNumberID"`
	PayableFlavor           string               `json:"payableFlavor" binding:"omitempty,sepaflavor"`
	ReceivableFlavor        string               `json:"receivableFlavor" binding:"omitempty,sepaflavor"`
}

// UpdateJournalRequest defines the fields that may be changed on a journal.
type UpdateJournalRequest struct {
	Name                    *string               `json:"name"`
	Method                  *domain.ProcessMethod `json:"method" binding:"omitempty,oneof=manual sepa_core sepa_b2b sepa_trf sepa_chk"`
	SEPABankAccountNumberID *string               `json:"sepaBankAccountNumberID"`
	PayableFlavor           *string               `json:"payableFlavor" binding:"omitempty,sepaflavor"`
	ReceivableFlavor        *string               `json:"receivableFlavor" binding:"omitempty,sepaflavor"`
}

// JournalResponse defines the data returned for a payment journal.
type JournalResponse struct {
	JournalID               string               `json:"journalID"`
	Name                    string               `json:"name"`
	CompanyID               string               `json:"companyID"`
	CurrencyCode            string               `json:"currencyCode"`
	Method                  domain.ProcessMethod `json:"method"`
	SEPAMethod              string               `json:"sepaMethod,omitempty"`
	SEPABankAccountNumberID *string              `json:"sepaBankAccountNumberID"`
	PayableFlavor           string               `json:"payableFlavor,omitempty"`
	ReceivableFlavor        string               `json:"receivableFlavor,omitempty"`
	CreatedAt               time.Time            `json:"createdAt"`
	CreatedBy               string               `json:"createdBy"`
}

// ToJournalResponse converts a domain.PaymentJournal to its response DTO.
func ToJournalResponse(j *domain.PaymentJournal) JournalResponse {
	return JournalResponse{
		JournalID:               j.JournalID,
		Name:                    j.Name,
		CompanyID:               j.CompanyID,
		CurrencyCode:            j.CurrencyCode,
		Method:                  j.Method,
		SEPAMethod:              j.SEPAMethod(),
		SEPABankAccountNumberID: j.SEPABankAccountNumberID,
		PayableFlavor:           j.PayableFlavor,
		ReceivableFlavor:        j.ReceivableFlavor,
		CreatedAt:               j.CreatedAt,
		CreatedBy:               j.CreatedBy,
	}
}

// ToJournalResponses converts a slice of journals.
func ToJournalResponses(journals []domain.PaymentJournal) []JournalResponse {
	res := make([]JournalResponse, len(journals))
	for i := range journals {
		res[i] = ToJournalResponse(&journals[i])
	}
	return res
}
