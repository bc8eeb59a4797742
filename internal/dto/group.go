package dto

import (
	"time"

	"github.com/finbase/sepa_payments_app/internal/core/domain"
)

// CreateGroupRequest defines the data needed to assemble a payment group.
type CreateGroupRequest struct {
	JournalID  string             `json:"journalID" binding:"required"`
	Kind       domain.PaymentKind `json:"kind" binding:"required,oneof=payable receivable"`
	RecName    string             `json:"recName" binding:"required,max=64"`
	PaymentIDs []string           `json:"paymentIDs" binding:"required,min=1"`
}

// GroupResponse defines the data returned for a payment group.
type GroupResponse struct {
	GroupID       string             `json:"groupID"`
	JournalID     string             `json:"journalID"`
	CompanyID     string             `json:"companyID"`
	Kind          domain.PaymentKind `json:"kind"`
	RecName       string             `json:"recName"`
	HasMessage    bool               `json:"hasMessage"`
	Filename      string             `json:"filename,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ListGroupsParams defines query parameters for listing groups.
type ListGroupsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListGroupsResponse wraps a page of groups.
type ListGroupsResponse struct {
	Groups    []GroupResponse `json:"groups"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToGroupResponse converts a domain.Group to its response DTO. The message
// body itself is only served through the file endpoint.
func ToGroupResponse(g *domain.Group) GroupResponse {
	return GroupResponse{
		GroupID:       g.GroupID,
		JournalID:     g.JournalID,
		CompanyID:     g.CompanyID,
		Kind:          g.Kind,
		RecName:       g.RecName,
		HasMessage:    g.Message != "",
		Filename:      g.Filename(),
		CreatedAt:     g.CreatedAt,
		CreatedBy:     g.CreatedBy,
		LastUpdatedAt: g.LastUpdatedAt,
	}
}
