package dto

import (
	"time"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
)

// CreateShareholderRequest defines the data needed to register a shareholder.
type CreateShareholderRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"omitempty,email"`
	HolderType string  `json:"holderType" binding:"required,oneof=INVESTOR STAFF FOUNDER EXTERNAL"`
	UserID     *string `json:"userID"` // Optional, set for registered users
}

// ListShareholdersParams defines query parameters for listing shareholders.
type ListShareholdersParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ShareholderResponse defines the data returned for a shareholder.
type ShareholderResponse struct {
	ShareholderID string              `json:"shareholderID"`
	CompanyID     string              `json:"companyID"`
	UserID        *string             `json:"userID,omitempty"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	HolderType    domain.HolderType   `json:"holderType"`
	Status        domain.RecordStatus `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
}

// ToShareholderResponse converts a domain.Shareholder to DTO.
func ToShareholderResponse(s *domain.Shareholder) ShareholderResponse {
	return ShareholderResponse{
		ShareholderID: s.ShareholderID,
		CompanyID:     s.CompanyID,
		UserID:        s.UserID,
		Name:          s.Name,
		Email:         s.Email,
		HolderType:    s.HolderType,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
		CreatedBy:     s.CreatedBy,
	}
}

// ListShareholdersResponse wraps a list of shareholders.
type ListShareholdersResponse struct {
	Shareholders []ShareholderResponse `json:"shareholders"`
}

// ToListShareholdersResponse converts a slice of domain.Shareholder to DTO.
func ToListShareholdersResponse(ss []domain.Shareholder) ListShareholdersResponse {
	list := make([]ShareholderResponse, len(ss))
	for i := range ss {
		list[i] = ToShareholderResponse(&ss[i])
	}
	return ListShareholdersResponse{Shareholders: list}
}
