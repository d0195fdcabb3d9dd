package dto

import (
	"time"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
)

// --- Company DTOs ---

// CreateCompanyRequest defines data for creating a new company.
type CreateCompanyRequest struct {
	Name                string `json:"name" binding:"required"`
	Description         string `json:"description"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"required,iso4217"`
}

// CompanyResponse defines data returned for a company.
type CompanyResponse struct {
	CompanyID           string    `json:"companyID"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	DefaultCurrencyCode string    `json:"defaultCurrencyCode"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	CreatedBy           string    `json:"createdBy"` // UserID
	LastUpdatedAt       time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy       string    `json:"lastUpdatedBy"` // UserID
}

// ToCompanyResponse converts domain.Company to DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:           c.CompanyID,
		Name:                c.Name,
		Description:         c.Description,
		DefaultCurrencyCode: c.DefaultCurrencyCode,
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt,
		CreatedBy:           c.CreatedBy,
		LastUpdatedAt:       c.LastUpdatedAt,
		LastUpdatedBy:       c.LastUpdatedBy,
	}
}

// --- Company Membership DTOs ---

// AddMemberRequest defines data for adding a user to a company.
type AddMemberRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=SUPERADMIN ADMIN FOUNDER MEMBER VIEWER"`
}

// MemberResponse defines a membership returned to callers.
type MemberResponse struct {
	UserID    string      `json:"userID"`
	CompanyID string      `json:"companyID"`
	Role      domain.Role `json:"role"`
	JoinedAt  time.Time   `json:"joinedAt"`
}

// ToMemberResponse converts domain.CompanyMember to DTO.
func ToMemberResponse(m *domain.CompanyMember) MemberResponse {
	return MemberResponse{
		UserID:    m.UserID,
		CompanyID: m.CompanyID,
		Role:      m.Role,
		JoinedAt:  m.JoinedAt,
	}
}

// ListMembersResponse wraps a list of memberships.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

// ToListMembersResponse converts a slice of domain.CompanyMember to DTO.
func ToListMembersResponse(ms []domain.CompanyMember) ListMembersResponse {
	list := make([]MemberResponse, len(ms))
	for i := range ms {
		list[i] = ToMemberResponse(&ms[i])
	}
	return ListMembersResponse{Members: list}
}
