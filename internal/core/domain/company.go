package domain

import "time"

// Company is the tenant that owns a share configuration, shareholders and their holdings.
type Company struct {
	CompanyID           string `json:"companyID"`           // Primary Key (UUID)
	Name                string `json:"name"`                // Legal or display name
	Description         string `json:"description"`         // Optional description
	DefaultCurrencyCode string `json:"defaultCurrencyCode"` // Currency used for valuation display (e.g., "USD")
	IsActive            bool   `json:"isActive"`
	AuditFields
}

// CompanyMember represents the membership of a User in a Company.
type CompanyMember struct {
	UserID    string    `json:"userID"`    // FK -> users (owned by the identity provider)
	CompanyID string    `json:"companyID"` // FK -> companies.company_id
	Role      Role      `json:"role"`      // Role of the user in this specific company
	JoinedAt  time.Time `json:"joinedAt"`
}
