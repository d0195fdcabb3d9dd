package models

import "time"

// Company represents a row of the companies table.
type Company struct {
	CompanyID           string `db:"company_id"`
	Name                string `db:"name"`
	Description         string `db:"description"`
	DefaultCurrencyCode string `db:"default_currency_code"`
	IsActive            bool   `db:"is_active"`
	AuditFields
}

// CompanyMember represents a row of the company_members table.
type CompanyMember struct {
	UserID    string    `db:"user_id"`
	CompanyID string    `db:"company_id"`
	Role      string    `db:"role"`
	JoinedAt  time.Time `db:"joined_at"`
}

// Shareholder represents a row of the shareholders table.
type Shareholder struct {
	ShareholderID string  `db:"shareholder_id"`
	CompanyID     string  `db:"company_id"`
	UserID        *string `db:"user_id"` // Nullable
	Name          string  `db:"name"`
	Email         string  `db:"email"`
	HolderType    string  `db:"holder_type"`
	Status        string  `db:"status"`
	AuditFields
}
