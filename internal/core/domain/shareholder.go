package domain

// HolderType classifies a shareholder.
type HolderType string

const (
	HolderInvestor HolderType = "INVESTOR"
	HolderStaff    HolderType = "STAFF"
	HolderFounder  HolderType = "FOUNDER"
	HolderExternal HolderType = "EXTERNAL"
)

// IsValid reports whether h is one of the known holder types.
func (h HolderType) IsValid() bool {
	switch h {
	case HolderInvestor, HolderStaff, HolderFounder, HolderExternal:
		return true
	}
	return false
}

// Shareholder is a party holding equity: a registered user or an external entity.
type Shareholder struct {
	ShareholderID string       `json:"shareholderID"` // Primary Key (UUID)
	CompanyID     string       `json:"companyID"`
	UserID        *string      `json:"userID,omitempty"` // Set when the holder is a registered user
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	HolderType    HolderType   `json:"holderType"`
	Status        RecordStatus `json:"status"`
	AuditFields
}
