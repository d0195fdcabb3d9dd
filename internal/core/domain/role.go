package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of roles a user can hold within a company.
type Role string

const (
	RoleSuperadmin Role = "SUPERADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleFounder    Role = "FOUNDER"
	RoleMember     Role = "MEMBER"
	RoleViewer     Role = "VIEWER"
)

// roleRanks orders roles by privilege. FOUNDER sits above ADMIN because it holds every ADMIN
// capability plus approval, buyback and share configuration.
var roleRanks = map[Role]int{
	RoleViewer:     1,
	RoleMember:     2,
	RoleAdmin:      3,
	RoleFounder:    4,
	RoleSuperadmin: 5,
}

// Rank returns the role's privilege level; unknown roles rank 0.
func (r Role) Rank() int {
	return roleRanks[r]
}

// Outranks reports whether r is strictly more privileged than other.
func (r Role) Outranks(other Role) bool {
	return r.Rank() > other.Rank()
}

// Capability names an action guarded by role.
type Capability string

const (
	CapViewEquity         Capability = "VIEW_EQUITY"
	CapManageShareholders Capability = "MANAGE_SHAREHOLDERS"
	CapAllocateShares     Capability = "ALLOCATE_SHARES"
	CapProposeIssuance    Capability = "PROPOSE_ISSUANCE"
	CapApproveIssuance    Capability = "APPROVE_ISSUANCE"
	CapTransferShares     Capability = "TRANSFER_SHARES"
	CapBuybackShares      Capability = "BUYBACK_SHARES"
	CapConfigureShares    Capability = "CONFIGURE_SHARES"
	CapManageMembers      Capability = "MANAGE_MEMBERS"
)

// capabilityRoles maps each capability to the roles allowed to exercise it.
var capabilityRoles = map[Capability][]Role{
	CapViewEquity:         {RoleViewer, RoleMember, RoleFounder, RoleAdmin, RoleSuperadmin},
	CapManageShareholders: {RoleFounder, RoleAdmin, RoleSuperadmin},
	CapAllocateShares:     {RoleFounder, RoleAdmin, RoleSuperadmin},
	CapProposeIssuance:    {RoleFounder, RoleAdmin, RoleSuperadmin},
	CapApproveIssuance:    {RoleFounder, RoleSuperadmin},
	CapTransferShares:     {RoleFounder, RoleAdmin, RoleSuperadmin},
	CapBuybackShares:      {RoleFounder, RoleSuperadmin},
	CapConfigureShares:    {RoleFounder, RoleSuperadmin},
	CapManageMembers:      {RoleFounder, RoleAdmin, RoleSuperadmin},
}

// Can reports whether role grants capability.
func Can(role Role, capability Capability) bool {
	for _, r := range capabilityRoles[capability] {
		if r == role {
			return true
		}
	}
	return false
}

// ParseRole converts user input into a Role, case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleFounder, RoleMember, RoleViewer:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}
