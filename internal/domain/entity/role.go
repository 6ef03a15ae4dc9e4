// Package entity contains the core business objects of the project.
package entity

// Role represents the marketplace role a user can hold.
type Role string

const (
	// RoleCustomer is the default role for every new account.
	RoleCustomer Role = "customer"
	// RoleVendor indicates a vendor with an approved storefront.
	RoleVendor Role = "vendor"
	// RolePendingVendor indicates a vendor application awaiting approval.
	RolePendingVendor Role = "pending_vendor"
	// RoleAdmin indicates a site administrator.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RolePendingVendor, RoleAdmin:
		return true
	default:
		return false
	}
}

// RoleFromString maps an upstream role string to a Role, defaulting to
// customer for unknown values so a response with an unexpected role never
// produces an invalid account.
func RoleFromString(s string) Role {
	role := Role(s)
	if role.IsValid() {
		return role
	}

	return RoleCustomer
}
