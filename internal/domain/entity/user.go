// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// User is the account identity mirrored from the upstream WordPress user.
// IDs are WordPress numeric user ids, not locally generated.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`

	// Optional profile fields, locally editable and best-effort synced.
	Avatar  string `json:"avatar,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Company string `json:"company,omitempty"`
}

// UserPatch is a partial update to a user's profile fields. Nil fields are
// left untouched by Apply.
type UserPatch struct {
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Company     *string `json:"company,omitempty"`
}

// Apply merges the patch into the user in place.
func (p *UserPatch) Apply(u *User) {
	if p == nil || u == nil {
		return
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.Company != nil {
		u.Company = *p.Company
	}
}

// Empty reports whether the patch carries no changes.
func (p *UserPatch) Empty() bool {
	return p == nil || (p.Email == nil && p.DisplayName == nil && p.Avatar == nil &&
		p.Phone == nil && p.Address == nil && p.Company == nil)
}
