package models

import (
	"strings"

	"gorm.io/datatypes"
)

// User is a registered account able to own restaurants.
type User struct {
	BaseModel

	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	FirstName   string          `gorm:"size:100" json:"first_name"`
	LastName    string          `gorm:"size:100" json:"last_name"`
	Nationality string          `gorm:"size:64" json:"nationality"`
	DateOfBirth *datatypes.Date `json:"date_of_birth"`

	RoleID int   `gorm:"not null;index" json:"role_id"`
	Role   *Role `json:"role,omitempty"`
}

// FullName joins the first and last names, skipping blanks.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// RoleName returns the preloaded role name, or an empty string.
func (u *User) RoleName() string {
	if u == nil || u.Role == nil {
		return ""
	}
	return u.Role.Name
}
