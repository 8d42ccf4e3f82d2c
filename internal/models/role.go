package models

// Role names recognised by the API.
const (
	RoleUser    = "User"
	RoleManager = "Manager"
	RoleAdmin   = "Admin"
)

// Role groups users for routing level elevation.
type Role struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;size:32;not null" json:"name"`

	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}
