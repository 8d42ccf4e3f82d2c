package models

// Restaurant is the aggregate root owned by the user who created it.
type Restaurant struct {
	BaseModel

	Name          string `gorm:"size:25;not null;index" json:"name"`
	Description   string `gorm:"type:text" json:"description"`
	Category      string `gorm:"size:64;index" json:"category"`
	HasDelivery   bool   `gorm:"default:false" json:"has_delivery"`
	ContactEmail  string `gorm:"size:255" json:"contact_email"`
	ContactNumber string `gorm:"size:32" json:"contact_number"`

	CreatedByID int `gorm:"not null;index" json:"created_by_id"`

	Address *Address `gorm:"constraint:OnDelete:CASCADE;" json:"address,omitempty"`
	Dishes  []Dish   `gorm:"constraint:OnDelete:CASCADE;" json:"dishes,omitempty"`
}

// NoOwner is reported for a missing restaurant. No principal carries it.
const NoOwner = -1

// OwnerID reports the identifier of the principal that created the restaurant.
func (r *Restaurant) OwnerID() int {
	if r == nil {
		return NoOwner
	}
	return r.CreatedByID
}

// Address is owned by exactly one restaurant.
type Address struct {
	ID           int    `gorm:"primaryKey;autoIncrement" json:"-"`
	RestaurantID int    `gorm:"uniqueIndex;not null" json:"-"`
	City         string `gorm:"size:50;not null" json:"city"`
	Street       string `gorm:"size:50;not null" json:"street"`
	PostalCode   string `gorm:"size:16" json:"postal_code"`
}
