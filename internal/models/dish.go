package models

// Dish belongs to a single restaurant and is removed together with it.
type Dish struct {
	BaseModel

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null;default:0" json:"price"`

	RestaurantID int `gorm:"not null;index" json:"restaurant_id"`
}
