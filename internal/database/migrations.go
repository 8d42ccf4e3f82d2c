package database

import (
	"gorm.io/gorm"

	"github.com/charlesng35/restaurants/internal/models"
)

// DefaultRoles are created on start-up with stable identifiers.
var DefaultRoles = []models.Role{
	{ID: 1, Name: models.RoleUser},
	{ID: 2, Name: models.RoleManager},
	{ID: 3, Name: models.RoleAdmin},
}

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Restaurant{},
		&models.Address{},
		&models.Dish{},
		&models.CacheEntry{},
	)
}

// SeedData populates the default roles.
func SeedData(db *gorm.DB) error {
	for _, role := range DefaultRoles {
		if err := db.Where(models.Role{Name: role.Name}).Attrs(role).FirstOrCreate(&models.Role{}).Error; err != nil {
			return err
		}
	}
	return nil
}
