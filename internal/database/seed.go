package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/charlesng35/restaurants/internal/models"
)

// SampleRestaurants returns the demo catalogue inserted by SeedSampleRestaurants.
func SampleRestaurants(ownerID int) []models.Restaurant {
	return []models.Restaurant{
		{
			Name:         "KFC",
			Category:     "Fast Food",
			Description:  "KFC (short for Kentucky Fried Chicken) is an American fast food restaurant chain specializing in fried chicken.",
			ContactEmail: "contact@kfc.com",
			HasDelivery:  true,
			CreatedByID:  ownerID,
			Address:      &models.Address{City: "London", Street: "Cork St 5", PostalCode: "WC2N 5DU"},
			Dishes: []models.Dish{
				{Name: "Nashville Hot Chicken", Description: "Nashville Hot Chicken (10 pcs.)", Price: 10.30},
				{Name: "Chicken Nuggets", Description: "Chicken Nuggets (5 pcs.)", Price: 5.30},
			},
		},
		{
			Name:         "McDonald",
			Category:     "Fast Food",
			Description:  "McDonald's Corporation is an American multinational fast food chain.",
			ContactEmail: "contact@mcdonald.com",
			HasDelivery:  true,
			CreatedByID:  ownerID,
			Address:      &models.Address{City: "London", Street: "Boots 193", PostalCode: "W1F 8SR"},
		},
	}
}

// SeedSampleRestaurants inserts the demo catalogue when no restaurant exists yet.
// It reports how many restaurants were created.
func SeedSampleRestaurants(db *gorm.DB, ownerID int) (int, error) {
	if db == nil {
		return 0, errors.New("nil database handle")
	}
	if ownerID <= 0 {
		return 0, fmt.Errorf("seed restaurants: invalid owner id %d", ownerID)
	}

	var existing int64
	if err := db.Model(&models.Restaurant{}).Count(&existing).Error; err != nil {
		return 0, fmt.Errorf("seed restaurants: count: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	samples := SampleRestaurants(ownerID)
	if err := db.Create(&samples).Error; err != nil {
		return 0, fmt.Errorf("seed restaurants: %w", err)
	}
	return len(samples), nil
}
