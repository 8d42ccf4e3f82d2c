package services

import (
	"strings"

	"github.com/charlesng35/restaurants/internal/models"
)

// RestaurantDTO is the API representation of a restaurant.
type RestaurantDTO struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	HasDelivery   bool      `json:"hasDelivery"`
	ContactEmail  string    `json:"contactEmail,omitempty"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	City          string    `json:"city"`
	Street        string    `json:"street"`
	PostalCode    string    `json:"postalCode,omitempty"`
	OwnerID       int       `json:"ownerId"`
	Dishes        []DishDTO `json:"dishes"`
}

// DishDTO is the API representation of a dish.
type DishDTO struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	RestaurantID int     `json:"restaurantId"`
}

// CreateRestaurantInput describes a new restaurant.
type CreateRestaurantInput struct {
	Name          string `json:"name" validate:"required,max=25"`
	Description   string `json:"description"`
	Category      string `json:"category" validate:"omitempty,max=64"`
	HasDelivery   bool   `json:"hasDelivery"`
	ContactEmail  string `json:"contactEmail" validate:"omitempty,email"`
	ContactNumber string `json:"contactNumber" validate:"omitempty,max=32"`
	City          string `json:"city" validate:"required,max=50"`
	Street        string `json:"street" validate:"required,max=50"`
	PostalCode    string `json:"postalCode" validate:"omitempty,max=16"`
}

// UpdateRestaurantInput lists the mutable restaurant fields.
type UpdateRestaurantInput struct {
	Name        string `json:"name" validate:"required,max=25"`
	Description string `json:"description"`
	HasDelivery bool   `json:"hasDelivery"`
}

// CreateDishInput describes a new dish.
type CreateDishInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// Mapper converts between persisted entities and their API shapes.
type Mapper interface {
	RestaurantToDTO(restaurant models.Restaurant) RestaurantDTO
	RestaurantFromInput(input CreateRestaurantInput) models.Restaurant
	DishToDTO(dish models.Dish) DishDTO
	DishFromInput(input CreateDishInput) models.Dish
}

// DefaultMapper copies fields one to one.
type DefaultMapper struct{}

// RestaurantToDTO implements Mapper.
func (m DefaultMapper) RestaurantToDTO(restaurant models.Restaurant) RestaurantDTO {
	dto := RestaurantDTO{
		ID:            restaurant.ID,
		Name:          restaurant.Name,
		Description:   restaurant.Description,
		Category:      restaurant.Category,
		HasDelivery:   restaurant.HasDelivery,
		ContactEmail:  restaurant.ContactEmail,
		ContactNumber: restaurant.ContactNumber,
		OwnerID:       restaurant.CreatedByID,
		Dishes:        make([]DishDTO, 0, len(restaurant.Dishes)),
	}
	if restaurant.Address != nil {
		dto.City = restaurant.Address.City
		dto.Street = restaurant.Address.Street
		dto.PostalCode = restaurant.Address.PostalCode
	}
	for _, dish := range restaurant.Dishes {
		dto.Dishes = append(dto.Dishes, m.DishToDTO(dish))
	}
	return dto
}

// RestaurantFromInput implements Mapper.
func (DefaultMapper) RestaurantFromInput(input CreateRestaurantInput) models.Restaurant {
	return models.Restaurant{
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Category:      strings.TrimSpace(input.Category),
		HasDelivery:   input.HasDelivery,
		ContactEmail:  strings.TrimSpace(input.ContactEmail),
		ContactNumber: strings.TrimSpace(input.ContactNumber),
		Address: &models.Address{
			City:       strings.TrimSpace(input.City),
			Street:     strings.TrimSpace(input.Street),
			PostalCode: strings.TrimSpace(input.PostalCode),
		},
	}
}

// DishToDTO implements Mapper.
func (DefaultMapper) DishToDTO(dish models.Dish) DishDTO {
	return DishDTO{
		ID:           dish.ID,
		Name:         dish.Name,
		Description:  dish.Description,
		Price:        dish.Price,
		RestaurantID: dish.RestaurantID,
	}
}

// DishFromInput implements Mapper.
func (DefaultMapper) DishFromInput(input CreateDishInput) models.Dish {
	return models.Dish{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
	}
}
