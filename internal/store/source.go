package store

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/charlesng35/restaurants/internal/models"
	"github.com/charlesng35/restaurants/internal/query"
)

var sortColumns = map[string]string{
	query.SortName:        "name",
	query.SortCategory:    "category",
	query.SortDescription: "description",
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// restaurantSource runs list queries in SQL. Rows with equal sort keys keep
// insertion order through a trailing id ordering.
type restaurantSource struct {
	db *gorm.DB
}

func (s restaurantSource) Count(ctx context.Context, criteria query.Criteria) (int64, error) {
	var total int64
	err := s.filtered(ctx, criteria.SearchPhrase).
		Model(&models.Restaurant{}).
		Count(&total).Error
	return total, err
}

func (s restaurantSource) Find(ctx context.Context, criteria query.Criteria, window query.Window) ([]models.Restaurant, error) {
	if window.Offset < 0 {
		return []models.Restaurant{}, nil
	}

	tx := s.filtered(ctx, criteria.SearchPhrase)

	if column, ok := sortColumns[criteria.SortBy]; ok {
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: column},
			Desc:   criteria.SortDirection == query.Descending,
		})
	}
	tx = tx.Order("id ASC")

	if window.Offset > 0 {
		tx = tx.Offset(window.Offset)
	}
	if window.Limit > 0 {
		tx = tx.Limit(window.Limit)
	}

	var restaurants []models.Restaurant
	err := tx.
		Preload("Address").
		Preload("Dishes", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Find(&restaurants).Error
	return restaurants, err
}

func (s restaurantSource) filtered(ctx context.Context, phrase string) *gorm.DB {
	tx := s.db.WithContext(ensureContext(ctx))
	if phrase == "" {
		return tx
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(phrase)) + "%"
	return tx.Where("LOWER(name) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'", pattern, pattern)
}
