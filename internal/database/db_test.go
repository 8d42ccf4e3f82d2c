package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/restaurants/internal/models"
)

func TestOpenSQLiteMemory(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Exec("SELECT 1").Error)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "oracle")
}

func TestAutoMigrateAndSeedData(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, AutoMigrateAndSeed(db))
	// Seeding twice must not duplicate roles.
	require.NoError(t, SeedData(db))

	var roles []models.Role
	require.NoError(t, db.Order("id").Find(&roles).Error)
	require.Len(t, roles, 3)
	require.Equal(t, models.RoleUser, roles[0].Name)
	require.Equal(t, 1, roles[0].ID)
	require.Equal(t, models.RoleAdmin, roles[2].Name)
}

func TestSeedSampleRestaurants(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, AutoMigrateAndSeed(db))

	created, err := SeedSampleRestaurants(db, 1)
	require.NoError(t, err)
	require.Equal(t, 2, created)

	created, err = SeedSampleRestaurants(db, 1)
	require.NoError(t, err)
	require.Zero(t, created)

	var kfc models.Restaurant
	require.NoError(t, db.Preload("Address").Preload("Dishes").Where("name = ?", "KFC").First(&kfc).Error)
	require.Equal(t, 1, kfc.CreatedByID)
	require.NotNil(t, kfc.Address)
	require.Equal(t, "London", kfc.Address.City)
	require.Len(t, kfc.Dishes, 2)
}

func TestSeedSampleRestaurantsRequiresOwner(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, AutoMigrate(db))

	_, err := SeedSampleRestaurants(db, 0)
	require.Error(t, err)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(Config{Driver: "sqlite", Path: "file:" + t.Name() + "?mode=memory&cache=shared&_foreign_keys=1"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
