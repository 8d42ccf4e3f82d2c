package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/charlesng35/restaurants/internal/models"
)

// DatabaseStore implements Store on top of the primary SQL database.
type DatabaseStore struct {
	db    *gorm.DB
	clock func() time.Time
}

// NewDatabaseStore constructs a database-backed Store.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	if db == nil {
		return nil
	}
	return &DatabaseStore{db: db, clock: time.Now}
}

// IncrementWithTTL increments a fixed-window counter. The window starts with
// the first increment and is not extended by later ones.
func (s *DatabaseStore) IncrementWithTTL(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if s == nil {
		return 0, 0, ErrStoreUnavailable
	}
	ctx = ensureContext(ctx)
	if window <= 0 {
		window = time.Minute
	}

	now := s.clock()
	var (
		count  int64
		expiry time.Time
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.CacheEntry
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.CacheEntry{Key: key}).Take(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			count = 1
			expiry = now.Add(window)
			return tx.Create(&models.CacheEntry{
				Key:       key,
				Value:     []byte("1"),
				ExpiresAt: expiry,
			}).Error
		}
		if err != nil {
			return err
		}

		if entry.Expired(now) {
			count = 1
			entry.ExpiresAt = now.Add(window)
		} else {
			current, _ := strconv.ParseInt(string(entry.Value), 10, 64)
			count = current + 1
		}
		entry.Value = []byte(strconv.FormatInt(count, 10))
		expiry = entry.ExpiresAt

		return tx.Save(&entry).Error
	})
	if err != nil {
		return 0, 0, err
	}

	return count, expiry.Sub(now), nil
}

// Set upserts the value for a given key with expiry. A non-positive ttl never expires.
func (s *DatabaseStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s == nil {
		return ErrStoreUnavailable
	}

	expiry := time.Time{}
	if ttl > 0 {
		expiry = s.clock().Add(ttl)
	}

	entry := models.CacheEntry{
		Key:       key,
		Value:     value,
		ExpiresAt: expiry,
	}

	return s.db.WithContext(ensureContext(ctx)).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).Create(&entry).Error
}

// Get retrieves a value by key, respecting expiry.
func (s *DatabaseStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s == nil {
		return nil, false, ErrStoreUnavailable
	}
	ctx = ensureContext(ctx)

	var entry models.CacheEntry
	err := s.db.WithContext(ctx).Where(&models.CacheEntry{Key: key}).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if entry.Expired(s.clock()) {
		_ = s.Delete(ctx, key)
		return nil, false, nil
	}

	return entry.Value, true, nil
}

// Delete removes keys from the store.
func (s *DatabaseStore) Delete(ctx context.Context, keys ...string) error {
	if s == nil {
		return ErrStoreUnavailable
	}
	if len(keys) == 0 {
		return nil
	}

	return s.db.WithContext(ensureContext(ctx)).Where(clause.IN{Column: clause.Column{Name: "key"}, Values: toValues(keys)}).Delete(&models.CacheEntry{}).Error
}

// PurgeExpired deletes every entry that expired before now and reports how many were removed.
func (s *DatabaseStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if s == nil {
		return 0, ErrStoreUnavailable
	}

	result := s.db.WithContext(ensureContext(ctx)).
		Where("expires_at <= ? AND expires_at > ?", now, time.Time{}).
		Delete(&models.CacheEntry{})
	return result.RowsAffected, result.Error
}

func toValues(keys []string) []interface{} {
	values := make([]interface{}, len(keys))
	for i, key := range keys {
		values[i] = key
	}
	return values
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
