package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("store: record not found")

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
