package usecase

import (
	"context"

	"mediquick-api/internal/delivery/http/middleware"

	"github.com/google/uuid"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// pageOffset normalizes page and limit and returns the row offset.
func pageOffset(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit, (page - 1) * limit
}

// actorID returns the authenticated caller for audit entries, nil for
// anonymous calls.
func actorID(ctx context.Context) *uuid.UUID {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &userID
}
