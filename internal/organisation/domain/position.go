package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/gosimple/slug"
)

// PositionSlug normalizes a position name so "Backend Engineer" and
// "backend engineer " resolve to the same row.
func PositionSlug(name string) string {
	return slug.Make(strings.TrimSpace(name))
}

// FindOrCreatePosition resolves name to a position of orgID, creating it when
// absent. Callers pass a transaction-bound repository.
func FindOrCreatePosition(ctx context.Context, repo Repository, orgID int64, name string) (*Position, error) {
	name = strings.TrimSpace(name)
	key := PositionSlug(name)
	if key == "" {
		return nil, ErrInvalidPosition
	}

	existing, err := repo.FindPositionBySlug(ctx, orgID, key)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrPositionNotFound) {
		return nil, err
	}

	position := &Position{
		Name:  name,
		Slug:  key,
		OrgID: orgID,
	}
	if err := repo.CreatePosition(ctx, position); err != nil {
		return nil, err
	}
	return position, nil
}
