package domain

import (
	"context"

	postdomain "github.com/smallbiznis/ratrace/internal/post/domain"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	PostExists(ctx context.Context, kind postdomain.Kind, postID int64) (bool, error)
	// Find returns the stored vote and whether one exists.
	Find(ctx context.Context, kind postdomain.Kind, accountID, postID int64) (int, bool, error)
	// Upsert inserts the vote or overwrites the existing row for the pair.
	Upsert(ctx context.Context, kind postdomain.Kind, accountID, postID int64, vote int) error
	Delete(ctx context.Context, kind postdomain.Kind, accountID, postID int64) (int64, error)
	ListByAccount(ctx context.Context, kind postdomain.Kind, accountID int64) ([]VoteView, error)
}
