package domain

import (
	"context"

	"gorm.io/gorm"
)

// Filter constrains organisation queries. Empty fields are ignored.
type Filter struct {
	Industry Industry
	NameLike string
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, org *Organisation) error
	FindByID(ctx context.Context, id int64) (*Organisation, error)
	ListNames(ctx context.Context) ([]NameItem, error)
	// ListRankingCandidates returns id, name, size and page_visits ordered by id.
	ListRankingCandidates(ctx context.Context, f Filter) ([]Organisation, error)
	Search(ctx context.Context, f Filter, limit, offset int) ([]Organisation, error)
	Count(ctx context.Context, f Filter) (int64, error)
	IncrementPageVisits(ctx context.Context, id int64) (bool, error)

	CreatePosition(ctx context.Context, position *Position) error
	FindPosition(ctx context.Context, orgID, positionID int64) (*Position, error)
	FindPositionBySlug(ctx context.Context, orgID int64, slug string) (*Position, error)
	ListPositionSummaries(ctx context.Context, orgID int64) ([]PositionSummary, error)
}
