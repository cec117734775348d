package domain

import (
	"context"

	"gorm.io/gorm"
)

// Filter is a parsed ListQuery.
type Filter struct {
	OrgID      int64
	AccountID  int64
	PositionID int64
	Tag        Tag
	Sort       SortOrder
	Limit      int
	Offset     int
	ViewerID   int64
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateReview(ctx context.Context, review *Review) error
	CreateInterview(ctx context.Context, interview *Interview) error
	// FindOwner returns the account that wrote the post.
	FindOwner(ctx context.Context, kind Kind, postID int64) (int64, error)
	DeleteVotes(ctx context.Context, kind Kind, postID int64) error
	Delete(ctx context.Context, kind Kind, postID int64) error

	ListReviews(ctx context.Context, f Filter) ([]ReviewView, error)
	ListInterviews(ctx context.Context, f Filter) ([]InterviewView, error)
	Count(ctx context.Context, kind Kind, f Filter) (int64, error)
}
