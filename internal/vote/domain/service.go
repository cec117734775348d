package domain

import (
	"context"
	"errors"

	postdomain "github.com/smallbiznis/ratrace/internal/post/domain"
)

type Service interface {
	// Cast records the caller's vote on a post, replacing any earlier vote.
	Cast(ctx context.Context, req CastRequest) error
	// Retract removes the caller's vote. Retracting a missing vote is a no-op.
	Retract(ctx context.Context, accountID, postID int64, kind postdomain.Kind) error
	ListByAccount(ctx context.Context, accountID int64, kind postdomain.Kind) ([]VoteView, error)
}

type CastRequest struct {
	AccountID int64
	PostID    int64
	Kind      postdomain.Kind
	// Vote is reduced to its sign. Zero is rejected.
	Vote int
	// HadPreviousVote is the client's belief about storage. It is logged when
	// it disagrees and never decides the write.
	HadPreviousVote bool
}

// Normalize reduces v to +1 or -1. It returns ErrInvalidVote for zero.
func Normalize(v int) (int, error) {
	switch {
	case v > 0:
		return 1, nil
	case v < 0:
		return -1, nil
	default:
		return 0, ErrInvalidVote
	}
}

var (
	ErrInvalidVote     = errors.New("invalid_vote")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("post_not_found")
)
