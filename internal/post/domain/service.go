package domain

import (
	"context"
	"errors"
)

type Service interface {
	CreateReview(ctx context.Context, req CreateReviewRequest) (*Review, error)
	CreateInterview(ctx context.Context, req CreateInterviewRequest) (*Interview, error)
	// Delete removes an owned post and every vote on it.
	Delete(ctx context.Context, accountID, postID int64, kind Kind) error

	ListReviews(ctx context.Context, q ListQuery) (*ReviewPage, error)
	ListInterviews(ctx context.Context, q ListQuery) (*InterviewPage, error)
	ListCombined(ctx context.Context, reviews, interviews ListQuery) (*CombinedPage, error)
}

// PositionRef names the position of a new post: an existing position id, or a
// name that is resolved or created within the organisation.
type PositionRef struct {
	ID   int64
	Name string
}

type CreateReviewRequest struct {
	AccountID     int64
	OrgID         int64
	Position      PositionRef
	Salary        int64
	Currency      string
	Location      string
	DurationYears float64
	Body          string
	Tag           string
}

type CreateInterviewRequest struct {
	AccountID int64
	OrgID     int64
	Position  PositionRef
	Offer     int64
	Currency  string
	Location  string
	Stages    int
	Body      string
	Tag       string
}

// ListQuery selects posts. OrgID or AccountID scopes the listing; the other
// filters are optional.
type ListQuery struct {
	OrgID      int64
	AccountID  int64
	PositionID int64
	Tag        string
	SortOrder  string
	Limit      int
	Offset     int
	// ViewerID is the authenticated caller, 0 for anonymous requests.
	ViewerID int64
}

type ReviewPage struct {
	Reviews []ReviewView `json:"reviews"`
	NoMore  bool         `json:"no_more_reviews"`
}

type InterviewPage struct {
	Interviews []InterviewView `json:"interviews"`
	NoMore     bool            `json:"no_more_interviews"`
}

type CombinedPage struct {
	ReviewPage
	InterviewPage
}

var (
	ErrNotFound         = errors.New("post_not_found")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidKind      = errors.New("invalid_post_type")
	ErrInvalidTag       = errors.New("invalid_tag")
	ErrInvalidCurrency  = errors.New("invalid_currency")
	ErrInvalidSortOrder = errors.New("invalid_sort_order")
	ErrInvalidBody      = errors.New("invalid_body")
	ErrInvalidLocation  = errors.New("invalid_location")
	ErrInvalidSalary    = errors.New("invalid_salary")
	ErrInvalidDuration  = errors.New("invalid_duration_years")
	ErrInvalidStages    = errors.New("invalid_stages")
	ErrInvalidScope     = errors.New("invalid_scope")
)
