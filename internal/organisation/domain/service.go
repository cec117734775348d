package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/ratrace/internal/ranking"
)

type Service interface {
	Create(ctx context.Context, req CreateOrganisationRequest) (*Organisation, error)
	List(ctx context.Context) ([]NameItem, error)
	ListNames(ctx context.Context, q NamesQuery) ([]ranking.Ranked, error)
	Search(ctx context.Context, q SearchQuery) (*SearchResult, error)
	// Visit loads an organisation and counts one page visit.
	Visit(ctx context.Context, id int64) (*Organisation, error)
	Get(ctx context.Context, id int64) (*Organisation, error)

	ListPositions(ctx context.Context, orgID int64) ([]PositionSummary, error)
	EnsurePosition(ctx context.Context, orgID int64, name string) (*Position, error)
}

type CreateOrganisationRequest struct {
	Name         string
	URL          string
	Size         int64
	Headquarters string
	Industry     string
}

type NamesQuery struct {
	Industry string
	Limit    int
	Offset   int
}

type SearchQuery struct {
	OrgName  string
	Industry string
	Limit    int
	Offset   int
}

type NameItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SearchResult struct {
	Orgs   []Organisation `json:"orgs"`
	NoMore bool           `json:"no_more"`
}

type PositionSummary struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	TotalReviews    int64  `json:"total_reviews"`
	TotalInterviews int64  `json:"total_interviews"`
}

var (
	ErrNotFound         = errors.New("organisation_not_found")
	ErrPositionNotFound = errors.New("position_not_found")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidURL       = errors.New("invalid_url")
	ErrInvalidSize      = errors.New("invalid_size")
	ErrInvalidIndustry  = errors.New("invalid_industry")
	ErrInvalidPosition  = errors.New("invalid_position")
	ErrInvalidHQ        = errors.New("invalid_headquarters")
	ErrURLTaken         = errors.New("url_taken")
)
