package service

import (
	"context"
	"math"
	"strings"

	"github.com/smallbiznis/ratrace/internal/config"
	"github.com/smallbiznis/ratrace/internal/observability/metrics"
	orgdomain "github.com/smallbiznis/ratrace/internal/organisation/domain"
	"github.com/smallbiznis/ratrace/internal/post/domain"
	"github.com/smallbiznis/ratrace/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Repo    domain.Repository
	OrgRepo orgdomain.Repository
	Log     *zap.Logger
	Listing *config.ListingConfigHolder
	Metrics *metrics.Metrics `optional:"true"`
}

type service struct {
	db      *gorm.DB
	repo    domain.Repository
	orgRepo orgdomain.Repository
	log     *zap.Logger
	listing *config.ListingConfigHolder
	metrics *metrics.Metrics
}

func NewService(p Params) domain.Service {
	return &service{
		db:      p.DB,
		repo:    p.Repo,
		orgRepo: p.OrgRepo,
		log:     p.Log.Named("post.service"),
		listing: p.Listing,
		metrics: p.Metrics,
	}
}

type postFields struct {
	currency domain.Currency
	tag      domain.Tag
	location string
	body     string
}

func parsePostFields(currency, tag, location, body string) (postFields, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return postFields{}, domain.ErrInvalidBody
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return postFields{}, domain.ErrInvalidLocation
	}

	parsedCurrency, err := domain.ParseCurrency(currency)
	if err != nil {
		return postFields{}, err
	}
	if parsedCurrency == "" {
		parsedCurrency = domain.CurrencyUSD
	}

	parsedTag, err := domain.ParseTag(tag)
	if err != nil {
		return postFields{}, err
	}
	if parsedTag == "" {
		parsedTag = domain.TagAverage
	}

	return postFields{currency: parsedCurrency, tag: parsedTag, location: location, body: body}, nil
}

// resolvePosition checks the organisation and returns the position the post
// belongs to, creating it by name when no id is given.
func resolvePosition(ctx context.Context, repo orgdomain.Repository, orgID int64, ref domain.PositionRef) (int64, error) {
	if _, err := repo.FindByID(ctx, orgID); err != nil {
		return 0, err
	}

	if ref.ID > 0 {
		position, err := repo.FindPosition(ctx, orgID, ref.ID)
		if err != nil {
			return 0, err
		}
		return position.ID, nil
	}

	position, err := orgdomain.FindOrCreatePosition(ctx, repo, orgID, ref.Name)
	if err != nil {
		return 0, err
	}
	return position.ID, nil
}

func (s *service) CreateReview(ctx context.Context, req domain.CreateReviewRequest) (*domain.Review, error) {
	if req.AccountID <= 0 {
		return nil, domain.ErrUnauthenticated
	}
	fields, err := parsePostFields(req.Currency, req.Tag, req.Location, req.Body)
	if err != nil {
		return nil, err
	}
	if req.Salary < 0 {
		return nil, domain.ErrInvalidSalary
	}
	if req.DurationYears < 0 || math.IsNaN(req.DurationYears) || math.IsInf(req.DurationYears, 0) {
		return nil, domain.ErrInvalidDuration
	}

	review := &domain.Review{
		Salary:        req.Salary,
		Currency:      fields.currency,
		Location:      fields.location,
		DurationYears: req.DurationYears,
		Body:          fields.body,
		Tag:           fields.tag,
		AccountID:     req.AccountID,
		OrgID:         req.OrgID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		positionID, err := resolvePosition(ctx, s.orgRepo.WithTx(tx), req.OrgID, req.Position)
		if err != nil {
			return err
		}
		review.PositionID = positionID
		return s.repo.WithTx(tx).CreateReview(ctx, review)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPostCreated(ctx, domain.KindReview.String())
	s.log.Info("review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("org_id", review.OrgID),
		zap.Int64("account_id", review.AccountID),
	)
	return review, nil
}

func (s *service) CreateInterview(ctx context.Context, req domain.CreateInterviewRequest) (*domain.Interview, error) {
	if req.AccountID <= 0 {
		return nil, domain.ErrUnauthenticated
	}
	fields, err := parsePostFields(req.Currency, req.Tag, req.Location, req.Body)
	if err != nil {
		return nil, err
	}
	if req.Offer < 0 {
		return nil, domain.ErrInvalidSalary
	}
	if req.Stages < 0 {
		return nil, domain.ErrInvalidStages
	}

	interview := &domain.Interview{
		Offer:     req.Offer,
		Currency:  fields.currency,
		Location:  fields.location,
		Stages:    req.Stages,
		Body:      fields.body,
		Tag:       fields.tag,
		AccountID: req.AccountID,
		OrgID:     req.OrgID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		positionID, err := resolvePosition(ctx, s.orgRepo.WithTx(tx), req.OrgID, req.Position)
		if err != nil {
			return err
		}
		interview.PositionID = positionID
		return s.repo.WithTx(tx).CreateInterview(ctx, interview)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPostCreated(ctx, domain.KindInterview.String())
	s.log.Info("interview created",
		zap.Int64("interview_id", interview.ID),
		zap.Int64("org_id", interview.OrgID),
		zap.Int64("account_id", interview.AccountID),
	)
	return interview, nil
}

func (s *service) Delete(ctx context.Context, accountID, postID int64, kind domain.Kind) error {
	if accountID <= 0 {
		return domain.ErrUnauthenticated
	}
	if !kind.Valid() {
		return domain.ErrInvalidKind
	}
	if postID <= 0 {
		return domain.ErrNotFound
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		owner, err := repo.FindOwner(ctx, kind, postID)
		if err != nil {
			return err
		}
		if owner != accountID {
			return domain.ErrForbidden
		}

		if err := repo.DeleteVotes(ctx, kind, postID); err != nil {
			return err
		}
		return repo.Delete(ctx, kind, postID)
	})
	if err != nil {
		return err
	}

	s.metrics.RecordPostDeleted(ctx, kind.String())
	s.log.Info("post deleted",
		zap.String("kind", kind.String()),
		zap.Int64("post_id", postID),
		zap.Int64("account_id", accountID),
	)
	return nil
}

func (s *service) parseQuery(q domain.ListQuery) (domain.Filter, pagination.Page, error) {
	if q.OrgID <= 0 && q.AccountID <= 0 {
		return domain.Filter{}, pagination.Page{}, domain.ErrInvalidScope
	}
	tag, err := domain.ParseTag(q.Tag)
	if err != nil {
		return domain.Filter{}, pagination.Page{}, err
	}
	sort, err := domain.ParseSortOrder(q.SortOrder)
	if err != nil {
		return domain.Filter{}, pagination.Page{}, err
	}

	cfg := s.listing.Get()
	page := pagination.Page{Limit: q.Limit, Offset: q.Offset}.Normalize(cfg.DefaultLimit, cfg.MaxLimit)

	return domain.Filter{
		OrgID:      q.OrgID,
		AccountID:  q.AccountID,
		PositionID: q.PositionID,
		Tag:        tag,
		Sort:       sort,
		Limit:      page.Limit,
		Offset:     page.Offset,
		ViewerID:   q.ViewerID,
	}, page, nil
}

func (s *service) ListReviews(ctx context.Context, q domain.ListQuery) (*domain.ReviewPage, error) {
	f, page, err := s.parseQuery(q)
	if err != nil {
		return nil, err
	}

	views, err := s.repo.ListReviews(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, domain.KindReview, f)
	if err != nil {
		return nil, err
	}

	for i := range views {
		if views[i].AuthorAnonymous {
			views[i].Author = ""
		}
	}

	res := pagination.NewResult(views, total, page)
	return &domain.ReviewPage{Reviews: res.Items, NoMore: res.NoMore}, nil
}

func (s *service) ListInterviews(ctx context.Context, q domain.ListQuery) (*domain.InterviewPage, error) {
	f, page, err := s.parseQuery(q)
	if err != nil {
		return nil, err
	}

	views, err := s.repo.ListInterviews(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, domain.KindInterview, f)
	if err != nil {
		return nil, err
	}

	for i := range views {
		if views[i].AuthorAnonymous {
			views[i].Author = ""
		}
	}

	res := pagination.NewResult(views, total, page)
	return &domain.InterviewPage{Interviews: res.Items, NoMore: res.NoMore}, nil
}

func (s *service) ListCombined(ctx context.Context, reviews, interviews domain.ListQuery) (*domain.CombinedPage, error) {
	var (
		reviewPage    *domain.ReviewPage
		interviewPage *domain.InterviewPage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reviewPage, err = s.ListReviews(gctx, reviews)
		return err
	})
	g.Go(func() error {
		var err error
		interviewPage, err = s.ListInterviews(gctx, interviews)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.CombinedPage{
		ReviewPage:    *reviewPage,
		InterviewPage: *interviewPage,
	}, nil
}
