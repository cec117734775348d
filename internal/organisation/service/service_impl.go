package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/smallbiznis/ratrace/internal/config"
	"github.com/smallbiznis/ratrace/internal/observability/metrics"
	"github.com/smallbiznis/ratrace/internal/organisation/domain"
	"github.com/smallbiznis/ratrace/internal/ranking"
	"github.com/smallbiznis/ratrace/pkg/db"
	"github.com/smallbiznis/ratrace/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Repo    domain.Repository
	Log     *zap.Logger
	Listing *config.ListingConfigHolder
	Metrics *metrics.Metrics `optional:"true"`
}

type service struct {
	db      *gorm.DB
	repo    domain.Repository
	log     *zap.Logger
	listing *config.ListingConfigHolder
	metrics *metrics.Metrics
}

func NewService(p Params) domain.Service {
	return &service{
		db:      p.DB,
		repo:    p.Repo,
		log:     p.Log.Named("organisation.service"),
		listing: p.Listing,
		metrics: p.Metrics,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateOrganisationRequest) (*domain.Organisation, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	rawURL := strings.TrimSpace(req.URL)
	if !validURL(rawURL) {
		return nil, domain.ErrInvalidURL
	}

	headquarters := strings.TrimSpace(req.Headquarters)
	if headquarters == "" {
		return nil, domain.ErrInvalidHQ
	}

	industry, ok := domain.ParseIndustry(req.Industry)
	if !ok || industry == "" {
		return nil, domain.ErrInvalidIndustry
	}

	size := req.Size
	if size < 0 {
		return nil, domain.ErrInvalidSize
	}
	if size == 0 {
		size = 1
	}

	org := &domain.Organisation{
		Name:         name,
		URL:          rawURL,
		Size:         size,
		Headquarters: headquarters,
		Industry:     industry,
		PageVisits:   1,
	}
	if err := s.repo.Create(ctx, org); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrURLTaken
		}
		return nil, err
	}

	s.log.Info("organisation created", zap.Int64("org_id", org.ID), zap.String("industry", string(industry)))
	return org, nil
}

func (s *service) List(ctx context.Context) ([]domain.NameItem, error) {
	items, err := s.repo.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.NameItem{}
	}
	return items, nil
}

func (s *service) ListNames(ctx context.Context, q domain.NamesQuery) ([]ranking.Ranked, error) {
	industry, ok := domain.ParseIndustry(q.Industry)
	if !ok {
		return nil, domain.ErrInvalidIndustry
	}

	orgs, err := s.repo.ListRankingCandidates(ctx, domain.Filter{Industry: industry})
	if err != nil {
		return nil, err
	}

	candidates := make([]ranking.Candidate, 0, len(orgs))
	for _, org := range orgs {
		candidates = append(candidates, ranking.Candidate{
			ID:         org.ID,
			Label:      org.Name,
			Size:       org.Size,
			PageVisits: org.PageVisits,
		})
	}

	limit := q.Limit
	if maxLimit := s.listing.Get().MaxLimit; limit > maxLimit {
		limit = maxLimit
	}
	return ranking.Rank(candidates, limit, q.Offset), nil
}

func (s *service) Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchResult, error) {
	industry, ok := domain.ParseIndustry(q.Industry)
	if !ok {
		return nil, domain.ErrInvalidIndustry
	}

	cfg := s.listing.Get()
	page := pagination.Page{Limit: q.Limit, Offset: q.Offset}.Normalize(cfg.SearchLimit, cfg.MaxLimit)
	filter := domain.Filter{Industry: industry, NameLike: q.OrgName}

	orgs, err := s.repo.Search(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := pagination.NewResult(orgs, total, page)
	return &domain.SearchResult{Orgs: res.Items, NoMore: res.NoMore}, nil
}

func (s *service) Get(ctx context.Context, id int64) (*domain.Organisation, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) Visit(ctx context.Context, id int64) (*domain.Organisation, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}

	var org *domain.Organisation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		found, err := repo.IncrementPageVisits(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrNotFound
		}

		org, err = repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordOrgPageVisit(ctx)
	return org, nil
}

func (s *service) ListPositions(ctx context.Context, orgID int64) ([]domain.PositionSummary, error) {
	if _, err := s.Get(ctx, orgID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListPositionSummaries(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.PositionSummary{}
	}
	return items, nil
}

func (s *service) EnsurePosition(ctx context.Context, orgID int64, name string) (*domain.Position, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidPosition
	}

	var position *domain.Position
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByID(ctx, orgID); err != nil {
			return err
		}

		var err error
		position, err = domain.FindOrCreatePosition(ctx, repo, orgID, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return position, nil
}

func validURL(raw string) bool {
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme == "" {
		parsed, err = url.Parse("https://" + raw)
		if err != nil {
			return false
		}
	}
	return parsed.Host != "" && strings.Contains(parsed.Host, ".")
}
