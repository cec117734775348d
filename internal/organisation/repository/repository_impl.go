package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/ratrace/internal/organisation/domain"
	"github.com/smallbiznis/ratrace/pkg/db"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, org *domain.Organisation) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*domain.Organisation, error) {
	var org domain.Organisation
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *repository) ListNames(ctx context.Context) ([]domain.NameItem, error) {
	var items []domain.NameItem
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, name FROM organisations ORDER BY id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListRankingCandidates(ctx context.Context, f domain.Filter) ([]domain.Organisation, error) {
	var orgs []domain.Organisation
	err := r.filtered(ctx, f).
		Select("id", "name", "size", "page_visits").
		Order("id ASC").
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *repository) Search(ctx context.Context, f domain.Filter, limit, offset int) ([]domain.Organisation, error) {
	var orgs []domain.Organisation
	err := r.filtered(ctx, f).
		Order("name ASC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *repository) Count(ctx context.Context, f domain.Filter) (int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repository) filtered(ctx context.Context, f domain.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.Organisation{})
	if f.Industry != "" {
		q = q.Where("industry = ?", f.Industry)
	}
	if f.NameLike != "" {
		q = q.Where(db.ContainsExpr(r.db, "name"), f.NameLike)
	}
	return q
}

func (r *repository) IncrementPageVisits(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Organisation{}).
		Where("id = ?", id).
		UpdateColumn("page_visits", gorm.Expr("page_visits + ?", 1))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) CreatePosition(ctx context.Context, position *domain.Position) error {
	return r.db.WithContext(ctx).Create(position).Error
}

func (r *repository) FindPosition(ctx context.Context, orgID, positionID int64) (*domain.Position, error) {
	var position domain.Position
	err := r.db.WithContext(ctx).
		Where("id = ? AND org_id = ?", positionID, orgID).
		Take(&position).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPositionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *repository) FindPositionBySlug(ctx context.Context, orgID int64, slug string) (*domain.Position, error) {
	var position domain.Position
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND slug = ?", orgID, slug).
		Take(&position).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPositionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *repository) ListPositionSummaries(ctx context.Context, orgID int64) ([]domain.PositionSummary, error) {
	var items []domain.PositionSummary
	err := r.db.WithContext(ctx).Raw(
		`SELECT p.id, p.name,
		        (SELECT COUNT(*) FROM reviews rv WHERE rv.position_id = p.id) AS total_reviews,
		        (SELECT COUNT(*) FROM interviews iv WHERE iv.position_id = p.id) AS total_interviews
		 FROM positions p
		 WHERE p.org_id = ?
		 ORDER BY p.name ASC, p.id ASC`,
		orgID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
