package repository

import (
	"context"
	"fmt"

	"github.com/smallbiznis/ratrace/internal/post/domain"
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

func (r *repository) CreateReview(ctx context.Context, review *domain.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repository) CreateInterview(ctx context.Context, interview *domain.Interview) error {
	return r.db.WithContext(ctx).Create(interview).Error
}

func (r *repository) FindOwner(ctx context.Context, kind domain.Kind, postID int64) (int64, error) {
	var owners []int64
	err := r.db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT account_id FROM %s WHERE id = ?`, kind.PostTable()),
		postID,
	).Scan(&owners).Error
	if err != nil {
		return 0, err
	}
	if len(owners) == 0 {
		return 0, domain.ErrNotFound
	}
	return owners[0], nil
}

func (r *repository) DeleteVotes(ctx context.Context, kind domain.Kind, postID int64) error {
	return r.db.WithContext(ctx).Exec(
		fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, kind.VoteTable(), kind.VoteColumn()),
		postID,
	).Error
}

func (r *repository) Delete(ctx context.Context, kind domain.Kind, postID int64) error {
	res := r.db.WithContext(ctx).Exec(
		fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, kind.PostTable()),
		postID,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repository) ListReviews(ctx context.Context, f domain.Filter) ([]domain.ReviewView, error) {
	var views []domain.ReviewView
	if err := buildListQuery(r.db.WithContext(ctx), domain.KindReview, f).Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *repository) ListInterviews(ctx context.Context, f domain.Filter) ([]domain.InterviewView, error) {
	var views []domain.InterviewView
	if err := buildListQuery(r.db.WithContext(ctx), domain.KindInterview, f).Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *repository) Count(ctx context.Context, kind domain.Kind, f domain.Filter) (int64, error) {
	var total int64
	if err := buildCountQuery(r.db.WithContext(ctx), kind, f).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
