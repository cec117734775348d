package repository

import (
	"context"
	"fmt"
	"time"

	postdomain "github.com/smallbiznis/ratrace/internal/post/domain"
	"github.com/smallbiznis/ratrace/internal/vote/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r *repository) PostExists(ctx context.Context, kind postdomain.Kind, postID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE id = ?`, kind.PostTable()),
		postID,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) Find(ctx context.Context, kind postdomain.Kind, accountID, postID int64) (int, bool, error) {
	var votes []int
	err := r.db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT vote FROM %s WHERE account_id = ? AND %s = ?`, kind.VoteTable(), kind.VoteColumn()),
		accountID,
		postID,
	).Scan(&votes).Error
	if err != nil {
		return 0, false, err
	}
	if len(votes) == 0 {
		return 0, false, nil
	}
	return votes[0], true, nil
}

func (r *repository) Upsert(ctx context.Context, kind postdomain.Kind, accountID, postID int64, vote int) error {
	now := time.Now().Unix()
	onConflict := clause.OnConflict{
		Columns: []clause.Column{
			{Name: "account_id"},
			{Name: kind.VoteColumn()},
		},
		DoUpdates: clause.AssignmentColumns([]string{"vote", "updated_at"}),
	}

	var row interface{}
	switch kind {
	case postdomain.KindReview:
		row = &domain.ReviewVote{AccountID: accountID, ReviewID: postID, Vote: vote, CreatedAt: now, UpdatedAt: now}
	case postdomain.KindInterview:
		row = &domain.InterviewVote{AccountID: accountID, InterviewID: postID, Vote: vote, CreatedAt: now, UpdatedAt: now}
	default:
		return postdomain.ErrInvalidKind
	}

	return r.db.WithContext(ctx).Clauses(onConflict).Create(row).Error
}

func (r *repository) Delete(ctx context.Context, kind postdomain.Kind, accountID, postID int64) (int64, error) {
	res := r.db.WithContext(ctx).Exec(
		fmt.Sprintf(`DELETE FROM %s WHERE account_id = ? AND %s = ?`, kind.VoteTable(), kind.VoteColumn()),
		accountID,
		postID,
	)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) ListByAccount(ctx context.Context, kind postdomain.Kind, accountID int64) ([]domain.VoteView, error) {
	var views []domain.VoteView
	err := r.db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT id, account_id, %s AS post_id, vote, created_at
		 FROM %s
		 WHERE account_id = ?
		 ORDER BY created_at DESC, id DESC`, kind.VoteColumn(), kind.VoteTable()),
		accountID,
	).Scan(&views).Error
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].Kind = kind.String()
	}
	return views, nil
}
