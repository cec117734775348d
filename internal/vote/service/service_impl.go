package service

import (
	"context"

	"github.com/smallbiznis/ratrace/internal/observability/metrics"
	postdomain "github.com/smallbiznis/ratrace/internal/post/domain"
	"github.com/smallbiznis/ratrace/internal/vote/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Repo    domain.Repository
	Log     *zap.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

type service struct {
	db      *gorm.DB
	repo    domain.Repository
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewService(p Params) domain.Service {
	return &service{
		db:      p.DB,
		repo:    p.Repo,
		log:     p.Log.Named("vote.service"),
		metrics: p.Metrics,
	}
}

func (s *service) Cast(ctx context.Context, req domain.CastRequest) error {
	if req.AccountID <= 0 {
		return domain.ErrUnauthenticated
	}
	if !req.Kind.Valid() {
		return postdomain.ErrInvalidKind
	}
	vote, err := domain.Normalize(req.Vote)
	if err != nil {
		return err
	}
	if req.PostID <= 0 {
		return domain.ErrNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		exists, err := repo.PostExists(ctx, req.Kind, req.PostID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}

		_, stored, err := repo.Find(ctx, req.Kind, req.AccountID, req.PostID)
		if err != nil {
			return err
		}
		if stored != req.HadPreviousVote {
			s.log.Debug("client vote state disagrees with storage",
				zap.String("kind", req.Kind.String()),
				zap.Int64("post_id", req.PostID),
				zap.Int64("account_id", req.AccountID),
				zap.Bool("client_had_vote", req.HadPreviousVote),
				zap.Bool("stored_vote", stored),
			)
		}

		return repo.Upsert(ctx, req.Kind, req.AccountID, req.PostID, vote)
	})
	if err != nil {
		return err
	}

	s.metrics.RecordVoteCast(ctx, req.Kind.String(), vote)
	return nil
}

func (s *service) Retract(ctx context.Context, accountID, postID int64, kind postdomain.Kind) error {
	if accountID <= 0 {
		return domain.ErrUnauthenticated
	}
	if !kind.Valid() {
		return postdomain.ErrInvalidKind
	}

	removed, err := s.repo.Delete(ctx, kind, accountID, postID)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.metrics.RecordVoteRetracted(ctx, kind.String())
	}
	return nil
}

func (s *service) ListByAccount(ctx context.Context, accountID int64, kind postdomain.Kind) ([]domain.VoteView, error) {
	if !kind.Valid() {
		return nil, postdomain.ErrInvalidKind
	}
	views, err := s.repo.ListByAccount(ctx, kind, accountID)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []domain.VoteView{}
	}
	return views, nil
}
