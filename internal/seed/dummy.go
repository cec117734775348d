package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	accountdomain "github.com/smallbiznis/ratrace/internal/account/domain"
	"github.com/smallbiznis/ratrace/internal/account/password"
	orgdomain "github.com/smallbiznis/ratrace/internal/organisation/domain"
	postdomain "github.com/smallbiznis/ratrace/internal/post/domain"
	votedomain "github.com/smallbiznis/ratrace/internal/vote/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	dummyPassword  = "dummy-password"
	dummyBatchSize = 500
)

// DummyConfig sizes a generated data set.
type DummyConfig struct {
	Orgs            int
	Accounts        int
	PositionsPerOrg int
	PostsPerOrg     int
	Votes           int
	// Seed makes the generated values reproducible. Names stay unique per run.
	Seed uint64
}

func DefaultDummyConfig() DummyConfig {
	return DummyConfig{
		Orgs:            100,
		Accounts:        100,
		PositionsPerOrg: 20,
		PostsPerOrg:     24,
		Votes:           5000,
		Seed:            1,
	}
}

type DummyResult struct {
	Orgs       int
	Accounts   int
	Positions  int
	Reviews    int
	Interviews int
	Votes      int
}

// GenerateDummyData fills the store with random organisations, accounts,
// positions, posts and votes in one transaction.
func GenerateDummyData(ctx context.Context, conn *gorm.DB, cfg DummyConfig, log *zap.Logger) (*DummyResult, error) {
	if conn == nil {
		return nil, errors.New("seed database handle is required")
	}
	if cfg.Orgs <= 0 || cfg.Accounts <= 0 || cfg.PositionsPerOrg <= 0 {
		return nil, errors.New("orgs, accounts and positions per org must be positive")
	}
	if cfg.PostsPerOrg < 0 || cfg.Votes < 0 {
		return nil, errors.New("posts and votes cannot be negative")
	}
	if log == nil {
		log = zap.NewNop()
	}

	hashed, err := password.Hash(dummyPassword)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	run := uuid.NewString()[:8]
	industries := orgdomain.Industries()
	result := &DummyResult{}

	err = conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orgs := make([]orgdomain.Organisation, 0, cfg.Orgs)
		for i := 1; i <= cfg.Orgs; i++ {
			orgs = append(orgs, orgdomain.Organisation{
				Name:         fmt.Sprintf("org_%s_%d", randomWord(rng, 3+rng.IntN(12)), i),
				URL:          fmt.Sprintf("https://www.org-%s-%d.example", run, i),
				Size:         int64(1 + rng.IntN(5000)),
				Headquarters: "London, UK",
				Industry:     industries[rng.IntN(len(industries))],
				PageVisits:   int64(1 + rng.IntN(5000)),
			})
		}
		if err := tx.CreateInBatches(&orgs, dummyBatchSize).Error; err != nil {
			return fmt.Errorf("seed organisations: %w", err)
		}
		result.Orgs = len(orgs)
		log.Info("seeded organisations", zap.Int("count", len(orgs)))

		accounts := make([]accountdomain.Account, 0, cfg.Accounts)
		for i := 1; i <= cfg.Accounts; i++ {
			accounts = append(accounts, accountdomain.Account{
				Username: fmt.Sprintf("seed_%s_%d", run, i),
				Password: hashed,
				Status:   accountdomain.StatusActive,
				Type:     accountdomain.TypeUser,
			})
		}
		if err := tx.CreateInBatches(&accounts, dummyBatchSize).Error; err != nil {
			return fmt.Errorf("seed accounts: %w", err)
		}
		result.Accounts = len(accounts)

		positions := make([]orgdomain.Position, 0, cfg.Orgs*cfg.PositionsPerOrg)
		for _, org := range orgs {
			for j := 0; j < cfg.PositionsPerOrg; j++ {
				name := fmt.Sprintf("position %d", j)
				positions = append(positions, orgdomain.Position{
					Name:  name,
					Slug:  orgdomain.PositionSlug(name),
					OrgID: org.ID,
				})
			}
		}
		if err := tx.CreateInBatches(&positions, dummyBatchSize).Error; err != nil {
			return fmt.Errorf("seed positions: %w", err)
		}
		result.Positions = len(positions)

		reviews := make([]postdomain.Review, 0, cfg.Orgs*cfg.PostsPerOrg)
		interviews := make([]postdomain.Interview, 0, cfg.Orgs*cfg.PostsPerOrg)
		for i, org := range orgs {
			orgPositions := positions[i*cfg.PositionsPerOrg : (i+1)*cfg.PositionsPerOrg]
			for z := 1; z <= cfg.PostsPerOrg; z++ {
				reviews = append(reviews, postdomain.Review{
					Salary:        int64(25000 + rng.IntN(125000)),
					Currency:      postdomain.CurrencyGBP,
					Location:      "NY, USA",
					DurationYears: float64(z) / 5,
					Body:          fmt.Sprintf("This is review number: %d.", z),
					Tag:           randomTag(rng),
					AccountID:     accounts[rng.IntN(len(accounts))].ID,
					OrgID:         org.ID,
					PositionID:    orgPositions[rng.IntN(len(orgPositions))].ID,
				})
				interviews = append(interviews, postdomain.Interview{
					Offer:      int64(25000 + rng.IntN(125000)),
					Currency:   postdomain.CurrencyGBP,
					Location:   "San Francisco, CA, USA",
					Stages:     1 + rng.IntN(5),
					Body:       fmt.Sprintf("This is interview number: %d.", z),
					Tag:        randomTag(rng),
					AccountID:  accounts[rng.IntN(len(accounts))].ID,
					OrgID:      org.ID,
					PositionID: orgPositions[rng.IntN(len(orgPositions))].ID,
				})
			}
		}
		if len(reviews) > 0 {
			if err := tx.CreateInBatches(&reviews, dummyBatchSize).Error; err != nil {
				return fmt.Errorf("seed reviews: %w", err)
			}
			if err := tx.CreateInBatches(&interviews, dummyBatchSize).Error; err != nil {
				return fmt.Errorf("seed interviews: %w", err)
			}
		}
		result.Reviews = len(reviews)
		result.Interviews = len(interviews)
		log.Info("seeded posts", zap.Int("reviews", len(reviews)), zap.Int("interviews", len(interviews)))

		if len(reviews) == 0 || cfg.Votes == 0 {
			return nil
		}

		reviewVotes := make([]votedomain.ReviewVote, 0, cfg.Votes)
		interviewVotes := make([]votedomain.InterviewVote, 0, cfg.Votes)
		for i := 0; i < cfg.Votes; i++ {
			reviewVotes = append(reviewVotes, votedomain.ReviewVote{
				AccountID: accounts[rng.IntN(len(accounts))].ID,
				ReviewID:  reviews[rng.IntN(len(reviews))].ID,
				Vote:      randomVote(rng),
			})
			interviewVotes = append(interviewVotes, votedomain.InterviewVote{
				AccountID:   accounts[rng.IntN(len(accounts))].ID,
				InterviewID: interviews[rng.IntN(len(interviews))].ID,
				Vote:        randomVote(rng),
			})
		}

		// Random pairs repeat; the unique index keeps the first vote.
		rv := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&reviewVotes, dummyBatchSize)
		if rv.Error != nil {
			return fmt.Errorf("seed review votes: %w", rv.Error)
		}
		iv := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&interviewVotes, dummyBatchSize)
		if iv.Error != nil {
			return fmt.Errorf("seed interview votes: %w", iv.Error)
		}
		result.Votes = int(rv.RowsAffected + iv.RowsAffected)
		log.Info("seeded votes", zap.Int("count", result.Votes))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func randomWord(rng *rand.Rand, length int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = letters[rng.IntN(len(letters))]
	}
	return string(buf)
}

func randomTag(rng *rand.Rand) postdomain.Tag {
	if rng.IntN(2) == 1 {
		return postdomain.TagGood
	}
	return postdomain.TagBad
}

func randomVote(rng *rand.Rand) int {
	if rng.IntN(2) == 1 {
		return -1
	}
	return 1
}
