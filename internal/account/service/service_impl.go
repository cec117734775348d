package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/ratrace/internal/account/domain"
	"github.com/smallbiznis/ratrace/internal/account/password"
	"go.uber.org/zap"
)

const (
	sessionTokenBytes = 32
	sessionTTL        = 7 * 24 * time.Hour

	minPasswordLength = 8
	maxPasswordLength = 128
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)

type Service struct {
	log         *zap.Logger
	repo        domain.Repository
	sessionRepo domain.SessionRepository
	genID       *snowflake.Node
	now         func() time.Time
}

func New(log *zap.Logger, repo domain.Repository, sessionRepo domain.SessionRepository, genID *snowflake.Node) domain.Service {
	return &Service{
		log:         log.Named("account.service"),
		repo:        repo,
		sessionRepo: sessionRepo,
		genID:       genID,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.LoginResult, error) {
	account, err := s.createAccount(ctx, req.Username, req.Password, domain.TypeUser)
	if err != nil {
		return nil, err
	}

	s.log.Info("account registered", zap.Int64("account_id", account.ID))
	return s.openSession(ctx, account, req.UserAgent, req.IPAddress)
}

func (s *Service) createAccount(ctx context.Context, username, rawPassword string, accountType domain.Type) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, domain.ErrInvalidUsername
	}
	if err := validatePassword(rawPassword); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username: username,
		Password: hashed,
		Status:   domain.StatusActive,
		Type:     accountType,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(req.Password, account.Password) {
		s.log.Debug("login rejected", zap.Int64("account_id", account.ID))
		return nil, domain.ErrInvalidCredentials
	}
	if account.Status == domain.StatusInactive {
		return nil, domain.ErrInactive
	}

	return s.openSession(ctx, account, req.UserAgent, req.IPAddress)
}

func (s *Service) openSession(ctx context.Context, account *domain.Account, userAgent, ipAddress string) (*domain.LoginResult, error) {
	rawToken, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &domain.Session{
		ID:               s.genID.Generate(),
		AccountID:        account.ID,
		SessionTokenHash: hashToken(rawToken),
		UserAgent:        strings.TrimSpace(userAgent),
		IPAddress:        strings.TrimSpace(ipAddress),
		ExpiresAt:        now.Add(sessionTTL),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		Account:   account,
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
		SessionID: session.ID,
	}, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.GetSessionByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.ErrInvalidSession
		}
		return err
	}
	if session.RevokedAt != nil {
		return nil
	}

	return s.sessionRepo.RevokeSession(ctx, session.ID, s.now())
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Account, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.GetSessionByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}

	now := s.now()
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	account, err := s.repo.FindByID(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}

	if err := s.sessionRepo.UpdateLastSeen(ctx, session.ID, now); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Account, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) UpdatePreferences(ctx context.Context, accountID int64, req domain.PreferencesRequest) (*domain.Account, error) {
	if accountID <= 0 {
		return nil, domain.ErrUnauthenticated
	}

	fields := map[string]any{}
	if req.DarkMode != nil {
		fields["dark_mode"] = *req.DarkMode
	}
	if req.Anonymous != nil {
		fields["anonymous"] = *req.Anonymous
	}
	if len(fields) > 0 {
		fields["updated_at"] = s.now().Unix()
		if err := s.repo.UpdateFields(ctx, accountID, fields); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, accountID)
}

func (s *Service) EnsureAdmin(ctx context.Context, username, rawPassword string) (*domain.Account, error) {
	existing, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Type == domain.TypeAdmin {
			return existing, nil
		}
		if err := s.repo.UpdateFields(ctx, existing.ID, map[string]any{
			"type":       domain.TypeAdmin,
			"updated_at": s.now().Unix(),
		}); err != nil {
			return nil, err
		}
		existing.Type = domain.TypeAdmin
		s.log.Info("account promoted to admin", zap.Int64("account_id", existing.ID))
		return existing, nil
	}

	account, err := s.createAccount(ctx, username, rawPassword, domain.TypeAdmin)
	if err != nil {
		return nil, err
	}
	s.log.Info("admin account created", zap.Int64("account_id", account.ID))
	return account, nil
}

func validatePassword(raw string) error {
	if len(strings.TrimSpace(raw)) < minPasswordLength || len(raw) > maxPasswordLength {
		return domain.ErrInvalidPassword
	}
	return nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
