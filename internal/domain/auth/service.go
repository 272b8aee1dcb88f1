package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/yanqian/mindmend/pkg/errors"
)

const maxNicknameLetters = 10

// Service exposes account and session workflows.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (Account, error)
	Login(ctx context.Context, req LoginRequest) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	ValidateToken(ctx context.Context, token string) (Claims, error)
	Account(ctx context.Context, userID int64) (Account, error)
	GoogleAuthURL(ctx context.Context, state, codeChallenge string) (string, error)
	GoogleCallback(ctx context.Context, code, codeVerifier string) (Session, error)
	Logout(ctx context.Context, userID int64) error
}

type service struct {
	cfg        Config
	repo       Repository
	tokens     signer
	httpClient *http.Client
	logger     *slog.Logger
}

// NewService constructs a Service instance.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	return &service{
		cfg:        cfg,
		repo:       repo,
		tokens:     signer{secret: []byte(cfg.Secret), now: time.Now},
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.With("component", "auth.service"),
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (Account, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return Account{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid email address", err)
	}
	nickname, err := normalizeNickname(req.Nickname)
	if err != nil {
		return Account{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	if len(req.Password) < 8 {
		return Account{}, apperrors.Wrap(apperrors.CodeInvalidInput, "password must be at least 8 characters", nil)
	}
	if _, exists, err := s.repo.GetByEmail(ctx, email); err != nil {
		return Account{}, apperrors.Wrap(apperrors.CodeAuthError, "failed to check user", err)
	} else if exists {
		return Account{}, apperrors.Wrap(CodeEmailExists, "email already registered", nil)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, apperrors.Wrap(apperrors.CodeAuthError, "failed to hash password", err)
	}
	user, err := s.createUser(ctx, email, nickname, string(hashed))
	if err != nil {
		return Account{}, err
	}
	s.logger.Info("account registered", "user_id", user.ID)
	return toAccount(user), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (Session, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid email address", err)
	}
	if strings.TrimSpace(req.Password) == "" {
		return Session{}, apperrors.Wrap(apperrors.CodeInvalidInput, "password cannot be empty", nil)
	}
	user, found, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeAuthError, "failed to fetch user", err)
	}
	if !found || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeInvalidCredentials, "invalid email or password", nil)
	}
	return s.openSession(user)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return Session{}, apperrors.Wrap(apperrors.CodeInvalidToken, "refresh token missing", nil)
	}
	claims, err := s.tokens.verify(refreshToken, tokenTypeRefresh)
	if err != nil {
		return Session{}, err
	}
	user, err := s.loadUser(ctx, claims.UserID)
	if err != nil {
		return Session{}, err
	}
	return s.openSession(user)
}

func (s *service) ValidateToken(_ context.Context, token string) (Claims, error) {
	if strings.TrimSpace(token) == "" {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token missing", nil)
	}
	return s.tokens.verify(token, tokenTypeAccess)
}

func (s *service) Account(ctx context.Context, userID int64) (Account, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return Account{}, err
	}
	return toAccount(user), nil
}

func (s *service) loadUser(ctx context.Context, userID int64) (User, error) {
	user, found, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, apperrors.Wrap(apperrors.CodeAuthError, "failed to load user", err)
	}
	if !found {
		return User{}, apperrors.Wrap(apperrors.CodeNotFound, "user not found", nil)
	}
	return user, nil
}

func (s *service) createUser(ctx context.Context, email, nickname, passwordHash string) (User, error) {
	user, err := s.repo.Create(ctx, email, nickname, passwordHash)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return User{}, apperrors.Wrap(CodeEmailExists, "email already registered", err)
		}
		return User{}, apperrors.Wrap(apperrors.CodeAuthError, "failed to create user", err)
	}
	return user, nil
}

func (s *service) openSession(user User) (Session, error) {
	access, expires, err := s.tokens.issue(user, tokenTypeAccess, s.cfg.TokenTTL)
	if err != nil {
		return Session{}, err
	}
	refresh, _, err := s.tokens.issue(user, tokenTypeRefresh, s.cfg.RefreshTokenTTL)
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:        access,
		RefreshToken: refresh,
		ExpiresAt:    expires,
		Account:      toAccount(user),
	}, nil
}

func toAccount(user User) Account {
	return Account{
		ID:        user.ID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		CreatedAt: user.CreatedAt,
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", errors.New("email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", err
	}
	return email, nil
}

func normalizeNickname(raw string) (string, error) {
	nickname := strings.TrimSpace(raw)
	if nickname == "" {
		return "", errors.New("nickname cannot be empty")
	}
	if len([]rune(nickname)) > maxNicknameLetters {
		return "", errors.New("nickname cannot exceed 10 letters")
	}
	for _, r := range nickname {
		if !unicode.IsLetter(r) {
			return "", errors.New("nickname must contain only letters")
		}
	}
	return nickname, nil
}
