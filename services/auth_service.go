package services // Use-case layer; orchestrates business rules, not HTTP/DB details.

import (
	"context"
	"log/slog"

	"TodoAPI/core"
	"TodoAPI/logger"
	"TodoAPI/models"
	"TodoAPI/repositories"
	"TodoAPI/utils"
	"TodoAPI/utils/redislog"

	"github.com/redis/go-redis/v9"
)

// TokenIssuer signs access tokens; *utils.TokenManager implements it.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// AuthService lists the account use-cases handlers can call.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.TokenResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)
	Me(ctx context.Context, userID string) (*models.UserResponse, error)
}

type authService struct {
	repo   repositories.UserRepository
	tokens TokenIssuer
	cache  jsonCache
	audit  *redislog.Logger // may be nil
	log    *slog.Logger
}

// NewAuthService wires the service. rdb, audit and log may be nil.
func NewAuthService(repo repositories.UserRepository, tokens TokenIssuer, rdb *redis.Client, audit *redislog.Logger, log *slog.Logger) AuthService {
	if log == nil {
		log = logger.Discard()
	}
	return &authService{
		repo:   repo,
		tokens: tokens,
		cache:  jsonCache{rdb: rdb, log: log},
		audit:  audit,
		log:    log,
	}
}

// ---------------- Signup & login ----------------

func (s *authService) Signup(ctx context.Context, req models.SignupRequest) (*models.TokenResponse, error) {
	email := core.NormalizeEmail(req.Email)
	if !core.ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if core.PasswordTooLong(req.Password) {
		return nil, ErrPasswordTooLong
	}

	// Uniqueness check first; the unique index still guards against a concurrent signup.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		s.audit.Warn(ctx, "auth.signup_email_taken", "", map[string]string{"email": email})
		return nil, ErrEmailTaken
	} else if !repositories.IsNotFound(err) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        email,
		PasswordHash: hash, // never the plaintext
		Name:         core.NormalizeName(req.Name),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if repositories.IsDuplicate(err) {
			return nil, ErrEmailTaken
		}
		s.log.Error("signup insert failed", "email", email, "err", err)
		return nil, err
	}

	out, err := s.tokenResponse(u)
	if err != nil {
		return nil, err
	}

	// warm the cache so the first /me is a hit
	s.cache.set(ctx, userCacheKey(u.ID), out.User, userCacheTTL)
	s.audit.Info(ctx, "auth.signup", u.ID, map[string]string{"email": u.Email})
	s.log.Info("user signed up", "user_id", u.ID)
	return out, nil
}

// Login never says which half of the credentials was wrong.
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	email := core.NormalizeEmail(req.Email)
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			s.audit.Warn(ctx, "auth.login_failed", "", map[string]string{"email": email, "reason": "unknown email"})
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(u.PasswordHash, req.Password) {
		s.audit.Warn(ctx, "auth.login_failed", u.ID, map[string]string{"email": email, "reason": "wrong password"})
		return nil, ErrInvalidCredentials
	}

	out, err := s.tokenResponse(u)
	if err != nil {
		return nil, err
	}
	s.audit.Info(ctx, "auth.login", u.ID, nil)
	return out, nil
}

// Me returns the caller's profile, preferring the Redis copy.
func (s *authService) Me(ctx context.Context, userID string) (*models.UserResponse, error) {
	var cached models.UserResponse
	if s.cache.get(ctx, userCacheKey(userID), &cached) {
		return &cached, nil
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrUserNotFound // token outlived the account
		}
		return nil, err
	}
	resp := u.ToResponse()
	s.cache.set(ctx, userCacheKey(userID), resp, userCacheTTL)
	return &resp, nil
}

func (s *authService) tokenResponse(u *models.User) (*models.TokenResponse, error) {
	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		s.log.Error("token signing failed", "user_id", u.ID, "err", err)
		return nil, err
	}
	return &models.TokenResponse{Token: token, User: u.ToResponse()}, nil
}
