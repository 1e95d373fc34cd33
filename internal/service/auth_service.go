package service

import (
	"context"
	"errors"
	"fmt"

	"studystack_backend/internal/config"
	"studystack_backend/internal/model"
	"studystack_backend/internal/repository"
	"studystack_backend/internal/util"
	"studystack_backend/pkg/logger"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService verifies identity-provider tokens and keeps the local
// user directory in sync. It never stores or checks credentials.
type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
	identity *resty.Client
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	client := resty.New().
		SetTimeout(cfg.Identity.HTTPTimeout).
		SetHeader("Accept", "application/json")

	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
		identity: client,
	}
}

// VerifyToken validates a provider bearer token and returns its claims.
func (s *AuthService) VerifyToken(tokenString string) (*util.IdentityClaims, error) {
	return util.VerifyIdentityToken(tokenString, &s.Cfg.Identity)
}

// providerProfile is the subset of the provider's userinfo payload the
// directory mirrors.
type providerProfile struct {
	Sub         string `json:"sub"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Institution string `json:"institution"`
	Verified    bool   `json:"email_verified"`
}

// fetchProfile asks the identity provider for the profile behind a
// token. Used only when the token claims are too sparse to create a
// local row from.
func (s *AuthService) fetchProfile(ctx context.Context, token string) (*providerProfile, error) {
	var profile providerProfile
	resp, err := s.identity.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&profile).
		Get(s.Cfg.Identity.UserInfoURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("userinfo request failed: %s", resp.Status())
	}
	return &profile, nil
}

// SyncUser ensures a local user row exists for the verified claims,
// creating one with the default VIEWER role on first sight. This is the
// single place lazy user creation happens; the auth middleware only
// calls it.
func (s *AuthService) SyncUser(ctx context.Context, claims *util.IdentityClaims, rawToken string) (*model.User, error) {
	user, err := s.UserRepo.FindByExternalID(claims.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	email, name := claims.Email, claims.Name
	institution := ""
	verified := false
	if email == "" || name == "" {
		profile, perr := s.fetchProfile(ctx, rawToken)
		if perr != nil {
			return nil, perr
		}
		if email == "" {
			email = profile.Email
		}
		if name == "" {
			name = profile.Name
		}
		institution = profile.Institution
		verified = profile.Verified
	}

	role := model.Viewer
	if model.UserRole(claims.Role) == model.Contributor || model.UserRole(claims.Role) == model.Admin {
		role = model.UserRole(claims.Role)
	}

	user = &model.User{
		ExternalID:  claims.Subject,
		Email:       email,
		Name:        name,
		Role:        role,
		Institution: institution,
		Verified:    verified,
	}

	if err := s.UserRepo.Create(user); err != nil {
		// Two first requests can race on the insert; the loser reloads.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.UserRepo.FindByExternalID(claims.Subject)
		}
		return nil, err
	}

	logger.Log.Info("created local user from identity provider",
		zap.String("externalId", user.ExternalID),
		zap.String("role", string(user.Role)))

	return user, nil
}
