package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/workos/workos-go/v6/pkg/usermanagement"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rahulbariki/brand-automation/common/id"
	"github.com/Rahulbariki/brand-automation/core/config"
	"github.com/Rahulbariki/brand-automation/internal/model"
	"github.com/Rahulbariki/brand-automation/internal/store"
	"github.com/Rahulbariki/brand-automation/internal/token"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCode        = errors.New("invalid authorization code")
	ErrUserInactive       = errors.New("user is deactivated")
)

type AuthService interface {
	Signup(ctx context.Context, email, password string, fullName *string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	GetAuthorizationURL(state string) (string, error)
	HandleCallback(ctx context.Context, code string) (*model.User, string, error)
	Resolve(ctx context.Context, rawToken string) (*model.User, error)
}

type authService struct {
	userStore store.UserStore
	verifier  *token.Verifier
	cfg       config.WorkOSConfig
}

func NewAuthService(userStore store.UserStore, verifier *token.Verifier, cfg config.WorkOSConfig) AuthService {
	if cfg.Enabled() {
		usermanagement.SetAPIKey(cfg.APIKey)
	}
	return &authService{
		userStore: userStore,
		verifier:  verifier,
		cfg:       cfg,
	}
}

func (s *authService) Signup(ctx context.Context, email, password string, fullName *string) (*model.User, string, error) {
	email = normalizeEmail(email)

	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}
	hashStr := string(hash)

	user := &model.User{
		ID:                 id.New(),
		Email:              email,
		PasswordHash:       &hashStr,
		FullName:           fullName,
		Provider:           model.AuthProviderEmail,
		Role:               "user",
		IsActive:           true,
		SubscriptionPlan:   model.PlanFree,
		SubscriptionStatus: "inactive",
		PlanSource:         model.PlanSourceDefault,
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	signed, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	slog.InfoContext(ctx, "user signed up", "user_id", user.ID, "email", user.Email)
	return user, signed, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userStore.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("fetching user: %w", err)
	}

	if user.PasswordHash == nil {
		// hosted-auth account, no local password
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", ErrUserInactive
	}

	signed, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return user, signed, nil
}

func (s *authService) GetAuthorizationURL(state string) (string, error) {
	url, err := usermanagement.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    s.cfg.ClientID,
		RedirectURI: s.cfg.RedirectURI,
		State:       state,
		Provider:    "authkit",
	})
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return url.String(), nil
}

func (s *authService) HandleCallback(ctx context.Context, code string) (*model.User, string, error) {
	authResponse, err := usermanagement.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: s.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to authenticate with code", "error", err)
		return nil, "", ErrInvalidCode
	}

	hostedUser := authResponse.User
	var name *string
	if n := strings.TrimSpace(hostedUser.FirstName + " " + hostedUser.LastName); n != "" {
		name = &n
	}

	user, err := s.resolveExternal(ctx, hostedUser.ID, hostedUser.Email, name)
	if err != nil {
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", ErrUserInactive
	}

	signed, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	slog.InfoContext(ctx, "user authenticated via hosted login", "user_id", user.ID)
	return user, signed, nil
}

// Resolve verifies a bearer token and maps its claims onto a stored user.
// Externally issued tokens are matched by external id first, then by email
// with an external-id backfill, and finally auto-provisioned. Locally issued
// tokens must match an existing account.
func (s *authService) Resolve(ctx context.Context, rawToken string) (*model.User, error) {
	claims, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if claims.External() {
		// a token carrying neither identity nor email resolves to nobody
		if claims.Subject() == "" && claims.Email() == "" {
			return nil, ErrInvalidCredentials
		}
		var name *string
		if n := claims.Name(); n != "" {
			name = &n
		}
		user, err := s.resolveExternal(ctx, claims.Subject(), claims.Email(), name)
		if err != nil {
			return nil, err
		}
		if !user.IsActive {
			return nil, ErrUserInactive
		}
		return user, nil
	}

	email := claims.Email()
	if email == "" {
		email = claims.Subject()
	}
	user, err := s.userStore.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, token.ErrInvalidToken
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

func (s *authService) resolveExternal(ctx context.Context, externalID, email string, fullName *string) (*model.User, error) {
	email = normalizeEmail(email)

	user, err := s.userStore.GetByExternalID(ctx, externalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("fetching user by external id: %w", err)
	}

	// existing local account logging in through the hosted provider for the
	// first time: link it by backfilling the external id
	user, err = s.userStore.GetByEmail(ctx, email)
	if err == nil {
		if user.ExternalID == nil || *user.ExternalID != externalID {
			user.ExternalID = &externalID
			if err := s.userStore.Update(ctx, user); err != nil {
				return nil, fmt.Errorf("linking external id: %w", err)
			}
			slog.InfoContext(ctx, "linked external identity", "user_id", user.ID)
		}
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("fetching user by email: %w", err)
	}

	user = &model.User{
		ID:                 id.New(),
		ExternalID:         &externalID,
		Email:              email,
		FullName:           fullName,
		Provider:           model.AuthProviderHosted,
		Role:               "user",
		IsActive:           true,
		SubscriptionPlan:   model.PlanFree,
		SubscriptionStatus: "inactive",
		PlanSource:         model.PlanSourceDefault,
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("provisioning user: %w", err)
	}
	slog.InfoContext(ctx, "auto-provisioned user from external identity", "user_id", user.ID)
	return user, nil
}

func (s *authService) issueToken(user *model.User) (string, error) {
	claims := map[string]any{
		"sub":   user.Email,
		"email": user.Email,
	}
	if user.FullName != nil {
		claims["name"] = *user.FullName
	}
	return s.verifier.IssueLocal(claims)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
