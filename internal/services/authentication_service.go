package services

import (
	"context"
	"fmt"

	"pizzaria-api/internal/models"

	"github.com/rs/zerolog"
)

type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	AttemptMatch(ctx context.Context, email, password string) (bool, error)
}

type TokenIssuer interface {
	Issue(ctx context.Context, user *models.User, displayName string) (*models.IssuedToken, error)
}

type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string) error
}

// AuthResult is the outcome of a credential check. User is set only when
// Authenticated is true.
type AuthResult struct {
	Authenticated bool
	User          *models.AuthenticatedUser
}

type AuthenticationService struct {
	users   IdentityStore
	issuer  TokenIssuer
	revoker TokenRevoker
	logger  zerolog.Logger
}

func NewAuthenticationService(users IdentityStore, issuer TokenIssuer, revoker TokenRevoker, logger zerolog.Logger) *AuthenticationService {
	return &AuthenticationService{
		users:   users,
		issuer:  issuer,
		revoker: revoker,
		logger:  logger,
	}
}

// Authenticate checks the credentials and issues one new token on success.
// Wrong credentials are reported through AuthResult, never as an error.
func (s *AuthenticationService) Authenticate(ctx context.Context, email, password string) (AuthResult, error) {
	ok, err := s.users.AttemptMatch(ctx, email, password)
	if err != nil {
		return AuthResult{}, err
	}
	if !ok {
		return AuthResult{}, nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if user == nil {
		return AuthResult{}, fmt.Errorf("user %s disappeared after credential check", email)
	}

	token, err := s.issuer.Issue(ctx, user, user.Email)
	if err != nil {
		return AuthResult{}, err
	}

	s.logger.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("User authenticated successfully")
	return AuthResult{
		Authenticated: true,
		User: &models.AuthenticatedUser{
			ID:    user.ID,
			Email: user.Email,
			Token: token.Value,
		},
	}, nil
}

func (s *AuthenticationService) RevokeToken(ctx context.Context, identity *models.Identity) error {
	if identity == nil || identity.TokenID == "" {
		return &RevocationError{Reason: "no current token"}
	}

	if err := s.revoker.Revoke(ctx, identity.TokenID); err != nil {
		s.logger.Warn().Err(err).Int("user_id", identity.UserID).Msg("Logout failed")
		return err
	}

	s.logger.Info().Int("user_id", identity.UserID).Msg("User logged out")
	return nil
}
