package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"pizzaria-api/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenService issues bearer tokens and keeps their revocation state in the
// access_tokens table. The bearer value is an HS256 JWT whose jti is the row id.
type TokenService struct {
	db        *sql.DB
	secretKey []byte
	ttl       time.Duration
	client    string
	logger    zerolog.Logger
	now       func() time.Time
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewTokenService(db *sql.DB, secret string, ttl time.Duration, client string, logger zerolog.Logger) *TokenService {
	return &TokenService{
		db:        db,
		secretKey: []byte(secret),
		ttl:       ttl,
		client:    client,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *TokenService) Issue(ctx context.Context, user *models.User, displayName string) (*models.IssuedToken, error) {
	if user == nil {
		return nil, errors.New("cannot issue token without a user")
	}

	tokenID := uuid.NewString()
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	claims := &Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   strconv.Itoa(user.ID),
			Audience:  jwt.ClaimStrings{s.client},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error generating token")
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO access_tokens (id, user_id, name, client, revoked, expires_at) VALUES (?, ?, ?, ?, 0, ?)",
		tokenID, user.ID, displayName, s.client, expiresAt.UTC(),
	)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", user.ID).Msg("Error storing access token")
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	s.logger.Info().Int("user_id", user.ID).Str("token_id", tokenID).Msg("Access token issued")
	return &models.IssuedToken{ID: tokenID, Value: tokenString}, nil
}

// Verify resolves a bearer value to the caller. Bad signatures, expired
// tokens and revoked or unknown rows all yield ErrInvalidToken.
func (s *TokenService) Verify(ctx context.Context, value string) (*models.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (any, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(s.client),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	token, err := s.findToken(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if token == nil || token.Revoked || token.UserID != userID || !s.now().Before(token.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	return &models.Identity{UserID: userID, Email: claims.Email, TokenID: claims.ID}, nil
}

// findToken returns nil, nil for an unknown id.
func (s *TokenService) findToken(ctx context.Context, tokenID string) (*models.AccessToken, error) {
	var token models.AccessToken
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, client, revoked, created_at, expires_at FROM access_tokens WHERE id = ?", tokenID,
	).Scan(&token.ID, &token.UserID, &token.Name, &token.Client, &token.Revoked, &token.CreatedAt, &token.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("token_id", tokenID).Msg("Error fetching access token")
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &token, nil
}

// Revoke marks the token as revoked. Unknown and already revoked ids yield a
// *RevocationError.
func (s *TokenService) Revoke(ctx context.Context, tokenID string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE access_tokens SET revoked = 1 WHERE id = ? AND revoked = 0", tokenID)
	if err != nil {
		s.logger.Error().Err(err).Str("token_id", tokenID).Msg("Error revoking access token")
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return &RevocationError{TokenID: tokenID, Reason: "token not found or already revoked"}
	}

	s.logger.Info().Str("token_id", tokenID).Msg("Access token revoked")
	return nil
}
