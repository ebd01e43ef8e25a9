package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pizzaria-api/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = "id, name, email, password_hash, created_at, updated_at"

type UserService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewUserService(db *sql.DB, logger zerolog.Logger) *UserService {
	return &UserService{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context, page int) (*models.Page[models.User], error) {
	if page < 1 {
		page = 1
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		s.logger.Error().Err(err).Msg("Error counting users")
		return nil, fmt.Errorf("database error: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id LIMIT ? OFFSET ?",
		models.PageSize, models.Offset(page),
	)
	if err != nil {
		s.logger.Error().Err(err).Int("page", page).Msg("Error listing users")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return models.NewPage(users, page, total), nil
}

// Get returns nil, nil when the user does not exist.
func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", id).Msg("Error fetching user")
		return nil, fmt.Errorf("database error: %w", err)
	}
	return user, nil
}

// FindByEmail returns nil, nil when no user has the address.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Error fetching user by email")
		return nil, fmt.Errorf("database error: %w", err)
	}
	return user, nil
}

// AttemptMatch compares password against the stored hash for email.
// An unknown email is a non-match, not an error.
func (s *UserService) AttemptMatch(ctx context.Context, email, password string) (bool, error) {
	var passwordHash string
	err := s.db.QueryRowContext(ctx, "SELECT password_hash FROM users WHERE email = ?", email).Scan(&passwordHash)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Error querying user")
		return false, fmt.Errorf("database error: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Warn().Str("email", email).Msg("Failed authentication attempt")
			return false, nil
		}
		return false, fmt.Errorf("failed to compare password: %w", err)
	}
	return true, nil
}

func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email).Scan(&exists)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error checking existing user")
		return false, fmt.Errorf("database error: %w", err)
	}
	return exists, nil
}

func (s *UserService) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	if in.Name == nil || in.Email == nil || in.Password == nil {
		return nil, errors.New("name, email, and password are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)",
		*in.Name, *in.Email, string(hashedPassword),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateEmail
		}
		s.logger.Error().Err(err).Msg("Error creating user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	userID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID: %w", err)
	}

	user, err := s.Get(ctx, int(userID))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d vanished after insert", userID)
	}

	s.logger.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("User created")
	return user, nil
}

// Update changes only the supplied fields. It returns nil, nil when the user
// does not exist.
func (s *UserService) Update(ctx context.Context, id int, in models.UserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}

	var sets []string
	var args []any
	if in.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *in.Name)
	}
	if in.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *in.Email)
	}
	if in.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error().Err(err).Msg("Error hashing password")
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		sets = append(sets, "password_hash = ?")
		args = append(args, string(hashedPassword))
	}
	if len(sets) == 0 {
		return user, nil
	}

	args = append(args, id)
	_, err = s.db.ExecContext(ctx, "UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateEmail
		}
		s.logger.Error().Err(err).Int("user_id", id).Msg("Error updating user")
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info().Int("user_id", id).Msg("User updated")
	return s.Get(ctx, id)
}

// Delete reports false when there was nothing to delete.
func (s *UserService) Delete(ctx context.Context, id int) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", id).Msg("Error deleting user")
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected > 0 {
		s.logger.Info().Int("user_id", id).Msg("User deleted")
	}
	return affected > 0, nil
}
