package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pizzaria-api/internal/models"

	"github.com/rs/zerolog"
)

const flavorColumns = "id, sabor, preco, tamanho"

type FlavorService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewFlavorService(db *sql.DB, logger zerolog.Logger) *FlavorService {
	return &FlavorService{
		db:     db,
		logger: logger,
	}
}

func scanFlavor(row rowScanner) (*models.Flavor, error) {
	var flavor models.Flavor
	if err := row.Scan(&flavor.ID, &flavor.Sabor, &flavor.Preco, &flavor.Tamanho); err != nil {
		return nil, err
	}
	return &flavor, nil
}

func (s *FlavorService) List(ctx context.Context, page int) (*models.Page[models.Flavor], error) {
	if page < 1 {
		page = 1
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sabores").Scan(&total); err != nil {
		s.logger.Error().Err(err).Msg("Error counting flavors")
		return nil, fmt.Errorf("database error: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+flavorColumns+" FROM sabores ORDER BY id LIMIT ? OFFSET ?",
		models.PageSize, models.Offset(page),
	)
	if err != nil {
		s.logger.Error().Err(err).Int("page", page).Msg("Error listing flavors")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	flavors := []models.Flavor{}
	for rows.Next() {
		flavor, err := scanFlavor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flavor: %w", err)
		}
		flavors = append(flavors, *flavor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return models.NewPage(flavors, page, total), nil
}

// Get returns nil, nil when the flavor does not exist.
func (s *FlavorService) Get(ctx context.Context, id int) (*models.Flavor, error) {
	flavor, err := scanFlavor(s.db.QueryRowContext(ctx, "SELECT "+flavorColumns+" FROM sabores WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Int("flavor_id", id).Msg("Error fetching flavor")
		return nil, fmt.Errorf("database error: %w", err)
	}
	return flavor, nil
}

// Create inserts the flavor and returns the stored row, so preco carries the
// column's rounding.
func (s *FlavorService) Create(ctx context.Context, in models.FlavorInput) (*models.Flavor, error) {
	if in.Sabor == nil || in.Preco == nil || in.Tamanho == nil {
		return nil, fmt.Errorf("sabor, preco, and tamanho are required")
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO sabores (sabor, preco, tamanho) VALUES (?, ?, ?)",
		*in.Sabor, *in.Preco, string(*in.Tamanho),
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating flavor")
		return nil, fmt.Errorf("failed to create flavor: %w", err)
	}

	flavorID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get flavor ID: %w", err)
	}

	flavor, err := s.Get(ctx, int(flavorID))
	if err != nil {
		return nil, err
	}
	if flavor == nil {
		return nil, fmt.Errorf("flavor %d vanished after insert", flavorID)
	}

	s.logger.Info().Int("flavor_id", flavor.ID).Str("sabor", flavor.Sabor).Msg("Flavor created")
	return flavor, nil
}

// Update changes only the supplied fields. It returns nil, nil when the
// flavor does not exist.
func (s *FlavorService) Update(ctx context.Context, id int, in models.FlavorInput) (*models.Flavor, error) {
	flavor, err := s.Get(ctx, id)
	if err != nil || flavor == nil {
		return nil, err
	}

	var sets []string
	var args []any
	if in.Sabor != nil {
		sets = append(sets, "sabor = ?")
		args = append(args, *in.Sabor)
	}
	if in.Preco != nil {
		sets = append(sets, "preco = ?")
		args = append(args, *in.Preco)
	}
	if in.Tamanho != nil {
		sets = append(sets, "tamanho = ?")
		args = append(args, string(*in.Tamanho))
	}
	if len(sets) == 0 {
		return flavor, nil
	}

	args = append(args, id)
	if _, err := s.db.ExecContext(ctx, "UPDATE sabores SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
		s.logger.Error().Err(err).Int("flavor_id", id).Msg("Error updating flavor")
		return nil, fmt.Errorf("failed to update flavor: %w", err)
	}

	s.logger.Info().Int("flavor_id", id).Msg("Flavor updated")
	return s.Get(ctx, id)
}

// Delete reports false when there was nothing to delete.
func (s *FlavorService) Delete(ctx context.Context, id int) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sabores WHERE id = ?", id)
	if err != nil {
		s.logger.Error().Err(err).Int("flavor_id", id).Msg("Error deleting flavor")
		return false, fmt.Errorf("failed to delete flavor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected > 0 {
		s.logger.Info().Int("flavor_id", id).Msg("Flavor deleted")
	}
	return affected > 0, nil
}
