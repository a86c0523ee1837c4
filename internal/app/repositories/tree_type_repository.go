package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarkou/arboretum/internal/app/models"
	"github.com/dmarkou/arboretum/internal/pkg/apperrors"
	"github.com/dmarkou/arboretum/internal/pkg/dberrors"
)

// ITreeTypeRepository defines database operations for the species catalogue
type ITreeTypeRepository interface {
	GetAll(ctx context.Context) ([]models.TreeType, error)
	GetByID(ctx context.Context, id int64) (*models.TreeType, error)
	Create(ctx context.Context, greekName, scientificName string) (int64, error)
	UpdateNames(ctx context.Context, id int64, greekName, scientificName string) error
	Delete(ctx context.Context, id int64) error
	NameExists(ctx context.Context, greekName, scientificName string) (bool, error)
	NameExistsExcluding(ctx context.Context, greekName, scientificName string, id int64) (bool, error)
}

// TreeTypeRepository handles database operations for the species catalogue
type TreeTypeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTreeTypeRepository creates a new tree type repository
func NewTreeTypeRepository(db *pgxpool.Pool) *TreeTypeRepository {
	return &TreeTypeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAll retrieves the full species catalogue
func (r *TreeTypeRepository) GetAll(ctx context.Context) ([]models.TreeType, error) {
	query := `SELECT id, greek_name, scientific_name, amount, type_id FROM tree_types`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var treeTypes []models.TreeType
	for rows.Next() {
		var tt models.TreeType
		if err := rows.Scan(&tt.ID, &tt.GreekName, &tt.ScientificName, &tt.Amount, &tt.TypeID); err != nil {
			return nil, err
		}
		treeTypes = append(treeTypes, tt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return treeTypes, nil
}

// GetByID retrieves one species row
func (r *TreeTypeRepository) GetByID(ctx context.Context, id int64) (*models.TreeType, error) {
	query := `SELECT id, greek_name, scientific_name, amount, type_id FROM tree_types WHERE id = $1`

	var tt models.TreeType
	err := r.db.QueryRow(ctx, query, id).Scan(&tt.ID, &tt.GreekName, &tt.ScientificName, &tt.Amount, &tt.TypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTreeTypeNotFound
		}
		return nil, fmt.Errorf("error retrieving tree type: %w", err)
	}

	return &tt, nil
}

// Create inserts a new species and returns the generated id
func (r *TreeTypeRepository) Create(ctx context.Context, greekName, scientificName string) (int64, error) {
	var id int64
	query := `INSERT INTO tree_types (greek_name, scientific_name) VALUES ($1, $2) RETURNING id`
	err := r.db.QueryRow(ctx, query, greekName, scientificName).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrTreeTypeExists
		}
		return 0, fmt.Errorf("error creating tree type: %w", err)
	}
	return id, nil
}

// UpdateNames renames a species. The amount measurement is never touched.
func (r *TreeTypeRepository) UpdateNames(ctx context.Context, id int64, greekName, scientificName string) error {
	query := `UPDATE tree_types SET greek_name = $1, scientific_name = $2 WHERE id = $3`
	if _, err := r.db.Exec(ctx, query, greekName, scientificName, id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrTreeTypeExists
		}
		return fmt.Errorf("error updating tree type: %w", err)
	}
	return nil
}

// Delete removes a species row
func (r *TreeTypeRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM tree_types WHERE id = $1`, id); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrTreeTypeInUse
		}
		return fmt.Errorf("error deleting tree type: %w", err)
	}
	return nil
}

// NameExists reports whether any species holds either name
func (r *TreeTypeRepository) NameExists(ctx context.Context, greekName, scientificName string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("tree_types").
		Where(squirrel.Or{
			squirrel.Eq{"greek_name": greekName},
			squirrel.Eq{"scientific_name": scientificName},
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build name check query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking tree type name: %w", err)
	}
	return true, nil
}

// NameExistsExcluding reports whether a different species holds either name
func (r *TreeTypeRepository) NameExistsExcluding(ctx context.Context, greekName, scientificName string, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("tree_types").
		Where(squirrel.Or{
			squirrel.Eq{"greek_name": greekName},
			squirrel.Eq{"scientific_name": scientificName},
		}).
		Where(squirrel.NotEq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build duplicate check query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking tree type duplicates: %w", err)
	}
	return true, nil
}
