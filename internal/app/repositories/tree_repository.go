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
	"github.com/dmarkou/arboretum/internal/pkg/logger"
)

// TreeWithDetails is a tree row joined with its species and address
type TreeWithDetails struct {
	models.Tree
	GreekName      string
	ScientificName string
	Amount         *float64
	TaxCode        *string
	StreetName     *string
	StreetNumber   *string
	AreaID         *int64
}

// ITreeRepository defines database operations for trees
type ITreeRepository interface {
	GetAllWithDetails(ctx context.Context) ([]TreeWithDetails, error)
	GetByInsertedBy(ctx context.Context, username string) ([]TreeWithDetails, error)
	GetByID(ctx context.Context, id int64) (*models.Tree, error)
	Create(ctx context.Context, tree *models.Tree) error
	Update(ctx context.Context, id int64, name string, typeCode int64, lat, lon float64) error
	Delete(ctx context.Context, id int64) error
	GetImageURL(ctx context.Context, id int64) (*string, error)
	CountByType(ctx context.Context, typeID int64) (int64, error)
}

// TreeRepository handles database operations for trees
type TreeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTreeRepository creates a new tree repository
func NewTreeRepository(db *pgxpool.Pool) *TreeRepository {
	return &TreeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const treeDetailColumns = `
	t.id, t.type_code, t.name, t.absolute_position_x, t.absolute_position_y,
	t.lat, t.lon, t.inserted_at, t.inserted_by, t.url, t.location_id,
	tt.greek_name, tt.scientific_name, tt.amount,
	l.tax_code, l.street_name, l.street_number, l.area_id
`

func scanTreeDetailRows(rows pgx.Rows) ([]TreeWithDetails, error) {
	var trees []TreeWithDetails
	for rows.Next() {
		var t TreeWithDetails
		if err := rows.Scan(
			&t.ID,
			&t.TypeCode,
			&t.Name,
			&t.AbsolutePositionX,
			&t.AbsolutePositionY,
			&t.Lat,
			&t.Lon,
			&t.InsertedAt,
			&t.InsertedBy,
			&t.URL,
			&t.LocationID,
			&t.GreekName,
			&t.ScientificName,
			&t.Amount,
			&t.TaxCode,
			&t.StreetName,
			&t.StreetNumber,
			&t.AreaID,
		); err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return trees, nil
}

// GetAllWithDetails retrieves every tree with its species and address,
// newest first. Trees without an address keep null location fields.
func (r *TreeRepository) GetAllWithDetails(ctx context.Context) ([]TreeWithDetails, error) {
	query := `
		SELECT ` + treeDetailColumns + `
		FROM trees t
		INNER JOIN tree_types tt ON t.type_code = tt.id
		LEFT JOIN locations l ON t.location_id = l.id
		ORDER BY t.inserted_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTreeDetailRows(rows)
}

// GetByInsertedBy retrieves the trees a user registered, newest first
func (r *TreeRepository) GetByInsertedBy(ctx context.Context, username string) ([]TreeWithDetails, error) {
	query := `
		SELECT ` + treeDetailColumns + `
		FROM trees t
		INNER JOIN tree_types tt ON t.type_code = tt.id
		LEFT JOIN locations l ON t.location_id = l.id
		WHERE t.inserted_by = $1
		ORDER BY t.inserted_at DESC
	`

	rows, err := r.db.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTreeDetailRows(rows)
}

// GetByID retrieves a raw tree row
func (r *TreeRepository) GetByID(ctx context.Context, id int64) (*models.Tree, error) {
	query := `
		SELECT id, type_code, name, absolute_position_x, absolute_position_y,
		       lat, lon, inserted_at, inserted_by, url, location_id
		FROM trees
		WHERE id = $1
	`

	var tree models.Tree
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tree.ID,
		&tree.TypeCode,
		&tree.Name,
		&tree.AbsolutePositionX,
		&tree.AbsolutePositionY,
		&tree.Lat,
		&tree.Lon,
		&tree.InsertedAt,
		&tree.InsertedBy,
		&tree.URL,
		&tree.LocationID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTreeNotFound
		}
		return nil, fmt.Errorf("error retrieving tree: %w", err)
	}

	return &tree, nil
}

// Create inserts a new tree and fills in the generated id and timestamp
func (r *TreeRepository) Create(ctx context.Context, tree *models.Tree) error {
	sql, args, err := r.sb.Insert("trees").
		Columns("name", "type_code", "lat", "lon", "url", "inserted_by", "location_id", "inserted_at").
		Values(tree.Name, tree.TypeCode, tree.Lat, tree.Lon, tree.URL, tree.InsertedBy, tree.LocationID, squirrel.Expr("NOW()")).
		Suffix("RETURNING id, inserted_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create tree SQL")
		return fmt.Errorf("failed to build create tree query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&tree.ID, &tree.InsertedAt); err != nil {
		logger.Error().Err(err).Str("name", tree.Name).Msg("Error executing create tree query")
		return fmt.Errorf("error creating tree: %w", err)
	}

	return nil
}

// Update edits the core fields of a tree
func (r *TreeRepository) Update(ctx context.Context, id int64, name string, typeCode int64, lat, lon float64) error {
	sql, args, err := r.sb.Update("trees").
		Set("name", name).
		Set("type_code", typeCode).
		Set("lat", lat).
		Set("lon", lon).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update tree query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating tree: %w", err)
	}

	return nil
}

// Delete removes a tree row
func (r *TreeRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM trees WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting tree: %w", err)
	}
	return nil
}

// GetImageURL reads the stored image path of a tree
func (r *TreeRepository) GetImageURL(ctx context.Context, id int64) (*string, error) {
	var url *string
	err := r.db.QueryRow(ctx, `SELECT url FROM trees WHERE id = $1`, id).Scan(&url)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTreeNotFound
		}
		return nil, fmt.Errorf("error retrieving tree image: %w", err)
	}
	return url, nil
}

// CountByType counts the trees referencing a species
func (r *TreeRepository) CountByType(ctx context.Context, typeID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM trees WHERE type_code = $1`, typeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting trees by type: %w", err)
	}
	return count, nil
}
