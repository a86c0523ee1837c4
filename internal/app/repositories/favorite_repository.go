package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarkou/arboretum/internal/pkg/apperrors"
	"github.com/dmarkou/arboretum/internal/pkg/dberrors"
)

// FavoriteRow is a bookmarked tree joined with its species and address.
// The species and address blocks are nullable on the public listing, which
// outer-joins them.
type FavoriteRow struct {
	TreeID         int64
	Name           string
	Lat            float64
	Lon            float64
	InsertedAt     time.Time
	InsertedBy     *string
	URL            *string
	FavoritedAt    time.Time
	GreekName      *string
	ScientificName *string
	StreetName     *string
	StreetNumber   *string
}

// IFavoriteRepository defines database operations for favorites
type IFavoriteRepository interface {
	Exists(ctx context.Context, userID, treeID int64) (bool, error)
	Create(ctx context.Context, userID, treeID int64) error
	Delete(ctx context.Context, userID, treeID int64) error
	ListForOwner(ctx context.Context, userID int64) ([]FavoriteRow, error)
	ListForUser(ctx context.Context, userID int64) ([]FavoriteRow, error)
}

// FavoriteRepository handles database operations for favorites
type FavoriteRepository struct {
	db *pgxpool.Pool
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{
		db: db,
	}
}

// Exists reports whether the user already bookmarked the tree
func (r *FavoriteRepository) Exists(ctx context.Context, userID, treeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND tree_id = $2)`
	if err := r.db.QueryRow(ctx, query, userID, treeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking favorite: %w", err)
	}
	return exists, nil
}

// Create bookmarks a tree. A duplicate bookmark is a conflict.
func (r *FavoriteRepository) Create(ctx context.Context, userID, treeID int64) error {
	query := `INSERT INTO favorites (user_id, tree_id, created_at) VALUES ($1, $2, NOW())`
	if _, err := r.db.Exec(ctx, query, userID, treeID); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrFavoriteExists
		}
		return fmt.Errorf("error creating favorite: %w", err)
	}
	return nil
}

// Delete removes a bookmark. Removing an absent bookmark is a no-op.
func (r *FavoriteRepository) Delete(ctx context.Context, userID, treeID int64) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND tree_id = $2`
	if _, err := r.db.Exec(ctx, query, userID, treeID); err != nil {
		return fmt.Errorf("error deleting favorite: %w", err)
	}
	return nil
}

func scanFavoriteRows(rows pgx.Rows) ([]FavoriteRow, error) {
	var favorites []FavoriteRow
	for rows.Next() {
		var f FavoriteRow
		if err := rows.Scan(
			&f.TreeID,
			&f.Name,
			&f.Lat,
			&f.Lon,
			&f.InsertedAt,
			&f.InsertedBy,
			&f.URL,
			&f.GreekName,
			&f.ScientificName,
			&f.StreetName,
			&f.StreetNumber,
			&f.FavoritedAt,
		); err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return favorites, nil
}

// ListForOwner retrieves the caller's own bookmarks, newest bookmark first
func (r *FavoriteRepository) ListForOwner(ctx context.Context, userID int64) ([]FavoriteRow, error) {
	query := `
		SELECT t.id, t.name, t.lat, t.lon, t.inserted_at, t.inserted_by, t.url,
		       tt.greek_name, tt.scientific_name,
		       l.street_name, l.street_number,
		       f.created_at AS favorited_at
		FROM favorites f
		INNER JOIN trees t ON f.tree_id = t.id
		INNER JOIN tree_types tt ON t.type_code = tt.id
		LEFT JOIN locations l ON t.location_id = l.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFavoriteRows(rows)
}

// ListForUser retrieves another user's bookmarks for their public profile.
// The uploader name is resolved through the users table here, so it goes
// null when the denormalized username no longer matches an account.
func (r *FavoriteRepository) ListForUser(ctx context.Context, userID int64) ([]FavoriteRow, error) {
	query := `
		SELECT t.id, t.name, t.lat, t.lon, t.inserted_at, u.username AS inserted_by, t.url,
		       tt.greek_name, tt.scientific_name,
		       l.street_name, l.street_number,
		       f.created_at AS favorited_at
		FROM favorites f
		JOIN trees t ON f.tree_id = t.id
		LEFT JOIN tree_types tt ON t.type_code = tt.id
		LEFT JOIN locations l ON t.location_id = l.id
		LEFT JOIN users u ON t.inserted_by = u.username
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFavoriteRows(rows)
}
