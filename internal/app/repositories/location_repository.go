package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarkou/arboretum/internal/app/models"
)

// ILocationRepository defines database operations for addresses
type ILocationRepository interface {
	GetAll(ctx context.Context) ([]models.Location, error)
	Create(ctx context.Context, location *models.Location) error
}

// LocationRepository handles database operations for addresses
type LocationRepository struct {
	db *pgxpool.Pool
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{
		db: db,
	}
}

// GetAll retrieves every address ordered by street
func (r *LocationRepository) GetAll(ctx context.Context) ([]models.Location, error) {
	query := `
		SELECT id, street_name, street_number, tax_code, area_id
		FROM locations
		ORDER BY street_name, street_number
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.StreetName, &l.StreetNumber, &l.TaxCode, &l.AreaID); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return locations, nil
}

// Create inserts a new address and fills in the generated id
func (r *LocationRepository) Create(ctx context.Context, location *models.Location) error {
	query := `
		INSERT INTO locations (street_name, street_number, tax_code, area_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		location.StreetName,
		location.StreetNumber,
		location.TaxCode,
		location.AreaID,
	).Scan(&location.ID)
	if err != nil {
		return fmt.Errorf("error creating location: %w", err)
	}

	return nil
}
