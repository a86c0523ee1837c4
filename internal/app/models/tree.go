package models

import (
	"time"
)

// TreeType defines a species entry based on the 'tree_types' table.
// Amount is an optional measurement carried by some species rows; TypeID is
// a legacy external species code unrelated to the primary key.
type TreeType struct {
	ID             int64    `json:"id" db:"id"`
	GreekName      string   `json:"greek_name" db:"greek_name"`
	ScientificName string   `json:"scientific_name" db:"scientific_name"`
	Amount         *float64 `json:"amount" db:"amount"`
	TypeID         *int64   `json:"type_id" db:"type_id"`
}

// Location defines an address entry based on the 'locations' table
type Location struct {
	ID           int64   `json:"id" db:"id"`
	StreetName   *string `json:"street_name" db:"street_name"`
	StreetNumber *string `json:"street_number" db:"street_number"`
	TaxCode      *string `json:"tax_code" db:"tax_code"`
	AreaID       *int64  `json:"area_id" db:"area_id"`
}

// Tree defines a registered tree based on the 'trees' table.
// InsertedBy is a denormalized username snapshot taken at insert time.
type Tree struct {
	ID                int64     `json:"id" db:"id"`
	TypeCode          int64     `json:"type_code" db:"type_code"`
	Name              string    `json:"name" db:"name"`
	AbsolutePositionX *float64  `json:"absolute_position_x" db:"absolute_position_x"`
	AbsolutePositionY *float64  `json:"absolute_position_y" db:"absolute_position_y"`
	Lat               float64   `json:"lat" db:"lat"`
	Lon               float64   `json:"lon" db:"lon"`
	InsertedAt        time.Time `json:"inserted_at" db:"inserted_at"`
	InsertedBy        string    `json:"inserted_by" db:"inserted_by"`
	URL               *string   `json:"url" db:"url"`
	LocationID        *int64    `json:"location_id" db:"location_id"`
}

// Favorite links a user to a bookmarked tree
type Favorite struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	TreeID    int64     `json:"tree_id" db:"tree_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
