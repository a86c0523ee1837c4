package dto

import (
	"mime/multipart"
	"time"

	"github.com/dmarkou/arboretum/internal/app/models"
)

// TreeLocationView is the nested address block of a tree view
type TreeLocationView struct {
	ID           *int64  `json:"id"`
	TaxCode      *string `json:"tax_code"`
	StreetName   *string `json:"street_name"`
	StreetNumber *string `json:"street_number"`
	AreaID       *int64  `json:"area_id"`
}

// TreeTypeView is the nested species block of a tree view. Measurements
// omits the amount key entirely when the species carries no amount.
type TreeTypeView struct {
	ID             int64              `json:"id"`
	GreekName      string             `json:"greek_name"`
	ScientificName string             `json:"scientific_name"`
	Measurements   map[string]float64 `json:"measurements"`
}

// TreeView is the map view object with nested location and type blocks
type TreeView struct {
	ID                int64            `json:"id"`
	Name              string           `json:"name"`
	AbsolutePositionX *float64         `json:"absolute_position_x"`
	AbsolutePositionY *float64         `json:"absolute_position_y"`
	Lat               float64          `json:"lat"`
	Lon               float64          `json:"lon"`
	InsertedAt        time.Time        `json:"inserted_at"`
	InsertedBy        string           `json:"inserted_by"`
	URL               *string          `json:"url"`
	Location          TreeLocationView `json:"location"`
	Type              TreeTypeView     `json:"type"`
}

// TreeListResponse wraps a list of tree views
type TreeListResponse struct {
	Envelope
	Trees []TreeView `json:"trees,omitempty"`
}

// TreeResponse wraps a raw tree row
type TreeResponse struct {
	Envelope
	Tree *models.Tree `json:"tree,omitempty"`
}

// TreeTypeListResponse wraps the species catalogue
type TreeTypeListResponse struct {
	Envelope
	TreeTypes []models.TreeType `json:"tree_types,omitempty"`
}

// TreeTypeResponse wraps a single species row
type TreeTypeResponse struct {
	Envelope
	TreeType *models.TreeType `json:"tree_type,omitempty"`
}

// LocationListResponse wraps the address catalogue
type LocationListResponse struct {
	Envelope
	Locations []models.Location `json:"locations,omitempty"`
}

// AddTreeRequest registers a new tree. It arrives as multipart form data so
// an image can ride along. Either an existing location id or the fields of a
// new address may be supplied; both absent leaves the tree unlocated.
// Coordinates are pointers so the equator and the prime meridian pass the
// required check.
type AddTreeRequest struct {
	Name         string                `form:"name" binding:"required"`
	TypeCode     int64                 `form:"type_code" binding:"required"`
	Lat          *float64              `form:"lat" binding:"required"`
	Lon          *float64              `form:"lon" binding:"required"`
	LocationID   *int64                `form:"location_id"`
	StreetName   *string               `form:"street_name"`
	StreetNumber *string               `form:"street_number"`
	TaxCode      *string               `form:"tax_code"`
	AreaID       *int64                `form:"area_id"`
	Image        *multipart.FileHeader `form:"image"`
}

// UpdateTreeRequest edits the core fields of a tree
type UpdateTreeRequest struct {
	ID       int64    `json:"id" binding:"required"`
	Name     string   `json:"name" binding:"required"`
	TypeCode int64    `json:"type_code" binding:"required"`
	Lat      *float64 `json:"lat" binding:"required"`
	Lon      *float64 `json:"lon" binding:"required"`
}

// IDRequest addresses a single row by id
type IDRequest struct {
	ID int64 `json:"id" binding:"required"`
}

// AddTreeTypeRequest creates a species entry
type AddTreeTypeRequest struct {
	GreekName      string `json:"greek_name" binding:"required"`
	ScientificName string `json:"scientific_name" binding:"required"`
}

// AddTreeTypeResponse returns the generated species id
type AddTreeTypeResponse struct {
	Envelope
	TreeTypeID int64 `json:"tree_type_id,omitempty"`
}

// UpdateTreeTypeRequest renames a species. The amount measurement is
// immutable through this surface.
type UpdateTreeTypeRequest struct {
	ID             int64  `json:"id" binding:"required"`
	GreekName      string `json:"greek_name" binding:"required"`
	ScientificName string `json:"scientific_name" binding:"required"`
}

// CheckDuplicateTreeTypeRequest pre-flights a species rename. The row with
// the given id is excluded from the duplicate check.
type CheckDuplicateTreeTypeRequest struct {
	ID             int64  `json:"id"`
	GreekName      string `json:"greek_name" binding:"required"`
	ScientificName string `json:"scientific_name" binding:"required"`
}

// DuplicateCheckResponse reports whether a conflicting species exists
type DuplicateCheckResponse struct {
	Envelope
	Duplicate bool `json:"duplicate"`
}

// TreeIDRequest addresses a tree for favorite operations
type TreeIDRequest struct {
	TreeID int64 `json:"tree_id" binding:"required"`
}

// UsernameRequest addresses a user's public contributions
type UsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

// UserIDRequest addresses a user's public favorites
type UserIDRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// FavoriteTypeView is the slim species block of a favorite view
type FavoriteTypeView struct {
	GreekName      *string `json:"greek_name"`
	ScientificName *string `json:"scientific_name"`
}

// FavoriteLocationView is the slim address block of a favorite view
type FavoriteLocationView struct {
	StreetName   *string `json:"street_name"`
	StreetNumber *string `json:"street_number"`
}

// FavoriteView is a bookmarked tree with the bookmark timestamp
type FavoriteView struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Lat         float64              `json:"lat"`
	Lon         float64              `json:"lon"`
	InsertedAt  time.Time            `json:"inserted_at"`
	InsertedBy  *string              `json:"inserted_by"`
	URL         *string              `json:"url"`
	FavoritedAt time.Time            `json:"favorited_at"`
	Type        FavoriteTypeView     `json:"type"`
	Location    FavoriteLocationView `json:"location"`
}

// FavoriteListResponse wraps the caller's own favorites
type FavoriteListResponse struct {
	Envelope
	Favorites []FavoriteView `json:"favorites,omitempty"`
}

// FavoriteTreeListResponse wraps another user's favorites
type FavoriteTreeListResponse struct {
	Envelope
	Trees []FavoriteView `json:"trees,omitempty"`
}
