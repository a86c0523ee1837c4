package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/dmarkou/arboretum/internal/app/models"
	"github.com/dmarkou/arboretum/internal/app/models/dto"
	"github.com/dmarkou/arboretum/internal/app/repositories"
	"github.com/dmarkou/arboretum/internal/pkg/apperrors"
	"github.com/dmarkou/arboretum/internal/pkg/filestorage"
	"github.com/dmarkou/arboretum/internal/pkg/session"
)

// maxImageSize caps tree photo uploads at 5 MiB
const maxImageSize = 5 << 20

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

// TreeService handles the tree registry, species catalogue and favorites
type TreeService struct {
	treeRepo     repositories.ITreeRepository
	treeTypeRepo repositories.ITreeTypeRepository
	locationRepo repositories.ILocationRepository
	favoriteRepo repositories.IFavoriteRepository
	userRepo     repositories.IUserRepository
	storage      filestorage.FileStorage
	logger       zerolog.Logger
}

// NewTreeService creates a new TreeService
func NewTreeService(
	treeRepo repositories.ITreeRepository,
	treeTypeRepo repositories.ITreeTypeRepository,
	locationRepo repositories.ILocationRepository,
	favoriteRepo repositories.IFavoriteRepository,
	userRepo repositories.IUserRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *TreeService {
	return &TreeService{
		treeRepo:     treeRepo,
		treeTypeRepo: treeTypeRepo,
		locationRepo: locationRepo,
		favoriteRepo: favoriteRepo,
		userRepo:     userRepo,
		storage:      storage,
		logger:       logger,
	}
}

func toTreeView(t repositories.TreeWithDetails) dto.TreeView {
	measurements := map[string]float64{}
	if t.Amount != nil {
		measurements["amount"] = *t.Amount
	}

	return dto.TreeView{
		ID:                t.ID,
		Name:              t.Name,
		AbsolutePositionX: t.AbsolutePositionX,
		AbsolutePositionY: t.AbsolutePositionY,
		Lat:               t.Lat,
		Lon:               t.Lon,
		InsertedAt:        t.InsertedAt,
		InsertedBy:        t.InsertedBy,
		URL:               t.URL,
		Location: dto.TreeLocationView{
			ID:           t.LocationID,
			TaxCode:      t.TaxCode,
			StreetName:   t.StreetName,
			StreetNumber: t.StreetNumber,
			AreaID:       t.AreaID,
		},
		Type: dto.TreeTypeView{
			ID:             t.TypeCode,
			GreekName:      t.GreekName,
			ScientificName: t.ScientificName,
			Measurements:   measurements,
		},
	}
}

func toTreeViews(trees []repositories.TreeWithDetails) []dto.TreeView {
	views := make([]dto.TreeView, 0, len(trees))
	for _, t := range trees {
		views = append(views, toTreeView(t))
	}
	return views
}

func toFavoriteView(f repositories.FavoriteRow) dto.FavoriteView {
	return dto.FavoriteView{
		ID:          f.TreeID,
		Name:        f.Name,
		Lat:         f.Lat,
		Lon:         f.Lon,
		InsertedAt:  f.InsertedAt,
		InsertedBy:  f.InsertedBy,
		URL:         f.URL,
		FavoritedAt: f.FavoritedAt,
		Type: dto.FavoriteTypeView{
			GreekName:      f.GreekName,
			ScientificName: f.ScientificName,
		},
		Location: dto.FavoriteLocationView{
			StreetName:   f.StreetName,
			StreetNumber: f.StreetNumber,
		},
	}
}

func toFavoriteViews(rows []repositories.FavoriteRow) []dto.FavoriteView {
	views := make([]dto.FavoriteView, 0, len(rows))
	for _, f := range rows {
		views = append(views, toFavoriteView(f))
	}
	return views
}

// GetAllTrees returns the full map dataset. Only active accounts see it;
// the status is re-read from the store, not taken from the session.
func (s *TreeService) GetAllTrees(ctx context.Context, callerID int64) ([]dto.TreeView, error) {
	status, err := s.userRepo.GetStatus(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if status != models.StatusActive {
		return nil, apperrors.NewForbiddenError("Only active users can access the tree map")
	}

	trees, err := s.treeRepo.GetAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}

	return toTreeViews(trees), nil
}

// GetUserTrees returns the trees a user registered, keyed by username.
// This backs the public profile, so no status gate applies.
func (s *TreeService) GetUserTrees(ctx context.Context, username string) ([]dto.TreeView, error) {
	trees, err := s.treeRepo.GetByInsertedBy(ctx, username)
	if err != nil {
		return nil, err
	}
	return toTreeViews(trees), nil
}

// GetTreeByID returns a raw tree row without any auth gate
func (s *TreeService) GetTreeByID(ctx context.Context, treeID int64) (*models.Tree, error) {
	return s.treeRepo.GetByID(ctx, treeID)
}

// GetTreeTypes returns the species catalogue
func (s *TreeService) GetTreeTypes(ctx context.Context) ([]models.TreeType, error) {
	return s.treeTypeRepo.GetAll(ctx)
}

// GetTreeType returns one species row. Admin only.
func (s *TreeService) GetTreeType(ctx context.Context, callerID, typeID int64) (*models.TreeType, error) {
	if err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return nil, err
	}
	return s.treeTypeRepo.GetByID(ctx, typeID)
}

// GetTree returns a raw tree row for editing. Admin only.
func (s *TreeService) GetTree(ctx context.Context, callerID, treeID int64) (*models.Tree, error) {
	if err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return nil, err
	}
	return s.treeRepo.GetByID(ctx, treeID)
}

// GetLocations returns the address catalogue
func (s *TreeService) GetLocations(ctx context.Context) ([]models.Location, error) {
	return s.locationRepo.GetAll(ctx)
}

func validateImage(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > maxImageSize {
		return apperrors.ErrImageTooLarge
	}
	if _, ok := allowedImageTypes[fileHeader.Header.Get("Content-Type")]; !ok {
		return apperrors.ErrUnsupportedImageType
	}
	return nil
}

// resolveLocation returns an explicit location id, or creates a new address
// when street fields are supplied instead. Both absent leaves the tree
// unlocated.
func (s *TreeService) resolveLocation(ctx context.Context, req dto.AddTreeRequest) (*int64, error) {
	if req.LocationID != nil {
		return req.LocationID, nil
	}
	if req.StreetName == nil || req.StreetNumber == nil {
		return nil, nil
	}

	location := &models.Location{
		StreetName:   req.StreetName,
		StreetNumber: req.StreetNumber,
		TaxCode:      req.TaxCode,
		AreaID:       req.AreaID,
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return &location.ID, nil
}

// AddTree registers a new tree for the calling user. The image is validated
// and staged before the row insert; a failed insert removes the staged file
// so storage never holds orphans.
func (s *TreeService) AddTree(ctx context.Context, identity session.Identity, req dto.AddTreeRequest) (*models.Tree, error) {
	if req.Image != nil {
		if err := validateImage(req.Image); err != nil {
			return nil, err
		}
	}

	locationID, err := s.resolveLocation(ctx, req)
	if err != nil {
		return nil, err
	}

	var imageURL *string
	if req.Image != nil {
		saved, err := s.storage.SaveFile(req.Image)
		if err != nil {
			s.logger.Error().Err(err).Str("username", identity.Username).Msg("Failed to save tree image")
			return nil, err
		}
		imageURL = &saved
	}

	tree := &models.Tree{
		Name:       req.Name,
		TypeCode:   req.TypeCode,
		Lat:        *req.Lat,
		Lon:        *req.Lon,
		URL:        imageURL,
		InsertedBy: identity.Username,
		LocationID: locationID,
	}

	if err := s.treeRepo.Create(ctx, tree); err != nil {
		if imageURL != nil {
			if delErr := s.storage.DeleteFile(*imageURL); delErr != nil {
				s.logger.Error().Err(delErr).Str("url", *imageURL).Msg("Failed to remove staged image after insert failure")
			}
		}
		return nil, err
	}

	s.logger.Info().Int64("treeID", tree.ID).Str("username", identity.Username).Msg("Tree registered")
	return tree, nil
}

// UpdateTree edits the core fields of a tree. Admin only.
func (s *TreeService) UpdateTree(ctx context.Context, callerID int64, req dto.UpdateTreeRequest) error {
	if err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return err
	}

	if _, err := s.treeRepo.GetByID(ctx, req.ID); err != nil {
		return err
	}

	return s.treeRepo.Update(ctx, req.ID, req.Name, req.TypeCode, *req.Lat, *req.Lon)
}

// DeleteTree removes a tree and its stored image. Admin only. A missing
// image file does not block the row delete.
func (s *TreeService) DeleteTree(ctx context.Context, callerID, treeID int64) error {
	if err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return err
	}

	imageURL, err := s.treeRepo.GetImageURL(ctx, treeID)
	if err != nil {
		return err
	}

	if err := s.treeRepo.Delete(ctx, treeID); err != nil {
		return err
	}

	if imageURL != nil {
		if err := s.storage.DeleteFile(*imageURL); err != nil {
			s.logger.Warn().Err(err).Str("url", *imageURL).Msg("Failed to remove image of deleted tree")
		}
	}

	s.logger.Info().Int64("treeID", treeID).Int64("adminID", callerID).Msg("Tree deleted")
	return nil
}

// AddTreeType creates a species entry. Admin only.
func (s *TreeService) AddTreeType(ctx context.Context, callerID int64, req dto.AddTreeTypeRequest) (int64, error) {
	if err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return 0, err
	}

	exists, err := s.treeTypeRepo.NameExists(ctx, req.GreekName, req.ScientificName)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperrors.ErrTreeTypeExists
	}

	id, err := s.treeTypeRepo.Create(ctx, req.GreekName, req.ScientificName)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("treeTypeID", id).Msg("Tree type created")
	return id, nil
}

// UpdateTreeType renames a species. Admin only.
func (s *TreeService) UpdateTreeType(ctx context.Context, callerID int64, req dto.UpdateTreeTypeRequest) error {
	if err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return err
	}

	duplicate, err := s.treeTypeRepo.NameExistsExcluding(ctx, req.GreekName, req.ScientificName, req.ID)
	if err != nil {
		return err
	}
	if duplicate {
		return apperrors.ErrTreeTypeExists
	}

	if _, err := s.treeTypeRepo.GetByID(ctx, req.ID); err != nil {
		return err
	}

	return s.treeTypeRepo.UpdateNames(ctx, req.ID, req.GreekName, req.ScientificName)
}

// DeleteTreeType removes a species. Admin only. A species still referenced
// by trees cannot be deleted.
func (s *TreeService) DeleteTreeType(ctx context.Context, callerID, typeID int64) error {
	if err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return err
	}

	count, err := s.treeRepo.CountByType(ctx, typeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrTreeTypeInUse
	}

	return s.treeTypeRepo.Delete(ctx, typeID)
}

// CheckDuplicateTreeType pre-flights a species rename. Admin only.
func (s *TreeService) CheckDuplicateTreeType(ctx context.Context, callerID int64, req dto.CheckDuplicateTreeTypeRequest) (bool, error) {
	if err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return false, err
	}
	return s.treeTypeRepo.NameExistsExcluding(ctx, req.GreekName, req.ScientificName, req.ID)
}

// AddFavorite bookmarks a tree for the caller
func (s *TreeService) AddFavorite(ctx context.Context, userID, treeID int64) error {
	exists, err := s.favoriteRepo.Exists(ctx, userID, treeID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrFavoriteExists
	}

	if _, err := s.treeRepo.GetByID(ctx, treeID); err != nil {
		return err
	}

	return s.favoriteRepo.Create(ctx, userID, treeID)
}

// RemoveFavorite removes a bookmark. Removing an absent bookmark succeeds.
func (s *TreeService) RemoveFavorite(ctx context.Context, userID, treeID int64) error {
	return s.favoriteRepo.Delete(ctx, userID, treeID)
}

// GetFavorites returns the caller's own bookmarks
func (s *TreeService) GetFavorites(ctx context.Context, userID int64) ([]dto.FavoriteView, error) {
	rows, err := s.favoriteRepo.ListForOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toFavoriteViews(rows), nil
}

// GetUserFavorites returns another user's bookmarks for their public profile
func (s *TreeService) GetUserFavorites(ctx context.Context, userID int64) ([]dto.FavoriteView, error) {
	rows, err := s.favoriteRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toFavoriteViews(rows), nil
}
