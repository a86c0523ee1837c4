package services

import (
	"context"
	"mime/multipart"

	"github.com/dmarkou/arboretum/internal/app/models"
	"github.com/dmarkou/arboretum/internal/app/repositories"
	"github.com/dmarkou/arboretum/internal/pkg/session"
)

// Hand-written stubs for the repository interfaces. Each method delegates to
// an optional func field; unset fields return zero values so tests only wire
// the calls they exercise.

type stubUserRepo struct {
	createFn           func(ctx context.Context, user *models.User) error
	getByIDFn          func(ctx context.Context, id int64) (*models.User, error)
	getByUsernameFn    func(ctx context.Context, username string) (*models.User, error)
	getRoleFn          func(ctx context.Context, id int64) (models.Role, error)
	getStatusFn        func(ctx context.Context, id int64) (models.UserStatus, error)
	getPasswordHashFn  func(ctx context.Context, id int64) (string, error)
	identifierExistsFn func(ctx context.Context, email, username string) (bool, error)
	usernameTakenFn    func(ctx context.Context, username string, id int64) (bool, error)
	updateUsernameFn   func(ctx context.Context, id int64, username string) error
	updatePasswordFn   func(ctx context.Context, id int64, passwordHash string) error
	updateStatusRoleFn func(ctx context.Context, id int64, status models.UserStatus, role models.Role) error
	getAllFn           func(ctx context.Context) ([]models.User, error)
	existsFn           func(ctx context.Context, id int64) (bool, error)
	getPublicProfileFn func(ctx context.Context, username string) (*repositories.PublicProfile, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.User{ID: id}, nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsernameFn != nil {
		return s.getByUsernameFn(ctx, username)
	}
	return &models.User{Username: username}, nil
}

func (s *stubUserRepo) GetRole(ctx context.Context, id int64) (models.Role, error) {
	if s.getRoleFn != nil {
		return s.getRoleFn(ctx, id)
	}
	return models.RoleUser, nil
}

func (s *stubUserRepo) GetStatus(ctx context.Context, id int64) (models.UserStatus, error) {
	if s.getStatusFn != nil {
		return s.getStatusFn(ctx, id)
	}
	return models.StatusActive, nil
}

func (s *stubUserRepo) GetPasswordHash(ctx context.Context, id int64) (string, error) {
	if s.getPasswordHashFn != nil {
		return s.getPasswordHashFn(ctx, id)
	}
	return "", nil
}

func (s *stubUserRepo) IdentifierExists(ctx context.Context, email, username string) (bool, error) {
	if s.identifierExistsFn != nil {
		return s.identifierExistsFn(ctx, email, username)
	}
	return false, nil
}

func (s *stubUserRepo) UsernameTakenByOther(ctx context.Context, username string, id int64) (bool, error) {
	if s.usernameTakenFn != nil {
		return s.usernameTakenFn(ctx, username, id)
	}
	return false, nil
}

func (s *stubUserRepo) UpdateUsername(ctx context.Context, id int64, username string) error {
	if s.updateUsernameFn != nil {
		return s.updateUsernameFn(ctx, id, username)
	}
	return nil
}

func (s *stubUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if s.updatePasswordFn != nil {
		return s.updatePasswordFn(ctx, id, passwordHash)
	}
	return nil
}

func (s *stubUserRepo) UpdateStatusRole(ctx context.Context, id int64, status models.UserStatus, role models.Role) error {
	if s.updateStatusRoleFn != nil {
		return s.updateStatusRoleFn(ctx, id, status, role)
	}
	return nil
}

func (s *stubUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	if s.getAllFn != nil {
		return s.getAllFn(ctx)
	}
	return nil, nil
}

func (s *stubUserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, id)
	}
	return true, nil
}

func (s *stubUserRepo) GetPublicProfile(ctx context.Context, username string) (*repositories.PublicProfile, error) {
	if s.getPublicProfileFn != nil {
		return s.getPublicProfileFn(ctx, username)
	}
	return &repositories.PublicProfile{Username: username}, nil
}

type stubTreeRepo struct {
	getAllWithDetailsFn func(ctx context.Context) ([]repositories.TreeWithDetails, error)
	getByInsertedByFn   func(ctx context.Context, username string) ([]repositories.TreeWithDetails, error)
	getByIDFn           func(ctx context.Context, id int64) (*models.Tree, error)
	createFn            func(ctx context.Context, tree *models.Tree) error
	updateFn            func(ctx context.Context, id int64, name string, typeCode int64, lat, lon float64) error
	deleteFn            func(ctx context.Context, id int64) error
	getImageURLFn       func(ctx context.Context, id int64) (*string, error)
	countByTypeFn       func(ctx context.Context, typeID int64) (int64, error)
}

func (s *stubTreeRepo) GetAllWithDetails(ctx context.Context) ([]repositories.TreeWithDetails, error) {
	if s.getAllWithDetailsFn != nil {
		return s.getAllWithDetailsFn(ctx)
	}
	return nil, nil
}

func (s *stubTreeRepo) GetByInsertedBy(ctx context.Context, username string) ([]repositories.TreeWithDetails, error) {
	if s.getByInsertedByFn != nil {
		return s.getByInsertedByFn(ctx, username)
	}
	return nil, nil
}

func (s *stubTreeRepo) GetByID(ctx context.Context, id int64) (*models.Tree, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.Tree{ID: id}, nil
}

func (s *stubTreeRepo) Create(ctx context.Context, tree *models.Tree) error {
	if s.createFn != nil {
		return s.createFn(ctx, tree)
	}
	return nil
}

func (s *stubTreeRepo) Update(ctx context.Context, id int64, name string, typeCode int64, lat, lon float64) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, name, typeCode, lat, lon)
	}
	return nil
}

func (s *stubTreeRepo) Delete(ctx context.Context, id int64) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *stubTreeRepo) GetImageURL(ctx context.Context, id int64) (*string, error) {
	if s.getImageURLFn != nil {
		return s.getImageURLFn(ctx, id)
	}
	return nil, nil
}

func (s *stubTreeRepo) CountByType(ctx context.Context, typeID int64) (int64, error) {
	if s.countByTypeFn != nil {
		return s.countByTypeFn(ctx, typeID)
	}
	return 0, nil
}

type stubTreeTypeRepo struct {
	getAllFn              func(ctx context.Context) ([]models.TreeType, error)
	getByIDFn             func(ctx context.Context, id int64) (*models.TreeType, error)
	createFn              func(ctx context.Context, greekName, scientificName string) (int64, error)
	updateNamesFn         func(ctx context.Context, id int64, greekName, scientificName string) error
	deleteFn              func(ctx context.Context, id int64) error
	nameExistsFn          func(ctx context.Context, greekName, scientificName string) (bool, error)
	nameExistsExcludingFn func(ctx context.Context, greekName, scientificName string, id int64) (bool, error)
}

func (s *stubTreeTypeRepo) GetAll(ctx context.Context) ([]models.TreeType, error) {
	if s.getAllFn != nil {
		return s.getAllFn(ctx)
	}
	return nil, nil
}

func (s *stubTreeTypeRepo) GetByID(ctx context.Context, id int64) (*models.TreeType, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.TreeType{ID: id}, nil
}

func (s *stubTreeTypeRepo) Create(ctx context.Context, greekName, scientificName string) (int64, error) {
	if s.createFn != nil {
		return s.createFn(ctx, greekName, scientificName)
	}
	return 1, nil
}

func (s *stubTreeTypeRepo) UpdateNames(ctx context.Context, id int64, greekName, scientificName string) error {
	if s.updateNamesFn != nil {
		return s.updateNamesFn(ctx, id, greekName, scientificName)
	}
	return nil
}

func (s *stubTreeTypeRepo) Delete(ctx context.Context, id int64) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *stubTreeTypeRepo) NameExists(ctx context.Context, greekName, scientificName string) (bool, error) {
	if s.nameExistsFn != nil {
		return s.nameExistsFn(ctx, greekName, scientificName)
	}
	return false, nil
}

func (s *stubTreeTypeRepo) NameExistsExcluding(ctx context.Context, greekName, scientificName string, id int64) (bool, error) {
	if s.nameExistsExcludingFn != nil {
		return s.nameExistsExcludingFn(ctx, greekName, scientificName, id)
	}
	return false, nil
}

type stubLocationRepo struct {
	getAllFn func(ctx context.Context) ([]models.Location, error)
	createFn func(ctx context.Context, location *models.Location) error
}

func (s *stubLocationRepo) GetAll(ctx context.Context) ([]models.Location, error) {
	if s.getAllFn != nil {
		return s.getAllFn(ctx)
	}
	return nil, nil
}

func (s *stubLocationRepo) Create(ctx context.Context, location *models.Location) error {
	if s.createFn != nil {
		return s.createFn(ctx, location)
	}
	return nil
}

type stubFavoriteRepo struct {
	existsFn       func(ctx context.Context, userID, treeID int64) (bool, error)
	createFn       func(ctx context.Context, userID, treeID int64) error
	deleteFn       func(ctx context.Context, userID, treeID int64) error
	listForOwnerFn func(ctx context.Context, userID int64) ([]repositories.FavoriteRow, error)
	listForUserFn  func(ctx context.Context, userID int64) ([]repositories.FavoriteRow, error)
}

func (s *stubFavoriteRepo) Exists(ctx context.Context, userID, treeID int64) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, userID, treeID)
	}
	return false, nil
}

func (s *stubFavoriteRepo) Create(ctx context.Context, userID, treeID int64) error {
	if s.createFn != nil {
		return s.createFn(ctx, userID, treeID)
	}
	return nil
}

func (s *stubFavoriteRepo) Delete(ctx context.Context, userID, treeID int64) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, userID, treeID)
	}
	return nil
}

func (s *stubFavoriteRepo) ListForOwner(ctx context.Context, userID int64) ([]repositories.FavoriteRow, error) {
	if s.listForOwnerFn != nil {
		return s.listForOwnerFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubFavoriteRepo) ListForUser(ctx context.Context, userID int64) ([]repositories.FavoriteRow, error) {
	if s.listForUserFn != nil {
		return s.listForUserFn(ctx, userID)
	}
	return nil, nil
}

type stubRequestRepo struct {
	createFn         func(ctx context.Context, userID int64, reqType models.RequestType, targetID *int64, description string) error
	listByUserFn     func(ctx context.Context, userID int64) ([]repositories.RequestRow, error)
	getByIDTargetFn  func(ctx context.Context, requestID, targetID int64) (*repositories.RequestRow, error)
	listAllFn        func(ctx context.Context) ([]repositories.RequestRow, error)
	getStatusFn      func(ctx context.Context, id int64) (models.RequestStatus, error)
	updateStatusFn   func(ctx context.Context, id int64, status models.RequestStatus, stampOpened, stampResolved bool) error
}

func (s *stubRequestRepo) Create(ctx context.Context, userID int64, reqType models.RequestType, targetID *int64, description string) error {
	if s.createFn != nil {
		return s.createFn(ctx, userID, reqType, targetID, description)
	}
	return nil
}

func (s *stubRequestRepo) ListByUser(ctx context.Context, userID int64) ([]repositories.RequestRow, error) {
	if s.listByUserFn != nil {
		return s.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubRequestRepo) GetByIDAndTarget(ctx context.Context, requestID, targetID int64) (*repositories.RequestRow, error) {
	if s.getByIDTargetFn != nil {
		return s.getByIDTargetFn(ctx, requestID, targetID)
	}
	return &repositories.RequestRow{}, nil
}

func (s *stubRequestRepo) ListAll(ctx context.Context) ([]repositories.RequestRow, error) {
	if s.listAllFn != nil {
		return s.listAllFn(ctx)
	}
	return nil, nil
}

func (s *stubRequestRepo) GetStatus(ctx context.Context, id int64) (models.RequestStatus, error) {
	if s.getStatusFn != nil {
		return s.getStatusFn(ctx, id)
	}
	return models.RequestStatusPending, nil
}

func (s *stubRequestRepo) UpdateStatus(ctx context.Context, id int64, status models.RequestStatus, stampOpened, stampResolved bool) error {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, id, status, stampOpened, stampResolved)
	}
	return nil
}

type stubPollutionRepo struct {
	mapPointsFn     func(ctx context.Context, days int, pollutant models.Pollutant) ([]repositories.MapPointRow, error)
	dailyAveragesFn func(ctx context.Context, days int, columns []string, filterNonNull bool) ([]repositories.SeriesRow, error)
	areaAveragesFn  func(ctx context.Context, days int, columns []string, filterNonNull bool) ([]repositories.SeriesRow, error)
	nonNullCountsFn func(ctx context.Context, days int, columns []string) ([]int64, error)
}

func (s *stubPollutionRepo) MapPoints(ctx context.Context, days int, pollutant models.Pollutant) ([]repositories.MapPointRow, error) {
	if s.mapPointsFn != nil {
		return s.mapPointsFn(ctx, days, pollutant)
	}
	return nil, nil
}

func (s *stubPollutionRepo) DailyAverages(ctx context.Context, days int, columns []string, filterNonNull bool) ([]repositories.SeriesRow, error) {
	if s.dailyAveragesFn != nil {
		return s.dailyAveragesFn(ctx, days, columns, filterNonNull)
	}
	return emptySeries(len(columns)), nil
}

func (s *stubPollutionRepo) AreaAverages(ctx context.Context, days int, columns []string, filterNonNull bool) ([]repositories.SeriesRow, error) {
	if s.areaAveragesFn != nil {
		return s.areaAveragesFn(ctx, days, columns, filterNonNull)
	}
	return emptySeries(len(columns)), nil
}

func (s *stubPollutionRepo) NonNullCounts(ctx context.Context, days int, columns []string) ([]int64, error) {
	if s.nonNullCountsFn != nil {
		return s.nonNullCountsFn(ctx, days, columns)
	}
	return make([]int64, len(columns)), nil
}

func emptySeries(columns int) []repositories.SeriesRow {
	return []repositories.SeriesRow{{Label: "2026-01-01", Values: make([]*float64, columns)}}
}

type stubSessionStore struct {
	createFn        func(ctx context.Context, identity session.Identity) (string, error)
	getFn           func(ctx context.Context, token string) (*session.Identity, error)
	deleteFn        func(ctx context.Context, token string) error
	updateFn        func(ctx context.Context, token string, username string) error
	deletedTokens   []string
	renamedSessions map[string]string
}

func (s *stubSessionStore) Create(ctx context.Context, identity session.Identity) (string, error) {
	if s.createFn != nil {
		return s.createFn(ctx, identity)
	}
	return "token-1", nil
}

func (s *stubSessionStore) Get(ctx context.Context, token string) (*session.Identity, error) {
	if s.getFn != nil {
		return s.getFn(ctx, token)
	}
	return &session.Identity{}, nil
}

func (s *stubSessionStore) Delete(ctx context.Context, token string) error {
	s.deletedTokens = append(s.deletedTokens, token)
	if s.deleteFn != nil {
		return s.deleteFn(ctx, token)
	}
	return nil
}

func (s *stubSessionStore) UpdateUsername(ctx context.Context, token string, username string) error {
	if s.renamedSessions == nil {
		s.renamedSessions = map[string]string{}
	}
	s.renamedSessions[token] = username
	if s.updateFn != nil {
		return s.updateFn(ctx, token, username)
	}
	return nil
}

type stubFileStorage struct {
	saveFn       func(fileHeader *multipart.FileHeader) (string, error)
	deleteErr    error
	deletedFiles []string
}

func (s *stubFileStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	if s.saveFn != nil {
		return s.saveFn(fileHeader)
	}
	return "uploads/stub.jpg", nil
}

func (s *stubFileStorage) DeleteFile(filePath string) error {
	s.deletedFiles = append(s.deletedFiles, filePath)
	return s.deleteErr
}

func (s *stubFileStorage) GetFullPath(fileName string) string {
	return fileName
}
