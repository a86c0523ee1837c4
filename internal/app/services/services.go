package services

import (
	"github.com/rs/zerolog"

	"github.com/dmarkou/arboretum/internal/app/repositories"
	"github.com/dmarkou/arboretum/internal/pkg/filestorage"
	"github.com/dmarkou/arboretum/internal/pkg/session"
)

// Services holds all the service instances
type Services struct {
	AuthService      *AuthService
	UserService      *UserService
	TreeService      *TreeService
	RequestService   *RequestService
	PollutionService *PollutionService
}

// NewServices initializes all services
func NewServices(
	repos *repositories.Repositories,
	sessions session.Store,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			sessions,
			logger,
		),
		UserService: NewUserService(
			repos.UserRepository,
			repos.RequestRepository,
			sessions,
			logger,
		),
		TreeService: NewTreeService(
			repos.TreeRepository,
			repos.TreeTypeRepository,
			repos.LocationRepository,
			repos.FavoriteRepository,
			repos.UserRepository,
			storage,
			logger,
		),
		RequestService: NewRequestService(
			repos.RequestRepository,
			repos.UserRepository,
			logger,
		),
		PollutionService: NewPollutionService(
			repos.PollutionRepository,
			logger,
		),
	}
}
