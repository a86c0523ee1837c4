package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	TreeRepository      *TreeRepository
	TreeTypeRepository  *TreeTypeRepository
	LocationRepository  *LocationRepository
	FavoriteRepository  *FavoriteRepository
	RequestRepository   *RequestRepository
	PollutionRepository *PollutionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		TreeRepository:      NewTreeRepository(db),
		TreeTypeRepository:  NewTreeTypeRepository(db),
		LocationRepository:  NewLocationRepository(db),
		FavoriteRepository:  NewFavoriteRepository(db),
		RequestRepository:   NewRequestRepository(db),
		PollutionRepository: NewPollutionRepository(db),
	}
}
