package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/dmarkou/arboretum/internal/app/models"
	appRepos "github.com/dmarkou/arboretum/internal/app/repositories"
	"github.com/dmarkou/arboretum/internal/pkg/apperrors"
	"github.com/dmarkou/arboretum/internal/pkg/auth"
)

var defaultTreeTypes = []struct {
	GreekName      string
	ScientificName string
}{
	{"Πλάτανος", "Platanus orientalis"},
	{"Ελιά", "Olea europaea"},
	{"Πεύκο", "Pinus halepensis"},
	{"Κυπαρίσσι", "Cupressus sempervirens"},
}

// CreateDefaultData seeds the default admin account and a starter species
// catalogue so a fresh install is usable immediately.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	treeTypeRepo := appRepos.NewTreeTypeRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default admin account --- //
	exists, err := userRepo.IdentifierExists(ctx, "admin@arboretum.local", "admin")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating default admin user...")

		hashedPassword, err := auth.HashPassword("Admin123!")
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Email:    "admin@arboretum.local",
				Username: "admin",
				Password: hashedPassword,
				Role:     appModels.RoleAdmin,
				Status:   appModels.StatusActive,
			}

			if err := userRepo.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating admin user")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
			}
		}
	} else {
		lgr.Info().Msg("Admin user already exists, skipping creation")
	}

	// --- Starter species catalogue --- //
	for _, tt := range defaultTreeTypes {
		_, err := treeTypeRepo.Create(ctx, tt.GreekName, tt.ScientificName)
		if err != nil && !errors.Is(err, apperrors.ErrTreeTypeExists) {
			lgr.Error().Err(err).Str("scientificName", tt.ScientificName).Msg("Error creating default tree type")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
