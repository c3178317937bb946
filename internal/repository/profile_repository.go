package repository

import (
	"context"

	"github.com/arcians/profile-registry/internal/models"
	appErr "github.com/arcians/profile-registry/pkg/errors"
	"gorm.io/gorm"
)

// ProfileRepository persists profiles. Implementations exist for gorm
// (postgres, sqlite) and MongoDB.
type ProfileRepository interface {
	BaseRepository[models.Profile]
	Ping(ctx context.Context) error
}

type profileRepository struct {
	BaseRepository[models.Profile]
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{BaseRepository: NewBaseRepository[models.Profile](db, "profile"), db: db}
}

func (r *profileRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return appErr.Wrap(err, appErr.CodeUnavailable, "database handle unavailable")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return appErr.Wrap(err, appErr.CodeUnavailable, "database ping failed")
	}
	return nil
}
