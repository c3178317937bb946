package repository

import (
	"context"
	"errors"

	appErr "github.com/arcians/profile-registry/pkg/errors"
	"gorm.io/gorm"
)

// BaseRepository defines the append-only operations shared by SQL backed
// repositories. Records are inserted once and read back; nothing is updated
// or removed.
type BaseRepository[T any] interface {
	Create(ctx context.Context, obj *T) error
	GetByID(ctx context.Context, id string, dest *T) error
	List(ctx context.Context, limit int) ([]T, error)
}

type baseRepository[T any] struct {
	db   *gorm.DB
	noun string
}

// NewBaseRepository returns a gorm backed BaseRepository. noun is used in
// error messages ("profile not found").
func NewBaseRepository[T any](db *gorm.DB, noun string) BaseRepository[T] {
	return &baseRepository[T]{db: db, noun: noun}
}

func (r *baseRepository[T]) Create(ctx context.Context, obj *T) error {
	if err := r.db.WithContext(ctx).Create(obj).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "create "+r.noun+" failed")
	}
	return nil
}

func (r *baseRepository[T]) GetByID(ctx context.Context, id string, dest *T) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, r.noun+" not found").WithMeta("id", id)
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get "+r.noun+" failed")
	}
	return nil
}

// List returns up to limit rows in whatever order the database yields them.
func (r *baseRepository[T]) List(ctx context.Context, limit int) ([]T, error) {
	out := make([]T, 0)
	q := r.db.WithContext(ctx)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list "+r.noun+"s failed")
	}
	return out, nil
}
