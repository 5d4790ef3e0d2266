package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound returned by every repository when the row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate returned when a unique constraint rejects an insert.
var ErrDuplicate = errors.New("duplicate record")

type txKey struct{}

// WithTx stores tx in ctx so repositories built on the root handle join the transaction.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// IBaseRepository CRUD shared by the concrete repositories.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
}

// BaseRepository generic IBaseRepository over one gorm model.
type BaseRepository[T any] struct {
	db *gorm.DB
}

// NewBaseRepository returns a BaseRepository bound to db.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db}
}

func (r *BaseRepository[T]) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	err := r.getDB(ctx).Create(entity).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var entity T
	err := r.getDB(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
