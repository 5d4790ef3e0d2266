package repositories

import (
	"context"
	"errors"

	"doktor.link/configs/configslog"
	"doktor.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUserRepository user table access.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

// UserRepository implements IUserRepository.
type UserRepository struct {
	*BaseRepository[models.User]
}

// NewUserRepository creates a UserRepository on db.
func NewUserRepository(db *gorm.DB) IUserRepository {
	return &UserRepository{BaseRepository: NewBaseRepository[models.User](db)}
}

// FindByUsername looks up by the unique username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.getDB(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByUsername: DB error", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the stored hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	result := r.getDB(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hash)
	if result.Error != nil {
		configslog.Log.Error("UserRepository.UpdatePassword: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IUserRepository = (*UserRepository)(nil)
