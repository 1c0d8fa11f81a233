package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hairlyf/backend/internal/models"
)

func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(u.Email)
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserAlreadyExist
	}
	return nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) SaveUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Save(u).Error
}

func (r *GormRepo) SetResetToken(ctx context.Context, userID uint, token string, expire time.Time) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"reset_password_token":  token,
			"reset_password_expire": expire.Unix(),
		}).Error
}

// GetUserByResetToken resolves an unexpired reset token. An expired or
// unknown token is gorm.ErrRecordNotFound, indistinguishable on purpose.
func (r *GormRepo) GetUserByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	if token == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var user models.User
	err := r.DB.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expire > ?", token, now.Unix()).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"password_hash":         passwordHash,
			"reset_password_token":  "",
			"reset_password_expire": 0,
		}).Error
}
