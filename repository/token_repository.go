package repository

import (
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

type PasswordResetTokenRepository struct {
	DB *gorm.DB
}

func NewPasswordResetTokenRepository(db *gorm.DB) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{DB: db}
}

func (r *PasswordResetTokenRepository) Create(t *entity.PasswordResetToken) error {
	return r.DB.Create(t).Error
}

// FindValid returns the newest unused, unexpired token matching the OTP.
func (r *PasswordResetTokenRepository) FindValid(userID uint, token string, now time.Time) (*entity.PasswordResetToken, error) {
	var t entity.PasswordResetToken
	err := r.DB.
		Where("user_id = ? AND token = ? AND is_used = ? AND expires_at > ?", userID, token, false, now).
		Order("id DESC").
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PasswordResetTokenRepository) MarkUsed(id uint) error {
	return r.DB.Model(&entity.PasswordResetToken{}).Where("id = ?", id).
		Update("is_used", true).Error
}
