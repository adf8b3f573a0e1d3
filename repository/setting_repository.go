package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type SettingRepository struct {
	DB *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{DB: db}
}

func (r *SettingRepository) Create(s *entity.Setting) error {
	return r.DB.Create(s).Error
}

func (r *SettingRepository) ListAll() ([]entity.Setting, error) {
	var settings []entity.Setting
	err := r.DB.Order("category ASC, key ASC").Find(&settings).Error
	return settings, err
}

func (r *SettingRepository) ListByCategory(category string) ([]entity.Setting, error) {
	var settings []entity.Setting
	err := r.DB.Where("category = ? AND is_active = ?", category, true).Find(&settings).Error
	return settings, err
}

func (r *SettingRepository) FindByKey(key string) (*entity.Setting, error) {
	var s entity.Setting
	if err := r.DB.Where("key = ?", key).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingRepository) UpdateValue(key, value string) (int64, error) {
	res := r.DB.Model(&entity.Setting{}).Where("key = ?", key).Update("value", value)
	return res.RowsAffected, res.Error
}
