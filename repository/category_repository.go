package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(cat *entity.Category) error {
	return r.DB.Create(cat).Error
}

func (r *CategoryRepository) FindByID(id uint) (*entity.Category, error) {
	var cat entity.Category
	if err := r.DB.First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) ListAll() ([]entity.Category, error) {
	var cats []entity.Category
	err := r.DB.Order("display_order ASC, id ASC").Find(&cats).Error
	return cats, err
}

func (r *CategoryRepository) Update(cat *entity.Category) error {
	return r.DB.Save(cat).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Category{}, id).Error
}

func (r *CategoryRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CountMenuItems backs the delete guard: a category owning items stays.
func (r *CategoryRepository) CountMenuItems(categoryID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.MenuItem{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
