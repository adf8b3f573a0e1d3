package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type MenuItemRepository struct {
	DB *gorm.DB
}

func NewMenuItemRepository(db *gorm.DB) *MenuItemRepository {
	return &MenuItemRepository{DB: db}
}

func (r *MenuItemRepository) Create(item *entity.MenuItem) error {
	return r.DB.Create(item).Error
}

func (r *MenuItemRepository) FindByID(id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := r.DB.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindDetail joins the owning category for detail responses.
func (r *MenuItemRepository) FindDetail(id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := r.DB.Preload("Category").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List pages menu items, optionally filtered by category.
func (r *MenuItemRepository) List(categoryID *uint, page, pageSize int) ([]entity.MenuItem, int64, error) {
	q := r.DB.Model(&entity.MenuItem{})
	if categoryID != nil && *categoryID != 0 {
		q = q.Where("category_id = ?", *categoryID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.MenuItem
	offset := (page - 1) * pageSize
	if err := q.Order("id ASC").Limit(pageSize).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *MenuItemRepository) Update(item *entity.MenuItem) error {
	return r.DB.Save(item).Error
}

func (r *MenuItemRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.MenuItem{}, id).Error
}

func (r *MenuItemRepository) SetAvailability(id uint, available bool) error {
	return r.DB.Model(&entity.MenuItem{}).Where("id = ?", id).
		Update("is_available", available).Error
}

// CountOrderItems backs the delete guard: items on historical orders stay.
func (r *MenuItemRepository) CountOrderItems(menuItemID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.OrderItem{}).Where("menu_item_id = ?", menuItemID).Count(&count).Error
	return count, err
}
