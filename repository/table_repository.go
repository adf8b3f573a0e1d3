package repository

import (
	"errors"

	"backend/entity"

	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) Create(t *entity.Table) error {
	return r.DB.Create(t).Error
}

func (r *TableRepository) FindByID(id uint) (*entity.Table, error) {
	var t entity.Table
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) ListAll() ([]entity.Table, error) {
	var tables []entity.Table
	err := r.DB.Order("table_number ASC").Find(&tables).Error
	return tables, err
}

func (r *TableRepository) ListAvailable() ([]entity.Table, error) {
	var tables []entity.Table
	err := r.DB.Where("status = ? AND is_active = ?", entity.TableAvailable, true).
		Order("table_number ASC").Find(&tables).Error
	return tables, err
}

func (r *TableRepository) CountByNumber(number int) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Table{}).Where("table_number = ?", number).Count(&count).Error
	return count, err
}

func (r *TableRepository) Update(t *entity.Table) error {
	return r.DB.Save(t).Error
}

func (r *TableRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Table{}, id).Error
}

// HasOrders reports whether any order has ever referenced the table
// (restrict-delete).
func (r *TableRepository) HasOrders(tableID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Order{}).Where("table_id = ?", tableID).Count(&count).Error
	return count > 0, err
}

// ActiveOrder returns the order currently holding the table, or nil.
func (r *TableRepository) ActiveOrder(tableID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("table_id = ? AND status IN ?", tableID,
		[]entity.OrderStatus{entity.OrderPending, entity.OrderPreparing, entity.OrderReady}).
		Order("id DESC").First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Occupy flips Available -> Occupied with a status guard so two concurrent
// order creations cannot both win the same table. Returns rows affected.
func (r *TableRepository) Occupy(tableID uint) (int64, error) {
	res := r.DB.Model(&entity.Table{}).
		Where("id = ? AND status = ?", tableID, entity.TableAvailable).
		Update("status", entity.TableOccupied)
	return res.RowsAffected, res.Error
}

// Release puts the table back to Available once its order is served or
// cancelled.
func (r *TableRepository) Release(tableID uint) error {
	return r.DB.Model(&entity.Table{}).
		Where("id = ?", tableID).
		Update("status", entity.TableAvailable).Error
}
