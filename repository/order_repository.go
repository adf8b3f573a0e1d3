package repository

import (
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// Create persists the order together with its items (association insert).
func (r *OrderRepository) Create(o *entity.Order) error {
	return r.DB.Create(o).Error
}

func (r *OrderRepository) FindByID(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// FindDetail loads an order with exactly the rows the detail response joins:
// its table, the staff user and each line's menu item.
func (r *OrderRepository) FindDetail(id uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Preload("Table").
		Preload("User").
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) NumberExists(number string) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Order{}).Where("order_number = ?", number).Count(&count).Error
	return count > 0, err
}

// ListActive returns orders in Pending/Preparing/Ready. Active sets are
// operationally small, so no pagination.
func (r *OrderRepository) ListActive() ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.
		Preload("Table").
		Preload("User").
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Where("status IN ?", []entity.OrderStatus{
			entity.OrderPending, entity.OrderPreparing, entity.OrderReady,
		}).
		Order("order_date ASC").
		Find(&orders).Error
	return orders, err
}

// List pages orders newest-first with optional status and UTC calendar-date
// filters.
func (r *OrderRepository) List(status *entity.OrderStatus, date *time.Time, page, pageSize int) ([]entity.Order, int64, error) {
	q := r.DB.Model(&entity.Order{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if date != nil {
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where("order_date >= ? AND order_date < ?", dayStart, dayStart.Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []entity.Order
	offset := (page - 1) * pageSize
	err := q.
		Preload("Table").
		Preload("User").
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Order("order_date DESC").
		Limit(pageSize).Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatusGuard moves an order from one status to another only if it is
// still in the expected state. Returns rows affected; zero means the order
// moved underneath the caller.
func (r *OrderRepository) UpdateStatusGuard(orderID uint, from, to entity.OrderStatus, updates map[string]any) (int64, error) {
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = to
	res := r.DB.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}
