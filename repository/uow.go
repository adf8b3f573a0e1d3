package repository

import (
	"gorm.io/gorm"
)

// UnitOfWork bundles every repository over one *gorm.DB handle. WithinTx
// rebinds the whole bundle to a transaction so multi-table writes (order
// insert + table flip) commit or roll back together.
type UnitOfWork struct {
	db *gorm.DB

	Users      *UserRepository
	Tables     *TableRepository
	Categories *CategoryRepository
	MenuItems  *MenuItemRepository
	Orders     *OrderRepository
	Settings   *SettingRepository
	Tokens     *PasswordResetTokenRepository
	AuditLogs  *AuditLogRepository
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:         db,
		Users:      NewUserRepository(db),
		Tables:     NewTableRepository(db),
		Categories: NewCategoryRepository(db),
		MenuItems:  NewMenuItemRepository(db),
		Orders:     NewOrderRepository(db),
		Settings:   NewSettingRepository(db),
		Tokens:     NewPasswordResetTokenRepository(db),
		AuditLogs:  NewAuditLogRepository(db),
	}
}

// WithinTx runs fn against a transactional copy of the unit of work. A
// returned error rolls everything back.
func (u *UnitOfWork) WithinTx(fn func(tx *UnitOfWork) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewUnitOfWork(tx))
	})
}

func (u *UnitOfWork) DB() *gorm.DB { return u.db }
