package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"backend/entity"
	"backend/repository"
	"backend/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestUoW(t *testing.T) *repository.UnitOfWork {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.MenuItem{},
		&entity.Table{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Setting{}, &entity.PasswordResetToken{},
		&entity.AuditLog{},
	)
	require.NoError(t, err)

	return repository.NewUnitOfWork(db)
}

// stepClock is a settable test clock.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock(t time.Time) *stepClock { return &stepClock{t: t} }

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// eventRecorder captures published order events.
type eventRecorder struct {
	mu     sync.Mutex
	events []OrderEvent
}

func (r *eventRecorder) Publish(event OrderEvent) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func (r *eventRecorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// ----- fixtures -----

func seedUser(t *testing.T, uow *repository.UnitOfWork, username, role string) *entity.User {
	t.Helper()
	u := &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		FullName:     "Staff " + username,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, uow.Users.Create(u))
	return u
}

func seedTable(t *testing.T, uow *repository.UnitOfWork, number int, status entity.TableStatus) *entity.Table {
	t.Helper()
	tb := &entity.Table{
		TableNumber:  number,
		Capacity:     4,
		Status:       status,
		FloorSection: "Main",
		IsActive:     true,
	}
	require.NoError(t, uow.Tables.Create(tb))
	return tb
}

func seedCategory(t *testing.T, uow *repository.UnitOfWork, name string) *entity.Category {
	t.Helper()
	c := &entity.Category{CategoryName: name, IsActive: true}
	require.NoError(t, uow.Categories.Create(c))
	return c
}

func seedMenuItem(t *testing.T, uow *repository.UnitOfWork, categoryID uint, name, price string, available bool) *entity.MenuItem {
	t.Helper()
	item := &entity.MenuItem{
		CategoryID:  categoryID,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		IsAvailable: available,
	}
	require.NoError(t, uow.MenuItems.Create(item))
	return item
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got),
		"expected %s, got %s", want, got.String())
}

func newOrderService(t *testing.T, uow *repository.UnitOfWork) (*OrderService, *eventRecorder, *stepClock) {
	t.Helper()
	clock := newStepClock(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	rec := &eventRecorder{}
	svc := NewOrderService(uow, clock, rec, NewAuditService(uow))
	return svc, rec, clock
}

var _ utils.Clock = (*stepClock)(nil)
var _ OrderEventSink = (*eventRecorder)(nil)
