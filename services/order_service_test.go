package services

import (
	"regexp"
	"testing"
	"time"

	"backend/entity"
	"backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderNumberRe = regexp.MustCompile(`^ORD-\d{8}-\d{4}$`)

func TestCreateOrderComputesTotals(t *testing.T) {
	uow := newTestUoW(t)
	svc, rec, _ := newOrderService(t, uow)

	staff := seedUser(t, uow, "waiter1", entity.RoleWaiter)
	table := seedTable(t, uow, 5, entity.TableAvailable)
	cat := seedCategory(t, uow, "Mains")
	pasta := seedMenuItem(t, uow, cat.ID, "Pasta", "50.00", true)

	detail, err := svc.Create(&CreateOrderReq{
		TableID: table.ID,
		UserID:  staff.ID,
		Notes:   "window seat",
		Items: []OrderLineIn{
			{MenuItemID: pasta.ID, Quantity: 2, SpecialRequest: "extra cheese"},
		},
	})
	require.NoError(t, err)

	requireDecimal(t, "100.00", detail.Subtotal)
	requireDecimal(t, "14.00", detail.Tax)
	requireDecimal(t, "114.00", detail.TotalAmount)
	assert.Regexp(t, orderNumberRe, detail.OrderNumber)
	assert.Equal(t, entity.OrderPending, detail.Status)
	assert.Equal(t, 5, detail.TableNumber)
	assert.Equal(t, staff.FullName, detail.StaffName)

	require.Len(t, detail.Items, 1)
	assert.Equal(t, "Pasta", detail.Items[0].MenuItemName)
	requireDecimal(t, "50.00", detail.Items[0].UnitPrice)
	requireDecimal(t, "100.00", detail.Items[0].Subtotal)
	assert.Equal(t, "extra cheese", detail.Items[0].SpecialRequest)

	// table flipped to Occupied
	got, err := uow.Tables.FindByID(table.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TableOccupied, got.Status)

	assert.Equal(t, []string{"order_created"}, rec.types())
}

func TestCreateOrderMixedLines(t *testing.T) {
	uow := newTestUoW(t)
	svc, _, _ := newOrderService(t, uow)

	staff := seedUser(t, uow, "waiter1", entity.RoleWaiter)
	table := seedTable(t, uow, 1, entity.TableAvailable)
	cat := seedCategory(t, uow, "Mains")
	pasta := seedMenuItem(t, uow, cat.ID, "Pasta", "50.00", true)
	soup := seedMenuItem(t, uow, cat.ID, "Soup", "19.90", true)

	detail, err := svc.Create(&CreateOrderReq{
		TableID: table.ID,
		UserID:  staff.ID,
		Items: []OrderLineIn{
			{MenuItemID: pasta.ID, Quantity: 1},
			{MenuItemID: soup.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	// 50.00 + 3*19.90 = 109.70; tax = 15.36 (rounded); total = 125.06
	requireDecimal(t, "109.70", detail.Subtotal)
	requireDecimal(t, "15.36", detail.Tax)
	requireDecimal(t, "125.06", detail.TotalAmount)
}

func TestCreateOrderTableNotFound(t *testing.T) {
	uow := newTestUoW(t)
	svc, _, _ := newOrderService(t, uow)
	staff := seedUser(t, uow, "waiter1", entity.RoleWaiter)

	_, err := svc.Create(&CreateOrderReq{TableID: 99, UserID: staff.ID,
		Items: []OrderLineIn{{MenuItemID: 1, Quantity: 1}}})
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateOrderTableOccupied(t *testing.T) {
	uow := newTestUoW(t)
	svc, rec, _ := newOrderService(t, uow)

	staff := seedUser(t, uow, "waiter1", entity.RoleWaiter)
	table := seedTable(t, uow, 7, entity.TableOccupied)
	cat := seedCategory(t, uow, "Mains")
	pasta := seedMenuItem(t, uow, cat.ID, "Pasta", "50.00", true)

	_, err := svc.Create(&CreateOrderReq{TableID: table.ID, UserID: staff.ID,
		Items: []OrderLineIn{{MenuItemID: pasta.ID, Quantity: 1}}})
	assert.True(t, apperr.IsConflict(err))

	// no writes: table untouched, no order rows, no events
	got, ferr := uow.Tables.FindByID(table.ID)
	require.NoError(t, ferr)
	assert.Equal(t, entity.TableOccupied, got.Status)

	var count int64
	require.NoError(t, uow.DB().Model(&entity.Order{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, rec.types())
}

func TestCreateOrderUserNotFound(t *testing.T) {
	uow := newTestUoW(t)
	svc, _, _ := newOrderService(t, uow)
	table := seedTable(t, uow, 2, entity.TableAvailable)

	_, err := svc.Create(&CreateOrderReq{TableID: table.ID, UserID: 42,
		Items: []OrderLineIn{{MenuItemID: 1, Quantity: 1}}})
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateOrderEmptyItems(t *testing.T) {
	uow := newTestUoW(t)
	svc, _, _ := newOrderService(t, uow)
	staff := seedUser(t, uow, "waiter1", entity.RoleWaiter)
	table := seedTable(t, uow, 2, entity.TableAvailable)

	_, err := svc.Create(&CreateOrderReq{TableID: table.ID, UserID: staff.ID})
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateOrderNonPositiveQuantity(t *testing.T) {
	uow := newTestUoW(t)
	svc, _, _ := newOrderService(t, uow)
	staff := seedUser(t, uow, "waiter1", entity.RoleWaiter)
	table := seedTable(t, uow, 2, entity.TableAvailable)
	cat := seedCategory(t, uow, "Mains")
	pasta := seedMenuItem(t, uow, cat.ID, "Pasta", "50.00", true)

	_, err := svc.Create(&CreateOrderReq{TableID: table.ID, UserID: staff.ID,
		Items: []OrderLineIn{{MenuItemID: pasta.ID, Quantity: 0}}})
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateOrderItemUnavailable(t *testing.T) {
	uow := newTestUoW(t)
	svc, _, _ := newOrderService(t, uow)

	staff := seedUser(t, uow, "waiter1", entity.RoleWaiter)
	table := seedTable(t, uow, 3, entity.TableAvailable)
	cat := seedCategory(t, uow, "Mains")
	offMenu := seedMenuItem(t, uow, cat.ID, "Seasonal Special", "80.00", false)

	_, err := svc.Create(&CreateOrderReq{TableID: table.ID, UserID: staff.ID,
		Items: []OrderLineIn{{MenuItemID: offMenu.ID, Quantity: 1}}})
	assert.True(t, apperr.IsConflict(err))

	// table stays Available and nothing was persisted
	got, ferr := uow.Tables.FindByID(table.ID)
	require.NoError(t, ferr)
	assert.Equal(t, entity.TableAvailable, got.Status)

	var count int64
	require.NoError(t, uow.DB().Model(&entity.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderMenuItemNotFound(t *testing.T) {
	uow := newTestUoW(t)
	svc, _, _ := newOrderService(t, uow)
	staff := seedUser(t, uow, "waiter1", entity.RoleWaiter)
	table := seedTable(t, uow, 3, entity.TableAvailable)

	_, err := svc.Create(&CreateOrderReq{TableID: table.ID, UserID: staff.ID,
		Items: []OrderLineIn{{MenuItemID: 999, Quantity: 1}}})
	assert.True(t, apperr.IsNotFound(err))
}

func TestPriceSnapshotSurvivesMenuEdits(t *testing.T) {
	uow := newTestUoW(t)
	svc, _, _ := newOrderService(t, uow)

	staff := seedUser(t, uow, "waiter1", entity.RoleWaiter)
	table := seedTable(t, uow, 4, entity.TableAvailable)
	cat := seedCategory(t, uow, "Mains")
	pasta := seedMenuItem(t, uow, cat.ID, "Pasta", "50.00", true)

	detail, err := svc.Create(&CreateOrderReq{TableID: table.ID, UserID: staff.ID,
		Items: []OrderLineIn{{MenuItemID: pasta.ID, Quantity: 2}}})
	require.NoError(t, err)

	// raise the menu price after the fact
	item, err := uow.MenuItems.FindByID(pasta.ID)
	require.NoError(t, err)
	item.Price = item.Price.Add(item.Price)
	require.NoError(t, uow.MenuItems.Update(item))

	reread, err := svc.GetByID(detail.ID)
	require.NoError(t, err)
	requireDecimal(t, "50.00", reread.Items[0].UnitPrice)
	requireDecimal(t, "100.00", reread.Subtotal)
}

func TestGetByIDIdempotent(t *testing.T) {
	uow := newTestUoW(t)
	svc, _, _ := newOrderService(t, uow)

	staff := seedUser(t, uow, "waiter1", entity.RoleWaiter)
	table := seedTable(t, uow, 6, entity.TableAvailable)
	cat := seedCategory(t, uow, "Mains")
	pasta := seedMenuItem(t, uow, cat.ID, "Pasta", "50.00", true)

	created, err := svc.Create(&CreateOrderReq{TableID: table.ID, UserID: staff.ID,
		Items: []OrderLineIn{{MenuItemID: pasta.ID, Quantity: 1}}})
	require.NoError(t, err)

	first, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	second, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetByIDNotFound(t *testing.T) {
	uow := newTestUoW(t)
	svc, _, _ := newOrderService(t, uow)

	_, err := svc.GetByID(123)
	assert.True(t, apperr.IsNotFound(err))
}

func TestOrderNumberUsesClockDate(t *testing.T) {
	uow := newTestUoW(t)
	svc, _, clock := newOrderService(t, uow)

	staff := seedUser(t, uow, "waiter1", entity.RoleWaiter)
	table := seedTable(t, uow, 8, entity.TableAvailable)
	cat := seedCategory(t, uow, "Mains")
	pasta := seedMenuItem(t, uow, cat.ID, "Pasta", "50.00", true)

	clock.Advance(48 * time.Hour) // 2026-03-16

	detail, err := svc.Create(&CreateOrderReq{TableID: table.ID, UserID: staff.ID,
		Items: []OrderLineIn{{MenuItemID: pasta.ID, Quantity: 1}}})
	require.NoError(t, err)
	assert.Contains(t, detail.OrderNumber, "ORD-20260316-")
	assert.WithinDuration(t, clock.Now(), detail.OrderDate, time.Second)
}

// ----- listing -----

func TestListActiveFiltersTerminalStatuses(t *testing.T) {
	uow := newTestUoW(t)
	svc, _, _ := newOrderService(t, uow)

	staff := seedUser(t, uow, "waiter1", entity.RoleWaiter)
	cat := seedCategory(t, uow, "Mains")
	pasta := seedMenuItem(t, uow, cat.ID, "Pasta", "50.00", true)

	var ids []uint
	for i := 0; i < 3; i++ {
		table := seedTable(t, uow, 10+i, entity.TableAvailable)
		d, err := svc.Create(&CreateOrderReq{TableID: table.ID, UserID: staff.ID,
			Items: []OrderLineIn{{MenuItemID: pasta.ID, Quantity: 1}}})
		require.NoError(t, err)
		ids = append(ids, d.ID)
	}

	// serve one, cancel one
	_, err := svc.UpdateStatus(ids[0], entity.OrderPreparing)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ids[0], entity.OrderReady)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ids[0], entity.OrderServed)
	require.NoError(t, err)
	_, err = svc.Cancel(ids[1], "changed mind")
	require.NoError(t, err)

	active, err := svc.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, ids[2], active[0].ID)
}

func TestListPaginationAndFilters(t *testing.T) {
	uow := newTestUoW(t)
	svc, _, clock := newOrderService(t, uow)

	staff := seedUser(t, uow, "waiter1", entity.RoleWaiter)
	cat := seedCategory(t, uow, "Mains")
	pasta := seedMenuItem(t, uow, cat.ID, "Pasta", "50.00", true)

	// three orders across two calendar days
	for i := 0; i < 3; i++ {
		table := seedTable(t, uow, 20+i, entity.TableAvailable)
		_, err := svc.Create(&CreateOrderReq{TableID: table.ID, UserID: staff.ID,
			Items: []OrderLineIn{{MenuItemID: pasta.ID, Quantity: 1}}})
		require.NoError(t, err)
		if i == 1 {
			clock.Advance(24 * time.Hour)
		}
	}

	all, err := svc.List(nil, nil, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.TotalRecords)
	assert.Equal(t, 2, all.TotalPages)
	require.Len(t, all.Items, 2)
	// newest first
	assert.True(t, !all.Items[0].OrderDate.Before(all.Items[1].OrderDate))

	page2, err := svc.List(nil, nil, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Items, 1)

	// date filter: only the first two orders landed on day one
	day1 := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	byDate, err := svc.List(nil, &day1, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, byDate.TotalRecords)

	// status filter
	pending := entity.OrderPending
	byStatus, err := svc.List(&pending, nil, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, byStatus.TotalRecords)

	bogus := entity.OrderStatus("Delivered")
	_, err = svc.List(&bogus, nil, 1, 10)
	assert.True(t, apperr.IsValidation(err))
}

// ----- end to end -----

func TestOrderLifecycleEndToEnd(t *testing.T) {
	uow := newTestUoW(t)
	svc, rec, _ := newOrderService(t, uow)

	staff := seedUser(t, uow, "waiter1", entity.RoleWaiter)
	table := seedTable(t, uow, 5, entity.TableAvailable)
	cat := seedCategory(t, uow, "Mains")
	pasta := seedMenuItem(t, uow, cat.ID, "Pasta", "50.00", true)

	detail, err := svc.Create(&CreateOrderReq{TableID: table.ID, UserID: staff.ID,
		Items: []OrderLineIn{{MenuItemID: pasta.ID, Quantity: 2}}})
	require.NoError(t, err)
	requireDecimal(t, "100.00", detail.Subtotal)
	requireDecimal(t, "14.00", detail.Tax)
	requireDecimal(t, "114.00", detail.TotalAmount)

	for _, next := range []entity.OrderStatus{
		entity.OrderPreparing, entity.OrderReady, entity.OrderServed,
	} {
		detail, err = svc.UpdateStatus(detail.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, detail.Status)
	}

	got, err := uow.Tables.FindByID(table.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TableAvailable, got.Status)

	assert.Equal(t, []string{
		"order_created", "order_status_changed", "order_status_changed", "order_status_changed",
	}, rec.types())

	// a second order on the now-free table succeeds
	_, err = svc.Create(&CreateOrderReq{TableID: table.ID, UserID: staff.ID,
		Items: []OrderLineIn{{MenuItemID: pasta.ID, Quantity: 1}}})
	require.NoError(t, err)
}
