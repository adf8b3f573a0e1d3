package services

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/pkg/paging"
	"backend/repository"
	"backend/utils"

	"github.com/shopspring/decimal"
)

// TaxRate is fixed at 14%, applied to the order subtotal.
var TaxRate = decimal.NewFromFloat(0.14)

const orderNumberAttempts = 5

// OrderEvent is pushed to the kitchen board when an order is created or
// changes status.
type OrderEvent struct {
	Type  string       `json:"type"` // "order_created" | "order_status_changed"
	Order *OrderDetail `json:"order"`
}

// OrderEventSink receives order lifecycle events. The websocket hub
// implements it; tests plug in a recorder.
type OrderEventSink interface {
	Publish(event OrderEvent)
}

type OrderService struct {
	uow   *repository.UnitOfWork
	clock utils.Clock
	board OrderEventSink
	audit *AuditService
}

func NewOrderService(uow *repository.UnitOfWork, clock utils.Clock, board OrderEventSink, audit *AuditService) *OrderService {
	return &OrderService{uow: uow, clock: clock, board: board, audit: audit}
}

// ----- DTOs -----

type OrderLineIn struct {
	MenuItemID     uint   `json:"menuItemId" binding:"required"`
	Quantity       int    `json:"quantity"`
	SpecialRequest string `json:"specialRequest"`
}

type CreateOrderReq struct {
	TableID uint          `json:"tableId" binding:"required"`
	UserID  uint          `json:"userId" binding:"required"`
	Notes   string        `json:"notes"`
	Items   []OrderLineIn `json:"items"`
}

type OrderLineDetail struct {
	ID             uint            `json:"id"`
	MenuItemID     uint            `json:"menuItemId"`
	MenuItemName   string          `json:"menuItemName"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	SpecialRequest string          `json:"specialRequest"`
}

type OrderDetail struct {
	ID                 uint               `json:"id"`
	OrderNumber        string             `json:"orderNumber"`
	TableID            uint               `json:"tableId"`
	TableNumber        int                `json:"tableNumber"`
	UserID             uint               `json:"userId"`
	StaffName          string             `json:"staffName"`
	OrderDate          time.Time          `json:"orderDate"`
	Status             entity.OrderStatus `json:"status"`
	Subtotal           decimal.Decimal    `json:"subtotal"`
	Tax                decimal.Decimal    `json:"tax"`
	TotalAmount        decimal.Decimal    `json:"totalAmount"`
	Notes              string             `json:"notes"`
	CancelledAt        *time.Time         `json:"cancelledAt,omitempty"`
	CancellationReason string             `json:"cancellationReason,omitempty"`
	Items              []OrderLineDetail  `json:"items"`
}

// mapOrderDetail builds the API shape field by field from a fully loaded
// order. No reflection-based mapping; every joined value is explicit.
func mapOrderDetail(o *entity.Order) *OrderDetail {
	items := make([]OrderLineDetail, 0, len(o.OrderItems))
	for _, it := range o.OrderItems {
		items = append(items, OrderLineDetail{
			ID:             it.ID,
			MenuItemID:     it.MenuItemID,
			MenuItemName:   it.MenuItem.Name,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			Subtotal:       it.Subtotal,
			SpecialRequest: it.SpecialRequest,
		})
	}
	return &OrderDetail{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		TableID:            o.TableID,
		TableNumber:        o.Table.TableNumber,
		UserID:             o.UserID,
		StaffName:          o.User.FullName,
		OrderDate:          o.OrderDate,
		Status:             o.Status,
		Subtotal:           o.Subtotal,
		Tax:                o.Tax,
		TotalAmount:        o.TotalAmount,
		Notes:              o.Notes,
		CancelledAt:        o.CancelledAt,
		CancellationReason: o.CancellationReason,
		Items:              items,
	}
}

// ----- Create -----

// Create validates table, staff and lines in that order (first failure
// wins), snapshots prices, computes totals and persists the order together
// with the Available -> Occupied table flip in one transaction.
func (s *OrderService) Create(req *CreateOrderReq) (*OrderDetail, error) {
	table, err := s.uow.Tables.FindByID(req.TableID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("table not found")
		}
		return nil, apperr.Unexpected(err)
	}
	if table.Status != entity.TableAvailable {
		return nil, apperr.Conflict("table %d is not available", table.TableNumber)
	}

	staffExists, err := s.uow.Users.Exists(req.UserID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if !staffExists {
		return nil, apperr.NotFound("user not found")
	}

	if len(req.Items) == 0 {
		return nil, apperr.Validation("order must contain at least one item")
	}

	now := s.clock.Now()
	subtotal := decimal.Zero
	lines := make([]entity.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		if in.Quantity <= 0 {
			return nil, apperr.Validation("quantity must be a positive integer")
		}
		item, err := s.uow.MenuItems.FindByID(in.MenuItemID)
		if err != nil {
			if isRecordNotFound(err) {
				return nil, apperr.NotFound("menu item %d not found", in.MenuItemID)
			}
			return nil, apperr.Unexpected(err)
		}
		if !item.IsAvailable {
			return nil, apperr.Conflict("menu item %q is not available", item.Name)
		}

		// price snapshot: later menu edits never touch this order
		lineSubtotal := item.Price.Mul(decimal.NewFromInt(int64(in.Quantity)))
		lines = append(lines, entity.OrderItem{
			MenuItemID:     item.ID,
			Quantity:       in.Quantity,
			UnitPrice:      item.Price,
			Subtotal:       lineSubtotal,
			SpecialRequest: utils.SanitizeXSS(in.SpecialRequest),
		})
		subtotal = subtotal.Add(lineSubtotal)
	}

	tax := subtotal.Mul(TaxRate).Round(2)
	total := subtotal.Add(tax)

	number, err := s.nextOrderNumber(now)
	if err != nil {
		return nil, err
	}

	order := entity.Order{
		OrderNumber: number,
		OrderDate:   now,
		Status:      entity.OrderPending,
		Subtotal:    subtotal,
		Tax:         tax,
		TotalAmount: total,
		Notes:       utils.SanitizeXSS(req.Notes),
		TableID:     req.TableID,
		UserID:      req.UserID,
		OrderItems:  lines,
	}

	err = s.uow.WithinTx(func(tx *repository.UnitOfWork) error {
		// guarded flip closes the read-then-write race on the table row
		affected, err := tx.Tables.Occupy(req.TableID)
		if err != nil {
			return apperr.Unexpected(err)
		}
		if affected == 0 {
			return apperr.Conflict("table %d is not available", table.TableNumber)
		}
		if err := tx.Orders.Create(&order); err != nil {
			return apperr.Unexpected(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	detail, err := s.GetByID(order.ID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(&req.UserID, "create", "Order", &order.ID, "", order.OrderNumber)
	s.publish(OrderEvent{Type: "order_created", Order: detail})
	return detail, nil
}

// nextOrderNumber generates ORD-<yyyyMMdd>-<4 digits> and retries on the
// rare collision so the unique index never fires.
func (s *OrderService) nextOrderNumber(now time.Time) (string, error) {
	for i := 0; i < orderNumberAttempts; i++ {
		number := fmt.Sprintf("ORD-%s-%04d", now.UTC().Format("20060102"), rand.IntN(9000)+1000)
		exists, err := s.uow.Orders.NumberExists(number)
		if err != nil {
			return "", apperr.Unexpected(err)
		}
		if !exists {
			return number, nil
		}
	}
	return "", apperr.Unexpected(fmt.Errorf("could not allocate a unique order number after %d attempts", orderNumberAttempts))
}

// ----- Reads -----

func (s *OrderService) GetByID(id uint) (*OrderDetail, error) {
	o, err := s.uow.Orders.FindDetail(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Unexpected(err)
	}
	return mapOrderDetail(o), nil
}

func (s *OrderService) ListActive() ([]*OrderDetail, error) {
	orders, err := s.uow.Orders.ListActive()
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	out := make([]*OrderDetail, 0, len(orders))
	for i := range orders {
		out = append(out, mapOrderDetail(&orders[i]))
	}
	return out, nil
}

func (s *OrderService) List(status *entity.OrderStatus, date *time.Time, page, pageSize int) (*paging.Result[*OrderDetail], error) {
	if status != nil && !entity.ValidOrderStatus(*status) {
		return nil, apperr.Validation("unknown order status %q", string(*status))
	}
	page, pageSize = paging.Clamp(page, pageSize)

	orders, total, err := s.uow.Orders.List(status, date, page, pageSize)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	items := make([]*OrderDetail, 0, len(orders))
	for i := range orders {
		items = append(items, mapOrderDetail(&orders[i]))
	}
	result := paging.NewResult(items, page, pageSize, total)
	return &result, nil
}

func (s *OrderService) publish(event OrderEvent) {
	if s.board == nil {
		return
	}
	s.board.Publish(event)
	slog.Debug("order event published", "type", event.Type, "order", event.Order.OrderNumber)
}
