package services

import (
	"errors"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"

	"gorm.io/gorm"
)

// legalTransitions is the whole state machine. Served and Cancelled have no
// outgoing edges.
var legalTransitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderPending:   {entity.OrderPreparing, entity.OrderCancelled},
	entity.OrderPreparing: {entity.OrderReady, entity.OrderCancelled},
	entity.OrderReady:     {entity.OrderServed, entity.OrderCancelled},
}

func canTransition(from, to entity.OrderStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves an order along the state machine. Entering Served or
// Cancelled releases the table in the same transaction as the status write.
func (s *OrderService) UpdateStatus(orderID uint, next entity.OrderStatus) (*OrderDetail, error) {
	if !entity.ValidOrderStatus(next) {
		return nil, apperr.Validation("unknown order status %q", string(next))
	}

	order, err := s.uow.Orders.FindByID(orderID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Unexpected(err)
	}
	if !canTransition(order.Status, next) {
		return nil, apperr.Conflict("invalid transition from %s to %s", order.Status, next)
	}

	err = s.uow.WithinTx(func(tx *repository.UnitOfWork) error {
		affected, err := tx.Orders.UpdateStatusGuard(orderID, order.Status, next, nil)
		if err != nil {
			return apperr.Unexpected(err)
		}
		if affected == 0 {
			return apperr.Conflict("order status changed concurrently")
		}
		if next == entity.OrderServed || next == entity.OrderCancelled {
			if err := tx.Tables.Release(order.TableID); err != nil {
				return apperr.Unexpected(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	detail, err := s.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(nil, "status:"+string(next), "Order", &orderID, string(order.Status), string(next))
	s.publish(OrderEvent{Type: "order_status_changed", Order: detail})
	return detail, nil
}

// Cancel is the dedicated cancellation path: same table release as
// UpdateStatus(Cancelled) plus the reason and timestamp.
func (s *OrderService) Cancel(orderID uint, reason string) (*OrderDetail, error) {
	order, err := s.uow.Orders.FindByID(orderID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Unexpected(err)
	}
	if order.Status == entity.OrderServed {
		return nil, apperr.Conflict("cannot cancel a served order")
	}
	if order.Status == entity.OrderCancelled {
		return nil, apperr.Conflict("order is already cancelled")
	}

	now := s.clock.Now()
	err = s.uow.WithinTx(func(tx *repository.UnitOfWork) error {
		affected, err := tx.Orders.UpdateStatusGuard(orderID, order.Status, entity.OrderCancelled, map[string]any{
			"cancelled_at":        now,
			"cancellation_reason": reason,
		})
		if err != nil {
			return apperr.Unexpected(err)
		}
		if affected == 0 {
			return apperr.Conflict("order status changed concurrently")
		}
		if err := tx.Tables.Release(order.TableID); err != nil {
			return apperr.Unexpected(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	detail, err := s.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(nil, "cancel", "Order", &orderID, string(order.Status), reason)
	s.publish(OrderEvent{Type: "order_status_changed", Order: detail})
	return detail, nil
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
