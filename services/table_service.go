package services

import (
	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"
)

type TableService struct {
	uow *repository.UnitOfWork
}

func NewTableService(uow *repository.UnitOfWork) *TableService {
	return &TableService{uow: uow}
}

type TableIn struct {
	TableNumber  int                `json:"tableNumber" binding:"required"`
	Capacity     int                `json:"capacity" binding:"required"`
	Status       entity.TableStatus `json:"status"`
	FloorSection string             `json:"floorSection"`
	IsActive     *bool              `json:"isActive"`
}

// TableOut decorates a table with its current active order, if any.
type TableOut struct {
	entity.Table
	CurrentOrderID     *uint  `json:"currentOrderId,omitempty"`
	CurrentOrderNumber string `json:"currentOrderNumber,omitempty"`
}

func validTableStatus(s entity.TableStatus) bool {
	switch s {
	case entity.TableAvailable, entity.TableOccupied, entity.TableReserved:
		return true
	}
	return false
}

func (s *TableService) decorate(t entity.Table) (TableOut, error) {
	out := TableOut{Table: t}
	active, err := s.uow.Tables.ActiveOrder(t.ID)
	if err != nil {
		return out, apperr.Unexpected(err)
	}
	if active != nil {
		id := active.ID
		out.CurrentOrderID = &id
		out.CurrentOrderNumber = active.OrderNumber
	}
	return out, nil
}

func (s *TableService) ListAll() ([]TableOut, error) {
	tables, err := s.uow.Tables.ListAll()
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	out := make([]TableOut, 0, len(tables))
	for _, t := range tables {
		d, err := s.decorate(t)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *TableService) ListAvailable() ([]entity.Table, error) {
	tables, err := s.uow.Tables.ListAvailable()
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return tables, nil
}

func (s *TableService) GetByID(id uint) (*TableOut, error) {
	t, err := s.uow.Tables.FindByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("table not found")
		}
		return nil, apperr.Unexpected(err)
	}
	out, derr := s.decorate(*t)
	if derr != nil {
		return nil, derr
	}
	return &out, nil
}

func (s *TableService) Create(in *TableIn) (*entity.Table, error) {
	if in.TableNumber <= 0 {
		return nil, apperr.Validation("table number must be positive")
	}
	if in.Capacity <= 0 {
		return nil, apperr.Validation("capacity must be positive")
	}
	count, err := s.uow.Tables.CountByNumber(in.TableNumber)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if count > 0 {
		return nil, apperr.Conflict("table number %d already exists", in.TableNumber)
	}

	status := in.Status
	if status == "" {
		status = entity.TableAvailable
	}
	if !validTableStatus(status) {
		return nil, apperr.Validation("unknown table status %q", string(in.Status))
	}

	t := entity.Table{
		TableNumber:  in.TableNumber,
		Capacity:     in.Capacity,
		Status:       status,
		FloorSection: in.FloorSection,
		IsActive:     true,
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
	if err := s.uow.Tables.Create(&t); err != nil {
		return nil, apperr.Unexpected(err)
	}
	return &t, nil
}

func (s *TableService) Update(id uint, in *TableIn) (*entity.Table, error) {
	t, err := s.uow.Tables.FindByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("table not found")
		}
		return nil, apperr.Unexpected(err)
	}
	if in.Capacity <= 0 {
		return nil, apperr.Validation("capacity must be positive")
	}
	if in.Status != "" && !validTableStatus(in.Status) {
		return nil, apperr.Validation("unknown table status %q", string(in.Status))
	}

	// staff may not mark a table Available while an order still holds it
	if in.Status == entity.TableAvailable && t.Status != entity.TableAvailable {
		active, err := s.uow.Tables.ActiveOrder(id)
		if err != nil {
			return nil, apperr.Unexpected(err)
		}
		if active != nil {
			return nil, apperr.Conflict("table has active order %s", active.OrderNumber)
		}
	}

	if in.TableNumber != t.TableNumber {
		count, err := s.uow.Tables.CountByNumber(in.TableNumber)
		if err != nil {
			return nil, apperr.Unexpected(err)
		}
		if count > 0 {
			return nil, apperr.Conflict("table number %d already exists", in.TableNumber)
		}
		t.TableNumber = in.TableNumber
	}

	t.Capacity = in.Capacity
	t.FloorSection = in.FloorSection
	if in.Status != "" {
		t.Status = in.Status
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
	if err := s.uow.Tables.Update(t); err != nil {
		return nil, apperr.Unexpected(err)
	}
	return t, nil
}

// Delete refuses while any order references the table (restrict-delete).
func (s *TableService) Delete(id uint) error {
	if _, err := s.uow.Tables.FindByID(id); err != nil {
		if isRecordNotFound(err) {
			return apperr.NotFound("table not found")
		}
		return apperr.Unexpected(err)
	}
	has, err := s.uow.Tables.HasOrders(id)
	if err != nil {
		return apperr.Unexpected(err)
	}
	if has {
		return apperr.Conflict("table is referenced by existing orders")
	}
	if err := s.uow.Tables.Delete(id); err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}
