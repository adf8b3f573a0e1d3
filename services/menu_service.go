package services

import (
	"backend/entity"
	"backend/pkg/apperr"
	"backend/pkg/paging"
	"backend/repository"
	"backend/utils"

	"github.com/shopspring/decimal"
)

type MenuService struct {
	uow *repository.UnitOfWork
}

func NewMenuService(uow *repository.UnitOfWork) *MenuService {
	return &MenuService{uow: uow}
}

// ----- Categories -----

type CategoryIn struct {
	CategoryName   string `json:"categoryName" binding:"required"`
	CategoryNameAr string `json:"categoryNameAr"`
	Description    string `json:"description"`
	DisplayOrder   int    `json:"displayOrder"`
	IsActive       *bool  `json:"isActive"`
}

func (s *MenuService) ListCategories() ([]entity.Category, error) {
	cats, err := s.uow.Categories.ListAll()
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return cats, nil
}

func (s *MenuService) GetCategory(id uint) (*entity.Category, error) {
	cat, err := s.uow.Categories.FindByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("category not found")
		}
		return nil, apperr.Unexpected(err)
	}
	return cat, nil
}

func (s *MenuService) CreateCategory(in *CategoryIn) (*entity.Category, error) {
	cat := entity.Category{
		CategoryName:   utils.SanitizeXSS(in.CategoryName),
		CategoryNameAr: utils.SanitizeXSS(in.CategoryNameAr),
		Description:    utils.SanitizeXSS(in.Description),
		DisplayOrder:   in.DisplayOrder,
		IsActive:       true,
	}
	if in.IsActive != nil {
		cat.IsActive = *in.IsActive
	}
	if err := s.uow.Categories.Create(&cat); err != nil {
		return nil, apperr.Unexpected(err)
	}
	return &cat, nil
}

func (s *MenuService) UpdateCategory(id uint, in *CategoryIn) (*entity.Category, error) {
	cat, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	cat.CategoryName = utils.SanitizeXSS(in.CategoryName)
	cat.CategoryNameAr = utils.SanitizeXSS(in.CategoryNameAr)
	cat.Description = utils.SanitizeXSS(in.Description)
	cat.DisplayOrder = in.DisplayOrder
	if in.IsActive != nil {
		cat.IsActive = *in.IsActive
	}
	if err := s.uow.Categories.Update(cat); err != nil {
		return nil, apperr.Unexpected(err)
	}
	return cat, nil
}

// DeleteCategory refuses while the category still owns menu items.
func (s *MenuService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	count, err := s.uow.Categories.CountMenuItems(id)
	if err != nil {
		return apperr.Unexpected(err)
	}
	if count > 0 {
		return apperr.Conflict("category still owns %d menu item(s)", count)
	}
	if err := s.uow.Categories.Delete(id); err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}

// ----- Menu items -----

type MenuItemIn struct {
	CategoryID      uint            `json:"categoryId" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	NameAr          string          `json:"nameAr"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	ImageURL        string          `json:"imageUrl"`
	IsAvailable     *bool           `json:"isAvailable"`
	PreparationTime *int            `json:"preparationTime"`
}

func (s *MenuService) ListMenuItems(categoryID *uint, page, pageSize int) (*paging.Result[entity.MenuItem], error) {
	page, pageSize = paging.Clamp(page, pageSize)
	items, total, err := s.uow.MenuItems.List(categoryID, page, pageSize)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	result := paging.NewResult(items, page, pageSize, total)
	return &result, nil
}

func (s *MenuService) GetMenuItem(id uint) (*entity.MenuItem, error) {
	item, err := s.uow.MenuItems.FindDetail(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("menu item not found")
		}
		return nil, apperr.Unexpected(err)
	}
	return item, nil
}

func (s *MenuService) CreateMenuItem(in *MenuItemIn) (*entity.MenuItem, error) {
	if !in.Price.IsPositive() {
		return nil, apperr.Validation("price must be positive")
	}
	exists, err := s.uow.Categories.Exists(in.CategoryID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if !exists {
		return nil, apperr.NotFound("category not found")
	}

	item := entity.MenuItem{
		CategoryID:      in.CategoryID,
		Name:            utils.SanitizeXSS(in.Name),
		NameAr:          utils.SanitizeXSS(in.NameAr),
		Description:     utils.SanitizeXSS(in.Description),
		Price:           in.Price,
		ImageURL:        in.ImageURL,
		IsAvailable:     true,
		PreparationTime: in.PreparationTime,
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if err := s.uow.MenuItems.Create(&item); err != nil {
		return nil, apperr.Unexpected(err)
	}
	return &item, nil
}

func (s *MenuService) UpdateMenuItem(id uint, in *MenuItemIn) (*entity.MenuItem, error) {
	if !in.Price.IsPositive() {
		return nil, apperr.Validation("price must be positive")
	}
	item, err := s.uow.MenuItems.FindByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("menu item not found")
		}
		return nil, apperr.Unexpected(err)
	}
	exists, err := s.uow.Categories.Exists(in.CategoryID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if !exists {
		return nil, apperr.NotFound("category not found")
	}

	// price edits only affect future orders; lines keep their snapshot
	item.CategoryID = in.CategoryID
	item.Name = utils.SanitizeXSS(in.Name)
	item.NameAr = utils.SanitizeXSS(in.NameAr)
	item.Description = utils.SanitizeXSS(in.Description)
	item.Price = in.Price
	item.ImageURL = in.ImageURL
	item.PreparationTime = in.PreparationTime
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if err := s.uow.MenuItems.Update(item); err != nil {
		return nil, apperr.Unexpected(err)
	}
	return item, nil
}

// DeleteMenuItem refuses while any order line references the item.
func (s *MenuService) DeleteMenuItem(id uint) error {
	if _, err := s.uow.MenuItems.FindByID(id); err != nil {
		if isRecordNotFound(err) {
			return apperr.NotFound("menu item not found")
		}
		return apperr.Unexpected(err)
	}
	count, err := s.uow.MenuItems.CountOrderItems(id)
	if err != nil {
		return apperr.Unexpected(err)
	}
	if count > 0 {
		return apperr.Conflict("menu item is referenced by %d order line(s)", count)
	}
	if err := s.uow.MenuItems.Delete(id); err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}

func (s *MenuService) ToggleAvailability(id uint) (*entity.MenuItem, error) {
	item, err := s.uow.MenuItems.FindByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("menu item not found")
		}
		return nil, apperr.Unexpected(err)
	}
	if err := s.uow.MenuItems.SetAvailability(id, !item.IsAvailable); err != nil {
		return nil, apperr.Unexpected(err)
	}
	item.IsAvailable = !item.IsAvailable
	return item, nil
}
