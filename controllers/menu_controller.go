package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	service *services.MenuService
}

func NewMenuController(service *services.MenuService) *MenuController {
	return &MenuController{service: service}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// ===== Categories =====

// GET /api/menu/categories
func (mc *MenuController) ListCategories(c *gin.Context) {
	cats, err := mc.service.ListCategories()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", cats)
}

// GET /api/menu/categories/:id
func (mc *MenuController) GetCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	cat, err := mc.service.GetCategory(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", cat)
}

// POST /api/menu/categories
func (mc *MenuController) CreateCategory(c *gin.Context) {
	var req services.CategoryIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := mc.service.CreateCategory(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Category created successfully", cat)
}

// PUT /api/menu/categories/:id
func (mc *MenuController) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.CategoryIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := mc.service.UpdateCategory(id, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Category updated successfully", cat)
}

// DELETE /api/menu/categories/:id
func (mc *MenuController) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := mc.service.DeleteCategory(id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Category deleted successfully", true)
}

// ===== Menu items =====

// GET /api/menu/items?categoryId=&page=&pageSize=
func (mc *MenuController) ListItems(c *gin.Context) {
	var categoryID *uint
	if s := c.Query("categoryId"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil || id <= 0 {
			resp.BadRequest(c, "invalid categoryId")
			return
		}
		cid := uint(id)
		categoryID = &cid
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	result, err := mc.service.ListMenuItems(categoryID, page, pageSize)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", result)
}

// GET /api/menu/items/:id
func (mc *MenuController) GetItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := mc.service.GetMenuItem(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", item)
}

// POST /api/menu/items
func (mc *MenuController) CreateItem(c *gin.Context) {
	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := mc.service.CreateMenuItem(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Menu item created successfully", item)
}

// PUT /api/menu/items/:id
func (mc *MenuController) UpdateItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := mc.service.UpdateMenuItem(id, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Menu item updated successfully", item)
}

// DELETE /api/menu/items/:id
func (mc *MenuController) DeleteItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := mc.service.DeleteMenuItem(id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Menu item deleted successfully", true)
}

// PATCH /api/menu/items/:id/toggle-availability
func (mc *MenuController) ToggleAvailability(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := mc.service.ToggleAvailability(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Availability updated", item)
}
