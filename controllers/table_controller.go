package controllers

import (
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type TableController struct {
	service *services.TableService
}

func NewTableController(service *services.TableService) *TableController {
	return &TableController{service: service}
}

// GET /api/tables
func (tc *TableController) List(c *gin.Context) {
	tables, err := tc.service.ListAll()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", tables)
}

// GET /api/tables/available
func (tc *TableController) ListAvailable(c *gin.Context) {
	tables, err := tc.service.ListAvailable()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", tables)
}

// GET /api/tables/:id
func (tc *TableController) GetByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	table, err := tc.service.GetByID(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", table)
}

// POST /api/tables
func (tc *TableController) Create(c *gin.Context) {
	var req services.TableIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	table, err := tc.service.Create(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Table created successfully", table)
}

// PUT /api/tables/:id
func (tc *TableController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.TableIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	table, err := tc.service.Update(id, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Table updated successfully", table)
}

// DELETE /api/tables/:id
func (tc *TableController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := tc.service.Delete(id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Table deleted successfully", true)
}
