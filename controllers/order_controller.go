package controllers

import (
	"strconv"
	"time"

	"backend/entity"
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// POST /api/orders
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.service.Create(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Order created successfully", order)
}

// GET /api/orders/:id
func (oc *OrderController) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid order id")
		return
	}

	order, err := oc.service.GetByID(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", order)
}

// GET /api/orders?status=&date=&page=&pageSize=
func (oc *OrderController) List(c *gin.Context) {
	var status *entity.OrderStatus
	if s := c.Query("status"); s != "" {
		st := entity.OrderStatus(s)
		status = &st
	}

	var date *time.Time
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			resp.BadRequest(c, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	result, err := oc.service.List(status, date, page, pageSize)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", result)
}

// GET /api/orders/active
func (oc *OrderController) ListActive(c *gin.Context) {
	orders, err := oc.service.ListActive()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", orders)
}

// PATCH /api/orders/:id/status
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.service.UpdateStatus(uint(id), entity.OrderStatus(req.Status))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Order status updated successfully", order)
}

// DELETE /api/orders/:id?reason=
func (oc *OrderController) Cancel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid order id")
		return
	}

	order, err := oc.service.Cancel(uint(id), c.Query("reason"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Order cancelled successfully", order)
}
