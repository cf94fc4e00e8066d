// controllers/order.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"barbershop-backend/services"
	"barbershop-backend/utils"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

type CreateOrderInput struct {
	ClientName    string     `json:"client_name" binding:"required"`
	Phone         string     `json:"phone" binding:"required"`
	Comment       string     `json:"comment"`
	MasterID      *uint      `json:"master_id"`
	ServiceIDs    []uint     `json:"service_ids"`
	AppointmentAt *time.Time `json:"appointment_at"`
}

type AddOrderServicesInput struct {
	ServiceIDs []uint `json:"service_ids" binding:"required"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder is the public booking form submission
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := ctl.orders.SubmitOrder(c.Request.Context(), services.OrderInput{
		ClientName:    input.ClientName,
		Phone:         input.Phone,
		Comment:       input.Comment,
		MasterID:      input.MasterID,
		ServiceIDs:    input.ServiceIDs,
		AppointmentAt: input.AppointmentAt,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":    order,
		"message":  "Ваша запись успешно создана, " + order.ClientName + "! Мы свяжемся с вами для подтверждения!",
		"redirect": "/thanks/order",
	})
}

// GetOrders is the staff listing with multi-field search
func (ctl *OrderController) GetOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	orders, total, err := ctl.orders.ListOrders(services.OrderSearchParams{
		Search:   c.Query("search"),
		SearchIn: c.QueryArray("search_in"),
		Page:     page,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":    orders,
		"total":     total,
		"page":      page,
		"page_size": services.OrdersPageSize,
	})
}

// GetOrder is the staff detail view
func (ctl *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := ctl.orders.GetOrder(id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// AddOrderServices attaches more services to an existing order
func (ctl *OrderController) AddOrderServices(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input AddOrderServicesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := ctl.orders.AddServices(id, input.ServiceIDs)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus advances an order through its lifecycle
func (ctl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := ctl.orders.UpdateStatus(id, input.Status)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
