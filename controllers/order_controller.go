package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/models"
)

type OrderStore interface {
	UpdateStatus(ctx context.Context, id int, status string) (*models.Order, error)
	FindByBuyer(ctx context.Context, buyerID int) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
}

type OrderController struct {
	orders OrderStore
}

func NewOrderController(orders OrderStore) *OrderController {
	return &OrderController{orders: orders}
}

// @Summary Get own orders
// @Description Get the authenticated buyer's orders, newest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Order
// @Router /orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	buyerID := c.GetInt("user_id")

	orders, err := ctrl.orders.FindByBuyer(c.Request.Context(), buyerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to retrieve orders",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// @Summary Get all orders
// @Description Get all orders, newest first (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Order
// @Router /admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := ctrl.orders.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to retrieve orders",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// @Summary Update order status
// @Description Set an order's status (Admin). Returns the updated order, or null if the id does not resolve.
// @Tags Admin - Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param orderId path int true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Order
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/orders/{orderId}/status [put]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status is required"})
		return
	}

	// The status string is written as-is; the only validation is the
	// persistence schema's enum constraint.
	order, err := ctrl.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update order status",
			"error":   err.Error(),
		})
		return
	}

	// A missing order renders as null, not as an error.
	c.JSON(http.StatusOK, order)
}
