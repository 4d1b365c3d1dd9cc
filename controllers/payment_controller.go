package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/payment"
	"storefront/services"
)

type PaymentController struct {
	gateway  payment.Gateway
	checkout *services.CheckoutService
}

func NewPaymentController(gateway payment.Gateway, checkout *services.CheckoutService) *PaymentController {
	return &PaymentController{
		gateway:  gateway,
		checkout: checkout,
	}
}

// @Summary Get payment client token
// @Description Generate a client-side token for initializing the payment form
// @Tags Payment
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 502 {object} interface{}
// @Router /payment/token [get]
func (ctrl *PaymentController) GetToken(c *gin.Context) {
	token, err := ctrl.gateway.GenerateClientToken(c.Request.Context())
	if err != nil {
		var gatewayErr *payment.GatewayError
		if errors.As(err, &gatewayErr) {
			c.JSON(http.StatusBadGateway, gatewayErr.Payload)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientToken": token})
}

// @Summary Process payment
// @Description Verify the cart against the catalog, charge the nonce, and record the order
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ProcessPaymentRequest true "Payment nonce and cart"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} interface{}
// @Router /payment/process [post]
func (ctrl *PaymentController) ProcessPayment(c *gin.Context) {
	var req models.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	buyer := &models.User{
		ID:    c.GetInt("user_id"),
		Email: c.GetString("user_email"),
	}

	_, err := ctrl.checkout.Checkout(c.Request.Context(), buyer, req.Nonce, req.Cart)
	if err != nil {
		if services.IsCartError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		var gatewayErr *payment.GatewayError
		if errors.As(err, &gatewayErr) {
			c.JSON(http.StatusBadGateway, gatewayErr.Payload)
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to process payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
