package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kirekcahs/codebrew-pos/internal/application/service"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/dto/request"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/dto/response"
)

// CheckoutHandler orchestrates the payment flow
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Begin opens the payment step for a non-empty cart
// @Summary Begin checkout
// @Tags checkout
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /checkout/begin [post]
func (h *CheckoutHandler) Begin(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	if err := h.checkoutService.Begin(sess); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Checkout started", gin.H{
		"state": h.checkoutService.State(sess),
	})
}

// State reports the current checkout phase
// @Summary Checkout state
// @Tags checkout
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /checkout [get]
func (h *CheckoutHandler) State(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	response.OK(c, "Checkout state retrieved", gin.H{
		"state": h.checkoutService.State(sess),
	})
}

// Submit finalizes the sale with the chosen payment method
// @Summary Submit checkout
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body request.CheckoutRequest true "Payment method"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /checkout [post]
func (h *CheckoutHandler) Submit(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receipt, err := h.checkoutService.Submit(c.Request.Context(), sess, req.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed", gin.H{
		"receipt": receipt,
	})
}
