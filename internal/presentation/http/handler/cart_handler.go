package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kirekcahs/codebrew-pos/internal/application/service"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/dto/request"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/dto/response"
)

// CartHandler exposes the session cart ledger
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the cart lines and running totals
// @Summary Get cart
// @Tags cart
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	response.OK(c, "Cart retrieved", h.cartService.View(sess))
}

// AddItem adds a product to the cart, merging with an existing line
// @Summary Add cart item
// @Tags cart
// @Accept json
// @Produce json
// @Param request body request.AddItemRequest true "Product and quantity"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	view, err := h.cartService.AddItem(sess, req.ProductID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", view)
}

// AdjustQuantity changes a line's quantity by a signed delta. A line
// driven to zero or below is removed.
// @Summary Adjust cart item quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param product_id path int true "Product ID"
// @Param request body request.AdjustQuantityRequest true "Signed quantity delta"
// @Success 200 {object} response.APIResponse
// @Router /cart/items/{product_id} [patch]
func (h *CartHandler) AdjustQuantity(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view := h.cartService.AdjustQuantity(sess, productID, req.Delta)
	response.OK(c, "Quantity adjusted", view)
}

// RemoveItem removes a line from the cart
// @Summary Remove cart item
// @Tags cart
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} response.APIResponse
// @Router /cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	view := h.cartService.RemoveItem(sess, productID)
	response.OK(c, "Item removed", view)
}

// SetDiscount replaces the cart-level discount
// @Summary Set cart discount
// @Tags cart
// @Accept json
// @Produce json
// @Param request body request.SetDiscountRequest true "Discount amount"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /cart/discount [put]
func (h *CartHandler) SetDiscount(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	var req request.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.cartService.SetDiscount(sess, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount applied", view)
}
