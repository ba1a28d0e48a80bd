package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DrigerKhanh/go-ecommerce-api/internal/cart"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/item"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/user"
)

// ModifyCartRequest payload for add/remove.
// swagger:model ModifyCartRequest
type ModifyCartRequest struct {
	Username string `json:"username" example:"alice"`
	ItemID   string `json:"itemId"   example:"0c7a3dcd-2a3c-4f3a-9a6e-0f2b8c1d4e01"`
	Quantity int    `json:"quantity" example:"2"`
}

func cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrNotFound), errors.Is(err, item.ErrNotFound), errors.Is(err, cart.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart update failed"})
	}
}

// addToCartHandler godoc
// @Summary  Add a quantity of an item to the user's cart
// @Tags     cart
// @Accept   json
// @Produce  json
// @Param    request body ModifyCartRequest true "cart change"
// @Success  200 {object} cart.Cart
// @Failure  400 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /cart/addToCart [post]
func addToCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ModifyCartRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.ItemID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		out, err := svc.AddItem(c.Request.Context(), req.Username, req.ItemID, req.Quantity)
		if err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// removeFromCartHandler godoc
// @Summary  Remove a quantity of an item from the user's cart
// @Tags     cart
// @Accept   json
// @Produce  json
// @Param    request body ModifyCartRequest true "cart change"
// @Success  200 {object} cart.Cart
// @Failure  400 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /cart/removeFromCart [post]
func removeFromCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ModifyCartRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.ItemID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		out, err := svc.RemoveItem(c.Request.Context(), req.Username, req.ItemID, req.Quantity)
		if err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
