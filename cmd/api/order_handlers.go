package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DrigerKhanh/go-ecommerce-api/internal/cart"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/order"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/user"
)

// submitOrderHandler godoc
// @Summary  Snapshot the user's cart into a new order
// @Tags     order
// @Produce  json
// @Param    username path string true "username"
// @Success  200 {object} order.Order
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /order/submit/{username} [post]
func submitOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Submit(c.Request.Context(), c.Param("username"))
		if err != nil {
			orderError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// orderHistoryHandler godoc
// @Summary  List the user's submitted orders, newest first
// @Tags     order
// @Produce  json
// @Param    username path string true "username"
// @Success  200 {array} order.Order
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /order/history/{username} [get]
func orderHistoryHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.History(c.Request.Context(), c.Param("username"))
		if err != nil {
			orderError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func orderError(c *gin.Context, err error) {
	if errors.Is(err, user.ErrNotFound) || errors.Is(err, cart.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "order operation failed"})
}
