package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/DrigerKhanh/go-ecommerce-api/internal/auth"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/cart"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/httpx"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/item"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/order"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/user"
)

type deps struct {
	users  *user.Service
	items  item.Repository
	carts  *cart.Service
	orders *order.Service
	login  *auth.Service
	verify httpx.TokenVerifier
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// open endpoints: registration and login
	r.POST("/user/create", createUserHandler(d.users))
	r.POST("/login", loginHandler(d.login))

	authed := r.Group("/", httpx.Auth(d.verify))
	authed.GET("/user/id/:id", getUserByIDHandler(d.users))
	authed.GET("/user/:username", getUserByUsernameHandler(d.users))

	authed.GET("/items", listItemsHandler(d.items))
	authed.GET("/items/:id", getItemHandler(d.items))
	authed.GET("/items/name/:name", searchItemsHandler(d.items))

	authed.POST("/cart/addToCart", addToCartHandler(d.carts))
	authed.POST("/cart/removeFromCart", removeFromCartHandler(d.carts))

	authed.POST("/order/submit/:username", submitOrderHandler(d.orders))
	authed.GET("/order/history/:username", orderHistoryHandler(d.orders))

	return r
}
