package main

import (
	"context"
	"os"

	"github.com/DrigerKhanh/go-ecommerce-api/internal/auth"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/cart"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/config"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/db"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/item"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/logger"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/order"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/user"

	_ "github.com/DrigerKhanh/go-ecommerce-api/docs"
)

// @title           E-Commerce API
// @version         1.0
// @description     User registration, item catalog, shopping cart and order submission.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "ecommerce-api",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(pool); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	userRepo := user.NewPGRepo(pool)
	itemRepo := item.NewPGRepo(pool)
	cartRepo := cart.NewPGRepo(pool)
	orderRepo := order.NewPGRepo(pool)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	r := newRouter(deps{
		users:  user.NewService(userRepo, cartRepo),
		items:  itemRepo,
		carts:  cart.NewService(userRepo, itemRepo, cartRepo),
		orders: order.NewService(userRepo, cartRepo, orderRepo),
		login:  auth.NewService(userRepo, tokens),
		verify: tokens,
	})

	log.Info("listening", "addr", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
