package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DrigerKhanh/go-ecommerce-api/internal/auth"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/user"
)

// CreateUserRequest registration payload.
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	Username        string `json:"username"        example:"alice"`
	Password        string `json:"password"        example:"secret12"`
	ConfirmPassword string `json:"confirmPassword" example:"secret12"`
}

// LoginRequest credential payload.
// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret12"`
}

// createUserHandler godoc
// @Summary  Register a new user
// @Tags     user
// @Accept   json
// @Produce  json
// @Param    request body CreateUserRequest true "registration"
// @Success  200 {object} user.User
// @Failure  400 {object} map[string]string
// @Router   /user/create [post]
func createUserHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		u, err := svc.Register(c.Request.Context(), req.Username, req.Password, req.ConfirmPassword)
		if err != nil {
			switch {
			case errors.Is(err, user.ErrPasswordTooShort),
				errors.Is(err, user.ErrPasswordMismatch),
				errors.Is(err, user.ErrAlreadyExist):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "create user failed"})
			}
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// loginHandler godoc
// @Summary  Exchange credentials for a bearer token
// @Tags     user
// @Accept   json
// @Produce  json
// @Param    request body LoginRequest true "credentials"
// @Success  200 {object} map[string]string
// @Failure  401 {object} map[string]string
// @Router   /login [post]
func loginHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		token, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.Header("Authorization", "Bearer "+token)
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// getUserByIDHandler godoc
// @Summary  Find a user by id
// @Tags     user
// @Produce  json
// @Param    id path string true "user id"
// @Success  200 {object} user.User
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /user/id/{id} [get]
func getUserByIDHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svc.FindByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// getUserByUsernameHandler godoc
// @Summary  Find a user by username
// @Tags     user
// @Produce  json
// @Param    username path string true "username"
// @Success  200 {object} user.User
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /user/{username} [get]
func getUserByUsernameHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svc.FindByUsername(c.Request.Context(), c.Param("username"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, u)
	}
}
