package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DrigerKhanh/go-ecommerce-api/internal/item"
)

// listItemsHandler godoc
// @Summary  List the item catalog
// @Tags     items
// @Produce  json
// @Success  200 {array} item.Item
// @Security BearerAuth
// @Router   /items [get]
func listItemsHandler(repo item.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list items failed"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// getItemHandler godoc
// @Summary  Find an item by id
// @Tags     items
// @Produce  json
// @Param    id path string true "item id"
// @Success  200 {object} item.Item
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /items/{id} [get]
func getItemHandler(repo item.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		it, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusOK, it)
	}
}

// searchItemsHandler godoc
// @Summary  Find items by name
// @Tags     items
// @Produce  json
// @Param    name path string true "name substring, case-insensitive"
// @Success  200 {array} item.Item
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /items/name/{name} [get]
func searchItemsHandler(repo item.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.SearchByName(c.Request.Context(), c.Param("name"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search items failed"})
			return
		}
		if len(items) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "no items match"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
