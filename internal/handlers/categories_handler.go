package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imrishuroy/go-commerce-api/internal/apperr"
	"github.com/imrishuroy/go-commerce-api/internal/categories"
	"github.com/imrishuroy/go-commerce-api/internal/validation"
)

func (a *API) createCategory(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	existing, err := a.categories.GetByName(ctx, req.Name)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category already exists"})
		return
	}

	category := categories.Category{CategoryID: uuid.NewString(), Name: req.Name}
	if err := a.categories.Put(ctx, category); err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (a *API) listCategories(c *gin.Context) {
	all, err := a.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, all)
}

func (a *API) updateCategory(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req validation.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	existing, err := a.categories.GetByName(ctx, req.Name)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if existing != nil && existing.CategoryID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category already exists"})
		return
	}

	category, err := a.categories.Get(ctx, id)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	category.Name = req.Name
	if err := a.categories.Put(ctx, *category); err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, category)
}

func (a *API) deleteCategory(c *gin.Context) {
	found, err := a.categories.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
