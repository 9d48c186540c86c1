package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imrishuroy/go-commerce-api/internal/apperr"
	"github.com/imrishuroy/go-commerce-api/internal/products"
	"github.com/imrishuroy/go-commerce-api/internal/validation"
)

func (a *API) createProduct(c *gin.Context) {
	var req validation.CreateProductRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	product := products.Product{
		ProductID:   uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
	}
	if err := a.products.Put(c.Request.Context(), product); err != nil {
		respondError(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
}

func (a *API) listProducts(c *gin.Context) {
	filter := products.ListFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
		MinPrice: queryFloat(c, "minPrice"),
		MaxPrice: queryFloat(c, "maxPrice"),
		MinStock: queryInt(c, "minStock"),
		MaxStock: queryInt(c, "maxStock"),
		SortBy:   c.Query("sortBy"),
		Order:    c.Query("order"),
		Page:     queryIntOr(c, "page", 1),
		Limit:    queryIntOr(c, "limit", 24),
	}

	page, total, err := a.products.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": page, "totalProducts": total})
}

func (a *API) listCustomerProducts(c *gin.Context) {
	filter := products.ListFilter{
		Category: c.Query("category"),
		MinPrice: queryFloat(c, "minPrice"),
		MaxPrice: queryFloat(c, "maxPrice"),
		Page:     queryIntOr(c, "page", 1),
		Limit:    queryIntOr(c, "limit", 24),
	}

	page, total, err := a.products.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": page, "totalProducts": total})
}

// searchCustomerProducts is the storefront search box: case-insensitive name
// match only, no category/price narrowing.
func (a *API) searchCustomerProducts(c *gin.Context) {
	filter := products.ListFilter{
		Name:  c.Query("searchTerm"),
		Page:  queryIntOr(c, "page", 1),
		Limit: queryIntOr(c, "limit", 24),
	}

	page, total, err := a.products.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": page, "totalProducts": total})
}

func (a *API) getProduct(c *gin.Context) {
	product, err := a.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (a *API) updateProduct(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.UpdateProductRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	product, err := a.products.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Image != nil {
		product.Image = *req.Image
	}

	if err := a.products.Put(ctx, *product); err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

func (a *API) deleteProduct(c *gin.Context) {
	found, err := a.products.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func queryFloat(c *gin.Context, key string) *float64 {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func queryInt(c *gin.Context, key string) *int {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func queryIntOr(c *gin.Context, key string, fallback int) int {
	if p := queryInt(c, key); p != nil && *p > 0 {
		return *p
	}
	return fallback
}
