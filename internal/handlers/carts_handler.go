package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-commerce-api/internal/apperr"
	"github.com/imrishuroy/go-commerce-api/internal/auth"
	"github.com/imrishuroy/go-commerce-api/internal/carts"
	"github.com/imrishuroy/go-commerce-api/internal/validation"
)

type cartItemView struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type cartView struct {
	UserID string         `json:"userId"`
	Items  []cartItemView `json:"items"`
}

func (a *API) addToCart(c *gin.Context) {
	ctx := c.Request.Context()
	user := auth.CurrentUser(c)

	var req validation.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID or quantity"})
		return
	}

	product, err := a.products.Get(ctx, req.ProductID)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	cart, err := a.carts.AddItem(ctx, user.UserID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product added to cart", "cart": cart})
}

func (a *API) getCart(c *gin.Context) {
	ctx := c.Request.Context()
	user := auth.CurrentUser(c)

	cart, err := a.carts.Get(ctx, user.UserID)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if cart == nil {
		// empty cart instead of 404
		c.JSON(http.StatusOK, gin.H{"items": []cartItemView{}})
		return
	}

	view, err := a.cartView(c, cart)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, view)
}

func (a *API) updateCart(c *gin.Context) {
	ctx := c.Request.Context()
	user := auth.CurrentUser(c)

	var req validation.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID or quantity"})
		return
	}

	cart, err := a.carts.SetItem(ctx, user.UserID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cart": cart})
}

func (a *API) removeFromCart(c *gin.Context) {
	ctx := c.Request.Context()
	user := auth.CurrentUser(c)

	cart, err := a.carts.RemoveItem(ctx, user.UserID, c.Param("productId"))
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart", "cart": cart})
}

func (a *API) clearCart(c *gin.Context) {
	ctx := c.Request.Context()
	user := auth.CurrentUser(c)

	cart, err := a.carts.Clear(ctx, user.UserID)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if cart == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared", "cart": cart})
}

// cartView resolves each line's product to its display name and current price.
func (a *API) cartView(c *gin.Context, cart *carts.Cart) (*cartView, error) {
	view := &cartView{UserID: cart.UserID, Items: make([]cartItemView, 0, len(cart.Items))}
	for _, it := range cart.Items {
		item := cartItemView{ProductID: it.ProductID, ProductName: "Unknown Product", Quantity: it.Quantity}
		product, err := a.products.Get(c.Request.Context(), it.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			item.ProductName = product.Name
			item.Price = product.Price
		}
		view.Items = append(view.Items, item)
	}
	return view, nil
}
