package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-commerce-api/internal/apperr"
	"github.com/imrishuroy/go-commerce-api/internal/auth"
	"github.com/imrishuroy/go-commerce-api/internal/orders"
	"github.com/imrishuroy/go-commerce-api/internal/validation"
)

func (a *API) placeOrder(c *gin.Context) {
	ctx := c.Request.Context()
	user := auth.CurrentUser(c)

	var req validation.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.AddressID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address is required"})
		return
	}

	order, err := a.checkout.PlaceOrder(ctx, user.UserID, req.AddressID, req.PaymentMode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

func (a *API) listOwnOrders(c *gin.Context) {
	ctx := c.Request.Context()
	user := auth.CurrentUser(c)

	page := queryIntOr(c, "page", 1)
	limit := queryIntOr(c, "limit", 24)

	list, err := a.orders.ListByUser(ctx, user.UserID, page, limit)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if err := a.resolveItemNames(c, list); err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) getOwnOrder(c *gin.Context) {
	ctx := c.Request.Context()
	user := auth.CurrentUser(c)

	order, err := a.orders.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if order == nil || order.UserID != user.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	list := []orders.Order{*order}
	if err := a.resolveItemNames(c, list); err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, list[0])
}

func (a *API) updateOrderStatus(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !orders.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	order, err := a.orders.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := a.orders.UpdateStatus(ctx, order.OrderID, req.Status); err != nil {
		// the order can vanish between the Get above and the update
		if err == orders.ErrOrderNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		respondError(c, apperr.Internal(err))
		return
	}
	order.Status = req.Status

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}

func (a *API) cancelOrder(c *gin.Context) {
	ctx := c.Request.Context()
	user := auth.CurrentUser(c)

	order, err := a.orders.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if order == nil || order.UserID != user.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := a.orders.Cancel(ctx, order.OrderID); err != nil {
		switch err {
		case orders.ErrAlreadyCancelled:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is already cancelled"})
		case orders.ErrOrderNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			respondError(c, apperr.Internal(err))
		}
		return
	}
	order.Status = orders.StatusCancelled

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": order})
}

func (a *API) listOrdersByUser(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := a.orders.ListByUser(ctx, c.Param("userId"), 1, 0)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if len(list) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No orders found for this user"})
		return
	}
	if err := a.resolveItemNames(c, list); err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) listAllOrders(c *gin.Context) {
	ctx := c.Request.Context()

	page := queryIntOr(c, "page", 1)
	limit := queryIntOr(c, "limit", 24)
	status := c.Query("status")

	list, total, err := a.orders.ListAll(ctx, page, limit, status)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	totalPages := (total + limit - 1) / limit

	if err := a.resolveItemNames(c, list); err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list, "totalPages": totalPages})
}

// resolveItemNames fills each item's display name from the catalog, fetching
// every referenced product at most once. Deleted products read as
// "Unknown Product" rather than failing the listing.
func (a *API) resolveItemNames(c *gin.Context, list []orders.Order) error {
	ctx := c.Request.Context()
	names := map[string]string{}
	for i := range list {
		for j := range list[i].Items {
			id := list[i].Items[j].ProductID
			name, ok := names[id]
			if !ok {
				product, err := a.products.Get(ctx, id)
				if err != nil {
					return err
				}
				name = "Unknown Product"
				if product != nil {
					name = product.Name
				}
				names[id] = name
			}
			list[i].Items[j].ProductName = name
		}
	}
	return nil
}
