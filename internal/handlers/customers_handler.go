package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imrishuroy/go-commerce-api/internal/apperr"
	"github.com/imrishuroy/go-commerce-api/internal/users"
	"github.com/imrishuroy/go-commerce-api/internal/validation"
)

func (a *API) listCustomers(c *gin.Context) {
	list, err := a.users.List(c.Request.Context())
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) getCustomer(c *gin.Context) {
	customer, err := a.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if customer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (a *API) editCustomer(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req validation.CustomerEditRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Mobile == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, and mobile are required"})
		return
	}

	existing, err := a.users.GetByEmail(ctx, req.Email)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if existing != nil && existing.UserID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already in use by another customer"})
		return
	}

	existing, err = a.users.GetByMobile(ctx, req.Mobile)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if existing != nil && existing.UserID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mobile number is already in use by another customer"})
		return
	}

	customer, err := a.users.Get(ctx, id)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if customer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Mobile = req.Mobile
	if err := a.users.Put(ctx, *customer); err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (a *API) deleteCustomer(c *gin.Context) {
	found, err := a.users.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

func (a *API) addAddress(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	customer, err := a.users.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if customer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	address := addressFromRequest(req)
	address.AddressID = uuid.NewString()
	customer.Addresses = append(customer.Addresses, address)

	if err := a.users.Put(ctx, *customer); err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (a *API) updateAddress(c *gin.Context) {
	ctx := c.Request.Context()
	addressID := c.Param("addressId")

	var req validation.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	customer, err := a.users.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if customer == nil || customer.AddressByID(addressID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer or address not found"})
		return
	}

	address := addressFromRequest(req)
	address.AddressID = addressID
	for i := range customer.Addresses {
		if customer.Addresses[i].AddressID == addressID {
			customer.Addresses[i] = address
			break
		}
	}

	if err := a.users.Put(ctx, *customer); err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (a *API) deleteAddress(c *gin.Context) {
	ctx := c.Request.Context()
	addressID := c.Param("addressId")

	customer, err := a.users.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if customer == nil || customer.AddressByID(addressID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer or address not found"})
		return
	}

	kept := customer.Addresses[:0]
	for _, addr := range customer.Addresses {
		if addr.AddressID != addressID {
			kept = append(kept, addr)
		}
	}
	customer.Addresses = kept

	if err := a.users.Put(ctx, *customer); err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, customer)
}

func addressFromRequest(req validation.AddressRequest) users.Address {
	country := req.Country
	if country == "" {
		country = "India"
	}
	label := req.Label
	if label == "" {
		label = "Home"
	}
	return users.Address{
		Label:     label,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		Pincode:   req.Pincode,
		Country:   country,
		Landmark:  req.Landmark,
		Mobile:    req.Mobile,
		IsDefault: req.IsDefault,
		Location:  users.Location{Lat: req.Location.Lat, Lng: req.Location.Lng},
	}
}
