package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imrishuroy/go-commerce-api/internal/apperr"
	"github.com/imrishuroy/go-commerce-api/internal/auth"
	"github.com/imrishuroy/go-commerce-api/internal/users"
	"github.com/imrishuroy/go-commerce-api/internal/validation"
)

func (a *API) signup(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		if req.Mobile != "" && len(req.Mobile) != 10 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Mobile number should be 10 digit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed"})
		return
	}

	existing, err := a.users.GetByEmail(ctx, req.Email)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
		return
	}

	existing, err = a.users.GetByMobile(ctx, req.Mobile)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Mobile already exists"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}

	userType := req.UserType
	if userType == "" {
		userType = users.TypeUser
	}

	user := users.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		PasswordHash: hash,
		UserType:     userType,
		Addresses:    []users.Address{},
	}
	if err := a.users.Put(ctx, user); err != nil {
		respondError(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Account created successfull"})
}

func (a *API) signin(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	user, err := a.users.GetByEmail(ctx, req.Email)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := a.tokens.Issue(user.UserID, user.UserType)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "message": "Login successfull"})
}
