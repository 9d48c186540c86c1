package validation

// SignupRequest is the payload for POST /signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Mobile   string `json:"mobile" validate:"required,len=10,numeric"` // 10 digit mobile
	UserType string `json:"userType" validate:"omitempty,oneof=admin user"`
}

// SigninRequest is the payload for POST /signin.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PlaceOrderRequest is the payload for POST /orders. PaymentMode defaults to
// Cash on Delivery downstream when omitted.
type PlaceOrderRequest struct {
	AddressID   string `json:"addressId"`
	PaymentMode string `json:"paymentMode"`
}

// UpdateOrderStatusRequest is the payload for PUT /orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Processing Shipped Delivered Cancelled"`
}

// CartItemRequest is the payload for cart add/update operations.
type CartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CreateProductRequest is the payload for POST /create-product.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Image       string  `json:"image"`
}

// UpdateProductRequest carries partial product updates; nil fields are untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Image       *string  `json:"image"`
}

// CategoryRequest is the payload for category create/update.
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CustomerEditRequest is the payload for PUT /customers/edit/:id.
type CustomerEditRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Mobile string `json:"mobile" validate:"required,len=10,numeric"`
}

// AddressLocation is an optional geo point on an address payload.
type AddressLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AddressRequest is the free-form address payload for the address sub-resource.
type AddressRequest struct {
	Label     string          `json:"label"`
	Street    string          `json:"street"`
	City      string          `json:"city"`
	State     string          `json:"state"`
	Pincode   string          `json:"pincode"`
	Country   string          `json:"country"`
	Landmark  string          `json:"landmark"`
	Mobile    string          `json:"mobile"`
	IsDefault bool            `json:"isDefault"`
	Location  AddressLocation `json:"location"`
}
