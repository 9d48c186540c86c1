package orders

import (
	"time"

	"github.com/imrishuroy/go-commerce-api/internal/users"
)

// Order statuses. Cancelled is terminal; admin updates may set any value,
// user cancellation only checks the order is not already Cancelled.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// Payment modes and statuses.
const (
	PaymentCashOnDelivery = "Cash on Delivery"
	PaymentOnline         = "Online"

	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
)

// ValidStatus reports whether s is one of the five recognized statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Item snapshots a line at placement time. Price is the price at the time of
// order, never live-joined. ProductName is resolved at read time for responses
// and is not persisted.
type Item struct {
	ProductID   string  `dynamodbav:"product_id" json:"productId"`
	Quantity    int     `dynamodbav:"quantity" json:"quantity"`
	Price       float64 `dynamodbav:"price" json:"price"`
	ProductName string  `dynamodbav:"-" json:"productName,omitempty"`
}

// Order is the item stored in the orders table. TotalAmount is the grand
// total: item subtotal plus delivery and handling charges.
type Order struct {
	OrderID        string        `dynamodbav:"order_id" json:"orderId"` // PK
	UserID         string        `dynamodbav:"user_id" json:"userId"`
	Items          []Item        `dynamodbav:"items" json:"items"`
	TotalAmount    float64       `dynamodbav:"total_amount" json:"totalAmount"`
	DeliveryCharge float64       `dynamodbav:"delivery_charge" json:"deliveryCharge"`
	HandlingCharge float64       `dynamodbav:"handling_charge" json:"handlingCharge"`
	Status         string        `dynamodbav:"status" json:"status"`
	Address        users.Address `dynamodbav:"address" json:"address"` // deep copy at placement
	PaymentMode    string        `dynamodbav:"payment_mode" json:"paymentMode"`
	PaymentStatus  string        `dynamodbav:"payment_status" json:"paymentStatus"`
	CreatedAt      time.Time     `dynamodbav:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `dynamodbav:"updated_at" json:"updatedAt"`
}

// Total is a (creation time, grand total) pair consumed by sales analytics.
type Total struct {
	CreatedAt time.Time
	Amount    float64
}
