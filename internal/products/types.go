package products

import "time"

// Product is the item stored in the products table.
type Product struct {
	ProductID   string    `dynamodbav:"product_id" json:"id"` // PK
	Name        string    `dynamodbav:"name" json:"name"`
	Category    string    `dynamodbav:"category" json:"category"`
	Description string    `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Price       float64   `dynamodbav:"price" json:"price"`
	Stock       int       `dynamodbav:"stock" json:"stock"`
	Image       string    `dynamodbav:"image,omitempty" json:"image,omitempty"`
	CreatedAt   time.Time `dynamodbav:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `dynamodbav:"updated_at" json:"updatedAt"`
}

// ListFilter narrows and orders a product listing.
type ListFilter struct {
	Name     string // case-insensitive substring match
	Category string
	MinPrice *float64
	MaxPrice *float64
	MinStock *int
	MaxStock *int
	SortBy   string // name | price | stock
	Order    string // asc | desc
	Page     int
	Limit    int
}
