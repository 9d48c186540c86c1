package carts

// Item is a (product, quantity) line within a cart.
type Item struct {
	ProductID string `dynamodbav:"product_id" json:"productId"`
	Quantity  int    `dynamodbav:"quantity" json:"quantity"`
}

// Cart is the item stored in the carts table, one per user.
type Cart struct {
	UserID string `dynamodbav:"user_id" json:"userId"` // PK
	Items  []Item `dynamodbav:"items" json:"items"`
}
