package carts

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/imrishuroy/go-commerce-api/internal/aws"
)

// Store encapsulates operations on the carts table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a new carts Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
	}
}

// Get fetches the cart for a user. Returns (nil, nil) if the user has no cart.
func (s *Store) Get(ctx context.Context, userID string) (*Cart, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var c Cart
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return &c, nil
}

// Put writes the full cart record, overwriting any previous version.
func (s *Store) Put(ctx context.Context, cart Cart) error {
	if cart.Items == nil {
		cart.Items = []Item{}
	}
	item, err := attributevalue.MarshalMap(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put cart: %w", err)
	}
	return nil
}

// Delete removes the user's cart record entirely.
func (s *Store) Delete(ctx context.Context, userID string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// AddItem merges quantity into an existing line or appends a new one,
// creating the cart on first add.
func (s *Store) AddItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &Cart{UserID: userID, Items: []Item{}}
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, Item{ProductID: productID, Quantity: quantity})
	}

	if err := s.Put(ctx, *cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetItem overwrites the quantity of a line, upserting cart and line as needed.
func (s *Store) SetItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &Cart{UserID: userID, Items: []Item{}}
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, Item{ProductID: productID, Quantity: quantity})
	}

	if err := s.Put(ctx, *cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem filters a product out of the cart. Removing from a missing cart
// is a no-op returning an empty cart.
func (s *Store) RemoveItem(ctx context.Context, userID, productID string) (*Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &Cart{UserID: userID, Items: []Item{}}, nil
	}

	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	cart.Items = kept

	if err := s.Put(ctx, *cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart's items in place, keeping the record. Returns
// (nil, nil) when the user has no cart.
func (s *Store) Clear(ctx context.Context, userID string) (*Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, nil
	}

	cart.Items = []Item{}
	if err := s.Put(ctx, *cart); err != nil {
		return nil, err
	}
	return cart, nil
}
