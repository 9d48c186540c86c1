package products

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/imrishuroy/go-commerce-api/internal/aws"
)

// ErrInsufficientStock indicates a conditional decrement lost to the available
// stock check. The product's persisted stock is untouched when this is returned.
var ErrInsufficientStock = errors.New("insufficient stock")

// Store encapsulates operations on the products table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new products Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Put writes a product record, overwriting any previous version.
func (s *Store) Put(ctx context.Context, p Product) error {
	now := s.nowFunc()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put product: %w", err)
	}
	return nil
}

// Get fetches a product by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, productID string) (*Product, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var p Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}
	return &p, nil
}

// Delete removes a product. Returns false if no such product existed.
func (s *Store) Delete(ctx context.Context, productID string) (bool, error) {
	out, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return len(out.Attributes) > 0, nil
}

// DecrementStock atomically decrements stock by quantity iff enough stock is
// available. Returns ErrInsufficientStock when the condition fails, leaving
// the persisted stock unchanged. Stock can never go negative through this path.
func (s *Store) DecrementStock(ctx context.Context, productID string, quantity int) error {
	now := s.nowFunc()
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
		UpdateExpression:    awsString("SET stock = stock - :q, updated_at = :ua"),
		ConditionExpression: awsString("stock >= :q"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":q":  &types.AttributeValueMemberN{Value: strconv.Itoa(quantity)},
			":ua": &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		},
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return ErrInsufficientStock
		}
		return fmt.Errorf("decrement stock: %w", err)
	}
	return nil
}

// IncrementStock adds quantity back to a product's stock. Used as the
// compensating action when a placement fails after earlier decrements.
func (s *Store) IncrementStock(ctx context.Context, productID string, quantity int) error {
	now := s.nowFunc()
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
		UpdateExpression: awsString("SET stock = stock + :q, updated_at = :ua"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":q":  &types.AttributeValueMemberN{Value: strconv.Itoa(quantity)},
			":ua": &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		},
	})
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	return nil
}

// List scans products matching the filter, applies name matching and ordering
// in-process, and returns one page plus the total match count.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Product, int, error) {
	input := &dyn.ScanInput{TableName: &s.tableName}

	var exprs []string
	values := map[string]types.AttributeValue{}

	if filter.Category != "" {
		exprs = append(exprs, "category = :cat")
		values[":cat"] = &types.AttributeValueMemberS{Value: filter.Category}
	}
	if filter.MinPrice != nil {
		exprs = append(exprs, "price >= :minp")
		values[":minp"] = &types.AttributeValueMemberN{Value: formatFloat(*filter.MinPrice)}
	}
	if filter.MaxPrice != nil {
		exprs = append(exprs, "price <= :maxp")
		values[":maxp"] = &types.AttributeValueMemberN{Value: formatFloat(*filter.MaxPrice)}
	}
	if filter.MinStock != nil {
		exprs = append(exprs, "stock >= :mins")
		values[":mins"] = &types.AttributeValueMemberN{Value: strconv.Itoa(*filter.MinStock)}
	}
	if filter.MaxStock != nil {
		exprs = append(exprs, "stock <= :maxs")
		values[":maxs"] = &types.AttributeValueMemberN{Value: strconv.Itoa(*filter.MaxStock)}
	}
	if len(exprs) > 0 {
		expr := strings.Join(exprs, " AND ")
		input.FilterExpression = &expr
		input.ExpressionAttributeValues = values
	}

	out, err := s.client.Scan(ctx, input)
	if err != nil {
		return nil, 0, fmt.Errorf("scan products: %w", err)
	}

	var all []Product
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &all); err != nil {
		return nil, 0, fmt.Errorf("unmarshal products: %w", err)
	}

	// Case-insensitive name matching is done in-process; DynamoDB contains()
	// is case-sensitive.
	if filter.Name != "" {
		needle := strings.ToLower(filter.Name)
		matched := all[:0]
		for _, p := range all {
			if strings.Contains(strings.ToLower(p.Name), needle) {
				matched = append(matched, p)
			}
		}
		all = matched
	}

	sortProducts(all, filter.SortBy, filter.Order)

	total := len(all)
	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 24
	}
	start := (page - 1) * limit
	if start >= total {
		return []Product{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func sortProducts(ps []Product, sortBy, order string) {
	if sortBy == "" {
		return
	}
	desc := order == "desc"
	sort.SliceStable(ps, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "price":
			less = ps[i].Price < ps[j].Price
		case "stock":
			less = ps[i].Stock < ps[j].Stock
		default:
			less = ps[i].Name < ps[j].Name
		}
		if desc {
			return !less
		}
		return less
	})
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func awsString(s string) *string { return &s }
