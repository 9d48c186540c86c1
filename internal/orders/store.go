package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/imrishuroy/go-commerce-api/internal/aws"
)

// UserIndex is the GSI on user_id used for per-user order listings.
const UserIndex = "user-index"

// ErrDuplicateOrderID indicates the generated order id already exists. The id
// carries enough entropy that this is not retried; callers surface a conflict.
var ErrDuplicateOrderID = errors.New("duplicate order id")

// ErrAlreadyCancelled indicates a cancellation hit an order already in the
// Cancelled state.
var ErrAlreadyCancelled = errors.New("order is already cancelled")

// ErrOrderNotFound indicates a status update or cancellation targeted an
// order that does not exist. UpdateItem would otherwise upsert a skeleton
// item for an unknown key.
var ErrOrderNotFound = errors.New("order not found")

// Store encapsulates operations on the orders table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new orders Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Insert persists a new order, guarded against order id reuse.
// Returns ErrDuplicateOrderID when the id already exists.
func (s *Store) Insert(ctx context.Context, order Order) error {
	now := s.nowFunc()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	item, err := attributevalue.MarshalMap(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(order_id)"),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ConditionalCheckFailedException" {
			return ErrDuplicateOrderID
		}
		return fmt.Errorf("put order: %w", err)
	}
	return nil
}

// Get fetches an order by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, orderID string) (*Order, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var o Order
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &o, nil
}

// ListByUser returns one page of a user's orders, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string, page, limit int) ([]Order, error) {
	keyExpr := "user_id = :uid"
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tableName,
		IndexName:              awsString(UserIndex),
		KeyConditionExpression: &keyExpr,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query orders by user: %w", err)
	}

	var all []Order
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &all); err != nil {
		return nil, fmt.Errorf("unmarshal orders: %w", err)
	}
	sortNewestFirst(all)
	return paginate(all, page, limit), nil
}

// ListAll returns one page across all orders, optionally filtered by status,
// newest first, plus the total match count.
func (s *Store) ListAll(ctx context.Context, page, limit int, status string) ([]Order, int, error) {
	input := &dyn.ScanInput{TableName: &s.tableName}
	if status != "" {
		input.FilterExpression = awsString("#s = :status")
		input.ExpressionAttributeNames = map[string]string{"#s": "status"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: status},
		}
	}

	out, err := s.client.Scan(ctx, input)
	if err != nil {
		return nil, 0, fmt.Errorf("scan orders: %w", err)
	}

	var all []Order
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &all); err != nil {
		return nil, 0, fmt.Errorf("unmarshal orders: %w", err)
	}
	sortNewestFirst(all)
	return paginate(all, page, limit), len(all), nil
}

// UpdateStatus sets an order's status directly. Callers validate the value;
// admin transitions are not forced to be forward-only. Guarded with
// attribute_exists so a Get/Update race against a vanished order returns
// ErrOrderNotFound instead of upserting a skeleton item.
func (s *Store) UpdateStatus(ctx context.Context, orderID, status string) error {
	now := s.nowFunc()
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression:         awsString("SET #s = :new, updated_at = :ua"),
		ConditionExpression:      awsString("attribute_exists(order_id)"),
		ExpressionAttributeNames: map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":new": &types.AttributeValueMemberS{Value: status},
			":ua":  &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		},
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// Cancel transitions an order to Cancelled iff it exists and is not already
// there. Returns ErrOrderNotFound for a missing order and ErrAlreadyCancelled
// for one already in the terminal state; the returned old item on condition
// failure tells the two apart.
func (s *Store) Cancel(ctx context.Context, orderID string) error {
	now := s.nowFunc()
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression:                    awsString("SET #s = :cancelled, updated_at = :ua"),
		ConditionExpression:                 awsString("attribute_exists(order_id) AND #s <> :cancelled"),
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
		ExpressionAttributeNames:            map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cancelled": &types.AttributeValueMemberS{Value: StatusCancelled},
			":ua":        &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		},
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			if len(cond.Item) == 0 {
				return ErrOrderNotFound
			}
			return ErrAlreadyCancelled
		}
		return fmt.Errorf("cancel order: %w", err)
	}
	return nil
}

// TotalsBetween returns (createdAt, totalAmount) pairs for orders created in
// [start, end). Time filtering happens in-process so sub-second creation
// times near the boundaries compare correctly.
func (s *Store) TotalsBetween(ctx context.Context, start, end time.Time) ([]Total, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{TableName: &s.tableName})
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}

	var all []Order
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &all); err != nil {
		return nil, fmt.Errorf("unmarshal orders: %w", err)
	}

	totals := make([]Total, 0, len(all))
	for _, o := range all {
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}
		totals = append(totals, Total{CreatedAt: o.CreatedAt, Amount: o.TotalAmount})
	}
	return totals, nil
}

func sortNewestFirst(os []Order) {
	sort.SliceStable(os, func(i, j int) bool { return os[i].CreatedAt.After(os[j].CreatedAt) })
}

func paginate(os []Order, page, limit int) []Order {
	if limit < 1 {
		return os
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(os) {
		return []Order{}
	}
	end := start + limit
	if end > len(os) {
		end = len(os)
	}
	return os[start:end]
}

func awsString(s string) *string { return &s }
