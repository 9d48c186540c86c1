package products

import (
	"context"
	"errors"
	"strconv"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a minimal in-memory stand-in for the products table keyed by
// product_id. It understands just the expressions this package's Store emits.
type mockDynamo struct {
	mu    sync.Mutex
	table map[string]map[string]types.AttributeValue

	lastScan *dyn.ScanInput
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{table: map[string]map[string]types.AttributeValue{}}
}

func (m *mockDynamo) key(item map[string]types.AttributeValue) (string, error) {
	attr, ok := item["product_id"].(*types.AttributeValueMemberS)
	if !ok {
		return "", errors.New("missing product_id")
	}
	return attr.Value, nil
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, err := m.key(params.Item)
	if err != nil {
		return nil, err
	}
	m.table[k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, err := m.key(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.table[k]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, err := m.key(params.Key)
	if err != nil {
		return nil, err
	}
	old := m.table[k]
	delete(m.table, k)
	return &dyn.DeleteItemOutput{Attributes: old}, nil
}

// UpdateItem supports the stock adjustment expressions:
//
//	SET stock = stock - :q  (ConditionExpression "stock >= :q")
//	SET stock = stock + :q
func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, err := m.key(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.table[k]
	if !ok {
		return nil, errors.New("item not found")
	}

	q, err := numValue(params.ExpressionAttributeValues[":q"])
	if err != nil {
		return nil, err
	}
	stock, err := numValue(item["stock"])
	if err != nil {
		return nil, err
	}

	expr := ""
	if params.UpdateExpression != nil {
		expr = *params.UpdateExpression
	}
	switch {
	case params.ConditionExpression != nil && *params.ConditionExpression == "stock >= :q":
		if stock < q {
			return nil, &types.ConditionalCheckFailedException{}
		}
		stock -= q
	case expr == "SET stock = stock + :q, updated_at = :ua":
		stock += q
	default:
		return nil, errors.New("unsupported update expression: " + expr)
	}

	item["stock"] = &types.AttributeValueMemberN{Value: strconv.Itoa(stock)}
	if v, ok := params.ExpressionAttributeValues[":ua"]; ok {
		item["updated_at"] = v
	}
	m.table[k] = item
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}

// Scan returns every item; filter expressions are asserted through lastScan
// rather than evaluated.
func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastScan = params
	items := make([]map[string]types.AttributeValue, 0, len(m.table))
	for _, it := range m.table {
		items = append(items, it)
	}
	return &dyn.ScanOutput{Items: items}, nil
}

func (m *mockDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	return nil, errors.New("query not supported by products mock")
}

func numValue(av types.AttributeValue) (int, error) {
	n, ok := av.(*types.AttributeValueMemberN)
	if !ok {
		return 0, errors.New("expected number attribute")
	}
	return strconv.Atoi(n.Value)
}
