package users

import (
	"context"
	"errors"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a minimal in-memory stand-in for the users table keyed by
// user_id. Query walks the whole table, matching the attribute the index
// lookup names.
type mockDynamo struct {
	mu    sync.Mutex
	table map[string]map[string]types.AttributeValue
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{table: map[string]map[string]types.AttributeValue{}}
}

func strValue(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := strValue(params.Item["user_id"])
	if k == "" {
		return nil, errors.New("missing user_id")
	}
	m.table[k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.table[strValue(params.Key["user_id"])]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	attr, ok := params.ExpressionAttributeNames["#k"]
	if !ok {
		return nil, errors.New("unsupported query")
	}
	want := strValue(params.ExpressionAttributeValues[":v"])
	var items []map[string]types.AttributeValue
	for _, it := range m.table {
		if strValue(it[attr]) == want {
			items = append(items, it)
		}
	}
	return &dyn.QueryOutput{Items: items}, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := strValue(params.Key["user_id"])
	old := m.table[k]
	delete(m.table, k)
	return &dyn.DeleteItemOutput{Attributes: old}, nil
}

func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	return nil, errors.New("update not supported by users mock")
}

// Scan honors only the user_type filter the customer listing emits.
func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userType := ""
	if params.FilterExpression != nil {
		userType = strValue(params.ExpressionAttributeValues[":t"])
	}
	var items []map[string]types.AttributeValue
	for _, it := range m.table {
		if userType != "" && strValue(it["user_type"]) != userType {
			continue
		}
		items = append(items, it)
	}
	return &dyn.ScanOutput{Items: items}, nil
}
