package orders

import (
	"context"
	"errors"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a minimal in-memory stand-in for the orders table keyed by
// order_id, with a naive user-index Query and status filtering on Scan.
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
	k := strValue(params.Item["order_id"])
	if k == "" {
		return nil, errors.New("missing order_id")
	}
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(order_id)" {
		if _, ok := m.table[k]; ok {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.table[k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.table[strValue(params.Key["order_id"])]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

// Query only supports the user-index lookup "user_id = :uid".
func (m *mockDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if params.IndexName == nil || *params.IndexName != UserIndex {
		return nil, errors.New("unsupported index")
	}
	uid := strValue(params.ExpressionAttributeValues[":uid"])
	var items []map[string]types.AttributeValue
	for _, it := range m.table {
		if strValue(it["user_id"]) == uid {
			items = append(items, it)
		}
	}
	return &dyn.QueryOutput{Items: items}, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := ""
	if params.FilterExpression != nil {
		status = strValue(params.ExpressionAttributeValues[":status"])
	}
	var items []map[string]types.AttributeValue
	for _, it := range m.table {
		if status != "" && strValue(it["status"]) != status {
			continue
		}
		items = append(items, it)
	}
	return &dyn.ScanOutput{Items: items}, nil
}

// UpdateItem supports the status set, with the attribute_exists and
// not-already-cancelled guards.
func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cond := ""
	if params.ConditionExpression != nil {
		cond = *params.ConditionExpression
	}
	item, ok := m.table[strValue(params.Key["order_id"])]
	if !ok {
		if strings.Contains(cond, "attribute_exists(order_id)") {
			return nil, &types.ConditionalCheckFailedException{}
		}
		return nil, errors.New("item not found")
	}
	if strings.Contains(cond, "#s <> :cancelled") {
		if strValue(item["status"]) == strValue(params.ExpressionAttributeValues[":cancelled"]) {
			failed := &types.ConditionalCheckFailedException{}
			if params.ReturnValuesOnConditionCheckFailure == types.ReturnValuesOnConditionCheckFailureAllOld {
				failed.Item = item
			}
			return nil, failed
		}
		item["status"] = params.ExpressionAttributeValues[":cancelled"]
	} else if v, ok := params.ExpressionAttributeValues[":new"]; ok {
		item["status"] = v
	}
	if v, ok := params.ExpressionAttributeValues[":ua"]; ok {
		item["updated_at"] = v
	}
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	return nil, errors.New("delete not supported by orders mock")
}
