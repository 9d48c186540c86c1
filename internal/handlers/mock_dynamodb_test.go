package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/imrishuroy/go-commerce-api/internal/orders"
)

// mockDynamo backs every table the API touches with one in-memory map per
// table, so a single client can be shared across all stores the way the real
// wiring shares one DynamoDB client.
type mockDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
	keys   map[string]string // table -> partition key attribute
}

func newMockDynamo(keys map[string]string) *mockDynamo {
	tables := map[string]map[string]map[string]types.AttributeValue{}
	for table := range keys {
		tables[table] = map[string]map[string]types.AttributeValue{}
	}
	return &mockDynamo{tables: tables, keys: keys}
}

func strValue(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func numValue(av types.AttributeValue) (int, error) {
	n, ok := av.(*types.AttributeValueMemberN)
	if !ok {
		return 0, errors.New("expected number attribute")
	}
	return strconv.Atoi(n.Value)
}

func (m *mockDynamo) tableFor(name *string) (map[string]map[string]types.AttributeValue, string, error) {
	if name == nil {
		return nil, "", errors.New("missing table name")
	}
	t, ok := m.tables[*name]
	if !ok {
		return nil, "", errors.New("unknown table: " + *name)
	}
	return t, m.keys[*name], nil
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table, keyAttr, err := m.tableFor(params.TableName)
	if err != nil {
		return nil, err
	}
	k := strValue(params.Item[keyAttr])
	if k == "" {
		return nil, errors.New("missing " + keyAttr)
	}
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists("+keyAttr+")" {
		if _, ok := table[k]; ok {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	table[k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table, keyAttr, err := m.tableFor(params.TableName)
	if err != nil {
		return nil, err
	}
	item, ok := table[strValue(params.Key[keyAttr])]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table, keyAttr, err := m.tableFor(params.TableName)
	if err != nil {
		return nil, err
	}
	k := strValue(params.Key[keyAttr])
	old := table[k]
	delete(table, k)
	return &dyn.DeleteItemOutput{Attributes: old}, nil
}

// Query serves the GSI lookups: the orders user-index and the users
// email/mobile indexes, both matched by walking the table.
func (m *mockDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table, _, err := m.tableFor(params.TableName)
	if err != nil {
		return nil, err
	}

	attr := ""
	var want string
	if params.IndexName != nil && *params.IndexName == orders.UserIndex {
		attr = "user_id"
		want = strValue(params.ExpressionAttributeValues[":uid"])
	} else if a, ok := params.ExpressionAttributeNames["#k"]; ok {
		attr = a
		want = strValue(params.ExpressionAttributeValues[":v"])
	} else {
		return nil, errors.New("unsupported query")
	}

	var items []map[string]types.AttributeValue
	for _, it := range table {
		if strValue(it[attr]) == want {
			items = append(items, it)
		}
	}
	return &dyn.QueryOutput{Items: items}, nil
}

// Scan returns every item, honoring the orders status filter and the users
// user_type filter.
func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table, _, err := m.tableFor(params.TableName)
	if err != nil {
		return nil, err
	}
	status, userType := "", ""
	if params.FilterExpression != nil {
		status = strValue(params.ExpressionAttributeValues[":status"])
		userType = strValue(params.ExpressionAttributeValues[":t"])
	}
	var items []map[string]types.AttributeValue
	for _, it := range table {
		if status != "" && strValue(it["status"]) != status {
			continue
		}
		if userType != "" && strValue(it["user_type"]) != userType {
			continue
		}
		items = append(items, it)
	}
	return &dyn.ScanOutput{Items: items}, nil
}

// UpdateItem serves the product stock adjustments and the order status
// updates, including their condition expressions.
func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table, keyAttr, err := m.tableFor(params.TableName)
	if err != nil {
		return nil, err
	}
	cond := ""
	if params.ConditionExpression != nil {
		cond = *params.ConditionExpression
	}

	item, ok := table[strValue(params.Key[keyAttr])]
	if !ok {
		if strings.Contains(cond, "attribute_exists("+keyAttr+")") {
			return nil, &types.ConditionalCheckFailedException{}
		}
		return nil, errors.New("item not found")
	}

	if q, ok := params.ExpressionAttributeValues[":q"]; ok {
		qty, err := numValue(q)
		if err != nil {
			return nil, err
		}
		stock, err := numValue(item["stock"])
		if err != nil {
			return nil, err
		}
		if cond == "stock >= :q" {
			if stock < qty {
				return nil, &types.ConditionalCheckFailedException{}
			}
			stock -= qty
		} else {
			stock += qty
		}
		item["stock"] = &types.AttributeValueMemberN{Value: strconv.Itoa(stock)}
	}

	if strings.Contains(cond, "#s <> :cancelled") {
		cancelled := params.ExpressionAttributeValues[":cancelled"]
		if strValue(item["status"]) == strValue(cancelled) {
			failed := &types.ConditionalCheckFailedException{}
			if params.ReturnValuesOnConditionCheckFailure == types.ReturnValuesOnConditionCheckFailureAllOld {
				failed.Item = item
			}
			return nil, failed
		}
		item["status"] = cancelled
	} else if v, ok := params.ExpressionAttributeValues[":new"]; ok {
		item["status"] = v
	}

	if v, ok := params.ExpressionAttributeValues[":ua"]; ok {
		item["updated_at"] = v
	}
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}
