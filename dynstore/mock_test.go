package dynstore_test

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/mock"

	"github.com/autocrm/leads-api/dynstore"
)

// MockDynamoDB is a testify mock over the SDK-level client interface.
type MockDynamoDB struct {
	mock.Mock
}

func (m *MockDynamoDB) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.GetItemOutput), args.Error(1)
}

func (m *MockDynamoDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.PutItemOutput), args.Error(1)
}

func (m *MockDynamoDB) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.DeleteItemOutput), args.Error(1)
}

func (m *MockDynamoDB) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.BatchWriteItemOutput), args.Error(1)
}

func (m *MockDynamoDB) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.QueryOutput), args.Error(1)
}

func (m *MockDynamoDB) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.ScanOutput), args.Error(1)
}

// TestItem is a minimal record for store tests.
type TestItem struct {
	ID    string `dynamodbav:"id"`
	Name  string `dynamodbav:"name"`
	Email string `dynamodbav:"email"`
}

// TestEvent mirrors the composite-key shape used by the event collection.
type TestEvent struct {
	EventID   string `dynamodbav:"event_id"`
	SessionID string `dynamodbav:"session_id"`
	Timestamp string `dynamodbav:"timestamp"`
}

func createTestStore(client *MockDynamoDB) dynstore.Store[TestItem] {
	cfg := dynstore.TableConfig{
		TableName: "test-table",
		HashKey:   "id",
		Indexes: map[string]dynstore.IndexKey{
			"email-index": {HashKey: "email"},
		},
	}
	return dynstore.New[TestItem](client, cfg)
}

func createTestEventStore(client *MockDynamoDB) dynstore.Store[TestEvent] {
	cfg := dynstore.TableConfig{
		TableName: "test-events",
		HashKey:   "event_id",
		SortKey:   "session_id",
		Indexes: map[string]dynstore.IndexKey{
			"session_id-index": {HashKey: "session_id"},
			"type-ts-index":    {HashKey: "event_type", SortKey: "timestamp"},
		},
	}
	return dynstore.New[TestEvent](client, cfg)
}
