package dynstore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBClient abstracts the subset of the SDK client the store uses.
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// IndexKey describes the key schema of a global secondary index.
type IndexKey struct {
	HashKey string
	SortKey string // optional
}

// TableConfig describes one record collection: its primary key and the
// secondary indexes queries are allowed to target.
type TableConfig struct {
	TableName string
	HashKey   string
	SortKey   string // optional
	Indexes   map[string]IndexKey
}

// Store is the uniform read/write surface over a single collection.
type Store[T any] interface {
	Get(ctx context.Context, hashKey, sortKey any) (*T, error)
	Put(ctx context.Context, item T) error
	Delete(ctx context.Context, hashKey, sortKey any) error
	BatchDelete(ctx context.Context, keys [][2]any) error

	Query() *QueryBuilder[T]
	Scan() *QueryBuilder[T]
}
