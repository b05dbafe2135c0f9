package dynstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type dynamoStore[T any] struct {
	client DynamoDBClient
	cfg    TableConfig
}

// New creates a reusable store for one collection.
func New[T any](client DynamoDBClient, cfg TableConfig) Store[T] {
	return &dynamoStore[T]{
		client: client,
		cfg:    cfg,
	}
}

// Get fetches one item by primary key. Missing items are ErrNotFound.
func (s *dynamoStore[T]) Get(ctx context.Context, hashKey, sortKey any) (*T, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.cfg.TableName),
		Key:            s.key(hashKey, sortKey),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, classify("get", err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var item T
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("dynstore: unmarshal failed: %w", err)
	}
	return &item, nil
}

// Put writes the full item, overwriting any existing record with the same
// key. Merge semantics are the caller's responsibility (read, merge, Put).
func (s *dynamoStore[T]) Put(ctx context.Context, item T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("dynstore: marshal failed: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.cfg.TableName),
		Item:      av,
	})
	if err != nil {
		return classify("put", err)
	}
	return nil
}

// Delete removes an item by primary key. Deleting a key that does not exist
// is not an error.
func (s *dynamoStore[T]) Delete(ctx context.Context, hashKey, sortKey any) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.cfg.TableName),
		Key:       s.key(hashKey, sortKey),
	})
	if err != nil {
		return classify("delete", err)
	}
	return nil
}

// BatchDelete removes up to len(keys) items, chunked at the 25-operation
// BatchWriteItem ceiling.
func (s *dynamoStore[T]) BatchDelete(ctx context.Context, keys [][2]any) error {
	var requests []types.WriteRequest
	for _, k := range keys {
		requests = append(requests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: s.key(k[0], k[1])},
		})
	}

	for i := 0; i < len(requests); i += 25 {
		end := i + 25
		if end > len(requests) {
			end = len(requests)
		}

		_, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				s.cfg.TableName: requests[i:end],
			},
		})
		if err != nil {
			return classify("batch delete", err)
		}
	}
	return nil
}

func (s *dynamoStore[T]) key(hashKey, sortKey any) map[string]types.AttributeValue {
	key := map[string]types.AttributeValue{
		s.cfg.HashKey: attr(hashKey),
	}
	if s.cfg.SortKey != "" && sortKey != nil {
		key[s.cfg.SortKey] = attr(sortKey)
	}
	return key
}

// keyAttrs returns the attribute names a cursor must carry for a query on
// the given index ("" for the base table).
func (s *dynamoStore[T]) keyAttrs(indexName string) ([]string, error) {
	attrs := []string{s.cfg.HashKey}
	if s.cfg.SortKey != "" {
		attrs = append(attrs, s.cfg.SortKey)
	}
	if indexName == "" {
		return attrs, nil
	}

	idx, ok := s.cfg.Indexes[indexName]
	if !ok {
		return nil, fmt.Errorf("%w: index %q on table %q", ErrResourceNotFound, indexName, s.cfg.TableName)
	}
	attrs = append(attrs, idx.HashKey)
	if idx.SortKey != "" {
		attrs = append(attrs, idx.SortKey)
	}
	return attrs, nil
}

// attr converts any value to a types.AttributeValue.
func attr(v any) types.AttributeValue {
	if v == nil {
		return &types.AttributeValueMemberNULL{Value: true}
	}
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return &types.AttributeValueMemberNULL{Value: true}
	}
	return av
}
