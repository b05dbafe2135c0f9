package dynstore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// QueryBuilder assembles a Query or Scan fluently and executes it with
// cursor-based pagination.
type QueryBuilder[T any] struct {
	store       *dynamoStore[T]
	keyCond     *expression.KeyConditionBuilder
	filterCond  *expression.ConditionBuilder
	indexName   string
	limit       *int32
	cursor      string
	startKey    map[string]types.AttributeValue
	scanForward *bool
	isScan      bool
}

// Query starts a key-condition query.
func (s *dynamoStore[T]) Query() *QueryBuilder[T] {
	return &QueryBuilder[T]{
		store:       s,
		scanForward: aws.Bool(true),
	}
}

// Scan starts an unfiltered full-collection read. Most expensive access
// pattern; use only when no index fits.
func (s *dynamoStore[T]) Scan() *QueryBuilder[T] {
	return &QueryBuilder[T]{
		store:  s,
		isScan: true,
	}
}

func (qb *QueryBuilder[T]) Index(name string) *QueryBuilder[T] {
	qb.indexName = name
	return qb
}

func (qb *QueryBuilder[T]) KeyEqual(key string, value any) *QueryBuilder[T] {
	cond := expression.KeyEqual(expression.Key(key), expression.Value(value))
	if qb.keyCond == nil {
		qb.keyCond = &cond
	} else {
		tmp := qb.keyCond.And(cond)
		qb.keyCond = &tmp
	}
	return qb
}

func (qb *QueryBuilder[T]) KeyBeginsWith(key, prefix string) *QueryBuilder[T] {
	cond := expression.Key(key).BeginsWith(prefix)
	if qb.keyCond == nil {
		qb.keyCond = &cond
	} else {
		tmp := qb.keyCond.And(cond)
		qb.keyCond = &tmp
	}
	return qb
}

func (qb *QueryBuilder[T]) FilterEqual(field string, value any) *QueryBuilder[T] {
	cond := expression.Equal(expression.Name(field), expression.Value(value))
	if qb.filterCond == nil {
		qb.filterCond = &cond
	} else {
		tmp := qb.filterCond.And(cond)
		qb.filterCond = &tmp
	}
	return qb
}

func (qb *QueryBuilder[T]) Limit(n int32) *QueryBuilder[T] {
	qb.limit = &n
	return qb
}

// Cursor resumes from a token previously returned by Exec. The token is
// checked against the target index's key schema when the query runs.
func (qb *QueryBuilder[T]) Cursor(token string) *QueryBuilder[T] {
	qb.cursor = token
	return qb
}

// ScanForward sets the sort-key iteration order; false means newest first.
func (qb *QueryBuilder[T]) ScanForward(forward bool) *QueryBuilder[T] {
	qb.scanForward = &forward
	return qb
}

// Exec runs the query and returns one page of results plus a cursor for the
// next page; the cursor is empty when no matching records remain.
func (qb *QueryBuilder[T]) Exec(ctx context.Context) ([]T, string, error) {
	items, lastKey, err := qb.execPage(ctx)
	if err != nil {
		return nil, "", err
	}
	token, err := EncodeCursor(lastKey)
	if err != nil {
		return nil, "", err
	}
	return items, token, nil
}

// ExecAll follows the cursor until exhaustion, accumulating every match in
// memory. Unbounded: only for collections known to stay small per key
// (events per session, messages per phone number).
func (qb *QueryBuilder[T]) ExecAll(ctx context.Context) ([]T, error) {
	var all []T
	var startKey map[string]types.AttributeValue
	for {
		qb.startKey = startKey
		items, lastKey, err := qb.execPage(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(lastKey) == 0 {
			return all, nil
		}
		startKey = lastKey
	}
}

func (qb *QueryBuilder[T]) execPage(ctx context.Context) ([]T, map[string]types.AttributeValue, error) {
	if qb.startKey == nil && qb.cursor != "" {
		attrs, err := qb.store.keyAttrs(qb.indexName)
		if err != nil {
			return nil, nil, err
		}
		startKey, err := DecodeCursor(qb.cursor, attrs)
		if err != nil {
			return nil, nil, err
		}
		qb.startKey = startKey
	}

	builder := expression.NewBuilder()
	if qb.keyCond != nil {
		builder = builder.WithKeyCondition(*qb.keyCond)
	}
	if qb.filterCond != nil {
		builder = builder.WithFilter(*qb.filterCond)
	}

	hasExpr := qb.keyCond != nil || qb.filterCond != nil
	var expr expression.Expression
	if hasExpr {
		var err error
		expr, err = builder.Build()
		if err != nil {
			return nil, nil, err
		}
	}

	if qb.isScan || qb.keyCond == nil {
		return qb.execScan(ctx, expr)
	}
	return qb.execQuery(ctx, expr)
}

func (qb *QueryBuilder[T]) execQuery(ctx context.Context, expr expression.Expression) ([]T, map[string]types.AttributeValue, error) {
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(qb.store.cfg.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     qb.limit,
		ScanIndexForward:          qb.scanForward,
		ExclusiveStartKey:         qb.startKey,
	}
	if qb.indexName != "" {
		input.IndexName = aws.String(qb.indexName)
	}

	out, err := qb.store.client.Query(ctx, input)
	if err != nil {
		return nil, nil, classify("query", err)
	}
	items, err := unmarshalItems[T](out.Items)
	return items, out.LastEvaluatedKey, err
}

func (qb *QueryBuilder[T]) execScan(ctx context.Context, expr expression.Expression) ([]T, map[string]types.AttributeValue, error) {
	input := &dynamodb.ScanInput{
		TableName:                 aws.String(qb.store.cfg.TableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     qb.limit,
		ExclusiveStartKey:         qb.startKey,
	}
	if qb.indexName != "" {
		input.IndexName = aws.String(qb.indexName)
	}

	out, err := qb.store.client.Scan(ctx, input)
	if err != nil {
		return nil, nil, classify("scan", err)
	}
	items, err := unmarshalItems[T](out.Items)
	return items, out.LastEvaluatedKey, err
}

func unmarshalItems[T any](items []map[string]types.AttributeValue) ([]T, error) {
	result := make([]T, 0, len(items))
	for _, item := range items {
		var t T
		if err := attributevalue.UnmarshalMap(item, &t); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, nil
}
