package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocrm/leads-api/dynstore"
	"github.com/autocrm/leads-api/internal/models"
)

func messageItems(prefix string, n int) []map[string]types.AttributeValue {
	items := make([]map[string]types.AttributeValue, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, map[string]types.AttributeValue{
			"id_chat": &types.AttributeValueMemberS{Value: fmt.Sprintf("%s-%03d", prefix, i)},
			"fecha":   &types.AttributeValueMemberS{Value: fmt.Sprintf("2026-09-01 12:%02d:00", i%60)},
		})
	}
	return items
}

func TestMessagesByPhone_MergesBothDirectionsNewestFirst(t *testing.T) {
	t.Parallel()

	var inputs []*dynamodb.QueryInput
	client := &dynstore.MockDynamoClient{
		QueryFn: func(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			inputs = append(inputs, params)
			switch *params.IndexName {
			case models.IndexDeNumero:
				return &dynamodb.QueryOutput{Items: messageItems("sent", 2)}, nil
			case models.IndexParaNumero:
				return &dynamodb.QueryOutput{Items: messageItems("recv", 3)}, nil
			}
			return &dynamodb.QueryOutput{}, nil
		},
	}
	repo := NewMessageRepository(client, "chat_mensaje")

	messages, err := repo.ByPhone(context.Background(), "5551234567")

	require.NoError(t, err)
	assert.Len(t, messages, 5)
	require.Len(t, inputs, 2)
	for _, input := range inputs {
		require.NotNil(t, input.ScanIndexForward)
		assert.False(t, *input.ScanIndexForward)
	}
}

func TestDeleteByPhone_NothingToDelete(t *testing.T) {
	t.Parallel()

	batchCalled := false
	client := &dynstore.MockDynamoClient{
		BatchWriteItemFn: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			batchCalled = true
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}
	repo := NewMessageRepository(client, "chat_mensaje")

	deleted, more, err := repo.DeleteByPhone(context.Background(), "5551234567")

	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.False(t, more)
	assert.False(t, batchCalled)
}

func TestDeleteByPhone_FillsBatchFromBothDirections(t *testing.T) {
	t.Parallel()

	var limits []int32
	var deletedKeys int
	client := &dynstore.MockDynamoClient{
		QueryFn: func(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			limits = append(limits, *params.Limit)
			if *params.IndexName == models.IndexDeNumero {
				return &dynamodb.QueryOutput{Items: messageItems("sent", 30)}, nil
			}
			return &dynamodb.QueryOutput{Items: messageItems("recv", 15)}, nil
		},
		BatchWriteItemFn: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			deletedKeys += len(params.RequestItems["chat_mensaje"])
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}
	repo := NewMessageRepository(client, "chat_mensaje")

	deleted, more, err := repo.DeleteByPhone(context.Background(), "5551234567")

	require.NoError(t, err)
	assert.Equal(t, 45, deleted)
	assert.Equal(t, 45, deletedKeys)
	assert.False(t, more)
	// second query only asks for what the batch still has room for
	assert.Equal(t, []int32{50, 20}, limits)
}

func TestDeleteByPhone_SelfAddressedMessageDeletedOnce(t *testing.T) {
	t.Parallel()

	selfMessage := map[string]types.AttributeValue{
		"id_chat":     &types.AttributeValueMemberS{Value: "self-001"},
		"fecha":       &types.AttributeValueMemberS{Value: "2026-09-01 12:00:00"},
		"de_numero":   &types.AttributeValueMemberS{Value: "5551234567"},
		"para_numero": &types.AttributeValueMemberS{Value: "5551234567"},
	}

	var batchKeys [][2]string
	client := &dynstore.MockDynamoClient{
		QueryFn: func(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			// the message matches both directions of the conversation
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{selfMessage}}, nil
		},
		BatchWriteItemFn: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			for _, wr := range params.RequestItems["chat_mensaje"] {
				id := wr.DeleteRequest.Key["id_chat"].(*types.AttributeValueMemberS)
				fecha := wr.DeleteRequest.Key["fecha"].(*types.AttributeValueMemberS)
				batchKeys = append(batchKeys, [2]string{id.Value, fecha.Value})
			}
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}
	repo := NewMessageRepository(client, "chat_mensaje")

	deleted, more, err := repo.DeleteByPhone(context.Background(), "5551234567")

	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.False(t, more)
	assert.Equal(t, [][2]string{{"self-001", "2026-09-01 12:00:00"}}, batchKeys)
}

func TestDeleteByPhone_FullSentPageMeansMoreRemain(t *testing.T) {
	t.Parallel()

	queries := 0
	client := &dynstore.MockDynamoClient{
		QueryFn: func(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			queries++
			return &dynamodb.QueryOutput{Items: messageItems("sent", 50)}, nil
		},
	}
	repo := NewMessageRepository(client, "chat_mensaje")

	deleted, more, err := repo.DeleteByPhone(context.Background(), "5551234567")

	require.NoError(t, err)
	assert.Equal(t, 50, deleted)
	assert.True(t, more)
	assert.Equal(t, 1, queries)
}

func TestDeleteByPhone_ReceivedCursorMeansMoreRemain(t *testing.T) {
	t.Parallel()

	client := &dynstore.MockDynamoClient{
		QueryFn: func(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			if *params.IndexName == models.IndexDeNumero {
				return &dynamodb.QueryOutput{Items: messageItems("sent", 10)}, nil
			}
			return &dynamodb.QueryOutput{
				Items: messageItems("recv", 40),
				LastEvaluatedKey: map[string]types.AttributeValue{
					"id_chat":     &types.AttributeValueMemberS{Value: "recv-039"},
					"fecha":       &types.AttributeValueMemberS{Value: "2026-09-01 12:39:00"},
					"para_numero": &types.AttributeValueMemberS{Value: "5551234567"},
				},
			}, nil
		},
	}
	repo := NewMessageRepository(client, "chat_mensaje")

	deleted, more, err := repo.DeleteByPhone(context.Background(), "5551234567")

	require.NoError(t, err)
	assert.Equal(t, 50, deleted)
	assert.True(t, more)
}
