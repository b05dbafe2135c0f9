package dynstore

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// EncodeCursor serializes a LastEvaluatedKey position into an opaque token.
// The attribute map is flattened to plain values and marshalled as canonical
// JSON (object keys sorted), so equal positions always yield equal tokens.
// An empty position yields an empty token, meaning "no more pages".
func EncodeCursor(lastKey map[string]types.AttributeValue) (string, error) {
	if len(lastKey) == 0 {
		return "", nil
	}

	plain := make(map[string]any, len(lastKey))
	if err := attributevalue.UnmarshalMap(lastKey, &plain); err != nil {
		return "", fmt.Errorf("dynstore: encode cursor: %w", err)
	}

	b, err := json.Marshal(plain)
	if err != nil {
		return "", fmt.Errorf("dynstore: encode cursor: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecodeCursor parses a token back into an ExclusiveStartKey position.
// keyAttrs is the set of attribute names the target query requires (the
// table's primary key plus, for index queries, the index key). A token that
// does not decode, or decodes to a position missing any required attribute,
// fails with ErrInvalidCursor: a cursor produced on one index cannot be
// silently resumed on another.
func DecodeCursor(token string, keyAttrs []string) (map[string]types.AttributeValue, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: not base64", ErrInvalidCursor)
	}

	var plain map[string]any
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrInvalidCursor)
	}

	for _, name := range keyAttrs {
		if _, ok := plain[name]; !ok {
			return nil, fmt.Errorf("%w: missing key attribute %q", ErrInvalidCursor, name)
		}
	}

	key, err := attributevalue.MarshalMap(plain)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	return key, nil
}
