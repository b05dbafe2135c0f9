package dynstore

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

var (
	// ErrNotFound – the item does not exist for a primary-key lookup.
	ErrNotFound = errors.New("dynstore: item not found")

	// ErrInvalidCursor – pagination token is malformed or does not match the
	// key schema of the index it is being resumed against.
	ErrInvalidCursor = errors.New("dynstore: invalid pagination cursor")

	// ErrResourceNotFound – the table or index does not exist.
	ErrResourceNotFound = errors.New("dynstore: table or index not found")

	// ErrCapacityExceeded – the store is throttling; retry with backoff.
	ErrCapacityExceeded = errors.New("dynstore: provisioned capacity exceeded")

	// ErrConditionFailed – a conditional write's precondition did not hold.
	ErrConditionFailed = errors.New("dynstore: conditional check failed")

	// ErrValidationFailed – malformed key or attribute shape for the schema.
	ErrValidationFailed = errors.New("dynstore: request validation failed")
)

// StoreError wraps store failures that do not map to a known condition,
// keeping the underlying message reachable via Unwrap.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("dynstore: %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// classify maps DynamoDB API error codes onto the package's sentinel errors.
// Unknown failures come back as *StoreError.
func classify(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ProvisionedThroughputExceededException", "ThrottlingException", "RequestLimitExceeded":
			return fmt.Errorf("%w: %s", ErrCapacityExceeded, apiErr.ErrorMessage())
		case "ResourceNotFoundException":
			return fmt.Errorf("%w: %s", ErrResourceNotFound, apiErr.ErrorMessage())
		case "ConditionalCheckFailedException":
			return fmt.Errorf("%w: %s", ErrConditionFailed, apiErr.ErrorMessage())
		case "ValidationException":
			return fmt.Errorf("%w: %s", ErrValidationFailed, apiErr.ErrorMessage())
		}
	}
	return &StoreError{Op: op, Err: err}
}
