// Package dynstore provides a typed gateway over the AWS DynamoDB Go SDK (v2)
// for the CRM record collections (clients, vendedores, events, chat messages).
//
// The package exposes the generic Store[T] interface with the basic item
// operations (Get, Put, Delete, BatchDelete) plus a fluent QueryBuilder for
// Query and Scan with opaque pagination cursors.
//
// Cursors are produced by EncodeCursor from the store's LastEvaluatedKey and
// parsed back by DecodeCursor. A cursor is only valid for the index it was
// produced on: DecodeCursor checks the decoded position against the target
// index's key schema and rejects anything incomplete with ErrInvalidCursor.
//
// Store failures are classified into the sentinel errors declared in
// errors.go (ErrCapacityExceeded, ErrResourceNotFound, ErrConditionFailed,
// ErrValidationFailed); anything else is wrapped in a *StoreError carrying
// the underlying message.
package dynstore
