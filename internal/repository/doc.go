// Package repository wires one typed dynstore.Store per record collection
// and exposes the access patterns the handlers and the attribution engine
// need: primary-key CRUD, secondary-index lookups, paginated listings, and
// the bounded chat-message cleanup.
package repository
