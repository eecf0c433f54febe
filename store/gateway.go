// Package store holds the per-session application state and the document
// persistence behind it. Mutations flow through a Store, which writes to
// the Gateway first and only then applies the pure in-memory transition,
// so local state never reflects a write that did not durably succeed.
package store

import (
	"context"
	"errors"
)

// Collections of the document store.
const (
	CollectionClients  = "clients"
	CollectionServices = "services"
	CollectionSettings = "settings"
)

var (
	// ErrNotAuthenticated is returned when a session has no bound user id.
	ErrNotAuthenticated = errors.New("authentication required")
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("document not found")
)

// ValidationError rejects a mutation payload before any gateway call.
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string { return e.msg }

func validationErr(msg string) error { return ValidationError{msg: msg} }

// IsValidation reports whether err is a payload validation failure.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// Record is one stored document with its generated id.
type Record struct {
	ID   string
	Data map[string]any
}

// Gateway is the persistence collaborator: a document store with named
// collections, generated ids and per-owner isolation. Reads are always
// filtered by owning-user id.
type Gateway interface {
	ListByOwner(ctx context.Context, collection, ownerID string) ([]Record, error)
	Create(ctx context.Context, collection, ownerID string, data map[string]any) (string, error)
	Update(ctx context.Context, collection, id string, data map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Exists(ctx context.Context, collection, id string) (bool, error)
}
