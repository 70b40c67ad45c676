// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/keyturn-crm/keyturn/internal/model"
)

// Storage defines the contract for the persistence layer. Create calls
// return the store-assigned identifier; the caller never supplies one.
type Storage interface {
	// Record operations
	CreateContact(ctx context.Context, contact *model.Contact) (int64, error)
	CreateProperty(ctx context.Context, property *model.Property) (int64, error)
	CreateTransaction(ctx context.Context, txn *model.Transaction) (int64, error)
	ListContacts(ctx context.Context) ([]model.Contact, error)
	ListProperties(ctx context.Context) ([]model.Property, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)

	// Attr search
	SearchContactsByAttr(ctx context.Context, key, equals string) ([]model.Contact, error)
	SearchPropertiesByNumberAttr(ctx context.Context, key string, gte float64) ([]model.Property, error)

	// Document blob store
	SaveDocument(ctx context.Context, doc *model.Document) (string, error)
	GetDocument(ctx context.Context, id string) (*model.Document, error)
	ListDocuments(ctx context.Context) ([]model.Document, error)

	Migrate(ctx context.Context) error
	Close() error
}

// RecordCreator is the slice of Storage the intake workflow needs: the
// three typed create calls and nothing else. The workflow never reads.
type RecordCreator interface {
	CreateContact(ctx context.Context, contact *model.Contact) (int64, error)
	CreateProperty(ctx context.Context, property *model.Property) (int64, error)
	CreateTransaction(ctx context.Context, txn *model.Transaction) (int64, error)
}
