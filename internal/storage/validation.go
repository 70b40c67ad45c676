package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/keyturn-crm/keyturn/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidContact    = errors.New("invalid contact")
	ErrInvalidProperty   = errors.New("invalid property")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidDocument   = errors.New("invalid document")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateContact(c *model.Contact) error {
	if c == nil {
		return fmt.Errorf("%w: contact", ErrNilParameter)
	}
	if c.FirstName == "" && c.LastName == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidContact)
	}
	return nil
}

func validateProperty(p *model.Property) error {
	if p == nil {
		return fmt.Errorf("%w: property", ErrNilParameter)
	}
	if p.Address == "" {
		return fmt.Errorf("%w: missing address", ErrInvalidProperty)
	}
	return nil
}

func validateTransaction(t *model.Transaction) error {
	if t == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if t.ContactID == 0 {
		return fmt.Errorf("%w: missing contact reference", ErrInvalidTransaction)
	}
	if t.PropertyID == 0 {
		return fmt.Errorf("%w: missing property reference", ErrInvalidTransaction)
	}
	return nil
}

func validateDocument(d *model.Document) error {
	if d == nil {
		return fmt.Errorf("%w: document", ErrNilParameter)
	}
	if d.Filename == "" {
		return fmt.Errorf("%w: missing filename", ErrInvalidDocument)
	}
	if len(d.Data) == 0 {
		return fmt.Errorf("%w: empty data", ErrInvalidDocument)
	}
	return nil
}
