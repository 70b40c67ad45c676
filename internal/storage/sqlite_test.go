package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyturn-crm/keyturn/internal/common"
	"github.com/keyturn-crm/keyturn/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestMigrate_Idempotent(t *testing.T) {
	store := newTestStorage(t)

	// Running again against an up-to-date database is a no-op.
	require.NoError(t, store.Migrate(context.Background()))

	version, err := store.schemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	require.ErrorIs(t, err, ErrEmptyString)
}

func TestContacts_CreateAndList(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	contact := &model.Contact{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "416-555-1234",
		Attrs:     map[string]any{"note": "met at open house"},
	}
	id, err := store.CreateContact(ctx, contact)
	require.NoError(t, err)
	assert.Equal(t, id, contact.ID)

	contacts, err := store.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	got := contacts[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, "new", got.Status, "status defaults on insert")
	assert.Equal(t, "met at open house", got.Attrs["note"])
	assert.False(t, got.CreatedAt.IsZero())
}

func TestContacts_EmptyOptionalFields(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.CreateContact(ctx, &model.Contact{FirstName: "Solo"})
	require.NoError(t, err)

	contacts, err := store.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Empty(t, contacts[0].Email)
	assert.Empty(t, contacts[0].Phone)
	assert.NotNil(t, contacts[0].Attrs)
}

func TestContacts_RejectsNameless(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.CreateContact(context.Background(), &model.Contact{Email: "x@y.ca"})
	require.ErrorIs(t, err, ErrInvalidContact)
}

func TestProperties_CreateAndList(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	property := &model.Property{
		Address: "123 Main St",
		City:    "Toronto",
		Attrs:   map[string]any{"bed": 3, "bath": 2, "list_price": 950000.0},
	}
	id, err := store.CreateProperty(ctx, property)
	require.NoError(t, err)

	properties, err := store.ListProperties(ctx)
	require.NoError(t, err)
	require.Len(t, properties, 1)

	got := properties[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "123 Main St", got.Address)
	assert.Equal(t, "Canada", got.Country, "country defaults on insert")
	assert.Equal(t, "prospect", got.Status)
	// Attrs round-trip through JSON, so numbers come back as float64.
	assert.InDelta(t, 3, got.Attrs["bed"], 1e-9)
	assert.InDelta(t, 950000.0, got.Attrs["list_price"], 1e-9)
}

func TestProperties_RejectsMissingAddress(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.CreateProperty(context.Background(), &model.Property{City: "Ottawa"})
	require.ErrorIs(t, err, ErrInvalidProperty)
}

func TestTransactions_CreateAndList(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	contactID, err := store.CreateContact(ctx, &model.Contact{FirstName: "Jane", LastName: "Doe"})
	require.NoError(t, err)
	propertyID, err := store.CreateProperty(ctx, &model.Property{Address: "123 Main St"})
	require.NoError(t, err)

	offer := 850000.0
	txn := &model.Transaction{
		ContactID:  contactID,
		PropertyID: propertyID,
		OfferPrice: &offer,
	}
	id, err := store.CreateTransaction(ctx, txn)
	require.NoError(t, err)

	transactions, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	got := transactions[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, contactID, got.ContactID)
	assert.Equal(t, propertyID, got.PropertyID)
	assert.Equal(t, model.SideBuy, got.Side, "side defaults on insert")
	assert.Equal(t, model.StageLead, got.Stage)
	require.NotNil(t, got.OfferPrice)
	assert.InDelta(t, 850000.0, *got.OfferPrice, 1e-9)
	assert.Nil(t, got.ClosePrice)
}

func TestTransactions_RejectsMissingRefs(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.CreateTransaction(ctx, &model.Transaction{PropertyID: 1})
	require.ErrorIs(t, err, ErrInvalidTransaction)

	_, err = store.CreateTransaction(ctx, &model.Transaction{ContactID: 1})
	require.ErrorIs(t, err, ErrInvalidTransaction)
}

func TestSearchContactsByAttr(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.CreateContact(ctx, &model.Contact{
		FirstName: "Jane", LastName: "Doe",
		Attrs: map[string]any{"source": "referral"},
	})
	require.NoError(t, err)
	_, err = store.CreateContact(ctx, &model.Contact{
		FirstName: "Bob", LastName: "Roy",
		Attrs: map[string]any{"source": "walk-in"},
	})
	require.NoError(t, err)
	_, err = store.CreateContact(ctx, &model.Contact{FirstName: "No", LastName: "Attrs"})
	require.NoError(t, err)

	matches, err := store.SearchContactsByAttr(ctx, "source", "referral")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Jane", matches[0].FirstName)

	none, err := store.SearchContactsByAttr(ctx, "source", "billboard")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = store.SearchContactsByAttr(ctx, "", "x")
	require.ErrorIs(t, err, ErrEmptyString)
}

func TestSearchPropertiesByNumberAttr(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	for _, p := range []*model.Property{
		{Address: "1 Small Rd", Attrs: map[string]any{"bed": 1}},
		{Address: "2 Medium Ave", Attrs: map[string]any{"bed": 3}},
		{Address: "3 Large Blvd", Attrs: map[string]any{"bed": 5}},
		{Address: "4 Bare St"},
	} {
		_, err := store.CreateProperty(ctx, p)
		require.NoError(t, err)
	}

	matches, err := store.SearchPropertiesByNumberAttr(ctx, "bed", 3)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "2 Medium Ave", matches[0].Address)
	assert.Equal(t, "3 Large Blvd", matches[1].Address)

	none, err := store.SearchPropertiesByNumberAttr(ctx, "bath", 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDocuments_SaveGetList(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	contactID, err := store.CreateContact(ctx, &model.Contact{FirstName: "Jane", LastName: "Doe"})
	require.NoError(t, err)

	doc := &model.Document{
		Filename:  "offer.pdf",
		ContactID: &contactID,
		Data:      []byte("%PDF-1.4 pretend"),
	}
	id, err := store.SaveDocument(ctx, doc)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, "application/octet-stream", doc.MimeType, "mime type defaults on save")
	assert.Equal(t, int64(len(doc.Data)), doc.Size)

	got, err := store.GetDocument(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "offer.pdf", got.Filename)
	assert.Equal(t, []byte("%PDF-1.4 pretend"), got.Data)
	require.NotNil(t, got.ContactID)
	assert.Equal(t, contactID, *got.ContactID)
	assert.Nil(t, got.PropertyID)

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0].ID)
	assert.Empty(t, docs[0].Data, "listing omits blob bytes")
}

func TestDocuments_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetDocument(context.Background(), "no-such-id")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDocuments_Validation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.SaveDocument(ctx, &model.Document{Data: []byte("x")})
	require.ErrorIs(t, err, ErrInvalidDocument)

	_, err = store.SaveDocument(ctx, &model.Document{Filename: "empty.txt"})
	require.ErrorIs(t, err, ErrInvalidDocument)
}
