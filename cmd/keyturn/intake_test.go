package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyturn-crm/keyturn/internal/cli"
	"github.com/keyturn-crm/keyturn/internal/intake"
	"github.com/keyturn-crm/keyturn/internal/model"
	"github.com/keyturn-crm/keyturn/internal/storage"
)

func newIntakeFixture(t *testing.T, input string) (*storage.SQLiteStorage, *intake.Workflow, *cli.Prompter) {
	t.Helper()

	ctx := context.Background()
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(ctx))

	var out bytes.Buffer
	prompter := cli.NewPrompter(strings.NewReader(input), &out)

	return store, intake.NewWorkflow(store), prompter
}

func TestRunIntakeOne_AutoYesCreatesContact(t *testing.T) {
	ctx := context.Background()
	store, workflow, prompter := newIntakeFixture(t, "")

	err := runIntakeOne(ctx, workflow, prompter, "Jane Doe jane@example.com 416-555-1234", true)
	require.NoError(t, err)

	contacts, err := store.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "jane@example.com", contacts[0].Email)
	// Placeholder name since the classifier never parses names.
	assert.Equal(t, "Unknown", contacts[0].FirstName)
}

func TestRunIntakeOne_AutoYesSkipsAmbiguous(t *testing.T) {
	ctx := context.Background()
	store, workflow, prompter := newIntakeFixture(t, "")

	// A transaction guess and an unknown both need a human answer; --yes
	// must skip rather than guess.
	for _, text := range []string{
		"they want to sell in the fall",
		"random gibberish xyz",
	} {
		require.NoError(t, runIntakeOne(ctx, workflow, prompter, text, true))
	}

	contacts, err := store.ListContacts(ctx)
	require.NoError(t, err)
	assert.Empty(t, contacts)
	transactions, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestRunIntakeOne_PromptedCancel(t *testing.T) {
	ctx := context.Background()
	store, workflow, prompter := newIntakeFixture(t, "cancel\n")

	err := runIntakeOne(ctx, workflow, prompter, "Jane Doe jane@example.com", false)
	require.NoError(t, err)

	contacts, err := store.ListContacts(ctx)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestRunIntakeOne_PromptedTransaction(t *testing.T) {
	ctx := context.Background()
	store, workflow, prompter := newIntakeFixture(t, "transaction\n1\n1\n")

	_, err := store.CreateContact(ctx, &model.Contact{FirstName: "Jane", LastName: "Doe"})
	require.NoError(t, err)
	_, err = store.CreateProperty(ctx, &model.Property{Address: "123 Main St"})
	require.NoError(t, err)

	err = runIntakeOne(ctx, workflow, prompter, "offer of 850000 went in", false)
	require.NoError(t, err)

	transactions, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, int64(1), transactions[0].ContactID)
	assert.Equal(t, int64(1), transactions[0].PropertyID)
	require.NotNil(t, transactions[0].OfferPrice)
	assert.InDelta(t, 850000.0, *transactions[0].OfferPrice, 1e-9)
}

func TestRunIntakeFile_AutoYes(t *testing.T) {
	ctx := context.Background()
	store, workflow, prompter := newIntakeFixture(t, "")

	path := filepath.Join(t.TempDir(), "notes.txt")
	notes := "Jane Doe jane@example.com\n\nrandom gibberish xyz\n123 Main St, 3 bed 2 bath\n"
	require.NoError(t, os.WriteFile(path, []byte(notes), 0600))

	err := runIntakeFile(ctx, workflow, prompter, path, true)
	require.NoError(t, err)

	// Both confirmable lines saved, the ambiguous one skipped.
	contacts, err := store.ListContacts(ctx)
	require.NoError(t, err)
	assert.Len(t, contacts, 1)
	properties, err := store.ListProperties(ctx)
	require.NoError(t, err)
	assert.Len(t, properties, 1)
}
