package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyturn-crm/keyturn/internal/intake"
	"github.com/keyturn-crm/keyturn/internal/model"
)

func askDecision(kind model.EntityKind, options []string, draft model.Draft) intake.Decision {
	return intake.Decision{
		Status:   intake.StatusAsk,
		Question: "I think this is a " + string(kind) + ". Do you want me to save it?",
		Options:  options,
		Draft:    &draft,
	}
}

func TestPrompter_Resolve(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		decision       intake.Decision
		expectedChoice string
		wantContactID  int64
		wantPropertyID int64
		wantOutput     []string
	}{
		{
			name:  "accept contact guess",
			input: "contact\n",
			decision: askDecision(model.KindContact,
				[]string{"contact", "cancel"},
				model.Draft{Kind: model.KindContact, Email: "jane@example.com"}),
			expectedChoice: "contact",
			wantOutput:     []string{"Smart Intake", "jane@example.com", "Do you want me to save it?"},
		},
		{
			name:  "choice is case-insensitive and canonicalized",
			input: "CANCEL\n",
			decision: askDecision(model.KindContact,
				[]string{"contact", "cancel"},
				model.Draft{Kind: model.KindContact}),
			expectedChoice: "cancel",
		},
		{
			name:  "rejected choice then valid",
			input: "llama\ncancel\n",
			decision: askDecision(model.KindProperty,
				[]string{"property", "cancel"},
				model.Draft{Kind: model.KindProperty, Address: "123 Main St"}),
			expectedChoice: "cancel",
			wantOutput:     []string{"Please answer one of: property, cancel"},
		},
		{
			name:  "transaction collects both references",
			input: "transaction\n12\n34\n",
			decision: askDecision(model.KindTransaction,
				[]string{"contact", "property", "transaction"},
				model.Draft{Kind: model.KindTransaction, Side: model.SideBuy}),
			expectedChoice: "transaction",
			wantContactID:  12,
			wantPropertyID: 34,
		},
		{
			name:  "bad references are re-prompted",
			input: "transaction\n0\nseven\n7\n5\n",
			decision: askDecision(model.KindTransaction,
				[]string{"contact", "property", "transaction"},
				model.Draft{Kind: model.KindTransaction}),
			expectedChoice: "transaction",
			wantContactID:  7,
			wantPropertyID: 5,
			wantOutput:     []string{"contact_id must be a positive integer"},
		},
		{
			name:  "prefilled references are not re-collected",
			input: "transaction\n",
			decision: askDecision(model.KindTransaction,
				[]string{"contact", "property", "transaction"},
				model.Draft{Kind: model.KindTransaction, ContactID: 7, PropertyID: 5}),
			expectedChoice: "transaction",
			wantContactID:  7,
			wantPropertyID: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			choice, draft, err := p.Resolve(context.Background(), tt.decision)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedChoice, choice)
			assert.Equal(t, tt.wantContactID, draft.ContactID)
			assert.Equal(t, tt.wantPropertyID, draft.PropertyID)
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestPrompter_ResolveKeepsDraftFields(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("contact\n"), &out)

	offer := 850000.0
	draftIn := model.Draft{
		Kind:       model.KindContact,
		Email:      "jane@example.com",
		Phone:      "416-555-1234",
		OfferPrice: &offer,
		Attrs:      map[string]any{"note": "met at open house"},
	}

	_, draft, err := p.Resolve(context.Background(), askDecision(model.KindContact,
		[]string{"contact", "cancel"}, draftIn))

	require.NoError(t, err)
	assert.Equal(t, draftIn, draft, "the prompter only ever adds references")
}

func TestPrompter_ResolveNilDraft(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("cancel\n"), &out)

	choice, draft, err := p.Resolve(context.Background(), intake.Decision{
		Status:   intake.StatusAsk,
		Question: "Should I save this as a contact, property, or transaction?",
		Options:  []string{"contact", "cancel"},
	})

	require.NoError(t, err)
	assert.Equal(t, "cancel", choice)
	assert.Zero(t, draft)
}

func TestPrompter_ResolveContextCancelled(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := p.Resolve(ctx, askDecision(model.KindContact,
		[]string{"contact", "cancel"}, model.Draft{Kind: model.KindContact}))

	require.ErrorIs(t, err, ErrInputCancelled)
}
