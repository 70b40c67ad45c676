// Package intake implements the two-step propose/commit workflow that sits
// between the heuristic classifier and persistence. A propose call guesses
// and drafts; nothing is written until a human confirms the kind on the
// commit call. The workflow holds no state between the two calls: the
// caller is the sole custodian of the in-flight draft and echoes it back.
package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/keyturn-crm/keyturn/internal/classify"
	"github.com/keyturn-crm/keyturn/internal/model"
	"github.com/keyturn-crm/keyturn/internal/service"
)

// Decision statuses.
const (
	StatusAsk       = "ask"
	StatusCreated   = "created"
	StatusCancelled = "cancelled"
)

// Rejected-commit outcomes. These are expected branches, not store
// failures; callers match on them with errors.Is.
var (
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrTransactionRefs = errors.New("transaction requires contact_id and property_id")
)

// Decision is the workflow's answer to a single propose or commit call.
// Ask decisions carry the question, the options the caller may answer
// with, and the draft to echo back; created decisions carry the entity
// and its assigned id.
type Decision struct {
	Draft    *model.Draft     `json:"draft,omitempty"`
	Status   string           `json:"status"`
	Question string           `json:"question,omitempty"`
	Entity   model.EntityKind `json:"entity,omitempty"`
	Options  []string         `json:"options,omitempty"`
	ID       int64            `json:"id,omitempty"`
}

// Workflow mediates between classification and the record store.
type Workflow struct {
	store service.RecordCreator
}

// NewWorkflow creates a workflow that persists confirmed drafts through the
// given store.
func NewWorkflow(store service.RecordCreator) *Workflow {
	return &Workflow{store: store}
}

var allKinds = []string{
	string(model.KindContact),
	string(model.KindProperty),
	string(model.KindTransaction),
}

// Propose classifies the text and returns the question to put to the
// human. It never commits on the first pass and it never fails: text the
// classifier can't place comes back as a disambiguation ask.
func (w *Workflow) Propose(text string) Decision {
	c := classify.Classify(text)
	draft := c.Draft

	switch c.Kind {
	case model.KindUnknown:
		return Decision{
			Status:   StatusAsk,
			Question: "Should I save this as a contact, property, or transaction?",
			Options:  allKinds,
			Draft:    &draft,
		}
	case model.KindTransaction:
		// A transaction guess is never auto-confirmable: both references
		// are mandatory and the classifier can't derive them from text.
		if draft.ContactID == 0 || draft.PropertyID == 0 {
			return Decision{
				Status:   StatusAsk,
				Question: "I think this is a transaction. Please provide contact_id and property_id, or pick a different type.",
				Options:  allKinds,
				Draft:    &draft,
			}
		}
	case model.KindContact, model.KindProperty:
		return Decision{
			Status:   StatusAsk,
			Question: fmt.Sprintf("I think this is a %s. Do you want me to save it?", c.Kind),
			Options:  []string{string(c.Kind), "cancel"},
			Draft:    &draft,
		}
	}

	// Unreachable today; kept so a future kind falls out as a question
	// rather than a silent commit.
	return Decision{
		Status:   StatusAsk,
		Question: "Not sure. Choose a type.",
		Options:  allKinds,
		Draft:    &draft,
	}
}

// Commit persists the echoed draft under the chosen kind. The draft is
// trusted as-is: the caller may have edited fields (typically filling in
// transaction references) between propose and commit, and may choose a
// different kind than the one guessed.
func (w *Workflow) Commit(ctx context.Context, choice string, draft model.Draft) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "cancel":
		return Decision{Status: StatusCancelled}, nil
	case string(model.KindContact):
		return w.commitContact(ctx, draft)
	case string(model.KindProperty):
		return w.commitProperty(ctx, draft)
	case string(model.KindTransaction):
		return w.commitTransaction(ctx, draft)
	default:
		return Decision{}, ErrInvalidChoice
	}
}

func (w *Workflow) commitContact(ctx context.Context, draft model.Draft) (Decision, error) {
	first, last := draft.FirstName, draft.LastName
	if first == "" && last == "" {
		// A placeholder record beats losing the note entirely.
		first, last = "Unknown", "Contact"
	}

	contact := &model.Contact{
		FirstName: first,
		LastName:  last,
		Email:     draft.Email,
		Phone:     draft.Phone,
		Status:    defaultString(draft.Status, "new"),
		Attrs:     defaultAttrs(draft.Attrs),
	}
	id, err := w.store.CreateContact(ctx, contact)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to create contact: %w", err)
	}

	slog.Info("intake created record", "entity", model.KindContact, "id", id)
	return Decision{Status: StatusCreated, Entity: model.KindContact, ID: id}, nil
}

func (w *Workflow) commitProperty(ctx context.Context, draft model.Draft) (Decision, error) {
	property := &model.Property{
		Address:       defaultString(draft.Address, "Unknown address"),
		City:          draft.City,
		StateProvince: draft.StateProvince,
		Country:       defaultString(draft.Country, "Canada"),
		Status:        defaultString(draft.Status, "prospect"),
		Attrs:         defaultAttrs(draft.Attrs),
	}
	id, err := w.store.CreateProperty(ctx, property)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to create property: %w", err)
	}

	slog.Info("intake created record", "entity", model.KindProperty, "id", id)
	return Decision{Status: StatusCreated, Entity: model.KindProperty, ID: id}, nil
}

func (w *Workflow) commitTransaction(ctx context.Context, draft model.Draft) (Decision, error) {
	if draft.ContactID == 0 || draft.PropertyID == 0 {
		return Decision{}, ErrTransactionRefs
	}

	txn := &model.Transaction{
		ContactID:  draft.ContactID,
		PropertyID: draft.PropertyID,
		Side:       defaultString(draft.Side, model.SideBuy),
		Stage:      defaultString(draft.Stage, model.StageLead),
		OfferPrice: draft.OfferPrice,
		ClosePrice: draft.ClosePrice,
		Attrs:      defaultAttrs(draft.Attrs),
	}
	id, err := w.store.CreateTransaction(ctx, txn)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	slog.Info("intake created record", "entity", model.KindTransaction, "id", id)
	return Decision{Status: StatusCreated, Entity: model.KindTransaction, ID: id}, nil
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func defaultAttrs(attrs map[string]any) map[string]any {
	if attrs == nil {
		return map[string]any{}
	}
	return attrs
}
