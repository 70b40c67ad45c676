package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/keyturn-crm/keyturn/internal/intake"
	"github.com/keyturn-crm/keyturn/internal/model"
)

// Prompter runs the human half of the intake protocol on a terminal: it
// shows the workflow's question and draft, collects a choice from the
// offered options, and gathers the transaction references the classifier
// can never guess.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewPrompter creates a prompter over the given streams. Nil values
// default to stdin/stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// Resolve collects the human's answer to an ask decision and returns the
// choice plus the (possibly edited) draft to commit.
func (p *Prompter) Resolve(ctx context.Context, decision intake.Decision) (string, model.Draft, error) {
	var draft model.Draft
	if decision.Draft != nil {
		draft = *decision.Draft
	}

	fmt.Fprintln(p.writer, RenderBox("Smart Intake", formatDraft(draft)))
	fmt.Fprintln(p.writer, InfoStyle.Render(decision.Question))
	fmt.Fprintf(p.writer, "Options: %s\n", SubtleStyle.Render(strings.Join(decision.Options, ", ")))

	choice, err := p.promptChoice(ctx, decision.Options)
	if err != nil {
		return "", draft, err
	}

	// A transaction commit needs both references; collect them before
	// sending the draft back.
	if choice == string(model.KindTransaction) {
		if draft.ContactID == 0 {
			draft.ContactID, err = p.promptID(ctx, "contact_id")
			if err != nil {
				return "", draft, err
			}
		}
		if draft.PropertyID == 0 {
			draft.PropertyID, err = p.promptID(ctx, "property_id")
			if err != nil {
				return "", draft, err
			}
		}
	}

	return choice, draft, nil
}

func (p *Prompter) promptChoice(ctx context.Context, options []string) (string, error) {
	for {
		fmt.Fprint(p.writer, FormatPrompt("Choice"))
		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return "", err
		}

		answer := strings.ToLower(strings.TrimSpace(line))
		for _, opt := range options {
			if answer == strings.ToLower(opt) {
				return opt, nil
			}
		}
		fmt.Fprintln(p.writer, WarningStyle.Render(fmt.Sprintf("Please answer one of: %s", strings.Join(options, ", "))))
	}
}

func (p *Prompter) promptID(ctx context.Context, name string) (int64, error) {
	for {
		fmt.Fprint(p.writer, FormatPrompt(name))
		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return 0, err
		}

		id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil || id <= 0 {
			fmt.Fprintln(p.writer, WarningStyle.Render(name+" must be a positive integer"))
			continue
		}
		return id, nil
	}
}

func formatDraft(d model.Draft) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Guess: %s\n", string(d.Kind))

	add := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	add("Name", strings.TrimSpace(d.FirstName+" "+d.LastName))
	add("Email", d.Email)
	add("Phone", d.Phone)
	add("Address", d.Address)
	add("Side", d.Side)
	if d.OfferPrice != nil {
		fmt.Fprintf(&b, "Offer: %.2f\n", *d.OfferPrice)
	}
	if d.ClosePrice != nil {
		fmt.Fprintf(&b, "Close: %.2f\n", *d.ClosePrice)
	}
	for _, key := range []string{"bed", "bath", "list_price", "note"} {
		if v, ok := d.Attrs[key]; ok {
			fmt.Fprintf(&b, "%s: %v\n", key, v)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
