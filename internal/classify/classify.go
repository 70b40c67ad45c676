// Package classify guesses which kind of record a free-text note describes
// and drafts the record from it. Classification is a deterministic single
// pass over an ordered rule cascade; the first matching rule wins.
package classify

import (
	"strings"

	"github.com/keyturn-crm/keyturn/internal/extract"
	"github.com/keyturn-crm/keyturn/internal/model"
)

// signals holds every extractor's output for one input, computed once so
// the rules don't re-scan the text.
type signals struct {
	email     string
	phone     string
	lower     string
	money     float64
	beds      int
	baths     int
	hasEmail  bool
	hasPhone  bool
	hasMoney  bool
	hasBeds   bool
	hasBaths  bool
	isAddress bool
	hasVerb   bool
}

func scan(text string) signals {
	var s signals
	s.lower = strings.ToLower(text)
	s.email, s.hasEmail = extract.Email(text)
	s.phone, s.hasPhone = extract.Phone(text)
	s.money, s.hasMoney = extract.Money(text)
	s.beds, s.hasBeds = extract.Beds(text)
	s.baths, s.hasBaths = extract.Baths(text)
	s.isAddress = extract.LooksLikeAddress(text)
	s.hasVerb = extract.HasTransactionVerb(text)
	return s
}

// rule pairs a predicate with a draft builder. The cascade is evaluated in
// declaration order with no backtracking.
type rule struct {
	match func(s signals) bool
	build func(text string, s signals) model.Draft
	kind  model.EntityKind
}

// The precedence is deliberate: identity signals (email/phone) are the
// least ambiguous, spatial signals next, and verb signals last since words
// like "sell" show up in plenty of non-deal sentences.
var cascade = []rule{
	{
		kind: model.KindContact,
		match: func(s signals) bool {
			return strings.Contains(s.lower, "contact") || s.hasEmail || s.hasPhone
		},
		build: buildContact,
	},
	{
		kind: model.KindProperty,
		match: func(s signals) bool {
			return strings.Contains(s.lower, "property") || s.isAddress || s.hasBeds || s.hasBaths
		},
		build: buildProperty,
	},
	{
		kind: model.KindTransaction,
		match: func(s signals) bool {
			return strings.Contains(s.lower, "transaction") || s.hasVerb
		},
		build: buildTransaction,
	},
}

// Classify runs the rule cascade over the text and returns the kind guess
// plus the draft built from it. It never fails; text that matches nothing
// comes back as KindUnknown with the note preserved.
func Classify(text string) model.Classification {
	t := strings.TrimSpace(text)
	s := scan(t)

	for _, r := range cascade {
		if r.match(s) {
			return model.Classification{Kind: r.kind, Draft: r.build(t, s)}
		}
	}

	return model.Classification{
		Kind:  model.KindUnknown,
		Draft: model.Draft{Kind: model.KindUnknown, Attrs: map[string]any{"note": t}},
	}
}

func buildContact(text string, s signals) model.Draft {
	// Name parsing is not attempted; first/last stay empty until a human
	// fills them in or commit substitutes placeholders.
	return model.Draft{
		Kind:  model.KindContact,
		Email: s.email,
		Phone: s.phone,
		Attrs: map[string]any{"note": text},
	}
}

func buildProperty(text string, s signals) model.Draft {
	d := model.Draft{
		Kind:    model.KindProperty,
		Country: "Canada",
		Status:  "prospect",
		Attrs:   map[string]any{},
	}
	if s.isAddress {
		d.Address = text
	} else {
		d.Attrs["note"] = text
	}
	if s.hasBeds {
		d.Attrs["bed"] = s.beds
	}
	if s.hasBaths {
		d.Attrs["bath"] = s.baths
	}
	if s.hasMoney {
		d.Attrs["list_price"] = s.money
	}
	return d
}

func buildTransaction(text string, s signals) model.Draft {
	side := model.SideBuy
	switch {
	case strings.Contains(s.lower, "buy"):
		side = model.SideBuy
	case strings.Contains(s.lower, "sell"):
		side = model.SideSell
	case strings.Contains(s.lower, "lease"):
		side = model.SideLease
	}

	d := model.Draft{
		Kind:  model.KindTransaction,
		Side:  side,
		Stage: model.StageLead,
		Attrs: map[string]any{"note": text},
	}
	// Prices only when the matching keyword appears; contact and property
	// references are never derivable from text alone.
	if s.hasMoney && strings.Contains(s.lower, "offer") {
		v := s.money
		d.OfferPrice = &v
	}
	if s.hasMoney && strings.Contains(s.lower, "close") {
		v := s.money
		d.ClosePrice = &v
	}
	return d
}
