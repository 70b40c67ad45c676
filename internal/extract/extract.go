// Package extract provides the signal extractors for free-text intake:
// small pure functions that each pull one typed value out of a raw note.
// Extraction never fails loudly; a value that isn't there is simply absent.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Patterns are compiled once at startup and never mutated.
var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe = regexp.MustCompile(`\b(?:\+?\d{1,3}[ -]?)?(?:\(?\d{3}\)?[ -]?)?\d{3}[ -]?\d{4}\b`)
	moneyRe = regexp.MustCompile(`\b(\$?\s?\d[\d,]*\.?\d*)\b`)
	bedsRe  = regexp.MustCompile(`(?i)\b(\d+)\s*bed`)
	bathsRe = regexp.MustCompile(`(?i)\b(\d+)\s*bath`)

	// A short numeric prefix like "123 Main" reads as an address even
	// without a street-type word.
	addressNumberRe = regexp.MustCompile(`\b\d{1,5}\s+\w+`)
)

// addressHints are street-type substrings checked against the lower-cased
// text. The short forms keep a leading space so "first" doesn't match "st".
var addressHints = []string{
	" st", " ave", " rd", " blvd",
	"street", "avenue", "road", "drive", "lane", "court",
	"unit", "apt", "suite",
}

// transactionVerbs mark text as deal-related when present anywhere in the
// lower-cased input.
var transactionVerbs = []string{"buy", "sell", "lease", "offer", "close", "offer price", "closing"}

// Email returns the first email-shaped token in the text, verbatim.
func Email(text string) (string, bool) {
	m := emailRe.FindString(text)
	return m, m != ""
}

// Phone returns the first phone-shaped token in the text: optional country
// code, optional area code (parenthesized or not), then 3+4 digits with
// dash or space separators.
func Phone(text string) (string, bool) {
	m := phoneRe.FindString(text)
	return m, m != ""
}

// Money returns the first numeric run in the text as a float, after
// stripping thousands separators from the whole input.
//
// The scan is global and left to right, so a bedroom count appearing before
// a price will win over the price. That imprecision is part of the contract;
// callers that care gate on context words instead (see classify).
func Money(text string) (float64, bool) {
	m := moneyRe.FindStringSubmatch(strings.ReplaceAll(text, ",", ""))
	if m == nil {
		return 0, false
	}
	raw := strings.ReplaceAll(strings.ReplaceAll(m[1], "$", ""), " ", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Beds returns the integer immediately preceding the word "bed".
func Beds(text string) (int, bool) {
	return countBefore(bedsRe, text)
}

// Baths returns the integer immediately preceding the word "bath".
func Baths(text string) (int, bool) {
	return countBefore(bathsRe, text)
}

func countBefore(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// LooksLikeAddress reports whether the text reads like a street address:
// any street-type hint, or a short numeric prefix followed by a word.
func LooksLikeAddress(text string) bool {
	t := strings.ToLower(text)
	for _, h := range addressHints {
		if strings.Contains(t, h) {
			return true
		}
	}
	return addressNumberRe.MatchString(t)
}

// HasTransactionVerb reports whether the text contains a deal verb such as
// buy, sell, lease, offer, or close.
func HasTransactionVerb(text string) bool {
	t := strings.ToLower(text)
	for _, w := range transactionVerbs {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}
