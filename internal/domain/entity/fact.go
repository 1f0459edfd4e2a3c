// Package entity defines the core domain values for the application.
// It contains the Fact value served by the API, along with its validation
// rules and domain-specific errors.
package entity

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxFactLength is the maximum accepted length of a fact text in characters.
// Upstream documents longer than this are rejected as malformed.
const MaxFactLength = 2048

// Fact represents a single fact document served by the API.
// Text carries the fact body, Length the character count the upstream
// reported for it, and Retrieved the moment the document was obtained.
type Fact struct {
	Text      string
	Length    int
	Retrieved time.Time
}

// NewFact builds a Fact from an upstream document. When the upstream did not
// report a length, pass a non-positive value and the character count of text
// is used instead.
func NewFact(text string, length int, retrieved time.Time) Fact {
	if length <= 0 {
		length = utf8.RuneCountInString(text)
	}
	return Fact{
		Text:      text,
		Length:    length,
		Retrieved: retrieved,
	}
}

// FallbackFact builds the degraded Fact served when the upstream could not be
// reached. An empty stand-in text is allowed; its length is reported as zero
// so clients can tell a stand-in from a genuinely short fact.
func FallbackFact(standIn string, retrieved time.Time) Fact {
	return Fact{
		Text:      standIn,
		Length:    utf8.RuneCountInString(standIn),
		Retrieved: retrieved,
	}
}

// Validate checks the Fact against domain rules. A zero-length text is only
// valid for stand-in facts, which are constructed through FallbackFact and
// never validated against upstream rules.
func (f Fact) Validate() error {
	if strings.TrimSpace(f.Text) == "" {
		return &ValidationError{Field: "Text", Message: "text is required"}
	}
	if utf8.RuneCountInString(f.Text) > MaxFactLength {
		return &ValidationError{Field: "Text", Message: "text exceeds maximum length"}
	}
	if f.Length < 0 {
		return &ValidationError{Field: "Length", Message: "length must not be negative"}
	}
	if f.Retrieved.IsZero() {
		return &ValidationError{Field: "Retrieved", Message: "retrieved timestamp is required"}
	}
	return nil
}
