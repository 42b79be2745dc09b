package domain

import (
	"fmt"
	"strings"
)

// CardIdentity is the canonical identity of a single trading card. An empty
// Parallel means the base (non-parallel) card; an empty InsertLine means the
// card belongs to the main set rather than an insert line. Year 0, SetName ""
// or CardNumber "" mean the field could not be determined.
type CardIdentity struct {
	Sport       string `json:"sport"`
	Year        int    `json:"year"`
	SetName     string `json:"set_name"`
	InsertLine  string `json:"insert_line,omitempty"`
	CardNumber  string `json:"card_number"`
	Parallel    string `json:"parallel,omitempty"`
	IsAutograph bool   `json:"is_autograph"`
}

// Complete reports whether the identity carries the fields required before
// any price resolution may be attempted.
func (c CardIdentity) Complete() bool {
	return c.Year != 0 && c.SetName != "" && c.CardNumber != ""
}

// Describe renders the identity in listing order for audit output.
func (c CardIdentity) Describe() string {
	parts := []string{fmt.Sprintf("%d", c.Year), c.SetName}
	if c.InsertLine != "" {
		parts = append(parts, c.InsertLine)
	}
	if c.Parallel != "" {
		parts = append(parts, c.Parallel)
	}
	parts = append(parts, "#"+c.CardNumber)
	if c.IsAutograph {
		parts = append(parts, "auto")
	}
	return strings.Join(parts, " ")
}

// Confidence tags how trustworthy a reconciled identity or quote is.
type Confidence string

const (
	ConfidenceNone     Confidence = "none"
	ConfidenceHigh     Confidence = "high"
	ConfidenceVeryHigh Confidence = "very-high"
)

// IdentityHints carries fields the outer scanner already knows about the
// listing it is scanning (the monitored player's sport, usually).
type IdentityHints struct {
	Sport string
}
