package domain

import "strings"

// Grading authorities with dedicated price-column mappings. Anything else is
// carried through as raw text and priced from the ungraded column.
const (
	AuthorityPSA = "PSA"
	AuthorityBGS = "BGS"
	AuthoritySGC = "SGC"
	AuthorityCGC = "CGC"
)

// GradeInfo identifies the grading authority and numeric grade of a slab.
// A zero value means ungraded (raw card).
type GradeInfo struct {
	Authority    string  `json:"authority,omitempty"`
	NumericGrade float64 `json:"numeric_grade,omitempty"`
	RawLabel     string  `json:"raw_label,omitempty"`
}

// Graded reports whether any grade signal is present at all.
func (g GradeInfo) Graded() bool {
	return g.Authority != "" || g.NumericGrade != 0 || g.RawLabel != ""
}

// PriceTier is a price column of a catalog entry.
type PriceTier string

const (
	TierUngraded PriceTier = "ungraded"
	TierGrade8   PriceTier = "grade8"
	TierGrade9   PriceTier = "grade9"
	TierGrade10  PriceTier = "grade10"
)

// Tier maps the grade to exactly one price column. Unmapped combinations fall
// back to the ungraded column.
func (g GradeInfo) Tier() PriceTier {
	auth := strings.ToUpper(strings.TrimSpace(g.Authority))
	switch auth {
	case AuthorityPSA, AuthorityBGS:
		switch {
		case g.NumericGrade == 10:
			return TierGrade10
		case g.NumericGrade == 9 || g.NumericGrade == 9.5:
			return TierGrade9
		case g.NumericGrade == 8:
			return TierGrade8
		}
	}
	// "Gem Mint 10" style labels without a recognized authority still map to
	// the top column.
	raw := strings.ToLower(g.RawLabel)
	if strings.Contains(raw, "gem") && strings.Contains(raw, "10") {
		return TierGrade10
	}
	return TierUngraded
}
