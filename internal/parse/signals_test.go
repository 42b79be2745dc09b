package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slabwatch/slabwatch/internal/domain"
)

func TestFromAspects(t *testing.T) {
	cat := testCatalog(t)

	id := FromAspects(map[string]string{
		"Year":             "2019",
		"Set":              "Panini Prizm",
		"Card Number":      "065",
		"Parallel/Variety": "Orange Prizm",
		"Sport":            "Basketball",
	}, cat)

	assert.Equal(t, 2019, id.Year)
	assert.Equal(t, "prizm", id.SetName)
	assert.Equal(t, "65", id.CardNumber)
	assert.Equal(t, "orange", id.Parallel, "aspect color suffix reduces to the simple color")
	assert.Equal(t, "basketball", id.Sport)
	assert.False(t, id.IsAutograph)
}

func TestFromAspects_UnknownSetKeptVerbatim(t *testing.T) {
	cat := testCatalog(t)

	id := FromAspects(map[string]string{"Set": "Obscure Regional Issue"}, cat)
	assert.Equal(t, "obscure regional issue", id.SetName)
}

func TestFromAspects_CompoundParallelVerbatim(t *testing.T) {
	cat := testCatalog(t)

	id := FromAspects(map[string]string{"Parallel/Variety": "Purple Pulsar"}, cat)
	assert.Equal(t, "purple pulsar", id.Parallel)
}

func TestFromAspects_Empty(t *testing.T) {
	cat := testCatalog(t)
	assert.Equal(t, domain.CardIdentity{}, FromAspects(nil, cat))
}

func TestFromCertificate(t *testing.T) {
	cat := testCatalog(t)

	id := FromCertificate(domain.CertificateRecord{
		Authority:    "PSA",
		Year:         2019,
		SetName:      "Panini Hoops Premium Stock",
		CardNumber:   "87",
		Variety:      "Purple Pulsar",
		NumericGrade: 10,
	}, cat)

	assert.Equal(t, 2019, id.Year)
	assert.Equal(t, "hoops premium stock", id.SetName)
	assert.Equal(t, "87", id.CardNumber)
	assert.Equal(t, "purple pulsar", id.Parallel)
}

func TestGradeFromTitle(t *testing.T) {
	tests := []struct {
		title     string
		authority string
		grade     float64
	}{
		{"2019 Prizm Ja Morant #65 PSA 10", "PSA", 10},
		{"2019 Prizm Ja Morant #65 BGS 9.5", "BGS", 9.5},
		{"2019 Prizm Ja Morant #65 SGC 8", "SGC", 8},
		{"2019 Prizm Ja Morant #65 CGC9", "CGC", 9},
		{"2019 Prizm Ja Morant #65 raw", "", 0},
	}
	for _, tt := range tests {
		g := GradeFromTitle(tt.title)
		assert.Equal(t, tt.authority, g.Authority, tt.title)
		assert.Equal(t, tt.grade, g.NumericGrade, tt.title)
	}
}

func TestGradeFromTitle_GemMintLabel(t *testing.T) {
	g := GradeFromTitle("2019 Prizm Ja Morant #65 GEM MINT 10")
	assert.Empty(t, g.Authority)
	assert.Equal(t, domain.TierGrade10, g.Tier())
}

func TestGradeFromAspects(t *testing.T) {
	g := GradeFromAspects(map[string]string{
		"Professional Grader": "PSA",
		"Grade":               "10",
	})
	assert.Equal(t, "PSA", g.Authority)
	assert.Equal(t, 10.0, g.NumericGrade)
	assert.Equal(t, domain.TierGrade10, g.Tier())

	assert.False(t, GradeFromAspects(map[string]string{}).Graded())
}
