package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeInfo_Tier(t *testing.T) {
	tests := []struct {
		name  string
		grade GradeInfo
		want  PriceTier
	}{
		{"ungraded", GradeInfo{}, TierUngraded},
		{"psa 10", GradeInfo{Authority: "PSA", NumericGrade: 10}, TierGrade10},
		{"bgs 9.5", GradeInfo{Authority: "BGS", NumericGrade: 9.5}, TierGrade9},
		{"psa 9", GradeInfo{Authority: "PSA", NumericGrade: 9}, TierGrade9},
		{"psa 8", GradeInfo{Authority: "PSA", NumericGrade: 8}, TierGrade8},
		{"psa 7 falls back", GradeInfo{Authority: "PSA", NumericGrade: 7}, TierUngraded},
		{"lowercase authority", GradeInfo{Authority: "psa", NumericGrade: 10}, TierGrade10},
		{"unknown grader", GradeInfo{Authority: "HGA", NumericGrade: 10}, TierUngraded},
		{"gem mint label", GradeInfo{RawLabel: "GEM MINT 10"}, TierGrade10},
		{"mint label alone", GradeInfo{RawLabel: "MINT 9"}, TierUngraded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.grade.Tier())
		})
	}
}

func TestPriceByTier_At(t *testing.T) {
	p := PriceByTier{LooseCents: 1, Grade8Cents: 2, Grade9Cents: 3, Grade10Cents: 4}
	assert.Equal(t, int64(1), p.At(TierUngraded))
	assert.Equal(t, int64(2), p.At(TierGrade8))
	assert.Equal(t, int64(3), p.At(TierGrade9))
	assert.Equal(t, int64(4), p.At(TierGrade10))
}

func TestCardIdentity_Complete(t *testing.T) {
	id := CardIdentity{Year: 2019, SetName: "prizm", CardNumber: "65"}
	assert.True(t, id.Complete())

	assert.False(t, CardIdentity{Year: 2019, SetName: "prizm"}.Complete())
	assert.False(t, CardIdentity{Year: 2019, CardNumber: "65"}.Complete())
	assert.False(t, CardIdentity{SetName: "prizm", CardNumber: "65"}.Complete())
}
