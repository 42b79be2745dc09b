package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slabwatch/slabwatch/internal/domain"
)

func TestKey_Normalization(t *testing.T) {
	a := Key(domain.CardIdentity{
		Sport:      "Basketball",
		Year:       2019,
		SetName:    " Hoops Premium Stock ",
		CardNumber: "087",
		Parallel:   "Purple Pulsar",
	}, domain.GradeInfo{Authority: "psa", NumericGrade: 10})

	b := Key(domain.CardIdentity{
		Sport:      "basketball",
		Year:       2019,
		SetName:    "hoops premium stock",
		CardNumber: "87",
		Parallel:   "purple pulsar",
	}, domain.GradeInfo{Authority: "PSA", NumericGrade: 10})

	assert.Equal(t, a, b)
}

func TestKey_DistinguishesGradeAndParallel(t *testing.T) {
	id := domain.CardIdentity{Year: 2019, SetName: "prizm", CardNumber: "65"}

	base := Key(id, domain.GradeInfo{})
	graded := Key(id, domain.GradeInfo{Authority: "PSA", NumericGrade: 10})
	assert.NotEqual(t, base, graded)

	gold := id
	gold.Parallel = "gold"
	assert.NotEqual(t, Key(id, domain.GradeInfo{}), Key(gold, domain.GradeInfo{}))
}

func TestKey_RawLabelGradeIsDistinctFromUngraded(t *testing.T) {
	id := domain.CardIdentity{Year: 2019, SetName: "prizm", CardNumber: "65"}

	// A label-only grade prices from the grade-10 column, so it must not
	// share a cache entry with the raw card.
	gemMint := Key(id, domain.GradeInfo{RawLabel: "gem mint 10"})
	assert.NotEqual(t, Key(id, domain.GradeInfo{}), gemMint)
	assert.Equal(t, Key(id, domain.GradeInfo{RawLabel: "GEM MINT 10 "}), gemMint)
}

func TestTTLCache_HitAndExpiry(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	c := NewTTLCache(time.Hour, 100)
	c.now = func() time.Time { return clock }

	res := domain.ResolutionResult{Reason: domain.ReasonNoPriceData}
	c.Put(ctx, "k", res)

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, res, got)

	clock = clock.Add(time.Hour + time.Second)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestTTLCache_CapEvictsOldest(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache(time.Hour, 3)

	for i := 0; i < 4; i++ {
		c.Put(ctx, fmt.Sprintf("k%d", i), domain.ResolutionResult{})
	}

	assert.Equal(t, 3, c.Len())
	_, ok := c.Get(ctx, "k0")
	assert.False(t, ok, "oldest insertion is evicted first")
	_, ok = c.Get(ctx, "k3")
	assert.True(t, ok)
}

func TestTTLCache_OverwriteDoesNotGrow(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache(time.Hour, 10)

	c.Put(ctx, "k", domain.ResolutionResult{Reason: domain.ReasonNoPriceData})
	c.Put(ctx, "k", domain.ResolutionResult{})
	assert.Equal(t, 1, c.Len())

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Empty(t, got.Reason, "last writer wins")
}

func TestTTLCache_CleanExpired(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	c := NewTTLCache(time.Minute, 100)
	c.now = func() time.Time { return clock }

	c.Put(ctx, "old", domain.ResolutionResult{})
	clock = clock.Add(2 * time.Minute)
	c.Put(ctx, "fresh", domain.ResolutionResult{})

	assert.Equal(t, 1, c.CleanExpired())
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(ctx, "fresh")
	assert.True(t, ok)
}
