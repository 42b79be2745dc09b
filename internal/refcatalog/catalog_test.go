package refcatalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefs() Definitions {
	return Definitions{
		Sets: []SetDef{
			{Name: "prizm", Sport: "basketball", Aliases: []string{"panini prizm"}},
			{Name: "prizm draft picks", Sport: "basketball"},
			{Name: "hoops premium stock", Sport: "basketball", Aliases: []string{"panini hoops premium stock"}},
			{Name: "hoops", Sport: "basketball"},
		},
		Parallels: ParallelDefs{
			SimpleColors:  []string{"blue", "orange", "purple", "gold"},
			Compound:      []string{"blue velocity", "purple pulsar", "fast break blue"},
			ColorSuffixes: []string{"prizm", "refractor"},
		},
		Inserts: InsertDefs{
			Simple:   []string{"splash", "rainmakers"},
			Compound: []string{"get hyped"},
		},
	}
}

func TestNew_OrdersCompoundBeforePrefix(t *testing.T) {
	cat, err := New(testDefs())
	require.NoError(t, err)

	// "prizm draft picks" must never be truncated to "prizm".
	name, sport, ok := cat.MatchSet("2020 Prizm Draft Picks #45")
	require.True(t, ok)
	assert.Equal(t, "prizm draft picks", name)
	assert.Equal(t, "basketball", sport)

	name, _, ok = cat.MatchSet("2020 Panini Prizm Base")
	require.True(t, ok)
	assert.Equal(t, "prizm", name)
}

func TestMatchParallel_CompoundNotShadowedBySimple(t *testing.T) {
	cat, err := New(testDefs())
	require.NoError(t, err)

	p, ok := cat.MatchParallel("Zion Williamson Blue Velocity #1")
	require.True(t, ok)
	assert.Equal(t, "blue velocity", p)

	p, ok = cat.MatchParallel("Ja Morant Blue #2")
	require.True(t, ok)
	assert.Equal(t, "blue", p)

	_, ok = cat.MatchParallel("Ja Morant Base #2")
	assert.False(t, ok)
}

func TestMatchInsert(t *testing.T) {
	cat, err := New(testDefs())
	require.NoError(t, err)

	in, ok := cat.MatchInsert("2019 Hoops Get Hyped #GH-2")
	require.True(t, ok)
	assert.Equal(t, "get hyped", in)

	in, ok = cat.MatchInsert("2019 Prizm Splash #12")
	require.True(t, ok)
	assert.Equal(t, "splash", in)
}

func TestReduceColor(t *testing.T) {
	cat, err := New(testDefs())
	require.NoError(t, err)

	assert.Equal(t, "orange", cat.ReduceColor("Orange Prizm"))
	assert.Equal(t, "orange", cat.ReduceColor("orange refractor"))
	assert.Equal(t, "orange", cat.ReduceColor("Orange"))
	// Compound names are never suffix-stripped.
	assert.Equal(t, "purple pulsar", cat.ReduceColor("Purple Pulsar"))
	assert.Equal(t, "blue velocity", cat.ReduceColor("Blue Velocity"))
}

func TestNew_Validation(t *testing.T) {
	defs := testDefs()
	defs.Sets = nil
	_, err := New(defs)
	assert.Error(t, err)

	defs = testDefs()
	defs.Parallels.SimpleColors = []string{"light blue"}
	_, err = New(defs)
	assert.Error(t, err, "multi-word simple color must be rejected")

	defs = testDefs()
	defs.Parallels.Compound = []string{"gold"}
	_, err = New(defs)
	assert.Error(t, err, "single-word compound parallel must be rejected")
}

func TestLoad_FileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("sets: {not: a list}"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cat.yaml")
	data := `
sets:
  - name: mosaic
    sport: basketball
parallels:
  simple_colors: [green]
  compound: ["green swirl"]
  color_suffixes: [prizm]
inserts:
  simple: [epidemic]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)

	name, sport, ok := cat.MatchSet("2021 Mosaic Genesis")
	require.True(t, ok)
	assert.Equal(t, "mosaic", name)
	assert.Equal(t, "basketball", sport)
}
