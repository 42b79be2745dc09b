package refcatalog

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Definitions is the YAML shape of the reference catalog: the known set
// names, parallel names and insert-line names the parser recognizes.
type Definitions struct {
	Sets      []SetDef     `yaml:"sets"`
	Parallels ParallelDefs `yaml:"parallels"`
	Inserts   InsertDefs   `yaml:"inserts"`
}

// SetDef declares one known card set. Aliases are alternative spellings that
// normalize to Name.
type SetDef struct {
	Name    string   `yaml:"name"`
	Sport   string   `yaml:"sport"`
	Aliases []string `yaml:"aliases,omitempty"`
}

// ParallelDefs declares parallel naming. SimpleColors are one-word color
// parallels; Compound are multi-word parallel names kept verbatim.
// ColorSuffixes are brand words that may trail a simple color without
// changing its identity ("Orange Prizm" is the "orange" parallel).
type ParallelDefs struct {
	SimpleColors  []string `yaml:"simple_colors"`
	Compound      []string `yaml:"compound"`
	ColorSuffixes []string `yaml:"color_suffixes"`
}

// InsertDefs declares insert-line naming, same two-tier strategy as
// parallels.
type InsertDefs struct {
	Simple   []string `yaml:"simple"`
	Compound []string `yaml:"compound"`
}

type setPattern struct {
	pattern string // lowercase text to look for
	name    string // canonical set name
	sport   string
	re      *regexp.Regexp
}

type phrasePattern struct {
	phrase string
	re     *regexp.Regexp
}

// Catalog is the loaded reference catalog. Read-only after load; safe for
// concurrent use.
type Catalog struct {
	sets              []setPattern
	simpleColors      map[string]struct{}
	simpleColorList   []phrasePattern
	compoundParallels []phrasePattern
	colorSuffixes     []string
	simpleInserts     []phrasePattern
	compoundInserts   []phrasePattern
}

// Load reads and validates a reference catalog definition file. A load
// failure must abort start-up; running with a degraded parser is worse than
// not running.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference catalog: %w", err)
	}

	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse reference catalog: %w", err)
	}

	cat, err := New(defs)
	if err != nil {
		return nil, fmt.Errorf("invalid reference catalog %s: %w", path, err)
	}

	log.Info().
		Str("component", "refcatalog").
		Int("sets", len(cat.sets)).
		Int("simple_colors", len(cat.simpleColors)).
		Int("compound_parallels", len(cat.compoundParallels)).
		Msg("reference catalog loaded")
	return cat, nil
}

// New builds a catalog from in-memory definitions. Patterns are ordered
// longest-first so that compound names are always tried before any prefix
// they contain; that ordering is a correctness invariant, not a performance
// detail.
func New(defs Definitions) (*Catalog, error) {
	if len(defs.Sets) == 0 {
		return nil, fmt.Errorf("no sets defined")
	}
	if len(defs.Parallels.SimpleColors) == 0 {
		return nil, fmt.Errorf("no simple colors defined")
	}

	c := &Catalog{
		simpleColors: make(map[string]struct{}),
	}

	for _, s := range defs.Sets {
		name := normalize(s.Name)
		if name == "" {
			return nil, fmt.Errorf("set with empty name")
		}
		c.sets = append(c.sets, setPattern{pattern: name, name: name, sport: normalize(s.Sport), re: wordRe(name)})
		for _, alias := range s.Aliases {
			a := normalize(alias)
			if a == "" {
				continue
			}
			c.sets = append(c.sets, setPattern{pattern: a, name: name, sport: normalize(s.Sport), re: wordRe(a)})
		}
	}
	sort.SliceStable(c.sets, func(i, j int) bool {
		return len(c.sets[i].pattern) > len(c.sets[j].pattern)
	})

	for _, color := range defs.Parallels.SimpleColors {
		cl := normalize(color)
		if strings.Contains(cl, " ") {
			return nil, fmt.Errorf("simple color %q must be a single word", color)
		}
		c.simpleColors[cl] = struct{}{}
		c.simpleColorList = append(c.simpleColorList, phrasePattern{phrase: cl, re: wordRe(cl)})
	}
	for _, p := range defs.Parallels.Compound {
		cp := normalize(p)
		if !strings.Contains(cp, " ") {
			return nil, fmt.Errorf("compound parallel %q must be multi-word", p)
		}
		c.compoundParallels = append(c.compoundParallels, phrasePattern{phrase: cp, re: wordRe(cp)})
	}
	sort.SliceStable(c.compoundParallels, func(i, j int) bool {
		return len(c.compoundParallels[i].phrase) > len(c.compoundParallels[j].phrase)
	})

	for _, s := range defs.Parallels.ColorSuffixes {
		c.colorSuffixes = append(c.colorSuffixes, normalize(s))
	}

	for _, in := range defs.Inserts.Simple {
		il := normalize(in)
		c.simpleInserts = append(c.simpleInserts, phrasePattern{phrase: il, re: wordRe(il)})
	}
	for _, in := range defs.Inserts.Compound {
		il := normalize(in)
		c.compoundInserts = append(c.compoundInserts, phrasePattern{phrase: il, re: wordRe(il)})
	}
	sort.SliceStable(c.compoundInserts, func(i, j int) bool {
		return len(c.compoundInserts[i].phrase) > len(c.compoundInserts[j].phrase)
	})

	return c, nil
}

// MatchSet finds the first known set name contained in text. Compound names
// win over their prefixes because patterns are ordered longest-first.
func (c *Catalog) MatchSet(text string) (name, sport string, ok bool) {
	lower := normalize(text)
	for _, s := range c.sets {
		if s.re.MatchString(lower) {
			return s.name, s.sport, true
		}
	}
	return "", "", false
}

// MatchParallel finds a parallel name in text. Compound parallels are
// checked first, longest-first, so "blue velocity" is never shadowed by
// "blue". A matched compound is returned verbatim; a matched simple color is
// returned in its normalized one-word form even when suffixed with a brand
// word ("Orange Prizm" -> "orange").
func (c *Catalog) MatchParallel(text string) (string, bool) {
	lower := normalize(text)
	for _, p := range c.compoundParallels {
		if p.re.MatchString(lower) {
			return p.phrase, true
		}
	}
	for _, p := range c.simpleColorList {
		if p.re.MatchString(lower) {
			return p.phrase, true
		}
	}
	return "", false
}

// MatchInsert finds an insert-line name in text, compound names first.
func (c *Catalog) MatchInsert(text string) (string, bool) {
	lower := normalize(text)
	for _, p := range c.compoundInserts {
		if p.re.MatchString(lower) {
			return p.phrase, true
		}
	}
	for _, p := range c.simpleInserts {
		if p.re.MatchString(lower) {
			return p.phrase, true
		}
	}
	return "", false
}

// IsSimpleColor reports whether s names a known one-word color parallel.
func (c *Catalog) IsSimpleColor(s string) bool {
	_, ok := c.simpleColors[normalize(s)]
	return ok
}

// ReduceColor lowers and trims s, and strips one trailing brand suffix when
// doing so yields a known simple color ("Orange Refractor" -> "orange").
// Compound parallel names are returned unchanged apart from normalization;
// their stored value is never suffix-stripped.
func (c *Catalog) ReduceColor(s string) string {
	n := normalize(s)
	if _, ok := c.simpleColors[n]; ok {
		return n
	}
	for _, suffix := range c.colorSuffixes {
		trimmed := strings.TrimSuffix(n, " "+suffix)
		if trimmed != n {
			if _, ok := c.simpleColors[trimmed]; ok {
				return trimmed
			}
		}
	}
	return n
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func wordRe(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
}
