// Package parse turns noisy free-text naming into partial card identities.
// All parsers are pure functions over the loaded reference catalog: they
// never error, and fields that cannot be determined stay zero-valued. The
// reconciler decides whether a partial identity is sufficient.
package parse

import (
	"regexp"
	"strings"

	"github.com/slabwatch/slabwatch/internal/domain"
	"github.com/slabwatch/slabwatch/internal/refcatalog"
)

var (
	yearRe = regexp.MustCompile(`\b(19[89][0-9]|20[0-2][0-9])\b`)

	// Card number patterns in priority order; first match wins.
	numberRes = []*regexp.Regexp{
		regexp.MustCompile(`#\s*([A-Za-z]{0,3}-?\d+[A-Za-z]{0,2})\b`),
		regexp.MustCompile(`(?i)\bno\.?\s*(\d+)\b`),
		regexp.MustCompile(`(?i)\bcard\s*#?\s*(\d+)\b`),
		regexp.MustCompile(`\b(\d{1,4})\s*/\s*\d{1,4}\b`), // numbered parallel notation
	}

	// Fixed autograph token set.
	autoRe = regexp.MustCompile(`(?i)\b(autograph|auto|signed)\b`)

	sportWords = []string{"basketball", "football", "baseball", "hockey", "soccer"}
)

// Title extracts a partial identity from a listing title. Each stage is
// independent; a stage that finds nothing leaves its field zero.
func Title(text string, cat *refcatalog.Catalog) domain.CardIdentity {
	id := domain.CardIdentity{}

	if m := yearRe.FindString(text); m != "" {
		id.Year = atoi4(m)
	}
	id.CardNumber = matchNumber(text)
	if name, sport, ok := cat.MatchSet(text); ok {
		id.SetName = name
		id.Sport = sport
	}
	if p, ok := cat.MatchParallel(text); ok {
		id.Parallel = p
	}
	if in, ok := cat.MatchInsert(text); ok {
		id.InsertLine = in
	}
	id.IsAutograph = autoRe.MatchString(text)

	return id
}

// Product extracts an identity from a catalog-side console/product name
// pair. The console name carries sport, year and usually the set; the
// product name carries card number, parallel and insert naming.
func Product(consoleName, productName string, cat *refcatalog.Catalog) domain.CardIdentity {
	console := strings.ReplaceAll(consoleName, "-", " ")
	id := domain.CardIdentity{}

	for _, w := range sportWords {
		if containsWord(console, w) {
			id.Sport = w
			break
		}
	}
	if m := yearRe.FindString(console); m != "" {
		id.Year = atoi4(m)
	} else if m := yearRe.FindString(productName); m != "" {
		id.Year = atoi4(m)
	}
	if name, sport, ok := cat.MatchSet(console); ok {
		id.SetName = name
		if id.Sport == "" {
			id.Sport = sport
		}
	} else if name, sport, ok := cat.MatchSet(productName); ok {
		id.SetName = name
		if id.Sport == "" {
			id.Sport = sport
		}
	}
	id.CardNumber = matchNumber(productName)
	if p, ok := cat.MatchParallel(productName); ok {
		id.Parallel = p
	}
	if in, ok := cat.MatchInsert(productName); ok {
		id.InsertLine = in
	}
	id.IsAutograph = autoRe.MatchString(productName)

	return id
}

// NormalizeCardNumber lowercases and strips leading zeros so "087" and "87"
// compare equal as card numbers.
func NormalizeCardNumber(num string) string {
	n := strings.ToLower(strings.TrimSpace(num))
	n = strings.TrimPrefix(n, "#")
	trimmed := strings.TrimLeft(n, "0")
	if trimmed == "" && n != "" {
		return "0"
	}
	return trimmed
}

func matchNumber(text string) string {
	for _, re := range numberRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return NormalizeCardNumber(m[1])
		}
	}
	return ""
}

func containsWord(text, word string) bool {
	lower := strings.ToLower(text)
	idx := 0
	for {
		i := strings.Index(lower[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isAlnum(lower[start-1])
		afterOK := end == len(lower) || !isAlnum(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

func atoi4(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
