package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/slabwatch/slabwatch/internal/domain"
	"github.com/slabwatch/slabwatch/internal/refcatalog"
)

// Seller aspect names seen across marketplaces, checked in order.
var (
	aspectYearKeys     = []string{"Year", "Season", "Year Manufactured"}
	aspectSetKeys      = []string{"Set", "Product", "Product Line"}
	aspectNumberKeys   = []string{"Card Number", "Card #", "Number"}
	aspectParallelKeys = []string{"Parallel/Variety", "Parallel", "Variety", "Insert Set"}
	aspectSportKeys    = []string{"Sport"}
	aspectGraderKeys   = []string{"Professional Grader", "Grader", "Grading Authority"}
	aspectGradeKeys    = []string{"Grade", "Card Grade"}
)

var gradeRe = regexp.MustCompile(`(?i)\b(PSA|BGS|SGC|CGC)\s*(10|[1-9](?:\.5)?)\b`)

// FromAspects builds a partial identity from seller-supplied structured
// aspects. Aspect values are seller-typed, not verified; they rank below a
// certificate lookup and above the title parse.
func FromAspects(aspects map[string]string, cat *refcatalog.Catalog) domain.CardIdentity {
	id := domain.CardIdentity{}
	if len(aspects) == 0 {
		return id
	}

	if v := firstAspect(aspects, aspectYearKeys); v != "" {
		if m := yearRe.FindString(v); m != "" {
			id.Year = atoi4(m)
		}
	}
	if v := firstAspect(aspects, aspectSetKeys); v != "" {
		if name, sport, ok := cat.MatchSet(v); ok {
			id.SetName = name
			id.Sport = sport
		} else {
			id.SetName = strings.ToLower(strings.TrimSpace(v))
		}
	}
	if v := firstAspect(aspects, aspectNumberKeys); v != "" {
		id.CardNumber = NormalizeCardNumber(v)
	}
	if v := firstAspect(aspects, aspectParallelKeys); v != "" {
		// An aspect value that reduces to a known simple color is stored in
		// its one-word form; anything else is kept verbatim.
		id.Parallel = cat.ReduceColor(v)
		if in, ok := cat.MatchInsert(v); ok && id.Parallel == strings.ToLower(strings.TrimSpace(v)) {
			id.InsertLine = in
			id.Parallel = ""
		}
	}
	if v := firstAspect(aspects, aspectSportKeys); v != "" {
		id.Sport = strings.ToLower(strings.TrimSpace(v))
	}
	for _, v := range aspects {
		if autoRe.MatchString(v) {
			id.IsAutograph = true
			break
		}
	}
	return id
}

// FromCertificate converts a grading-authority certificate record into an
// identity signal. The record's set naming goes through the same catalog
// recognition as listing titles so both sides normalize identically.
func FromCertificate(rec domain.CertificateRecord, cat *refcatalog.Catalog) domain.CardIdentity {
	id := domain.CardIdentity{
		Year:       rec.Year,
		CardNumber: NormalizeCardNumber(rec.CardNumber),
	}
	if name, sport, ok := cat.MatchSet(rec.SetName); ok {
		id.SetName = name
		id.Sport = sport
	} else {
		id.SetName = strings.ToLower(strings.TrimSpace(rec.SetName))
	}
	if rec.Variety != "" {
		if p, ok := cat.MatchParallel(rec.Variety); ok {
			id.Parallel = p
		} else {
			id.Parallel = cat.ReduceColor(rec.Variety)
		}
		if in, ok := cat.MatchInsert(rec.Variety); ok {
			id.InsertLine = in
			if id.Parallel == in {
				id.Parallel = ""
			}
		}
		if autoRe.MatchString(rec.Variety) {
			id.IsAutograph = true
		}
	}
	return id
}

// GradeFromTitle extracts authority and numeric grade from listing text.
// Ungraded text yields the zero GradeInfo.
func GradeFromTitle(text string) domain.GradeInfo {
	if m := gradeRe.FindStringSubmatch(text); m != nil {
		grade, _ := strconv.ParseFloat(m[2], 64)
		return domain.GradeInfo{
			Authority:    strings.ToUpper(m[1]),
			NumericGrade: grade,
			RawLabel:     m[0],
		}
	}
	upper := strings.ToUpper(text)
	if strings.Contains(upper, "GEM MINT 10") || strings.Contains(upper, "GEM MT 10") {
		return domain.GradeInfo{RawLabel: "gem mint 10"}
	}
	return domain.GradeInfo{}
}

// GradeFromAspects extracts grade info from seller aspects.
func GradeFromAspects(aspects map[string]string) domain.GradeInfo {
	g := domain.GradeInfo{}
	if v := firstAspect(aspects, aspectGraderKeys); v != "" {
		g.Authority = strings.ToUpper(strings.TrimSpace(v))
	}
	if v := firstAspect(aspects, aspectGradeKeys); v != "" {
		g.RawLabel = v
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			g.NumericGrade = f
		} else if m := gradeRe.FindStringSubmatch(v); m != nil {
			if g.Authority == "" {
				g.Authority = strings.ToUpper(m[1])
			}
			g.NumericGrade, _ = strconv.ParseFloat(m[2], 64)
		}
	}
	return g
}

func firstAspect(aspects map[string]string, keys []string) string {
	for _, k := range keys {
		if v, ok := aspects[k]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
