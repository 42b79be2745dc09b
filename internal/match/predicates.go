// Package match holds the strict candidate-matching rules used by every
// price source. Each rule is an independent predicate; a candidate matches
// only when all of them pass. A false positive here turns into a false
// "deal" downstream, so every rule errs toward rejecting.
package match

import (
	"strings"

	"github.com/slabwatch/slabwatch/internal/domain"
	"github.com/slabwatch/slabwatch/internal/parse"
)

// Predicate checks one field of a candidate identity against the wanted
// identity.
type Predicate struct {
	Name  string
	Check func(want, got domain.CardIdentity) bool
}

// Result reports a full evaluation: pass/fail plus which predicates failed,
// for audit logging.
type Result struct {
	Matched bool
	Failed  []string
}

// Evaluator evaluates the full predicate chain.
type Evaluator struct {
	predicates []Predicate
}

// NewEvaluator builds the canonical predicate chain.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		predicates: []Predicate{
			{Name: "year", Check: yearEqual},
			{Name: "set", Check: setEqual},
			{Name: "card_number", Check: numberEqual},
			{Name: "sport", Check: sportCompatible},
			{Name: "parallel", Check: ParallelsMatch},
			{Name: "insert_line", Check: insertEqual},
			{Name: "autograph", Check: autographEqual},
		},
	}
}

// Evaluate runs every predicate; all must pass.
func (e *Evaluator) Evaluate(want, got domain.CardIdentity) Result {
	res := Result{Matched: true}
	for _, p := range e.predicates {
		if !p.Check(want, got) {
			res.Matched = false
			res.Failed = append(res.Failed, p.Name)
		}
	}
	return res
}

// yearEqual requires exact equality. No ±1 season tolerance: season-spanning
// names ("2019-20") normalize to their first year at parse time on both
// sides, so both sides already agree without a tolerance window.
func yearEqual(want, got domain.CardIdentity) bool {
	return want.Year == got.Year
}

func setEqual(want, got domain.CardIdentity) bool {
	return strings.EqualFold(strings.TrimSpace(want.SetName), strings.TrimSpace(got.SetName))
}

func numberEqual(want, got domain.CardIdentity) bool {
	return parse.NormalizeCardNumber(want.CardNumber) == parse.NormalizeCardNumber(got.CardNumber)
}

// sportCompatible requires equality when both sides know their sport. A
// candidate whose sport is unknown is not rejected on sport alone; the
// remaining fields still have to line up exactly.
func sportCompatible(want, got domain.CardIdentity) bool {
	if want.Sport == "" || got.Sport == "" {
		return true
	}
	return strings.EqualFold(want.Sport, got.Sport)
}

// ParallelsMatch is the canonical parallel rule: two base cards match, base
// never matches a parallel, and named parallels must be equal after
// lowercase+trim. No suffix stripping and no partial containment — "orange"
// and "orange prizm" are distinct identities by the time they reach this
// rule, because color-suffix reduction already happened during parsing.
func ParallelsMatch(want, got domain.CardIdentity) bool {
	a := normalizeParallel(want.Parallel)
	b := normalizeParallel(got.Parallel)
	if a == "" && b == "" {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	return a == b
}

// insertEqual disqualifies on any insert-line mismatch, including one side
// naming an insert the other lacks.
func insertEqual(want, got domain.CardIdentity) bool {
	return strings.EqualFold(strings.TrimSpace(want.InsertLine), strings.TrimSpace(got.InsertLine))
}

func autographEqual(want, got domain.CardIdentity) bool {
	return want.IsAutograph == got.IsAutograph
}

func normalizeParallel(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}
