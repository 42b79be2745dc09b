// Package reconcile merges identity signals from multiple sources into one
// canonical identity. Priority is per-field, not per-record: a certificate
// lookup that knows the parallel but not the card number still loses the
// card-number field to a lower-priority signal that has it.
package reconcile

import (
	"github.com/slabwatch/slabwatch/internal/domain"
)

// Signals are the identity signals available for one listing, nil when the
// source produced nothing. Priority order, highest first: certificate lookup
// (verified ground truth), seller structured aspects, title parse,
// OCR-derived certificate lookup.
type Signals struct {
	Certificate    *domain.CardIdentity
	SellerAspects  *domain.CardIdentity
	TitleParse     domain.CardIdentity
	OCRCertificate *domain.CardIdentity
}

type rankedSignal struct {
	identity    domain.CardIdentity
	certificate bool // backed by a grading-authority database record
}

// Reconcile merges the signals field by field. Confidence is very-high when
// a certificate lookup contributed any field, high when only unverified
// signals contributed and the required fields resolved, and none otherwise.
func Reconcile(s Signals) (domain.CardIdentity, domain.Confidence) {
	ordered := make([]rankedSignal, 0, 4)
	if s.Certificate != nil {
		ordered = append(ordered, rankedSignal{identity: *s.Certificate, certificate: true})
	}
	if s.SellerAspects != nil {
		ordered = append(ordered, rankedSignal{identity: *s.SellerAspects})
	}
	ordered = append(ordered, rankedSignal{identity: s.TitleParse})
	if s.OCRCertificate != nil {
		// The OCR path to a certificate is the least trustworthy, so it
		// ranks below even the title parse; its record is still
		// authority-verified once found.
		ordered = append(ordered, rankedSignal{identity: *s.OCRCertificate, certificate: true})
	}

	var id domain.CardIdentity
	certContributed := false
	anyContributed := false

	for _, sig := range ordered {
		contributed := false
		if id.Year == 0 && sig.identity.Year != 0 {
			id.Year = sig.identity.Year
			contributed = true
		}
		if id.SetName == "" && sig.identity.SetName != "" {
			id.SetName = sig.identity.SetName
			contributed = true
		}
		if id.CardNumber == "" && sig.identity.CardNumber != "" {
			id.CardNumber = sig.identity.CardNumber
			contributed = true
		}
		if id.Parallel == "" && sig.identity.Parallel != "" {
			id.Parallel = sig.identity.Parallel
			contributed = true
		}
		if id.InsertLine == "" && sig.identity.InsertLine != "" {
			id.InsertLine = sig.identity.InsertLine
			contributed = true
		}
		if id.Sport == "" && sig.identity.Sport != "" {
			id.Sport = sig.identity.Sport
			contributed = true
		}
		if sig.identity.IsAutograph && !id.IsAutograph {
			id.IsAutograph = true
			contributed = true
		}
		if contributed {
			anyContributed = true
			if sig.certificate {
				certContributed = true
			}
		}
	}

	switch {
	case certContributed:
		return id, domain.ConfidenceVeryHigh
	case anyContributed && id.Complete():
		return id, domain.ConfidenceHigh
	default:
		return id, domain.ConfidenceNone
	}
}
