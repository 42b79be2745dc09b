package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slabwatch/slabwatch/internal/domain"
)

func titleSignal() domain.CardIdentity {
	return domain.CardIdentity{
		Sport:      "basketball",
		Year:       2019,
		SetName:    "hoops premium stock",
		CardNumber: "87",
		Parallel:   "purple",
	}
}

func TestReconcile_CertificateWinsPerField(t *testing.T) {
	cert := domain.CardIdentity{
		Year:       2019,
		SetName:    "hoops premium stock",
		CardNumber: "87",
		Parallel:   "purple pulsar",
	}

	id, confidence := Reconcile(Signals{
		Certificate: &cert,
		TitleParse:  titleSignal(),
	})

	// The certificate's parallel beats the conflicting title parse.
	assert.Equal(t, "purple pulsar", id.Parallel)
	assert.Equal(t, domain.ConfidenceVeryHigh, confidence)
	// Fields the certificate lacks still fill from lower signals.
	assert.Equal(t, "basketball", id.Sport)
}

func TestReconcile_AspectsBeatTitle(t *testing.T) {
	aspects := domain.CardIdentity{Parallel: "blue velocity"}

	id, confidence := Reconcile(Signals{
		SellerAspects: &aspects,
		TitleParse:    titleSignal(),
	})

	assert.Equal(t, "blue velocity", id.Parallel)
	assert.Equal(t, 2019, id.Year)
	assert.Equal(t, domain.ConfidenceHigh, confidence)
}

func TestReconcile_TitleOnly(t *testing.T) {
	id, confidence := Reconcile(Signals{TitleParse: titleSignal()})
	assert.Equal(t, titleSignal(), id)
	assert.Equal(t, domain.ConfidenceHigh, confidence)
}

func TestReconcile_OCRCertificateRanksLast(t *testing.T) {
	ocr := domain.CardIdentity{
		Year:       2019,
		SetName:    "hoops premium stock",
		CardNumber: "87",
		Parallel:   "purple pulsar",
	}

	// Title already names a parallel; the lower-ranked OCR signal cannot
	// override it, and with nothing contributed the certificate confidence
	// does not apply.
	title := titleSignal()
	id, confidence := Reconcile(Signals{
		TitleParse:     title,
		OCRCertificate: &ocr,
	})
	assert.Equal(t, "purple", id.Parallel)
	assert.Equal(t, domain.ConfidenceHigh, confidence)

	// When the title has gaps the OCR certificate fills them and its
	// authority-verified record lifts confidence.
	title.Parallel = ""
	id, confidence = Reconcile(Signals{
		TitleParse:     title,
		OCRCertificate: &ocr,
	})
	assert.Equal(t, "purple pulsar", id.Parallel)
	assert.Equal(t, domain.ConfidenceVeryHigh, confidence, "an OCR-found certificate is still authority-verified")
}

func TestReconcile_NothingResolves(t *testing.T) {
	id, confidence := Reconcile(Signals{TitleParse: domain.CardIdentity{}})
	assert.Equal(t, domain.CardIdentity{}, id)
	assert.Equal(t, domain.ConfidenceNone, confidence)
}

func TestReconcile_IncompleteIsNone(t *testing.T) {
	_, confidence := Reconcile(Signals{TitleParse: domain.CardIdentity{Year: 2019}})
	assert.Equal(t, domain.ConfidenceNone, confidence)
}

func TestReconcile_AutographFromAnySignal(t *testing.T) {
	aspects := domain.CardIdentity{IsAutograph: true}
	id, _ := Reconcile(Signals{
		SellerAspects: &aspects,
		TitleParse:    titleSignal(),
	})
	assert.True(t, id.IsAutograph)
}
