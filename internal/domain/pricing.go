package domain

// PriceByTier holds catalog prices in cents per grade bucket. Zero means no
// data for that bucket.
type PriceByTier struct {
	LooseCents   int64 `json:"loose_cents" db:"loose_cents"`
	Grade8Cents  int64 `json:"grade8_cents" db:"grade8_cents"`
	Grade9Cents  int64 `json:"grade9_cents" db:"grade9_cents"`
	Grade10Cents int64 `json:"grade10_cents" db:"grade10_cents"`
}

// At returns the price at the given tier.
func (p PriceByTier) At(tier PriceTier) int64 {
	switch tier {
	case TierGrade10:
		return p.Grade10Cents
	case TierGrade9:
		return p.Grade9Cents
	case TierGrade8:
		return p.Grade8Cents
	default:
		return p.LooseCents
	}
}

// CatalogEntry is one priced product record from the local price catalog.
type CatalogEntry struct {
	ConsoleName    string       `json:"console_name"`
	ProductName    string       `json:"product_name"`
	ParsedIdentity CardIdentity `json:"parsed_identity"`
	Prices         PriceByTier  `json:"prices"`
	ProductURL     string       `json:"product_url,omitempty"`
}

// CatalogProduct is one ranked result from the external catalog API, before
// its naming has been parsed into an identity.
type CatalogProduct struct {
	ConsoleName string      `json:"console_name"`
	ProductName string      `json:"product_name"`
	Prices      PriceByTier `json:"prices"`
	ProductURL  string      `json:"product_url,omitempty"`
}

// QuoteSource identifies which price source produced a quote.
type QuoteSource string

const (
	SourceCertAuthority QuoteSource = "certificate-authority"
	SourceLocalCatalog  QuoteSource = "local-catalog"
	SourceExternalAPI   QuoteSource = "external-catalog-api"
	SourceScrapedSales  QuoteSource = "scraped-sales"
)

// PriceQuote is a verified market value for one identity+grade. Immutable
// once produced.
type PriceQuote struct {
	ValueCents         int64       `json:"value_cents"`
	Source             QuoteSource `json:"source"`
	SourceURL          string      `json:"source_url,omitempty"`
	MatchedDescription string      `json:"matched_description"`
	Confidence         Confidence  `json:"confidence"`
}
