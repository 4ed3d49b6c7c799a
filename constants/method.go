package constants

// AcquisitionMethod records how a page's text was obtained.
type AcquisitionMethod string

// Stable values (these exact strings appear in logs and results).
const (
	AcquisitionDirect AcquisitionMethod = "direct" // text layer extracted from the page
	AcquisitionOCR    AcquisitionMethod = "ocr"    // page rendered and recognized
)

// MatchMethod records which strategy identified a page.
type MatchMethod string

const (
	MatchExact MatchMethod = "exact" // roster name found verbatim in page text
	MatchFuzzy MatchMethod = "fuzzy" // token-set similarity at or above threshold
	MatchNone  MatchMethod = "none"  // no roster entry met the criteria
)

// UnknownIdentity is the sentinel returned for pages no roster entry
// matched. It never reaches output filenames.
const UnknownIdentity = "UNKNOWN"
