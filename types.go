package formskema

// UnknownPolicy controls how unknown object keys are handled.
type UnknownPolicy int

const (
	UnknownStrip       UnknownPolicy = iota // Drop unknown keys (default).
	UnknownStrict                           // Reject unknown keys with an error.
	UnknownPassthrough                      // Copy unknown keys to the output unchanged.
)

// NumberMode dictates how numbers from a Source are materialized.
type NumberMode int

const (
	NumberJSONNumber NumberMode = iota // Preserve json.Number (default).
	NumberFloat64                      // Convert to float64 while decoding.
)

func (m NumberMode) String() string {
	if m == NumberFloat64 {
		return "float64"
	}
	return "json.Number"
}

// Severity expresses how strictly a decode-time condition is enforced.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOpt bundles options for ParseFrom / ValidateFrom.
type ParseOpt struct {
	// OnDuplicateKey selects the handling of repeated object keys in the input.
	// Ignore and Warn keep the last value; Warn also calls OnWarn. Error fails
	// the decode.
	OnDuplicateKey Severity
	MaxDepth       int   // 0 disables the depth limit.
	MaxBytes       int64 // 0 disables the size limit.
	FailFast       bool
	// OnWarn receives non-fatal decode issues.
	OnWarn func(Issue)
}
