package schema

import "errors"

// Validation errors returned by the pipeline. They are wrapped with context,
// so callers should match them with errors.Is.
var (
	ErrInvalidColumn       = errors.New("invalid column")
	ErrInvalidGranularity  = errors.New("invalid granularity")
	ErrInvalidAggregator   = errors.New("invalid aggregator")
	ErrMissingWeightColumn = errors.New("missing weight column")
	ErrIncompatibleOptions = errors.New("incompatible options")
	ErrAggregatorRequired  = errors.New("aggregator required")
)
