package catalog

// FailureKind classifies why a batch item was not ingested.
type FailureKind string

const (
	// IdentifierFailure means a corpus directory name is not an identifier.
	IdentifierFailure FailureKind = "identifier"

	// ParseFailure means the metadata graph could not be read.
	ParseFailure FailureKind = "parse"

	// ConstraintFailure means the record could not be reconciled with the
	// store.
	ConstraintFailure FailureKind = "constraint"

	// CacheFailure means a parsed record could not be written to the
	// intermediate cache.
	CacheFailure FailureKind = "cache"

	// StoreFailure covers any other error returned by the store.
	StoreFailure FailureKind = "store"
)

// Failure describes one batch item that was skipped.
type Failure struct {
	// Item is the corpus directory name. For valid identifiers it is the
	// identifier itself.
	Item string `json:"item" yaml:"item"`

	// ID is the book identifier, 0 when the directory name is not one.
	ID int `json:"id" yaml:"id"`

	Kind   FailureKind `json:"kind" yaml:"kind"`
	Reason string      `json:"reason" yaml:"reason"`
}

// Report summarizes a batch run.
type Report struct {
	// Processed is the number of corpus directories visited.
	Processed int `json:"processed" yaml:"processed"`

	// Succeeded is the number of books applied to the store.
	Succeeded int `json:"succeeded" yaml:"succeeded"`

	// CacheHits is the number of records taken from the intermediate cache.
	CacheHits int `json:"cache_hits" yaml:"cache_hits"`

	// Failures lists skipped items sorted by identifier.
	Failures []Failure `json:"failures" yaml:"failures"`
}

// HasFailures returns true if at least one item failed.
func (r *Report) HasFailures() bool {
	return len(r.Failures) > 0
}

// FailuresOf returns failures of a given kind.
func (r *Report) FailuresOf(kind FailureKind) []Failure {
	var res []Failure
	for _, v := range r.Failures {
		if v.Kind == kind {
			res = append(res, v)
		}
	}
	return res
}
