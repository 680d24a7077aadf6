// Package metrics computes the business-question summaries from a filtered
// order set. Every calculator is a pure function: identical inputs yield
// identical outputs, and an empty filtered set yields an empty result, not
// an error.
package metrics

// Settings contains configurable knobs for the calculators.
type Settings struct {
	// TopCategories caps the category breakdown; the effective cut is
	// min(TopCategories, distinct category count).
	TopCategories int
}

// DefaultSettings returns the default calculator configuration.
func DefaultSettings() Settings {
	return Settings{
		TopCategories: 10,
	}
}
