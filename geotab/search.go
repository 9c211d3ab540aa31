package geotab

import (
	jsoniter "github.com/json-iterator/go"
)

// Search holds the filter conditions for one query against the API.
//
// It is an immutable value: Where never mutates the receiver but returns a
// derived Search with the merged conditions. This allows a Search to be
// threaded through chained calls and shared between goroutines without any
// synchronization, and a terminal call can never leak conditions into an
// unrelated query.
type Search struct {
	conditions map[string]any
}

// NewSearch creates an empty Search matching all records of a type.
func NewSearch() Search {
	return Search{}
}

// Where returns a derived Search with the given conditions shallow-merged
// into the existing ones. Later keys overwrite earlier ones; nested values
// are replaced, not deep-merged. Where is chainable and never fails.
func (s Search) Where(conditions map[string]any) Search {
	merged := make(map[string]any, len(s.conditions)+len(conditions))

	for key, value := range s.conditions {
		merged[key] = value
	}

	for key, value := range conditions {
		merged[key] = value
	}

	return Search{conditions: merged}
}

// Conditions returns a copy of the accumulated conditions.
func (s Search) Conditions() map[string]any {
	conditions := make(map[string]any, len(s.conditions))

	for key, value := range s.conditions {
		conditions[key] = value
	}

	return conditions
}

// IsEmpty reports whether no conditions have been accumulated.
func (s Search) IsEmpty() bool {
	return len(s.conditions) == 0
}

// MarshalJSON serializes the conditions as the API's search parameter.
// An empty Search serializes as an empty JSON object.
func (s Search) MarshalJSON() ([]byte, error) {
	if len(s.conditions) == 0 {
		return []byte("{}"), nil
	}

	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(s.conditions)
}
