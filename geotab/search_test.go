package geotab_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telematics-hq/mygeotab-go/geotab"
)

func Test_Search_WhereMergesInCallOrder(t *testing.T) {
	tests := []struct {
		name     string
		build    func() geotab.Search
		expected map[string]any
	}{
		{
			name: "empty_search_has_no_conditions",
			build: func() geotab.Search {
				return geotab.NewSearch()
			},
			expected: map[string]any{},
		},
		{
			name: "single_where_keeps_all_pairs",
			build: func() geotab.Search {
				return geotab.NewSearch().
					Where(map[string]any{"name": "truck-7", "serialNumber": "G7XXX"})
			},
			expected: map[string]any{"name": "truck-7", "serialNumber": "G7XXX"},
		},
		{
			name: "chained_where_accumulates",
			build: func() geotab.Search {
				return geotab.NewSearch().
					Where(map[string]any{"name": "truck-7"}).
					Where(map[string]any{"serialNumber": "G7XXX"})
			},
			expected: map[string]any{"name": "truck-7", "serialNumber": "G7XXX"},
		},
		{
			name: "later_keys_overwrite_earlier_ones",
			build: func() geotab.Search {
				return geotab.NewSearch().
					Where(map[string]any{"name": "truck-7", "id": "b1"}).
					Where(map[string]any{"id": "b2775"})
			},
			expected: map[string]any{"name": "truck-7", "id": "b2775"},
		},
		{
			name: "nested_values_are_replaced_not_deep_merged",
			build: func() geotab.Search {
				return geotab.NewSearch().
					Where(map[string]any{"device": map[string]any{"id": "b1", "name": "x"}}).
					Where(map[string]any{"device": map[string]any{"id": "b2"}})
			},
			expected: map[string]any{"device": map[string]any{"id": "b2"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			search := tc.build()
			assert.Equal(t, tc.expected, search.Conditions())
		})
	}
}

func Test_Search_WhereDoesNotMutateTheReceiver(t *testing.T) {
	base := geotab.NewSearch().Where(map[string]any{"name": "truck-7"})

	derived := base.Where(map[string]any{"name": "overwritten", "id": "b2775"})

	assert.Equal(t, map[string]any{"name": "truck-7"}, base.Conditions())
	assert.Equal(t, map[string]any{"name": "overwritten", "id": "b2775"}, derived.Conditions())
}

func Test_Search_ConditionsReturnsACopy(t *testing.T) {
	search := geotab.NewSearch().Where(map[string]any{"name": "truck-7"})

	conditions := search.Conditions()
	conditions["name"] = "mutated"

	assert.Equal(t, map[string]any{"name": "truck-7"}, search.Conditions())
}

func Test_Search_IsEmpty(t *testing.T) {
	assert.True(t, geotab.NewSearch().IsEmpty())
	assert.False(t, geotab.NewSearch().Where(map[string]any{"id": "b1"}).IsEmpty())
}

func Test_Search_MarshalJSON(t *testing.T) {
	t.Run("empty_search_serializes_as_empty_object", func(t *testing.T) {
		serialized, marshalErr := json.Marshal(geotab.NewSearch())
		require.NoError(t, marshalErr)
		assert.JSONEq(t, `{}`, string(serialized))
	})

	t.Run("conditions_serialize_as_the_search_parameter", func(t *testing.T) {
		search := geotab.NewSearch().
			Where(map[string]any{"name": "%truck%"}).
			Where(map[string]any{"groups": []map[string]any{{"id": "b2775"}}})

		serialized, marshalErr := json.Marshal(search)
		require.NoError(t, marshalErr)
		assert.JSONEq(t, `{"name":"%truck%","groups":[{"id":"b2775"}]}`, string(serialized))
	})
}
