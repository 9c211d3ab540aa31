package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SearchFromConditions(t *testing.T) {
	t.Run("parses_repeated_conditions_in_flag_order", func(t *testing.T) {
		search, parseErr := searchFromConditions([]string{"name=%truck%", "id=b1", "id=b2775"})

		require.NoError(t, parseErr)
		assert.Equal(t, map[string]any{"name": "%truck%", "id": "b2775"}, search.Conditions())
	})

	t.Run("allows_values_containing_equals_signs", func(t *testing.T) {
		search, parseErr := searchFromConditions([]string{"comment=a=b"})

		require.NoError(t, parseErr)
		assert.Equal(t, map[string]any{"comment": "a=b"}, search.Conditions())
	})

	t.Run("rejects_conditions_without_a_key", func(t *testing.T) {
		_, parseErr := searchFromConditions([]string{"=value"})
		assert.ErrorIs(t, parseErr, errMalformedCondition)

		_, noSeparatorErr := searchFromConditions([]string{"just-a-value"})
		assert.ErrorIs(t, noSeparatorErr, errMalformedCondition)
	})

	t.Run("no_conditions_yields_an_empty_search", func(t *testing.T) {
		search, parseErr := searchFromConditions(nil)

		require.NoError(t, parseErr)
		assert.True(t, search.IsEmpty())
	})
}
