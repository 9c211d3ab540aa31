// Package geotab provides core types for querying the Geotab MyGeotab
// JSON API.
//
// This package defines the building blocks used by the HTTP dispatch
// engine: an immutable search condition builder, type-name resolution,
// connection credentials, result entities, and the classified error
// kinds the API can report.
//
// Key types:
//   - Search: an immutable, chainable set of filter conditions
//   - Entity: one result record with its raw JSON attributes
//   - Feed: an incremental query result with the next version token
//   - CredentialsError / APIError: the two classified server fault kinds
//
// Common usage pattern:
//
//	search := geotab.NewSearch().
//		Where(map[string]any{"name": "%fleet truck%"}).
//		Where(map[string]any{"groups": []map[string]any{{"id": "b2775"}}})
//
//	devices, err := client.Get(ctx, "Device", search)
//	if err != nil {
//		// handle error
//	}
package geotab
