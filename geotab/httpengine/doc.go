// Package httpengine implements the HTTP dispatch engine for the MyGeotab
// JSON API.
//
// A Client translates terminal query calls (Get, First, Find, GetFeed)
// into exactly one synchronous HTTP POST of a JSON request envelope to
// https://<server>/apiv1, decodes the response's success/error union, and
// classifies server faults into geotab.CredentialsError and geotab.APIError.
//
// There are no retries, no caching, and no protocol state: every call
// builds a fresh envelope from the immutable geotab.Search it is given.
//
// Common usage pattern:
//
//	client, err := httpengine.NewClient(
//		connection,
//		httpengine.WithTimeout(30*time.Second),
//		httpengine.WithLogger(logger),
//	)
//	if err != nil {
//		// handle error
//	}
//
//	devices, err := httpengine.Get[entities.Device](ctx, client, search)
package httpengine
