package httpengine

import (
	"context"

	"telematics-hq/mygeotab-go/geotab"
)

// FeedOf is the typed counterpart of geotab.Feed.
type FeedOf[T any] struct {
	Results   []T
	ToVersion geotab.VersionToken
}

// Get retrieves all records matching the search, decoded into the entity
// type T. The API type name is resolved from T's bare type name.
//
// These are package-level functions because Go methods cannot be generic.
func Get[T any](ctx context.Context, client *Client, search geotab.Search) ([]T, error) {
	entities, getErr := client.Get(ctx, geotab.TypeNameFor[T](), search)
	if getErr != nil {
		return nil, getErr
	}

	return decodeEntities[T](entities)
}

// First retrieves the first record matching the search, decoded into T.
// The second return value reports whether a record was found.
func First[T any](ctx context.Context, client *Client, search geotab.Search) (T, bool, error) {
	var empty T

	entity, found, firstErr := client.First(ctx, geotab.TypeNameFor[T](), search)
	if firstErr != nil || !found {
		return empty, false, firstErr
	}

	var record T
	if decodeErr := entity.Decode(&record); decodeErr != nil {
		return empty, false, decodeErr
	}

	return record, true, nil
}

// Find retrieves a single record by id, decoded into T.
func Find[T any](ctx context.Context, client *Client, id string) (T, bool, error) {
	search := geotab.NewSearch().Where(map[string]any{idConditionKey: id})

	return First[T](ctx, client, search)
}

// GetFeed retrieves the records changed since fromVersion, decoded into T,
// together with the version token for the next incremental call.
func GetFeed[T any](
	ctx context.Context,
	client *Client,
	search geotab.Search,
	fromVersion geotab.VersionToken,
) (FeedOf[T], error) {

	var empty FeedOf[T]

	feed, feedErr := client.GetFeed(ctx, geotab.TypeNameFor[T](), search, fromVersion)
	if feedErr != nil {
		return empty, feedErr
	}

	records, decodeErr := decodeEntities[T](feed.Results)
	if decodeErr != nil {
		return empty, decodeErr
	}

	return FeedOf[T]{Results: records, ToVersion: feed.ToVersion}, nil
}

func decodeEntities[T any](entities geotab.Entities) ([]T, error) {
	records := make([]T, 0, len(entities))

	for _, entity := range entities {
		var record T

		if decodeErr := entity.Decode(&record); decodeErr != nil {
			return nil, decodeErr
		}

		records = append(records, record)
	}

	return records, nil
}
