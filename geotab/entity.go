package geotab

import (
	"encoding/json"
	"errors"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

var ErrInvalidEntityJSON = errors.New("entity json is not valid")

// Entities is an alias type for a slice of Entity.
type Entities = []Entity

// Entity is one result record returned by a query.
//
// It keeps the record's raw JSON attributes so callers can decode them into
// a typed struct, plus the extracted id for convenience. Entities are
// constructed fresh per call; there is no cross-call identity or caching.
//
// While its properties are exported, it should only be constructed with the
// supplied factory method BuildEntity.
type Entity struct {
	ID  string
	Raw json.RawMessage
}

// BuildEntity is a factory method for Entity.
//
// It extracts the record's id from the given raw JSON attributes.
// Returns an error if raw is not valid JSON.
func BuildEntity(raw json.RawMessage) (Entity, error) {
	if !jsoniter.ConfigFastest.Valid(raw) {
		return Entity{}, ErrInvalidEntityJSON
	}

	return Entity{
		ID:  gjson.GetBytes(raw, "id").String(),
		Raw: raw,
	}, nil
}

// Decode unmarshals the entity's raw attributes into the given value.
func (e Entity) Decode(v any) error {
	if unmarshalErr := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(e.Raw, v); unmarshalErr != nil {
		return errors.Join(ErrDecodingEntityFailed, unmarshalErr)
	}

	return nil
}

// Feed is the result of an incremental feed query: the records changed
// since the requested version, in server-provided order, and the token to
// pass as fromVersion on the next call.
type Feed struct {
	Results   Entities
	ToVersion VersionToken
}
