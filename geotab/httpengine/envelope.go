package httpengine

import (
	"encoding/json"
	"errors"

	jsoniter "github.com/json-iterator/go"

	"telematics-hq/mygeotab-go/geotab"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// requestEnvelope is the JSON body POSTed for every terminal call.
// It is constructed fresh per call and never persisted.
type requestEnvelope struct {
	Method string        `json:"method"`
	Params requestParams `json:"params"`
}

type requestParams struct {
	TypeName    string             `json:"typeName"`
	Credentials geotab.Credentials `json:"credentials"`
	Search      geotab.Search      `json:"search"`
	FromVersion string             `json:"fromVersion,omitempty"`
}

// responseEnvelope is the discriminated union the API replies with:
// either a result payload or a fault, never both.
type responseEnvelope struct {
	Result json.RawMessage `json:"result"`
	Error  *faultEnvelope  `json:"error"`
}

type faultEnvelope struct {
	Message string        `json:"message"`
	Errors  []faultDetail `json:"errors"`
}

type faultDetail struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// feedResult is the result payload shape of GetFeed calls.
type feedResult struct {
	Data      []json.RawMessage `json:"data"`
	ToVersion string            `json:"toVersion"`
}

func encodeRequestEnvelope(
	method string,
	typeName string,
	credentials geotab.Credentials,
	search geotab.Search,
	fromVersion geotab.VersionToken,
) ([]byte, error) {

	envelope := requestEnvelope{
		Method: method,
		Params: requestParams{
			TypeName:    typeName,
			Credentials: credentials,
			Search:      search,
			FromVersion: fromVersion,
		},
	}

	body, marshalErr := jsonCodec.Marshal(envelope)
	if marshalErr != nil {
		return nil, errors.Join(geotab.ErrBuildingRequestFailed, marshalErr)
	}

	return body, nil
}

// decodeResponseEnvelope parses the raw response body and returns the raw
// result payload, or the classified fault when the body carries an error.
// Classification inspects the first nested fault message, falling back to
// the envelope-level message when the nested list is empty.
func decodeResponseEnvelope(body []byte) (json.RawMessage, error) {
	var envelope responseEnvelope

	if unmarshalErr := jsonCodec.Unmarshal(body, &envelope); unmarshalErr != nil {
		return nil, errors.Join(geotab.ErrDecodingResponseFailed, unmarshalErr)
	}

	if envelope.Error != nil {
		return nil, classifyFault(envelope.Error)
	}

	return envelope.Result, nil
}

func classifyFault(fault *faultEnvelope) error {
	if len(fault.Errors) > 0 {
		first := fault.Errors[0]
		return geotab.ClassifyFault(first.Name, first.Message)
	}

	return geotab.ClassifyFault("", fault.Message)
}

// entitiesFromResult converts the raw result array into entities,
// preserving the server-provided order.
func entitiesFromResult(result json.RawMessage) (geotab.Entities, error) {
	if len(result) == 0 {
		return geotab.Entities{}, nil
	}

	var rawRecords []json.RawMessage

	if unmarshalErr := jsonCodec.Unmarshal(result, &rawRecords); unmarshalErr != nil {
		return nil, errors.Join(geotab.ErrDecodingResponseFailed, unmarshalErr)
	}

	entities := make(geotab.Entities, 0, len(rawRecords))

	for _, raw := range rawRecords {
		entity, buildErr := geotab.BuildEntity(raw)
		if buildErr != nil {
			return nil, buildErr
		}

		entities = append(entities, entity)
	}

	return entities, nil
}

// feedFromResult converts the raw feed result payload into a Feed.
func feedFromResult(result json.RawMessage) (geotab.Feed, error) {
	var empty geotab.Feed

	if len(result) == 0 {
		return geotab.Feed{Results: geotab.Entities{}}, nil
	}

	var payload feedResult

	if unmarshalErr := jsonCodec.Unmarshal(result, &payload); unmarshalErr != nil {
		return empty, errors.Join(geotab.ErrDecodingResponseFailed, unmarshalErr)
	}

	entities := make(geotab.Entities, 0, len(payload.Data))

	for _, raw := range payload.Data {
		entity, buildErr := geotab.BuildEntity(raw)
		if buildErr != nil {
			return empty, buildErr
		}

		entities = append(entities, entity)
	}

	return geotab.Feed{Results: entities, ToVersion: payload.ToVersion}, nil
}
