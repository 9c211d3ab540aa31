package geotab

import (
	"errors"
)

var ErrEmptyServer = errors.New("empty server supplied")
var ErrNilHTTPClient = errors.New("nil http client supplied")
var ErrEmptyEndpointPath = errors.New("empty endpoint path supplied")
var ErrBuildingRequestFailed = errors.New("building api request failed")
var ErrRequestFailed = errors.New("api request failed")
var ErrUnexpectedStatusCode = errors.New("api request returned an unexpected status code")
var ErrDecodingResponseFailed = errors.New("decoding api response failed")
var ErrDecodingEntityFailed = errors.New("decoding entity attributes failed")

// VersionToken is a type alias for string, representing the position token of an incremental feed query.
type VersionToken = string
