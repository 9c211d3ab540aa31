package httpengine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"telematics-hq/mygeotab-go/geotab"
)

const (
	defaultEndpointPath = "/apiv1"
	defaultTimeout      = 30 * time.Second

	methodGet     = "Get"
	methodGetFeed = "GetFeed"

	headerContentType = "Content-Type"
	headerAccept      = "Accept"
	mimeJSON          = "application/json"

	logMsgBuildRequestFailed   = "failed to build api request envelope"
	logMsgHTTPCallFailed       = "http call to api endpoint failed"
	logMsgUnexpectedStatusCode = "api endpoint returned an unexpected status code"
	logMsgDecodeResponseFailed = "failed to decode api response"
	logMsgAPIFault             = "api reported a fault"
	logMsgCallCompleted        = "call completed"
	logMsgCallExecuted         = "executed api call for: "
	logMsgOperation            = "geotab client operation: "
	logAttrError               = "error"
	logAttrMethod              = "method"
	logAttrTypeName            = "type_name"
	logAttrRequestID           = "request_id"
	logAttrResultCount         = "result_count"
	logAttrDurationMS          = "duration_ms"
	logAttrStatusCode          = "status_code"
	logAttrToVersion           = "to_version"

	idConditionKey = "id"
)

type (
	resultCountInt = int
	callDuration   = time.Duration
)

// Client dispatches query calls against one MyGeotab server.
//
// Each terminal call issues exactly one blocking HTTP POST and decodes the
// response; there are no retries and no partial-result handling. A Client
// is safe for concurrent use since it holds no per-query state.
type Client struct {
	httpClient       *http.Client
	connection       geotab.Connection
	endpointPath     string
	logger           geotab.Logger
	contextualLogger geotab.ContextualLogger
	metricsCollector geotab.MetricsCollector
	tracingCollector geotab.TracingCollector
}

// NewClient creates a new Client for the given connection with optional configuration.
func NewClient(connection geotab.Connection, options ...Option) (*Client, error) {
	if connection.Server == "" {
		return nil, geotab.ErrEmptyServer
	}

	client := &Client{
		httpClient:   &http.Client{Timeout: defaultTimeout},
		connection:   connection,
		endpointPath: defaultEndpointPath,
	}

	for _, option := range options {
		if err := option(client); err != nil {
			return nil, err
		}
	}

	return client, nil
}

// Endpoint returns the absolute URL terminal calls POST to.
func (c *Client) Endpoint() string {
	return c.connection.BaseURL() + c.endpointPath
}

// Get retrieves all records of the given type matching the search and
// returns them as entities in server-provided order.
func (c *Client) Get(ctx context.Context, typeName string, search geotab.Search) (geotab.Entities, error) {
	tracing, ctx := c.startCallTracing(ctx, operationGet, typeName)
	metrics := c.startCallMetrics(ctx, operationGet)

	result, duration, callErr := c.dispatch(ctx, methodGet, typeName, search, "")
	if callErr != nil {
		errorType := errorTypeFor(callErr)
		tracing.finishError(errorType, duration)
		metrics.recordError(errorType, duration)

		return nil, callErr
	}

	entities, buildErr := entitiesFromResult(result)
	if buildErr != nil {
		c.logErrorContext(ctx, logMsgDecodeResponseFailed, buildErr, logAttrTypeName, typeName)
		tracing.finishError(errorTypeDecode, duration)
		metrics.recordError(errorTypeDecode, duration)

		return nil, buildErr
	}

	tracing.finishSuccess(len(entities), duration)
	metrics.recordSuccess(len(entities), duration)

	c.logOperation(
		logMsgCallCompleted,
		logAttrTypeName, typeName,
		logAttrResultCount, len(entities),
		logAttrDurationMS, c.toMilliseconds(duration))

	return entities, nil
}

// First retrieves the first record of the given type matching the search.
// The second return value reports whether a record was found.
func (c *Client) First(ctx context.Context, typeName string, search geotab.Search) (geotab.Entity, bool, error) {
	entities, getErr := c.Get(ctx, typeName, search)
	if getErr != nil {
		return geotab.Entity{}, false, getErr
	}

	if len(entities) == 0 {
		return geotab.Entity{}, false, nil
	}

	return entities[0], true, nil
}

// Find retrieves a single record of the given type by its id.
// It is shorthand for First with an id condition.
func (c *Client) Find(ctx context.Context, typeName string, id string) (geotab.Entity, bool, error) {
	search := geotab.NewSearch().Where(map[string]any{idConditionKey: id})

	return c.First(ctx, typeName, search)
}

// GetFeed retrieves the records of the given type changed since fromVersion,
// together with the version token for the next incremental call.
func (c *Client) GetFeed(
	ctx context.Context,
	typeName string,
	search geotab.Search,
	fromVersion geotab.VersionToken,
) (geotab.Feed, error) {

	var empty geotab.Feed

	tracing, ctx := c.startCallTracing(ctx, operationGetFeed, typeName)
	metrics := c.startCallMetrics(ctx, operationGetFeed)

	result, duration, callErr := c.dispatch(ctx, methodGetFeed, typeName, search, fromVersion)
	if callErr != nil {
		errorType := errorTypeFor(callErr)
		tracing.finishError(errorType, duration)
		metrics.recordError(errorType, duration)

		return empty, callErr
	}

	feed, buildErr := feedFromResult(result)
	if buildErr != nil {
		c.logErrorContext(ctx, logMsgDecodeResponseFailed, buildErr, logAttrTypeName, typeName)
		tracing.finishError(errorTypeDecode, duration)
		metrics.recordError(errorTypeDecode, duration)

		return empty, buildErr
	}

	tracing.finishSuccess(len(feed.Results), duration)
	metrics.recordSuccess(len(feed.Results), duration)

	c.logOperation(
		logMsgCallCompleted,
		logAttrTypeName, typeName,
		logAttrResultCount, len(feed.Results),
		logAttrToVersion, feed.ToVersion,
		logAttrDurationMS, c.toMilliseconds(duration))

	return feed, nil
}

// dispatch performs the one HTTP round trip of a terminal call: it builds
// the request envelope, POSTs it, and decodes the response union into the
// raw result payload or a classified error.
func (c *Client) dispatch(
	ctx context.Context,
	method string,
	typeName string,
	search geotab.Search,
	fromVersion geotab.VersionToken,
) ([]byte, callDuration, error) {

	requestID := uuid.NewString()

	body, buildErr := encodeRequestEnvelope(method, typeName, c.connection.Credentials, search, fromVersion)
	if buildErr != nil {
		c.logError(logMsgBuildRequestFailed, buildErr, logAttrMethod, method, logAttrTypeName, typeName)

		return nil, 0, buildErr
	}

	start := time.Now()
	responseBody, statusCode, httpErr := c.post(ctx, body)
	duration := time.Since(start)
	c.logCallWithDuration(ctx, method, typeName, requestID, duration)

	if httpErr != nil {
		c.logErrorContext(ctx, logMsgHTTPCallFailed, httpErr, logAttrMethod, method, logAttrRequestID, requestID)

		return nil, duration, errors.Join(geotab.ErrRequestFailed, httpErr)
	}

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		statusErr := errors.Join(geotab.ErrUnexpectedStatusCode, fmt.Errorf("status code %d", statusCode))
		c.logErrorContext(ctx, logMsgUnexpectedStatusCode, statusErr, logAttrStatusCode, statusCode, logAttrRequestID, requestID)

		return nil, duration, statusErr
	}

	result, decodeErr := decodeResponseEnvelope(responseBody)
	if decodeErr != nil {
		c.logFaultOrDecodeError(ctx, decodeErr, method, typeName, requestID)

		return nil, duration, decodeErr
	}

	return result, duration, nil
}

// post performs the synchronous HTTP POST with JSON content negotiation.
// Transport-level failures propagate unclassified.
func (c *Client) post(ctx context.Context, body []byte) ([]byte, int, error) {
	request, requestErr := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if requestErr != nil {
		return nil, 0, requestErr
	}

	request.Header.Set(headerContentType, mimeJSON)
	request.Header.Set(headerAccept, mimeJSON)

	response, doErr := c.httpClient.Do(request)
	if doErr != nil {
		return nil, 0, doErr
	}
	defer c.closeBody(response.Body)

	payload, readErr := io.ReadAll(response.Body)
	if readErr != nil {
		return nil, response.StatusCode, readErr
	}

	return payload, response.StatusCode, nil
}

// closeBody safely closes the response body and logs any errors.
func (c *Client) closeBody(body io.Closer) {
	if closeErr := body.Close(); closeErr != nil {
		if c.logger != nil {
			c.logger.Warn(logMsgHTTPCallFailed, logAttrError, closeErr.Error())
		}
	}
}

func (c *Client) logFaultOrDecodeError(ctx context.Context, err error, method, typeName, requestID string) {
	var apiErr *geotab.APIError
	var credentialsErr *geotab.CredentialsError

	if errors.As(err, &apiErr) || errors.As(err, &credentialsErr) {
		c.logErrorContext(ctx, logMsgAPIFault, err, logAttrMethod, method, logAttrTypeName, typeName, logAttrRequestID, requestID)
		return
	}

	c.logErrorContext(ctx, logMsgDecodeResponseFailed, err, logAttrMethod, method, logAttrRequestID, requestID)
}
