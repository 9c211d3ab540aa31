package httpengine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"telematics-hq/mygeotab-go/geotab"
)

const (
	operationGet     = "get"
	operationGetFeed = "get_feed"

	spanNameGet     = "geotab.get"
	spanNameGetFeed = "geotab.get_feed"

	spanAttrOperation   = "operation"
	spanAttrTypeName    = "type_name"
	spanAttrErrorType   = "error_type"
	spanAttrResultCount = "result_count"
	spanAttrDurationMS  = "duration_ms"

	statusSuccess = "success"
	statusError   = "error"

	metricCallDuration    = "geotab_client_call_duration"
	metricResultsReturned = "geotab_client_results_returned"
	metricClientErrors    = "geotab_client_errors"

	errorTypeBuildRequest = "build_request"
	errorTypeTransport    = "transport"
	errorTypeStatusCode   = "status_code"
	errorTypeDecode       = "decode"
	errorTypeCredentials  = "credentials"
	errorTypeAPIFault     = "api_fault"
)

// errorTypeFor maps a call error to the error type label used in metrics and spans.
func errorTypeFor(err error) string {
	var credentialsErr *geotab.CredentialsError
	if errors.As(err, &credentialsErr) {
		return errorTypeCredentials
	}

	var apiErr *geotab.APIError
	if errors.As(err, &apiErr) {
		return errorTypeAPIFault
	}

	switch {
	case errors.Is(err, geotab.ErrBuildingRequestFailed):
		return errorTypeBuildRequest
	case errors.Is(err, geotab.ErrUnexpectedStatusCode):
		return errorTypeStatusCode
	case errors.Is(err, geotab.ErrDecodingResponseFailed), errors.Is(err, geotab.ErrInvalidEntityJSON):
		return errorTypeDecode
	default:
		return errorTypeTransport
	}
}

// logCallWithDuration logs API calls with execution time at debug level if a logger is configured.
func (c *Client) logCallWithDuration(
	ctx context.Context,
	method string,
	typeName string,
	requestID string,
	duration time.Duration,
) {
	if c.logger != nil {
		c.logger.Debug(logMsgCallExecuted+method,
			logAttrTypeName, typeName,
			logAttrRequestID, requestID,
			logAttrDurationMS, c.toMilliseconds(duration))
	}

	if c.contextualLogger != nil {
		c.contextualLogger.DebugContext(ctx, logMsgCallExecuted+method,
			logAttrTypeName, typeName,
			logAttrRequestID, requestID,
			logAttrDurationMS, c.toMilliseconds(duration))
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (c *Client) logOperation(action string, args ...any) {
	if c.logger != nil {
		c.logger.Info(logMsgOperation+action, args...)
	}
}

// logError logs error information at the error level if a logger is configured.
func (c *Client) logError(message string, err error, args ...any) {
	if c.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		c.logger.Error(message, allArgs...)
	}
}

// logErrorContext logs error information with context correlation.
func (c *Client) logErrorContext(ctx context.Context, message string, err error, args ...any) {
	c.logError(message, err, args...)

	if c.contextualLogger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		c.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (c *Client) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// === Metrics Observer ===

// callMetricsObserver encapsulates the metrics collection for one terminal call.
type callMetricsObserver struct {
	client    *Client
	ctx       context.Context
	operation string
}

// startCallMetrics creates a new metrics observer for a terminal call.
func (c *Client) startCallMetrics(ctx context.Context, operation string) *callMetricsObserver {
	return &callMetricsObserver{
		client:    c,
		ctx:       ctx,
		operation: operation,
	}
}

// recordSuccess records all metrics for a successful call.
func (o *callMetricsObserver) recordSuccess(resultCount resultCountInt, duration time.Duration) {
	o.recordDuration(metricCallDuration, duration, statusSuccess)
	o.recordValue(metricResultsReturned, float64(resultCount), statusSuccess)
}

// recordError records all metrics for a failed call.
func (o *callMetricsObserver) recordError(errorType string, duration time.Duration) {
	o.recordDuration(metricCallDuration, duration, statusError)

	if o.client.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: o.operation,
		"status":          statusError,
		spanAttrErrorType: errorType,
	}

	if contextual, ok := o.client.metricsCollector.(geotab.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(o.ctx, metricClientErrors, labels)
	} else {
		o.client.metricsCollector.IncrementCounter(metricClientErrors, labels)
	}
}

func (o *callMetricsObserver) recordDuration(metricName string, duration time.Duration, status string) {
	if o.client.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: o.operation,
		"status":          status,
	}

	if contextual, ok := o.client.metricsCollector.(geotab.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(o.ctx, metricName, duration, labels)
	} else {
		o.client.metricsCollector.RecordDuration(metricName, duration, labels)
	}
}

func (o *callMetricsObserver) recordValue(metricName string, value float64, status string) {
	if o.client.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: o.operation,
		"status":          status,
	}

	if contextual, ok := o.client.metricsCollector.(geotab.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(o.ctx, metricName, value, labels)
	} else {
		o.client.metricsCollector.RecordValue(metricName, value, labels)
	}
}

// === Tracing Observer ===

// callTracingObserver encapsulates tracing span lifecycle management for one terminal call.
type callTracingObserver struct {
	client *Client
	span   geotab.SpanContext
}

// startCallTracing starts a tracing span for a terminal call if a tracing collector is configured.
func (c *Client) startCallTracing(ctx context.Context, operation string, typeName string) (*callTracingObserver, context.Context) {
	observer := &callTracingObserver{client: c}

	if c.tracingCollector == nil {
		return observer, ctx
	}

	spanName := spanNameGet
	if operation == operationGetFeed {
		spanName = spanNameGetFeed
	}

	attrs := map[string]string{
		spanAttrOperation: operation,
		spanAttrTypeName:  typeName,
	}

	newCtx, span := c.tracingCollector.StartSpan(ctx, spanName, attrs)
	observer.span = span

	return observer, newCtx
}

// finishSuccess completes the call's tracing span for successful operations.
func (o *callTracingObserver) finishSuccess(resultCount resultCountInt, duration time.Duration) {
	if o.span == nil {
		return
	}

	o.span.SetStatus(statusSuccess)
	o.span.AddAttribute(spanAttrResultCount, fmt.Sprintf("%d", resultCount))
	o.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", o.client.toMilliseconds(duration)))

	o.client.tracingCollector.FinishSpan(o.span, statusSuccess, map[string]string{
		spanAttrResultCount: fmt.Sprintf("%d", resultCount),
	})
}

// finishError completes the call's tracing span with error details.
func (o *callTracingObserver) finishError(errorType string, duration time.Duration) {
	if o.span == nil {
		return
	}

	o.span.SetStatus(statusError)
	o.span.AddAttribute(spanAttrErrorType, errorType)

	if duration > 0 {
		o.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", o.client.toMilliseconds(duration)))
	}

	o.client.tracingCollector.FinishSpan(o.span, statusError, map[string]string{
		spanAttrErrorType: errorType,
	})
}
