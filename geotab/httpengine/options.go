package httpengine

import (
	"net/http"
	"time"

	"telematics-hq/mygeotab-go/geotab"
)

// Option defines a functional option for configuring a Client.
type Option func(*Client) error

// WithHTTPClient sets the http.Client used for API calls, replacing the
// default client and its timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient == nil {
			return geotab.ErrNilHTTPClient
		}

		c.httpClient = httpClient

		return nil
	}
}

// WithTimeout sets the total timeout for one API round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		c.httpClient.Timeout = timeout
		return nil
	}
}

// WithEndpointPath sets the URL path the request envelopes are POSTed to.
func WithEndpointPath(path string) Option {
	return func(c *Client) error {
		if path == "" {
			return geotab.ErrEmptyEndpointPath
		}

		c.endpointPath = path

		return nil
	}
}

// WithLogger sets the logger for the Client.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: API calls with execution timing (development use)
// Info level: Result counts and durations (production-safe)
// Warn level: Non-critical issues like response body cleanup failures
// Error level: Transport failures, decode failures, and API faults.
func WithLogger(logger geotab.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Client.
// The contextual logger will receive log messages with context information
// including automatic trace/span correlation when tracing is enabled.
func WithContextualLogger(logger geotab.ContextualLogger) Option {
	return func(c *Client) error {
		c.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Client.
// The collector will receive call durations, result counts, and error counts.
func WithMetrics(collector geotab.MetricsCollector) Option {
	return func(c *Client) error {
		c.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Client.
// The collector will receive one span per terminal call with operation,
// type name, and outcome attributes.
func WithTracing(collector geotab.TracingCollector) Option {
	return func(c *Client) error {
		c.tracingCollector = collector
		return nil
	}
}
