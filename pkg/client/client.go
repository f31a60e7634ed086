// Package client implements a gRPC client for PiHexService with optional
// OpenTelemetry metrics and traces, and retry of transient failures.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-logr/logr"
	"github.com/memes/pihex/pkg/generated"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	// Importing this package injects xds://endpoint support into the client.
	_ "google.golang.org/grpc/xds"
)

const (
	// The default maximum timeout that will be applied to requests.
	DefaultMaxTimeout = 10 * time.Second
	// The default number of retries for a transient request failure.
	DefaultMaxRetries = 3
	// The default name to use when using OpenTelemetry components.
	OpenTelemetryPackageIdentifier = "pkg.client"
)

// PiHexClient wraps a PiHexServiceClient with timeouts, retries, and telemetry.
type PiHexClient struct {
	// The logr.Logger implementation to use
	logger logr.Logger
	// The client maximum timeout/deadline to use when making requests to a PiHexService
	maxTimeout time.Duration
	// The number of times a request is retried when the service is unavailable
	maxRetries uint64
	// A set of gRPC DialOptions to apply to connections
	dialOptions []grpc.DialOption
	// A counter for the number of response errors.
	responseErrors metric.Int64Counter
	// A gauge for request durations.
	durationMs metric.Int64Histogram
}

// Defines the function signature for PiHexClient options.
type PiHexClientOption func(*PiHexClient)

// Create a new PiHexClient and apply any options.
func NewPiHexClient(options ...PiHexClientOption) (*PiHexClient, error) {
	client := &PiHexClient{
		logger:     logr.Discard(),
		maxTimeout: DefaultMaxTimeout,
		maxRetries: DefaultMaxRetries,
		dialOptions: []grpc.DialOption{
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		},
	}
	for _, option := range options {
		option(client)
	}
	var err error
	client.responseErrors, err = otel.Meter(OpenTelemetryPackageIdentifier).Int64Counter(
		OpenTelemetryPackageIdentifier+".response_errors",
		metric.WithDescription("The count of error responses received by client"),
	)
	if err != nil {
		return nil, fmt.Errorf("error returned while creating responseErrors Counter: %w", err)
	}
	client.durationMs, err = otel.Meter(OpenTelemetryPackageIdentifier).Int64Histogram(
		OpenTelemetryPackageIdentifier+".request_duration_ms",
		metric.WithUnit("ms"),
		metric.WithDescription("The duration (ms) of requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("error returned while creating durationMs Histogram: %w", err)
	}
	return client, nil
}

// Use the supplied logr.logger.
func WithLogger(logger logr.Logger) PiHexClientOption {
	return func(c *PiHexClient) {
		c.logger = logger
	}
}

// Set the maximum timeout for client requests to a PiHexService.
func WithMaxTimeout(maxTimeout time.Duration) PiHexClientOption {
	return func(c *PiHexClient) {
		c.maxTimeout = maxTimeout
	}
}

// Set the number of times a request is retried when the service reports that
// it is unavailable.
func WithMaxRetries(maxRetries uint64) PiHexClientOption {
	return func(c *PiHexClient) {
		c.maxRetries = maxRetries
	}
}

// Set the TransportCredentials to use for PiHexService connections, replacing
// the default insecure credentials.
func WithTransportCredentials(transportCredentials credentials.TransportCredentials) PiHexClientOption {
	return func(c *PiHexClient) {
		if transportCredentials != nil {
			c.dialOptions = append(c.dialOptions, grpc.WithTransportCredentials(transportCredentials))
		}
	}
}

// Set the authority string to use for PiHexService connections, overriding the
// hostname derived from the target.
func WithAuthority(authority string) PiHexClientOption {
	return func(c *PiHexClient) {
		if authority != "" {
			c.dialOptions = append(c.dialOptions, grpc.WithAuthority(authority))
		}
	}
}

// Append additional gRPC DialOptions to use for PiHexService connections.
func WithDialOptions(dialOptions ...grpc.DialOption) PiHexClientOption {
	return func(c *PiHexClient) {
		c.dialOptions = append(c.dialOptions, dialOptions...)
	}
}

// Create a gRPC channel to the target PiHexService endpoint.
func (c *PiHexClient) Dial(target string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(target, c.dialOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC channel to %s: %w", target, err)
	}
	return conn, nil
}

// Request a range of fractional hexadecimal digits of pi from the PiHexService
// reachable over conn, returning them as rendered text. Requests that fail
// because the service is unavailable are retried with exponential backoff up
// to the configured retry limit; all other failures are returned immediately.
func (c *PiHexClient) FetchDigits(ctx context.Context, conn *grpc.ClientConn, start, count int64) (string, error) {
	logger := c.logger.V(1).WithValues("start", start, "count", count)
	logger.Info("FetchDigits: enter")
	attributes := []attribute.KeyValue{
		attribute.Int64(OpenTelemetryPackageIdentifier+".start", start),
		attribute.Int64(OpenTelemetryPackageIdentifier+".count", count),
	}
	ctx, span := otel.Tracer(OpenTelemetryPackageIdentifier).Start(ctx, OpenTelemetryPackageIdentifier+"/FetchDigits")
	defer span.End()
	span.SetAttributes(attributes...)
	client := generated.NewPiHexServiceClient(conn)
	var response *generated.GetDigitsResponse
	startTimestamp := time.Now()
	err := backoff.Retry(func() error {
		requestCtx, cancel := context.WithTimeout(ctx, c.maxTimeout)
		defer cancel()
		var err error
		response, err = client.GetDigits(requestCtx, &generated.GetDigitsRequest{
			Start: start,
			Count: int32(count),
		})
		if err == nil {
			return nil
		}
		if status.Code(err) == codes.Unavailable {
			logger.Info("Service unavailable; retrying", "error", err)
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx))
	duration := time.Since(startTimestamp)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		attributes := append(attributes, attribute.Bool(OpenTelemetryPackageIdentifier+".success", false))
		c.responseErrors.Add(ctx, 1, metric.WithAttributes(attributes...))
		c.durationMs.Record(ctx, duration.Milliseconds(), metric.WithAttributes(attributes...))
		return "", fmt.Errorf("failure calling GetDigits: %w", err)
	}
	attributes = append(attributes, attribute.Bool(OpenTelemetryPackageIdentifier+".success", true))
	c.durationMs.Record(ctx, duration.Milliseconds(), metric.WithAttributes(attributes...))
	logger.Info("FetchDigits: exit", "digits", response.Digits, "metadata", response.Metadata)
	return response.Digits, nil
}
