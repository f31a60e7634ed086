// Package server implements a gRPC server (and optional REST gateway) that
// satisfies the PiHexService interface requirements, with optional
// OpenTelemetry metrics and traces.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	pihex "github.com/memes/pihex"
	cachepkg "github.com/memes/pihex/pkg/cache"
	"github.com/memes/pihex/pkg/generated"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/xds"
)

const (
	// The default name to use when using OpenTelemetry components.
	OpenTelemetryPackageIdentifier = "pkg.server"
	// The default limit on the number of digits that a single GetDigits
	// request can return.
	DefaultMaxDigits = 8192
)

type PiHexServer struct {
	generated.UnimplementedPiHexServiceServer
	// The logr.Logger implementation to use
	logger logr.Logger
	// An optional cache implementation
	cache cachepkg.Cache
	// Holds the instance specific metadata that will be returned in PiHexService responses
	metadata *generated.GetDigitsMetadata
	// The limit on the number of digits returned per request
	maxDigits int32
	// A gauge for calculation durations
	calculationMs metric.Int64Histogram
	// A counter for the number of errors returned by cache
	cacheErrors metric.Int64Counter
	// A counter for cache hits
	cacheHits metric.Int64Counter
	// A counter for cache misses
	cacheMisses metric.Int64Counter
	// A set of gRPC ServerOptions to use
	serverOptions []grpc.ServerOption
	// A set of gRPC DialOptions to use with REST gateway gRPC client
	dialOptions []grpc.DialOption
}

// Defines the function signature for PiHexServer options.
type PiHexServerOption func(*PiHexServer)

// Create a new PiHexServer and apply any options.
func NewPiHexServer(options ...PiHexServerOption) (*PiHexServer, error) {
	var hostname string
	if host, err := os.Hostname(); err == nil {
		hostname = host
	} else {
		hostname = "unknown"
	}
	server := &PiHexServer{
		logger: logr.Discard(),
		cache:  cachepkg.NewNoopCache(),
		metadata: &generated.GetDigitsMetadata{
			Identity:    hostname,
			Tags:        []string{},
			Annotations: map[string]string{},
		},
		maxDigits: DefaultMaxDigits,
		serverOptions: []grpc.ServerOption{
			grpc.StatsHandler(otelgrpc.NewServerHandler()),
		},
		dialOptions: []grpc.DialOption{
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		},
	}
	for _, option := range options {
		option(server)
	}
	var err error
	server.calculationMs, err = otel.Meter(OpenTelemetryPackageIdentifier).Int64Histogram(
		OpenTelemetryPackageIdentifier+".calc_duration_ms",
		metric.WithUnit("ms"),
		metric.WithDescription("The duration (ms) of digit block calculations"),
	)
	if err != nil {
		return nil, fmt.Errorf("error returned while creating calculationMs Histogram: %w", err)
	}
	server.cacheErrors, err = otel.Meter(OpenTelemetryPackageIdentifier).Int64Counter(
		OpenTelemetryPackageIdentifier+".cache_errors",
		metric.WithDescription("The count of error responses from digit cache"),
	)
	if err != nil {
		return nil, fmt.Errorf("error returned while creating cacheErrors Counter: %w", err)
	}
	server.cacheHits, err = otel.Meter(OpenTelemetryPackageIdentifier).Int64Counter(
		OpenTelemetryPackageIdentifier+".cache_hits",
		metric.WithDescription("The count of cache hits"),
	)
	if err != nil {
		return nil, fmt.Errorf("error returned while creating cacheHits Counter: %w", err)
	}
	server.cacheMisses, err = otel.Meter(OpenTelemetryPackageIdentifier).Int64Counter(
		OpenTelemetryPackageIdentifier+".cache_misses",
		metric.WithDescription("The count of cache misses"),
	)
	if err != nil {
		return nil, fmt.Errorf("error returned while creating cacheMisses Counter: %w", err)
	}
	return server, nil
}

// Use the supplied logger for the server and pihex packages.
func WithLogger(logger logr.Logger) PiHexServerOption {
	return func(s *PiHexServer) {
		s.logger = logger
		pihex.Logger = logger
	}
}

// Use the Cache implementation to store calculated digit blocks to avoid
// recalculation of blocks that have already been served.
func WithCache(cache cachepkg.Cache) PiHexServerOption {
	return func(s *PiHexServer) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// Add the string tags to the server's metadata.
func WithTags(tags []string) PiHexServerOption {
	return func(s *PiHexServer) {
		if tags != nil {
			s.metadata.Tags = append(s.metadata.Tags, tags...)
		}
	}
}

// Add the key-value annotations to the server's metadata.
func WithAnnotations(annotations map[string]string) PiHexServerOption {
	return func(s *PiHexServer) {
		for k, v := range annotations {
			s.metadata.Annotations[k] = v
		}
	}
}

// Set the limit on the number of digits that a single request can return; a
// zero or negative value leaves the default in place.
func WithMaxDigits(maxDigits int32) PiHexServerOption {
	return func(s *PiHexServer) {
		if maxDigits > 0 {
			s.maxDigits = maxDigits
		}
	}
}

// Set the TransportCredentials to use for PiHexService gRPC listener.
func WithGRPCServerTransportCredentials(serverCredentials credentials.TransportCredentials) PiHexServerOption {
	return func(s *PiHexServer) {
		s.serverOptions = append(s.serverOptions, grpc.Creds(serverCredentials))
	}
}

// Set the TransportCredentials to use for PiHexService REST-to-gRPC client.
func WithRestClientGRPCTransportCredentials(restClientGRPCCredentials credentials.TransportCredentials) PiHexServerOption {
	return func(s *PiHexServer) {
		if restClientGRPCCredentials != nil {
			s.dialOptions = append(s.dialOptions, grpc.WithTransportCredentials(restClientGRPCCredentials))
		}
	}
}

// Set the authority string to use for REST-gRPC gateway calls.
func WithRestClientAuthority(restClientAuthority string) PiHexServerOption {
	return func(s *PiHexServer) {
		if restClientAuthority != "" {
			s.dialOptions = append(s.dialOptions, grpc.WithAuthority(restClientAuthority))
		}
	}
}

// Implement the PiHexService GetDigits RPC method. The requested range is
// assembled from absolute-aligned blocks of pihex.DigitsPerSum digits so that
// cache entries are shareable between requests with different start offsets.
func (s *PiHexServer) GetDigits(ctx context.Context, in *generated.GetDigitsRequest) (*generated.GetDigitsResponse, error) {
	logger := s.logger.WithValues("start", in.Start, "count", in.Count)
	logger.Info("GetDigits: enter")
	attributes := []attribute.KeyValue{
		attribute.Int64(OpenTelemetryPackageIdentifier+".start", in.Start),
		attribute.Int(OpenTelemetryPackageIdentifier+".count", int(in.Count)),
	}
	ctx, span := otel.Tracer(OpenTelemetryPackageIdentifier).Start(ctx, OpenTelemetryPackageIdentifier+"/GetDigits")
	defer span.End()
	span.SetAttributes(attributes...)
	if in.Start < 0 {
		err := fmt.Errorf("%w: %d", pihex.ErrInvalidStart, in.Start)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, status.Error(codes.InvalidArgument, err.Error()) //nolint:wrapcheck // Errors returned should be gRPC statuses
	}
	if in.Count < 0 {
		err := fmt.Errorf("%w: %d", pihex.ErrInvalidCount, in.Count)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, status.Error(codes.InvalidArgument, err.Error()) //nolint:wrapcheck // Errors returned should be gRPC statuses
	}
	if in.Count > s.maxDigits {
		err := fmt.Errorf("count must be less than or equal to %d: %d", s.maxDigits, in.Count)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, status.Error(codes.InvalidArgument, err.Error()) //nolint:wrapcheck // Errors returned should be gRPC statuses
	}
	count := int64(in.Count)
	firstBlock := (in.Start / pihex.DigitsPerSum) * pihex.DigitsPerSum
	var blocks strings.Builder
	for blockStart := firstBlock; blockStart < in.Start+count; blockStart += pihex.DigitsPerSum {
		block, err := s.digitBlock(ctx, blockStart)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
		blocks.WriteString(block)
	}
	offset := in.Start - firstBlock
	digits := blocks.String()[offset : offset+count]
	logger.Info("GetDigits: exit", "digits", digits)
	return &generated.GetDigitsResponse{
		Start:    in.Start,
		Digits:   digits,
		Metadata: s.metadata,
	}, nil
}

// Return a single absolute-aligned block of rendered digits, from cache when
// present, calculating and storing on a miss.
func (s *PiHexServer) digitBlock(ctx context.Context, blockStart int64) (string, error) {
	key := strconv.FormatInt(blockStart, 16)
	attributes := []attribute.KeyValue{
		attribute.String(OpenTelemetryPackageIdentifier+".cacheKey", key),
	}
	ctx, span := otel.Tracer(OpenTelemetryPackageIdentifier).Start(ctx, OpenTelemetryPackageIdentifier+"/digitBlock")
	defer span.End()
	span.SetAttributes(attributes...)
	span.AddEvent("Checking cache")
	block, err := s.cache.GetValue(ctx, key)
	if err != nil {
		s.cacheErrors.Add(ctx, 1, metric.WithAttributes(attributes...))
		return "", status.Error(codes.Internal, fmt.Sprintf("cache %T GetValue method returned an error: %v", s.cache, err)) //nolint:wrapcheck // Errors returned should be gRPC statuses
	}
	if block != "" {
		attributes := append(attributes, attribute.Bool(OpenTelemetryPackageIdentifier+".cache_hit", true))
		span.SetAttributes(attributes...)
		s.cacheHits.Add(ctx, 1, metric.WithAttributes(attributes...))
		return block, nil
	}
	attributes = append(attributes, attribute.Bool(OpenTelemetryPackageIdentifier+".cache_hit", false))
	span.SetAttributes(attributes...)
	span.AddEvent("Calculating digit block")
	s.cacheMisses.Add(ctx, 1, metric.WithAttributes(attributes...))
	ts := time.Now()
	digits, err := pihex.GetDigits(blockStart, pihex.DigitsPerSum)
	if err != nil {
		return "", status.Error(codes.Internal, fmt.Sprintf("digit calculation returned an error: %v", err)) //nolint:wrapcheck // Errors returned should be gRPC statuses
	}
	s.calculationMs.Record(ctx, time.Since(ts).Milliseconds(), metric.WithAttributes(attributes...))
	block = pihex.FormatDigits(digits)
	if err := s.cache.SetValue(ctx, key, block); err != nil {
		s.cacheErrors.Add(ctx, 1, metric.WithAttributes(attributes...))
		return "", status.Error(codes.Internal, fmt.Sprintf("cache %T SetValue method returned an error: %v", s.cache, err)) //nolint:wrapcheck // Errors returned should be gRPC statuses
	}
	return block, nil
}

// Create a new grpc.Server that is ready to be attached to a net.Listener.
func (s *PiHexServer) NewGrpcServer() *grpc.Server {
	s.logger.V(1).Info("Building a standard gRPC server")
	grpcServer := grpc.NewServer(s.serverOptions...)
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	generated.RegisterPiHexServiceServer(grpcServer, s)
	reflection.Register(grpcServer)
	return grpcServer
}

// Create a new xds.GRPCServer that is ready to be attached to a net.Listener.
func (s *PiHexServer) NewXDSServer() (*xds.GRPCServer, error) {
	s.logger.V(1).Info("xDS is enabled; building an xDS aware gRPC server")
	xdsServer, err := xds.NewGRPCServer(s.serverOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create new xDS gRPC server: %w", err)
	}
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(xdsServer, healthServer)
	generated.RegisterPiHexServiceServer(xdsServer, s)
	reflection.Register(xdsServer)
	return xdsServer, nil
}

// Create a new REST gateway handler that translates and forwards incoming REST
// requests to the specified gRPC endpoint address.
func (s *PiHexServer) NewRestGatewayHandler(ctx context.Context, grpcAddress string) (http.Handler, error) {
	mux := runtime.NewServeMux()
	if err := generated.RegisterPiHexServiceHandlerFromEndpoint(ctx, mux, grpcAddress, s.dialOptions); err != nil {
		return nil, fmt.Errorf("failed to register PiHexService handler for REST gateway: %w", err)
	}
	if err := mux.HandlePath("GET", "/api/v1/swagger.json",
		func(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
			w.Header().Add("Content-Type", "application/json")
			if _, err := w.Write(generated.SwaggerJSON); err != nil {
				s.logger.Error(err, "Writing swagger JSON to response raised an error; continuing")
			}
		},
	); err != nil {
		return nil, fmt.Errorf("failed to register /api/v1 handler for swagger definition: %w", err)
	}
	return otelhttp.NewHandler(mux,
		OpenTelemetryPackageIdentifier+"/RestGatewayHandler",
		otelhttp.WithMessageEvents(otelhttp.ReadEvents, otelhttp.WriteEvents),
	), nil
}
