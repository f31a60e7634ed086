package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/memes/pihex/pkg/cache"
	"github.com/memes/pihex/pkg/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	ServerServiceName         = "server"
	DefaultGRPCListenAddress  = ":8443"
	GRPCListenAddressFlagName = "address"
	RESTListenAddressFlagName = "rest-address"
	RESTAuthorityFlagName     = "rest-authority"
	RedisTargetFlagName       = "redis-target"
	MemoryCacheFlagName       = "memory-cache"
	CacheTTLFlagName          = "cache-ttl"
	TagFlagName               = "tag"
	AnnotationFlagName        = "annotation"
	MaxDigitsFlagName         = "max-digits"
	XDSFlagName               = "xds"
	MutualTLSFlagName         = "mtls"
	ShutdownTimeout           = 60 * time.Second
)

// Implements the server sub-command.
func NewServerCmd() (*cobra.Command, error) {
	serverCmd := &cobra.Command{
		Use:   ServerServiceName,
		Short: "Run gRPC service to return hexadecimal digits of pi",
		Long: `Launches a gRPC PiHexService server that calculates hexadecimal digits of the fractional part of pi.

Each request returns a run of hexadecimal digits starting at an arbitrary offset. An optional Redis DB or in-process memory cache can be used to store calculated digits. Metrics and traces will be sent to an OpenTelemetry collection endpoint, if specified.`,
		RunE: serverMain,
	}
	serverCmd.PersistentFlags().StringP(GRPCListenAddressFlagName, "a", DefaultGRPCListenAddress, "Address to listen for gRPC PiHexService requests")
	serverCmd.PersistentFlags().String(RESTListenAddressFlagName, "", "An optional listen address to launch a REST/gRPC gateway process")
	serverCmd.PersistentFlags().String(RESTAuthorityFlagName, "", "Set the Authority header for REST/gRPC gateway communication")
	serverCmd.PersistentFlags().String(RedisTargetFlagName, "", "An optional Redis endpoint to use as a PiHexService cache")
	serverCmd.PersistentFlags().Bool(MemoryCacheFlagName, false, "Use an in-process memory cache for calculated digits")
	serverCmd.PersistentFlags().Duration(CacheTTLFlagName, 0, "An optional expiration to apply to cached digit entries; default is no expiration")
	serverCmd.PersistentFlags().StringArrayP(TagFlagName, "t", nil, "An optional tag to add to PiHexService response metadata; can be repeated")
	serverCmd.PersistentFlags().StringToStringP(AnnotationFlagName, "n", nil, "An optional key=value annotation to add to PiHexService response metadata; can be repeated")
	serverCmd.PersistentFlags().Int32(MaxDigitsFlagName, server.DefaultMaxDigits, "The maximum number of digits that can be requested in a single PiHexService call")
	serverCmd.PersistentFlags().Bool(XDSFlagName, false, "Launch an xDS-managed gRPC service instead of a standard gRPC service")
	serverCmd.PersistentFlags().Bool(MutualTLSFlagName, false, "Require PiHexService clients to provide a valid TLS client certificate")
	for _, name := range []string{GRPCListenAddressFlagName, RESTListenAddressFlagName, RESTAuthorityFlagName, RedisTargetFlagName, MemoryCacheFlagName, CacheTTLFlagName, TagFlagName, AnnotationFlagName, MaxDigitsFlagName, XDSFlagName, MutualTLSFlagName} {
		if err := viper.BindPFlag(name, serverCmd.PersistentFlags().Lookup(name)); err != nil {
			return nil, fmt.Errorf("failed to bind %s pflag: %w", name, err)
		}
	}
	return serverCmd, nil
}

// Server sub-command entrypoint. This function will launch the gRPC
// PiHexService and an optional REST gateway.
func serverMain(cmd *cobra.Command, _ []string) error {
	address := viper.GetString(GRPCListenAddressFlagName)
	restAddress := viper.GetString(RESTListenAddressFlagName)
	xds := viper.GetBool(XDSFlagName)
	logger := logger.V(1).WithValues(GRPCListenAddressFlagName, address, RESTListenAddressFlagName, restAddress, XDSFlagName, xds)
	ctx := cmd.Context()
	logger.V(0).Info("Preparing telemetry")
	telemetryShutdownFuncs, err := initTelemetry(ctx, ServerServiceName, sdktrace.ParentBased(sdktrace.TraceIDRatioBased(viper.GetFloat64(OpenTelemetrySamplingRatioFlagName))))
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		for _, fn := range telemetryShutdownFuncs {
			if err := fn(ctx); err != nil {
				logger.Error(err, "Failure during telemetry shutdown; continuing")
			}
		}
	}()

	logger.V(0).Info("Preparing services")
	digitCache, err := newDigitCache(ctx)
	if err != nil {
		return err
	}
	options := []server.PiHexServerOption{
		server.WithLogger(logger),
		server.WithCache(digitCache),
		server.WithTags(viper.GetStringSlice(TagFlagName)),
		server.WithAnnotations(viper.GetStringMapString(AnnotationFlagName)),
		server.WithMaxDigits(viper.GetInt32(MaxDigitsFlagName)),
	}
	serverCreds, err := newServerTLSCredentials()
	if err != nil {
		return err
	}
	if serverCreds != nil {
		options = append(options, server.WithGRPCServerTransportCredentials(serverCreds))
	}
	if restAddress != "" {
		restClientCreds, err := newRestClientTLSCredentials()
		if err != nil {
			return err
		}
		options = append(options,
			server.WithRestClientGRPCTransportCredentials(restClientCreds),
			server.WithRestClientAuthority(viper.GetString(RESTAuthorityFlagName)),
		)
	}
	piHexServer, err := server.NewPiHexServer(options...)
	if err != nil {
		return fmt.Errorf("failed to create new PiHexServer: %w", err)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	grpcServer, err := newDigitsServer(piHexServer, xds)
	if err != nil {
		return err
	}
	var restServer *http.Server
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.V(0).Info("Starting gRPC service")
		listener, err := net.Listen("tcp", address)
		if err != nil {
			return fmt.Errorf("failed to start gRPC listener: %w", err)
		}
		if err := grpcServer.Serve(listener); err != nil {
			return fmt.Errorf("failed to start gRPC server: %w", err)
		}
		return nil
	})
	if restAddress != "" {
		g.Go(func() error {
			logger.V(0).Info("Starting REST/gRPC gateway")
			restHandler, err := piHexServer.NewRestGatewayHandler(ctx, address)
			if err != nil {
				return fmt.Errorf("failed to create new REST gateway handler: %w", err)
			}
			restServer = &http.Server{
				Addr:              restAddress,
				Handler:           restHandler,
				ReadHeaderTimeout: 10 * time.Second,
			}
			if err := restServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("restServer listener returned an error: %w", err)
			}
			return nil
		})
	}

	select {
	case <-interrupt:
		break
	case <-ctx.Done():
		break
	}
	logger.V(0).Info("Shutting down on signal")
	cancel()
	shutdownCtx, shutdown := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdown()
	if restServer != nil {
		if err := restServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, "Failed to shutdown REST gateway cleanly")
		}
	}
	grpcServer.GracefulStop()
	return g.Wait() //nolint:wrapcheck // errgroup members wrap their own errors
}

// The standard and xDS-managed gRPC servers share the methods needed to serve
// and stop a PiHexService instance.
type digitsServer interface {
	Serve(net.Listener) error
	GracefulStop()
}

func newDigitsServer(piHexServer *server.PiHexServer, xds bool) (digitsServer, error) {
	if xds {
		xdsServer, err := piHexServer.NewXDSServer()
		if err != nil {
			return nil, fmt.Errorf("failed to create new xDS-managed gRPC server: %w", err)
		}
		return xdsServer, nil
	}
	return piHexServer.NewGrpcServer(), nil
}

// Build the digit cache to use from the configuration options provided. A
// Redis endpoint takes priority over the in-process memory cache; without
// either, a no-op cache is returned.
func newDigitCache(ctx context.Context) (cache.Cache, error) {
	redisTarget := viper.GetString(RedisTargetFlagName)
	memoryCache := viper.GetBool(MemoryCacheFlagName)
	ttl := viper.GetDuration(CacheTTLFlagName)
	logger := logger.V(1).WithValues(RedisTargetFlagName, redisTarget, MemoryCacheFlagName, memoryCache, CacheTTLFlagName, ttl)
	switch {
	case redisTarget != "":
		logger.V(0).Info("Using Redis digit cache")
		return cache.NewRedisCache(ctx, redisTarget, cache.WithRedisTTL(ttl)), nil

	case memoryCache:
		logger.V(0).Info("Using in-process memory digit cache")
		memory, err := cache.NewMemoryCache(cache.WithMemoryTTL(ttl))
		if err != nil {
			return nil, fmt.Errorf("failed to create new memory cache: %w", err)
		}
		return memory, nil

	default:
		logger.V(0).Info("Digit caching is disabled")
		return cache.NewNoopCache(), nil
	}
}

// Creates the gRPC transport credentials to use with the PiHexService server
// from the various configuration options provided. Returns nil when no
// certificate was specified so the server falls back to plaintext.
func newServerTLSCredentials() (credentials.TransportCredentials, error) {
	certFile := viper.GetString(TLSCertFlagName)
	keyFile := viper.GetString(TLSKeyFlagName)
	cacerts := viper.GetStringSlice(CACertFlagName)
	mTLS := viper.GetBool(MutualTLSFlagName)
	logger := logger.V(1).WithValues(TLSCertFlagName, certFile, TLSKeyFlagName, keyFile, CACertFlagName, cacerts, MutualTLSFlagName, mTLS)
	if certFile == "" {
		logger.V(0).Info("No TLS certificate specified; gRPC server will not use TLS")
		return nil, nil
	}
	logger.V(0).Info("Preparing server TLS credentials")
	certPool, err := newCACertPool(cacerts)
	if err != nil {
		return nil, err
	}
	tlsConf, err := newTLSConfig(certFile, keyFile, certPool, nil)
	if err != nil {
		return nil, err
	}
	switch {
	case mTLS:
		tlsConf.ClientAuth = tls.RequireAndVerifyClientCert

	case len(cacerts) > 0:
		tlsConf.ClientAuth = tls.VerifyClientCertIfGiven

	default:
		tlsConf.ClientAuth = tls.NoClientCert
	}
	return credentials.NewTLS(tlsConf), nil
}

// Creates the gRPC transport credentials the embedded REST gateway uses to
// call the gRPC server. When the server itself has TLS enabled the gateway
// client verifies against the same CA pool.
func newRestClientTLSCredentials() (credentials.TransportCredentials, error) {
	certFile := viper.GetString(TLSCertFlagName)
	cacerts := viper.GetStringSlice(CACertFlagName)
	if certFile == "" {
		return insecure.NewCredentials(), nil
	}
	certPool, err := newCACertPool(cacerts)
	if err != nil {
		return nil, err
	}
	tlsConf, err := newTLSConfig("", "", nil, certPool)
	if err != nil {
		return nil, err
	}
	return credentials.NewTLS(tlsConf), nil
}
