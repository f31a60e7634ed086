package main

import (
	"context"
	"fmt"
	"strings"

	pihex "github.com/memes/pihex"
	"github.com/memes/pihex/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

const (
	ClientServiceName  = "client"
	MaxTimeoutFlagName = "max-timeout"
	MaxRetriesFlagName = "max-retries"
	InsecureFlagName   = "insecure"
	AuthorityFlagName  = "authority"
)

// Implements the client sub-command which connects to one or more
// PiHexService instances and builds up a run of hexadecimal digits of pi
// through multiple requests.
func NewClientCmd() (*cobra.Command, error) {
	clientCmd := &cobra.Command{
		Use:   ClientServiceName + " target [target]",
		Short: "Run a gRPC PiHexService client to request hexadecimal digits of pi",
		Long: `Launches a gRPC client that will connect to PiHexService target(s) and request a run of hexadecimal digits of pi.

At least one target endpoint must be provided. Metrics and traces will be sent to an OpenTelemetry collection endpoint, if specified.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: bindViperFlags,
		RunE:    clientMain,
	}
	clientCmd.PersistentFlags().Int64P(StartFlagName, "s", 0, "The zero-based offset of the first fractional digit to request")
	clientCmd.PersistentFlags().Int64P(CountFlagName, "c", DefaultDigitCount, "The number of hexadecimal digits to request")
	clientCmd.PersistentFlags().DurationP(MaxTimeoutFlagName, "m", client.DefaultMaxTimeout, "The maximum timeout for a PiHexService request")
	clientCmd.PersistentFlags().Uint64(MaxRetriesFlagName, client.DefaultMaxRetries, "The maximum number of retries for a transiently failed PiHexService request")
	clientCmd.PersistentFlags().Bool(InsecureFlagName, false, "Disable TLS verification of PiHexService")
	clientCmd.PersistentFlags().String(AuthorityFlagName, "", "Set the authoritative name of the PiHexService target for TLS verification, overriding hostname")
	return clientCmd, nil
}

// Client sub-command entrypoint. The requested digits are split into runs
// aligned on the natural boundaries of the service's calculation so that
// cached entries are shared between requests, and the runs are spread across
// the target endpoints provided.
func clientMain(cmd *cobra.Command, endpoints []string) error {
	start := viper.GetInt64(StartFlagName)
	count := viper.GetInt64(CountFlagName)
	logger := logger.V(1).WithValues(StartFlagName, start, CountFlagName, count, "endpoints", endpoints)
	ctx := cmd.Context()
	logger.V(0).Info("Preparing telemetry")
	telemetryShutdownFuncs, err := initTelemetry(ctx, ClientServiceName, sdktrace.ParentBased(sdktrace.TraceIDRatioBased(viper.GetFloat64(OpenTelemetrySamplingRatioFlagName))))
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
	logger.V(0).Info("Preparing client TLS config")
	tlsCreds, err := newClientTLSCredentials()
	if err != nil {
		return err
	}
	logger.V(0).Info("Building client")
	piHexClient, err := client.NewPiHexClient(
		client.WithLogger(logger),
		client.WithMaxTimeout(viper.GetDuration(MaxTimeoutFlagName)),
		client.WithMaxRetries(viper.GetUint64(MaxRetriesFlagName)),
		client.WithTransportCredentials(tlsCreds),
		client.WithAuthority(viper.GetString(AuthorityFlagName)),
	)
	if err != nil {
		return fmt.Errorf("failed to create new PiHexClient: %w", err)
	}
	conns := make([]*grpc.ClientConn, len(endpoints))
	for i, endpoint := range endpoints {
		conn, err := piHexClient.Dial(endpoint)
		if err != nil {
			return fmt.Errorf("failed to dial %s: %w", endpoint, err)
		}
		defer conn.Close()
		conns[i] = conn
	}

	digits, err := fetchDigits(cmd, piHexClient, conns, start, count)
	if err != nil {
		return err
	}
	if start == 0 {
		fmt.Print("Result is: 3.") //nolint:forbidigo // This is a deliberate choice
	} else {
		fmt.Printf("Result from offset %d is: ", start) //nolint:forbidigo // This is a deliberate choice
	}
	fmt.Println(digits) //nolint:forbidigo // This is a deliberate choice
	return nil
}

// Fan-out the requested digits as multiple concurrent PiHexService requests,
// round-robin across the connections, and reassemble the responses in order.
func fetchDigits(cmd *cobra.Command, piHexClient *client.PiHexClient, conns []*grpc.ClientConn, start, count int64) (string, error) {
	end := start + count
	runs := []int64{}
	for runStart := start; runStart < end; {
		runEnd := ((runStart / pihex.DigitsPerSum) + 1) * pihex.DigitsPerSum
		if runEnd > end {
			runEnd = end
		}
		runs = append(runs, runStart)
		runStart = runEnd
	}
	results := make([]string, len(runs))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, runStart := range runs {
		runCount := end - runStart
		if runCount > pihex.DigitsPerSum-runStart%pihex.DigitsPerSum {
			runCount = pihex.DigitsPerSum - runStart%pihex.DigitsPerSum
		}
		index := i
		conn := conns[i%len(conns)]
		first, length := runStart, runCount
		g.Go(func() error {
			digits, err := piHexClient.FetchDigits(ctx, conn, first, length)
			if err != nil {
				return fmt.Errorf("failed to fetch digits at offset %d: %w", first, err)
			}
			results[index] = digits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err //nolint:wrapcheck // group members wrap their own errors
	}
	return strings.Join(results, ""), nil
}

// Creates the gRPC transport credentials to use with the PiHexService client
// from the various configuration options provided.
func newClientTLSCredentials() (credentials.TransportCredentials, error) {
	certFile := viper.GetString(TLSCertFlagName)
	keyFile := viper.GetString(TLSKeyFlagName)
	cacerts := viper.GetStringSlice(CACertFlagName)
	insecure := viper.GetBool(InsecureFlagName)
	logger := logger.V(1).WithValues(TLSCertFlagName, certFile, TLSKeyFlagName, keyFile, CACertFlagName, cacerts, InsecureFlagName, insecure)
	logger.V(0).Info("Preparing client TLS credentials")
	certPool, err := newCACertPool(cacerts)
	if err != nil {
		return nil, err
	}
	tlsConf, err := newTLSConfig(certFile, keyFile, nil, certPool)
	if err != nil {
		return nil, err
	}
	if insecure {
		logger.V(1).Info("Skipping TLS verification")
		tlsConf.InsecureSkipVerify = true
	}
	return credentials.NewTLS(tlsConf), nil
}
