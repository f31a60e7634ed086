package client_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/memes/pihex/pkg/client"
	"github.com/memes/pihex/pkg/generated"
	"github.com/memes/pihex/pkg/server"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const (
	bufSize = 1024 * 1024
	// First 32 fractional hexadecimal digits of pi.
	PiHexDigits = "243f6a8885a308d313198a2e03707344"
)

func newBufconnClient(t *testing.T, register func(*grpc.Server)) (*client.PiHexClient, *grpc.ClientConn) {
	t.Helper()
	listener := bufconn.Listen(bufSize)
	grpcServer := grpc.NewServer()
	register(grpcServer)
	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			t.Errorf("Error serving gRPC: %v", err)
		}
	}()
	t.Cleanup(grpcServer.Stop)
	piHexClient, err := client.NewPiHexClient(
		client.WithDialOptions(grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		})),
	)
	if err != nil {
		t.Fatalf("Error calling NewPiHexClient: %v", err)
	}
	conn, err := piHexClient.Dial("passthrough:///bufnet")
	if err != nil {
		t.Fatalf("Error dialing bufconn: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return piHexClient, conn
}

func TestFetchDigits(t *testing.T) {
	t.Parallel()
	piHexServer, err := server.NewPiHexServer()
	if err != nil {
		t.Fatalf("Error calling NewPiHexServer: %v", err)
	}
	piHexClient, conn := newBufconnClient(t, func(s *grpc.Server) {
		generated.RegisterPiHexServiceServer(s, piHexServer)
	})
	digits, err := piHexClient.FetchDigits(context.Background(), conn, 0, int64(len(PiHexDigits)))
	if err != nil {
		t.Fatalf("Error calling FetchDigits: %v", err)
	}
	if digits != PiHexDigits {
		t.Errorf("Expected %s got %s", PiHexDigits, digits)
	}
}

func TestFetchDigits_InvalidArgument(t *testing.T) {
	t.Parallel()
	piHexServer, err := server.NewPiHexServer()
	if err != nil {
		t.Fatalf("Error calling NewPiHexServer: %v", err)
	}
	piHexClient, conn := newBufconnClient(t, func(s *grpc.Server) {
		generated.RegisterPiHexServiceServer(s, piHexServer)
	})
	_, err = piHexClient.FetchDigits(context.Background(), conn, -1, 8)
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("Expected InvalidArgument, got %v", err)
	}
}

// slowServer blocks until the caller's context expires.
type slowServer struct {
	generated.UnimplementedPiHexServiceServer
}

func (s *slowServer) GetDigits(ctx context.Context, _ *generated.GetDigitsRequest) (*generated.GetDigitsResponse, error) {
	<-ctx.Done()
	return nil, status.FromContextError(ctx.Err()).Err()
}

func TestFetchDigits_Timeout(t *testing.T) {
	t.Parallel()
	listener := bufconn.Listen(bufSize)
	grpcServer := grpc.NewServer()
	generated.RegisterPiHexServiceServer(grpcServer, &slowServer{})
	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			t.Errorf("Error serving gRPC: %v", err)
		}
	}()
	t.Cleanup(grpcServer.Stop)
	piHexClient, err := client.NewPiHexClient(
		client.WithMaxTimeout(100*time.Millisecond),
		client.WithDialOptions(grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		})),
	)
	if err != nil {
		t.Fatalf("Error calling NewPiHexClient: %v", err)
	}
	conn, err := piHexClient.Dial("passthrough:///bufnet")
	if err != nil {
		t.Fatalf("Error dialing bufconn: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	_, err = piHexClient.FetchDigits(context.Background(), conn, 0, 8)
	if status.Code(err) != codes.DeadlineExceeded {
		t.Errorf("Expected DeadlineExceeded, got %v", err)
	}
}

// flakyServer fails a fixed number of requests with Unavailable before
// delegating to a real server, to exercise the client retry path.
type flakyServer struct {
	generated.UnimplementedPiHexServiceServer
	remainingFailures int
	delegate          *server.PiHexServer
}

func (f *flakyServer) GetDigits(ctx context.Context, in *generated.GetDigitsRequest) (*generated.GetDigitsResponse, error) {
	if f.remainingFailures > 0 {
		f.remainingFailures--
		return nil, status.Error(codes.Unavailable, "transient failure")
	}
	return f.delegate.GetDigits(ctx, in)
}

func TestFetchDigits_RetriesTransientFailures(t *testing.T) {
	t.Parallel()
	piHexServer, err := server.NewPiHexServer()
	if err != nil {
		t.Fatalf("Error calling NewPiHexServer: %v", err)
	}
	flaky := &flakyServer{remainingFailures: 2, delegate: piHexServer}
	piHexClient, conn := newBufconnClient(t, func(s *grpc.Server) {
		generated.RegisterPiHexServiceServer(s, flaky)
	})
	digits, err := piHexClient.FetchDigits(context.Background(), conn, 0, 8)
	if err != nil {
		t.Fatalf("Error calling FetchDigits: %v", err)
	}
	if expected := PiHexDigits[:8]; digits != expected {
		t.Errorf("Expected %s got %s", expected, digits)
	}
	if flaky.remainingFailures != 0 {
		t.Errorf("Expected all failures to be consumed, %d remaining", flaky.remainingFailures)
	}
}
