package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/memes/pihex/pkg/cache"
	"github.com/memes/pihex/pkg/generated"
	"github.com/memes/pihex/pkg/server"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// First 64 fractional hexadecimal digits of pi.
	PiHexDigits = "243f6a8885a308d313198a2e03707344a4093822299f31d0082efa98ec4e6c89"
)

// Returns a logger that writes to stderr when tests are run with -v, and
// discards entries otherwise.
func testLogger() logr.Logger {
	if !testing.Verbose() {
		return logr.Discard()
	}
	stdr.SetVerbosity(2)
	return stdr.New(log.New(os.Stderr, "", log.Lshortfile))
}

func testGetDigits(ctx context.Context, t *testing.T, request *generated.GetDigitsRequest, piHexServer *server.PiHexServer) {
	t.Helper()
	expected := PiHexDigits[request.Start : request.Start+int64(request.Count)]
	actual, err := piHexServer.GetDigits(ctx, request)
	if err != nil {
		t.Errorf("Error calling GetDigits: %v", err)
		return
	}
	if actual.Start != request.Start {
		t.Errorf("Checking start: expected %d got %d", request.Start, actual.Start)
	}
	if actual.Digits != expected {
		t.Errorf("Checking start %d count %d: expected %s got %s", request.Start, request.Count, expected, actual.Digits)
	}
	if actual.Metadata == nil || actual.Metadata.Identity == "" {
		t.Errorf("Response metadata is missing an identity")
	}
}

func TestGetDigits_WithNoopCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	testCache := cache.NewNoopCache()
	if testCache == nil {
		t.Error("Noop cache is nil")
	}
	piHexServer, err := server.NewPiHexServer(server.WithLogger(testLogger()), server.WithCache(testCache))
	if err != nil {
		t.Fatalf("Error calling NewPiHexServer: %v", err)
	}
	for start := int64(0); start < 16; start++ {
		start := start
		t.Run(fmt.Sprintf("start=%d", start), func(t *testing.T) {
			testGetDigits(ctx, t, &generated.GetDigitsRequest{
				Start: start,
				Count: 20,
			}, piHexServer)
		})
	}
}

func TestGetDigits_WithRedisCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mock := miniredis.RunT(t)
	testCache := cache.NewRedisCache(ctx, mock.Addr())
	if testCache == nil {
		t.Error("Redis cache is nil")
	}
	piHexServer, err := server.NewPiHexServer(server.WithLogger(testLogger()), server.WithCache(testCache))
	if err != nil {
		t.Fatalf("Error calling NewPiHexServer: %v", err)
	}
	// Second pass is served from cache and must return identical digits.
	for pass := 0; pass < 2; pass++ {
		for start := int64(0); start < 16; start++ {
			start := start
			t.Run(fmt.Sprintf("pass=%d/start=%d", pass, start), func(t *testing.T) {
				testGetDigits(ctx, t, &generated.GetDigitsRequest{
					Start: start,
					Count: 20,
				}, piHexServer)
			})
		}
	}
}

func TestGetDigits_WithMemoryCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	testCache, err := cache.NewMemoryCache()
	if err != nil {
		t.Fatalf("Error creating memory cache: %v", err)
	}
	piHexServer, err := server.NewPiHexServer(server.WithLogger(testLogger()), server.WithCache(testCache))
	if err != nil {
		t.Fatalf("Error calling NewPiHexServer: %v", err)
	}
	for pass := 0; pass < 2; pass++ {
		for start := int64(0); start < 16; start++ {
			start := start
			t.Run(fmt.Sprintf("pass=%d/start=%d", pass, start), func(t *testing.T) {
				testGetDigits(ctx, t, &generated.GetDigitsRequest{
					Start: start,
					Count: 20,
				}, piHexServer)
			})
		}
	}
}

func TestGetDigits_InvalidArguments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	piHexServer, err := server.NewPiHexServer(server.WithMaxDigits(64))
	if err != nil {
		t.Fatalf("Error calling NewPiHexServer: %v", err)
	}
	tests := []struct {
		name    string
		request *generated.GetDigitsRequest
	}{
		{"negative start", &generated.GetDigitsRequest{Start: -1, Count: 10}},
		{"negative count", &generated.GetDigitsRequest{Start: 10, Count: -1}},
		{"count too large", &generated.GetDigitsRequest{Start: 0, Count: 65}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := piHexServer.GetDigits(ctx, tt.request)
			if status.Code(err) != codes.InvalidArgument {
				t.Errorf("Expected InvalidArgument, got %v", err)
			}
		})
	}
}

func TestGetDigits_Metadata(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	piHexServer, err := server.NewPiHexServer(
		server.WithTags([]string{"test"}),
		server.WithAnnotations(map[string]string{"environment": "test"}),
	)
	if err != nil {
		t.Fatalf("Error calling NewPiHexServer: %v", err)
	}
	response, err := piHexServer.GetDigits(ctx, &generated.GetDigitsRequest{Start: 0, Count: 1})
	if err != nil {
		t.Fatalf("Error calling GetDigits: %v", err)
	}
	if len(response.Metadata.Tags) != 1 || response.Metadata.Tags[0] != "test" {
		t.Errorf("Expected tags [test], got %v", response.Metadata.Tags)
	}
	if response.Metadata.Annotations["environment"] != "test" {
		t.Errorf("Expected annotation environment=test, got %v", response.Metadata.Annotations)
	}
}

// The swagger declaration is served by the gateway handler without touching
// the gRPC backend.
func TestRestGatewayHandler_Swagger(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	piHexServer, err := server.NewPiHexServer()
	if err != nil {
		t.Fatalf("Error calling NewPiHexServer: %v", err)
	}
	handler, err := piHexServer.NewRestGatewayHandler(ctx, "localhost:0")
	if err != nil {
		t.Fatalf("Error creating REST gateway handler: %v", err)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/v1/swagger.json", nil))
	if recorder.Code != 200 {
		t.Errorf("Expected status 200, got %d", recorder.Code)
	}
	var swagger map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &swagger); err != nil {
		t.Errorf("Swagger response is not valid JSON: %v", err)
	}
}
