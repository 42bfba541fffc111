package metrics

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestSetupDisabled(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a recorder even with telemetry disabled")
	}
	if handler != nil {
		t.Fatal("disabled telemetry must not expose a Prometheus handler")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}

	// Recording must still work without exporters behind it.
	rec.RecordUpstreamAttempt("export", time.Millisecond, nil)
	if snap := rec.Command("export"); snap.Calls != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestSetupEnabled(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: true, Port: "9090"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handler == nil {
		t.Fatal("expected a Prometheus handler")
	}
	rec.RecordUpstreamAttempt("export", time.Millisecond, errors.New("boom"))
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
}

func TestSetupSurfacesPrometheusFailure(t *testing.T) {
	original := promReaderFactory
	promReaderFactory = func() (sdkmetric.Reader, http.Handler, error) {
		return nil, nil, errors.New("registry unavailable")
	}
	defer func() { promReaderFactory = original }()

	_, _, _, err := Setup(context.Background(), TelemetryConfig{Enabled: true})
	if err == nil {
		t.Fatal("expected setup failure")
	}
}
