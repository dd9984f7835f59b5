package telemetry

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestEnabled(t *testing.T) {
	for _, key := range endpointVars {
		t.Setenv(key, "")
	}
	if Enabled() {
		t.Fatal("enabled without an endpoint")
	}

	for _, key := range endpointVars {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "http://localhost:4318")
			if !Enabled() {
				t.Errorf("%s set but tracing disabled", key)
			}
		})
	}
}

func TestSimulatorAttributes(t *testing.T) {
	attrs := attribute.NewSet(simulatorAttributes()...)
	if v, ok := attrs.Value("service.name"); !ok || v.AsString() != serviceName {
		t.Errorf("service.name = %v, want %q", v.AsString(), serviceName)
	}
	if _, ok := attrs.Value("host.name"); !ok {
		t.Error("host.name missing")
	}
}
