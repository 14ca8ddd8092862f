package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestNew_ExportsToRegistry(t *testing.T) {
	reg := promclient.NewRegistry()
	o, err := New(Options{ServiceName: "voice-demo-generator", Registerer: reg})
	require.NoError(t, err)
	defer o.Shutdown()

	ctx := context.Background()
	o.RecordItemProcessed(ctx, "success")
	o.RecordStageDuration(ctx, "synthesis", 250*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "demo_pipeline_items_total")
	assert.True(t, hasPrefix(names, "demo_pipeline_stage_duration"), "got %v", names)

	var serviceName string
	for _, f := range families {
		if f.GetName() != "target_info" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "service_name" {
					serviceName = l.GetValue()
				}
			}
		}
	}
	assert.Equal(t, "voice-demo-generator", serviceName)
}

func hasPrefix(names []string, prefix string) bool {
	for _, n := range names {
		if strings.HasPrefix(n, prefix) {
			return true
		}
	}
	return false
}

func TestStartSpan_NoopWithoutJaeger(t *testing.T) {
	o, err := New(Options{ServiceName: "svc", Registerer: promclient.NewRegistry()})
	require.NoError(t, err)
	defer o.Shutdown()

	ctx, span := o.StartSpan(context.Background(), "item", attribute.String("industry", "Dentists"))
	assert.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsValid())
	EndSpan(span, errors.New("synthesis failed"))
}

func TestStartSpan_WithJaeger(t *testing.T) {
	o, err := New(Options{
		ServiceName:    "svc",
		Registerer:     promclient.NewRegistry(),
		JaegerEndpoint: "http://127.0.0.1:1/api/traces",
	})
	require.NoError(t, err)

	_, span := o.StartSpan(context.Background(), "item")
	assert.True(t, span.SpanContext().IsValid())
	EndSpan(span, nil)
	o.Shutdown()
}
