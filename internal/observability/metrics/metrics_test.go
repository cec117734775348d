package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("kind", "review"),
		attribute.String("account_id", "456"),
		attribute.String("reason", "burst"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "kind" && attrs[1].Key != "kind" {
		t.Fatalf("expected kind to be retained")
	}
	if attrs[0].Key != "reason" && attrs[1].Key != "reason" {
		t.Fatalf("expected reason to be retained")
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordVoteCast(ctx, "review", 1)
		m.RecordVoteRetracted(ctx, "review")
		m.RecordPostCreated(ctx, "interview")
		m.RecordPostDeleted(ctx, "interview")
		m.RecordOrgPageVisit(ctx)
		m.RecordRateLimitDenied(ctx, "vote", "limited")
	})
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{ServiceName: "ratrace"}, noop.NewMeterProvider())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		m.RecordVoteCast(context.Background(), "interview", -1)
	})
}
