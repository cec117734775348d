package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const exportInterval = 10 * time.Second

type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics holds the review and vote counters. A nil *Metrics records nothing.
type Metrics struct {
	votesCast       metric.Int64Counter
	voteRetractions metric.Int64Counter
	postsCreated    metric.Int64Counter
	postsDeleted    metric.Int64Counter
	orgPageVisits   metric.Int64Counter
	rateLimitDenied metric.Int64Counter
}

// NewProvider registers the global meter provider. With export disabled a
// noop provider is installed so instruments stay valid.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, fmt.Errorf("metrics exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(exportInterval))),
	)
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.StopHook(provider.Shutdown))
	}
	if log != nil {
		log.Info("metrics export enabled",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}
	return provider, nil
}

func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "ratrace"
	}
	meter := provider.Meter(name)

	m := &Metrics{}
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.votesCast, "ratrace_votes_cast_total", "Votes cast or changed on posts."},
		{&m.voteRetractions, "ratrace_votes_retracted_total", "Votes withdrawn from posts."},
		{&m.postsCreated, "ratrace_posts_created_total", "Reviews and interviews submitted."},
		{&m.postsDeleted, "ratrace_posts_deleted_total", "Reviews and interviews removed."},
		{&m.orgPageVisits, "ratrace_org_page_visits_total", "Organisation detail page views."},
		{&m.rateLimitDenied, "ratrace_rate_limit_denied_total", "Write requests rejected by the rate limiter."},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("counter %s: %w", c.name, err)
		}
		*c.dst = counter
	}
	return m, nil
}

func (m *Metrics) RecordVoteCast(ctx context.Context, kind string, vote int) {
	direction := "up"
	if vote < 0 {
		direction = "down"
	}
	m.add(ctx, func(m *Metrics) metric.Int64Counter { return m.votesCast },
		attribute.String("kind", strings.TrimSpace(kind)),
		attribute.String("direction", direction),
	)
}

func (m *Metrics) RecordVoteRetracted(ctx context.Context, kind string) {
	m.add(ctx, func(m *Metrics) metric.Int64Counter { return m.voteRetractions },
		attribute.String("kind", strings.TrimSpace(kind)))
}

func (m *Metrics) RecordPostCreated(ctx context.Context, kind string) {
	m.add(ctx, func(m *Metrics) metric.Int64Counter { return m.postsCreated },
		attribute.String("kind", strings.TrimSpace(kind)))
}

func (m *Metrics) RecordPostDeleted(ctx context.Context, kind string) {
	m.add(ctx, func(m *Metrics) metric.Int64Counter { return m.postsDeleted },
		attribute.String("kind", strings.TrimSpace(kind)))
}

func (m *Metrics) RecordOrgPageVisit(ctx context.Context) {
	m.add(ctx, func(m *Metrics) metric.Int64Counter { return m.orgPageVisits })
}

func (m *Metrics) RecordRateLimitDenied(ctx context.Context, endpoint, reason string) {
	m.add(ctx, func(m *Metrics) metric.Int64Counter { return m.rateLimitDenied },
		attribute.String("endpoint", strings.TrimSpace(endpoint)),
		attribute.String("reason", strings.TrimSpace(reason)),
	)
}

func (m *Metrics) add(ctx context.Context, pick func(*Metrics) metric.Int64Counter, attrs ...attribute.KeyValue) {
	if m == nil {
		return
	}
	counter := pick(m)
	if counter == nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(FilterAttributes(attrs...)...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	ctx := context.Background()
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "http", "http/protobuf":
		var opts []otlpmetrichttp.Option
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(ctx, opts...)
	case "", "grpc", "grpc/protobuf":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(ctx, opts...)
	}
	return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
}

// Labels outside this set would blow up series cardinality (account ids, urls).
var allowedLabelKeys = map[attribute.Key]bool{
	"kind":        true,
	"direction":   true,
	"endpoint":    true,
	"status_code": true,
	"reason":      true,
}

func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if allowedLabelKeys[attr.Key] {
			filtered = append(filtered, attr)
		}
	}
	return filtered
}
