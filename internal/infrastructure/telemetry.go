package infrastructure

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"ecofuturo/internal/config"
)

const (
	ServiceName = "ecofuturo"
	ScopeName   = "ecofuturo/pipeline"
)

// Telemetry holds the tracer and meter used by the pipeline
type Telemetry struct {
	Tracer  trace.Tracer
	Meter   metric.Meter
	Metrics *PipelineMetrics

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	registry       *prometheus.Registry
	traceFile      *os.File
	metricsFile    string
	logger         *slog.Logger
}

// PipelineMetrics are the counters and histograms recorded by a run
type PipelineMetrics struct {
	RowsRead       metric.Int64Counter
	RowsSkipped    metric.Int64Counter
	RowsDropped    metric.Int64Counter
	ChartsRendered metric.Int64Counter
	StageDuration  metric.Float64Histogram
}

// InitializeTelemetry sets up tracing (when a trace file is configured) and
// metrics backed by a private Prometheus registry.
func InitializeTelemetry(cfg config.TelemetryConfig, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = GetLogger()
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
	)

	t := &Telemetry{
		metricsFile: cfg.MetricsFile,
		logger:      logger,
	}

	if err := t.initializeTracing(cfg, res); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := t.initializeMetrics(res); err != nil {
		t.closeTraceFile()
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.Debug("Telemetry initialized",
		slog.Bool("tracing_enabled", t.tracerProvider != nil),
		slog.String("metrics_file", cfg.MetricsFile))

	return t, nil
}

// initializeTracing exports spans as JSON lines to the configured trace file
func (t *Telemetry) initializeTracing(cfg config.TelemetryConfig, res *resource.Resource) error {
	if cfg.TraceFile == "" {
		t.Tracer = tracenoop.NewTracerProvider().Tracer(ScopeName)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.TraceFile), config.DirPermission); err != nil {
		return fmt.Errorf("failed to create trace directory: %w", err)
	}
	f, err := os.Create(cfg.TraceFile)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	t.traceFile = f
	t.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	t.Tracer = t.tracerProvider.Tracer(ScopeName, trace.WithInstrumentationVersion(config.AppVersion))
	return nil
}

// initializeMetrics wires the OpenTelemetry meter to a Prometheus registry
func (t *Telemetry) initializeMetrics(res *resource.Resource) error {
	t.registry = prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(t.registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	t.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	t.Meter = t.meterProvider.Meter(ScopeName, metric.WithInstrumentationVersion(config.AppVersion))

	t.Metrics, err = CreatePipelineMetrics(t.Meter)
	return err
}

// CreatePipelineMetrics creates the pipeline instruments on meter
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsRead, err := meter.Int64Counter(
		"ecofuturo_rows_read",
		metric.WithDescription("Data rows accepted by the loader"),
	)
	if err != nil {
		return nil, err
	}

	rowsSkipped, err := meter.Int64Counter(
		"ecofuturo_rows_skipped",
		metric.WithDescription("Malformed rows skipped by the loader"),
	)
	if err != nil {
		return nil, err
	}

	rowsDropped, err := meter.Int64Counter(
		"ecofuturo_rows_dropped",
		metric.WithDescription("Rows dropped by the cleaner for missing type or capacity"),
	)
	if err != nil {
		return nil, err
	}

	chartsRendered, err := meter.Int64Counter(
		"ecofuturo_charts_rendered",
		metric.WithDescription("Chart documents written"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"ecofuturo_stage_duration",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RowsRead:       rowsRead,
		RowsSkipped:    rowsSkipped,
		RowsDropped:    rowsDropped,
		ChartsRendered: chartsRendered,
		StageDuration:  stageDuration,
	}, nil
}

// RecordStage records the duration of a pipeline stage
func (m *PipelineMetrics) RecordStage(ctx context.Context, stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("stage", stage)))
}

// Registry returns the Prometheus registry backing the meter
func (t *Telemetry) Registry() *prometheus.Registry {
	return t.registry
}

// Shutdown flushes spans, writes the metrics textfile when configured and
// releases the providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.tracerProvider != nil {
		if err := t.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if err := t.closeTraceFile(); err != nil {
		errs = append(errs, fmt.Errorf("close trace file: %w", err))
	}

	if t.metricsFile != "" {
		if err := os.MkdirAll(filepath.Dir(t.metricsFile), config.DirPermission); err != nil {
			errs = append(errs, fmt.Errorf("create metrics directory: %w", err))
		} else if err := prometheus.WriteToTextfile(t.metricsFile, t.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics textfile: %w", err))
		} else {
			t.logger.InfoContext(ctx, "Metrics written", slog.String("path", t.metricsFile))
		}
	}

	if t.meterProvider != nil {
		if err := t.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}

	return stderrors.Join(errs...)
}

func (t *Telemetry) closeTraceFile() error {
	if t.traceFile == nil {
		return nil
	}
	err := t.traceFile.Close()
	t.traceFile = nil
	return err
}
