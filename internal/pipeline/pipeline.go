package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"ecofuturo/internal/charts"
	"ecofuturo/internal/config"
	"ecofuturo/internal/dataprocessing"
	"ecofuturo/internal/exporter"
	"ecofuturo/internal/infrastructure"
	"ecofuturo/internal/report"
	"ecofuturo/internal/validation"
	"ecofuturo/pkg/contracts/domain"
)

// Result is everything a run produced
type Result struct {
	RunID   string                    `json:"run_id"`
	Raw     *domain.RawTable          `json:"-"`
	Table   *domain.ProjectTable      `json:"-"`
	Clean   dataprocessing.CleanStats `json:"clean"`
	Summary domain.Summary            `json:"-"`
	Charts  domain.ChartData          `json:"-"`
	Files   []string                  `json:"files"`
	Stages  []*StageState             `json:"stages"`
}

// Stage returns the state of the named stage or nil
func (r *Result) Stage(name string) *StageState {
	for _, s := range r.Stages {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Pipeline wires the stages together
type Pipeline struct {
	cfg       *config.Config
	paths     *config.Paths
	out       io.Writer
	logger    *slog.Logger
	base      *slog.Logger
	tracer    trace.Tracer
	metrics   *infrastructure.PipelineMetrics
	validator *validation.FileValidator
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithTelemetry records spans and metrics with t
func WithTelemetry(t *infrastructure.Telemetry) Option {
	return func(p *Pipeline) {
		if t == nil {
			return
		}
		if t.Tracer != nil {
			p.tracer = t.Tracer
		}
		if t.Metrics != nil {
			p.metrics = t.Metrics
		}
	}
}

// New creates a pipeline writing its report to out
func New(cfg *config.Config, out io.Writer, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:    cfg,
		paths:  cfg.Paths(),
		out:    out,
		logger: infrastructure.GetLogger(),
		tracer: tracenoop.NewTracerProvider().Tracer(infrastructure.ScopeName),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.metrics == nil {
		// noop instruments never fail to build
		p.metrics, _ = infrastructure.CreatePipelineMetrics(metricnoop.NewMeterProvider().Meter(infrastructure.ScopeName))
	}
	p.base = p.logger
	p.logger = infrastructure.WithComponent(p.base, "pipeline")
	p.validator = validation.NewFileValidator(p.component("validation"))
	return p
}

// component derives a stage logger from the base logger
func (p *Pipeline) component(name string) *slog.Logger {
	return infrastructure.WithComponent(p.base, name)
}

// Paths returns the resolved locations the pipeline reads and writes
func (p *Pipeline) Paths() *config.Paths {
	return p.paths
}

// Run executes every stage once, in order. The first failing stage stops the run
// and its error is returned together with the partial result.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	result := &Result{RunID: infrastructure.GetRunID(ctx)}
	for _, name := range StageNames {
		result.Stages = append(result.Stages, NewStageState(name))
	}

	ctx, span := p.tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(
			attribute.String("run_id", result.RunID),
			attribute.String("input", p.paths.InputFile),
			attribute.String("output_dir", p.paths.OutputDir),
		))
	defer span.End()

	p.paths.LogPathResolution(ctx, p.logger)
	p.logger.InfoContext(ctx, "Pipeline started",
		slog.String("input", p.paths.InputFile),
		slog.String("output_dir", p.paths.OutputDir))

	stages := []struct {
		name string
		run  func(context.Context, *Result) error
	}{
		{StageLoad, p.load},
		{StageClean, p.clean},
		{StageReport, p.report},
		{StageRender, p.render},
		{StageExport, p.export},
	}

	for _, s := range stages {
		if err := p.runStage(ctx, result.Stage(s.name), result, s.run); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			infrastructure.WithError(p.logger, err).ErrorContext(ctx, "Pipeline failed",
				slog.String("stage", s.name))
			return result, err
		}
	}

	p.logger.InfoContext(ctx, "Pipeline completed",
		slog.Int("retained", result.Clean.Retained),
		slog.Int("files", len(result.Files)))
	return result, nil
}

// runStage wraps one stage in a span and records its duration
func (p *Pipeline) runStage(ctx context.Context, state *StageState, result *Result, run func(context.Context, *Result) error) error {
	ctx, span := p.tracer.Start(ctx, state.Name)
	defer span.End()

	state.Start()
	err := run(ctx, result)
	if state.Status == StageStatusSkipped {
		span.SetAttributes(attribute.String("skip_reason", state.Message))
		return nil
	}
	if err != nil {
		state.Fail(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s stage: %w", state.Name, err)
	}

	state.Complete()
	p.metrics.RecordStage(ctx, state.Name, state.Duration())
	p.logger.DebugContext(ctx, "Stage completed",
		slog.String("stage", state.Name),
		slog.Duration("duration", state.Duration()))
	return nil
}

func (p *Pipeline) load(ctx context.Context, result *Result) error {
	if err := p.validator.ValidateInputFile(ctx, p.paths.InputFile); err != nil {
		return err
	}

	delimiter := []rune(p.cfg.Input.Delimiter)
	loader := dataprocessing.NewLoader(p.component("loader"), dataprocessing.LoaderConfig{
		Delimiter: delimiter[0],
		Sheet:     p.cfg.Input.Sheet,
	})

	raw, err := loader.Load(ctx, p.paths.InputFile)
	if err != nil {
		return err
	}

	result.Raw = raw
	p.metrics.RowsRead.Add(ctx, int64(len(raw.Rows)))
	p.metrics.RowsSkipped.Add(ctx, int64(len(raw.Skipped)))
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("rows", len(raw.Rows)),
		attribute.Int("skipped", len(raw.Skipped)))
	return nil
}

func (p *Pipeline) clean(ctx context.Context, result *Result) error {
	table, stats := dataprocessing.Clean(ctx, p.component("cleaner"), result.Raw)

	result.Table = table
	result.Clean = stats
	result.Charts = dataprocessing.BuildChartData(table)
	p.metrics.RowsDropped.Add(ctx, int64(stats.Dropped()))
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("retained", stats.Retained),
		attribute.Int("dropped", stats.Dropped()))
	return nil
}

func (p *Pipeline) report(ctx context.Context, result *Result) error {
	summary, err := report.NewReporter(p.out, p.component("report")).Write(ctx, result.Table)
	if err != nil {
		return err
	}
	result.Summary = summary
	return nil
}

func (p *Pipeline) render(ctx context.Context, result *Result) error {
	if err := p.validator.ValidateOutputDirectory(ctx, p.paths.OutputDir); err != nil {
		return err
	}

	renderer := charts.NewRenderer(p.component("charts"), charts.RendererConfig{
		Size:        charts.Size{Width: p.cfg.Charts.Width, Height: p.cfg.Charts.Height},
		Parallelism: p.cfg.Charts.Parallelism,
	})

	files, err := renderer.RenderAll(ctx, result.Charts, p.paths)
	if err != nil {
		return err
	}
	result.Files = append(result.Files, files...)
	p.metrics.ChartsRendered.Add(ctx, int64(len(files)))
	return nil
}

func (p *Pipeline) export(ctx context.Context, result *Result) error {
	if p.paths.SummaryCSV == "" && p.paths.SummaryXLSX == "" {
		result.Stage(StageExport).Skip("no summary export configured")
		return nil
	}

	exp := exporter.NewSummaryExporter(p.component("exporter"))
	if p.paths.SummaryCSV != "" {
		if err := exp.ExportCSV(ctx, result.Summary, p.paths.SummaryCSV); err != nil {
			return err
		}
		result.Files = append(result.Files, p.paths.SummaryCSV)
	}
	if p.paths.SummaryXLSX != "" {
		if err := exp.ExportXLSX(ctx, result.Summary, result.Table, p.paths.SummaryXLSX); err != nil {
			return err
		}
		result.Files = append(result.Files, p.paths.SummaryXLSX)
	}
	return nil
}
