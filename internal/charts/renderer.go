package charts

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"ecofuturo/internal/config"
	"ecofuturo/internal/errors"
	"ecofuturo/pkg/contracts/domain"
)

// RendererConfig holds chart rendering options
type RendererConfig struct {
	Size        Size
	Parallelism int // concurrent renders, sequential when < 2
}

// Renderer writes the four chart documents into the output directory
type Renderer struct {
	logger *slog.Logger
	cfg    RendererConfig
}

// NewRenderer creates a renderer
func NewRenderer(logger *slog.Logger, cfg RendererConfig) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}
	return &Renderer{logger: logger, cfg: cfg}
}

// job is one chart document to write
type job struct {
	name   string
	path   string
	render func(io.Writer) error
}

// jobs lists the chart documents for data in render order
func (r *Renderer) jobs(data domain.ChartData, paths *config.Paths) []job {
	size := r.cfg.Size
	return []job{
		{name: "bar", path: paths.BarChart, render: func(w io.Writer) error {
			return NewBarChart(data.ByType, size).Render(w)
		}},
		{name: "pie", path: paths.PieChart, render: func(w io.Writer) error {
			return NewPieChart(data.ByType, size).Render(w)
		}},
		{name: "line", path: paths.LineChart, render: func(w io.Writer) error {
			return NewLineChart(data.LineCategory, data.LineSeries, size).Render(w)
		}},
		{name: "area", path: paths.AreaChart, render: func(w io.Writer) error {
			return NewAreaChart(data.AreaCategory, data.AreaSeries, size).Render(w)
		}},
	}
}

// RenderAll creates the output directory and writes every chart.
// It returns the written files in render order; the first failure stops the run.
func (r *Renderer) RenderAll(ctx context.Context, data domain.ChartData, paths *config.Paths) ([]string, error) {
	if err := paths.EnsureOutputDir(); err != nil {
		return nil, errors.NewFileAccessError("failed to create output directory", err).
			WithContext("dir", paths.OutputDir)
	}

	jobs := r.jobs(data, paths)
	written := make([]string, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Parallelism)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := r.writeFile(gctx, j); err != nil {
				return err
			}
			written[i] = j.path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Charts rendered",
		slog.String("dir", paths.OutputDir),
		slog.Int("count", len(written)))
	return written, nil
}

// writeFile renders one chart into its own file
func (r *Renderer) writeFile(ctx context.Context, j job) error {
	start := time.Now()

	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, config.FilePermission)
	if err != nil {
		return errors.NewFileAccessError("failed to create chart file", err).
			WithContext("chart", j.name).
			WithContext("path", j.path)
	}

	w := bufio.NewWriter(f)
	if err := j.render(w); err != nil {
		f.Close()
		return errors.NewRenderError("failed to render chart", err).WithContext("chart", j.name)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.NewFileAccessError("failed to write chart file", err).WithContext("path", j.path)
	}
	if err := f.Close(); err != nil {
		return errors.NewFileAccessError("failed to close chart file", err).WithContext("path", j.path)
	}

	r.logger.DebugContext(ctx, "Chart written",
		slog.String("chart", j.name),
		slog.String("file", filepath.Base(j.path)),
		slog.Duration("duration", time.Since(start)))
	return nil
}
