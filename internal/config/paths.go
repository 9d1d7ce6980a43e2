package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains every file the pipeline reads or writes.
// Relative paths resolve against the working directory.
type Paths struct {
	InputFile string
	OutputDir string

	BarChart  string
	PieChart  string
	LineChart string
	AreaChart string

	// Optional outputs, empty when disabled
	SummaryCSV  string
	SummaryXLSX string
	MetricsFile string
	TraceFile   string
	LogFile     string
}

// Paths resolves the configured locations
func (c *Config) Paths() *Paths {
	out := c.Output.Dir
	return &Paths{
		InputFile:   c.Input.Path,
		OutputDir:   out,
		BarChart:    filepath.Join(out, BarChartFile),
		PieChart:    filepath.Join(out, PieChartFile),
		LineChart:   filepath.Join(out, LineChartFile),
		AreaChart:   filepath.Join(out, AreaChartFile),
		SummaryCSV:  inDir(out, c.Output.SummaryCSV),
		SummaryXLSX: inDir(out, c.Output.SummaryXLSX),
		MetricsFile: c.Telemetry.MetricsFile,
		TraceFile:   c.Telemetry.TraceFile,
		LogFile:     c.Logging.FilePath,
	}
}

// inDir places a bare or relative file name inside dir; absolute paths are kept
func inDir(dir, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// ChartFiles returns the four chart paths in render order
func (p *Paths) ChartFiles() []string {
	return []string{p.BarChart, p.PieChart, p.LineChart, p.AreaChart}
}

// EnsureOutputDir creates the output directory if it does not exist
func (p *Paths) EnsureOutputDir() error {
	if err := os.MkdirAll(p.OutputDir, DirPermission); err != nil {
		return err
	}
	slog.Default().Debug("Ensured directory exists", slog.String("directory", p.OutputDir))
	return nil
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(ctx context.Context, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.DebugContext(ctx, "Path resolution summary",
		slog.String("input", p.InputFile),
		slog.String("output_dir", p.OutputDir),
		slog.Group("optional",
			slog.String("summary_csv", p.SummaryCSV),
			slog.String("summary_xlsx", p.SummaryXLSX),
			slog.String("metrics_file", p.MetricsFile),
			slog.String("trace_file", p.TraceFile),
		))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
