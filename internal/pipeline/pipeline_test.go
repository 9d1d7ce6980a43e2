package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecofuturo/internal/config"
	"ecofuturo/internal/errors"
	"ecofuturo/internal/infrastructure"
	"ecofuturo/internal/shared/testutil"
	"ecofuturo/pkg/contracts/domain"
)

func testConfig(t *testing.T, input string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Input.Path = input
	cfg.Output.Dir = filepath.Join(t.TempDir(), config.DefaultOutputDir)
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestPipeline_Run(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	cfg := testConfig(t, testutil.WriteProjectsCSV(t, testutil.SampleProjects))
	var out bytes.Buffer

	result, err := New(cfg, &out, WithLogger(logger)).Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Len(t, result.Raw.Rows, 7)
	assert.Len(t, result.Raw.Skipped, 1)
	assert.Equal(t, 5, result.Clean.Retained)
	assert.Equal(t, 1, result.Clean.DroppedMissingTipo)
	assert.Equal(t, 1, result.Clean.DroppedNonNumeric)

	assert.InDelta(t, 395.2, result.Summary.TotalCapacity, 1e-9)
	assert.Contains(t, out.String(), "Capacidad Total Acumulada: 395.20 MW")
	assert.Equal(t, domain.TypeCount{Tipo: "Solar", Count: 2}, result.Summary.CountByType[0])

	// bar and pie values add up to the printed total
	sum := 0.0
	for _, tc := range result.Charts.ByType {
		sum += tc.Capacidad
	}
	assert.InDelta(t, result.Summary.TotalCapacity, sum, 1e-9)

	paths := cfg.Paths()
	assert.Equal(t, paths.ChartFiles(), result.Files)
	entries, err := os.ReadDir(paths.OutputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 4, "default run writes exactly the four charts")

	for _, name := range StageNames[:4] {
		assert.Equal(t, StageStatusCompleted, result.Stage(name).Status, name)
	}
	assert.Equal(t, StageStatusSkipped, result.Stage(StageExport).Status)
	assert.Nil(t, result.Stage("unknown"))

	testutil.AssertNoErrors(t, handler)
	assert.True(t, handler.ContainsMessage("Pipeline completed"))
}

func TestPipeline_Run_OneComponentPerRecord(t *testing.T) {
	var logs bytes.Buffer
	logger := infrastructure.NewLogger(&logs, "debug")
	cfg := testConfig(t, testutil.WriteProjectsCSV(t, testutil.SampleProjects))

	_, err := New(cfg, &bytes.Buffer{}, WithLogger(logger)).Run(context.Background())
	require.NoError(t, err)

	components := map[string]bool{}
	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		if !strings.Contains(line, `"component":`) {
			continue
		}
		assert.Equal(t, 1, strings.Count(line, `"component":`), line)

		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		components[record["component"].(string)] = true
		assert.NotEmpty(t, record["run_id"], line)
	}
	for _, name := range []string{"pipeline", "validation", "loader", "charts"} {
		assert.True(t, components[name], name)
	}
}

func TestPipeline_Run_ExampleProjects(t *testing.T) {
	cfg := testConfig(t, testutil.WriteProjectsCSV(t, testutil.ExampleProjects))

	result, err := New(cfg, &bytes.Buffer{}).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, result.Table.Len())
	assert.Equal(t, "A", result.Table.Records[0].Proyecto)
	assert.Equal(t, "C", result.Table.Records[1].Proyecto)
	assert.InDelta(t, 15.0, result.Summary.TotalCapacity, 1e-12)
	assert.Equal(t, []domain.TypeCount{{Tipo: "Solar", Count: 2}}, result.Summary.CountByType)
}

func TestPipeline_Run_MissingInput(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "meta_FNCER.csv"))
	var out bytes.Buffer

	result, err := New(cfg, &out).Run(context.Background())
	require.Error(t, err)

	assert.True(t, errors.IsType(err, errors.ErrTypeFileAccess))
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
	assert.Empty(t, out.String(), "nothing is reported")
	assert.Empty(t, result.Files)
	assert.Equal(t, StageStatusFailed, result.Stage(StageLoad).Status)
	assert.Equal(t, StageStatusPending, result.Stage(StageRender).Status)

	_, statErr := os.Stat(cfg.Output.Dir)
	assert.True(t, os.IsNotExist(statErr), "no chart file or directory is created")
}

func TestPipeline_Run_Idempotent(t *testing.T) {
	input := testutil.WriteProjectsCSV(t, testutil.SampleProjects)
	cfg := testConfig(t, input)

	var first, second bytes.Buffer
	a, err := New(cfg, &first).Run(context.Background())
	require.NoError(t, err)
	b, err := New(cfg, &second).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Summary, b.Summary)
	assert.Equal(t, a.Charts, b.Charts)
	assert.Equal(t, first.String(), second.String())
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestPipeline_Run_Exports(t *testing.T) {
	cfg := testConfig(t, testutil.WriteProjectsCSV(t, testutil.SampleProjects))
	cfg.Output.SummaryCSV = "resumen.csv"
	cfg.Output.SummaryXLSX = "resumen.xlsx"

	result, err := New(cfg, &bytes.Buffer{}).Run(context.Background())
	require.NoError(t, err)

	paths := cfg.Paths()
	assert.Equal(t, append(paths.ChartFiles(), paths.SummaryCSV, paths.SummaryXLSX), result.Files)
	assert.Equal(t, StageStatusCompleted, result.Stage(StageExport).Status)

	data, err := os.ReadFile(paths.SummaryCSV)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total,5,395.20,100.00")
	assert.FileExists(t, paths.SummaryXLSX)
}

func TestPipeline_Run_WithTelemetry(t *testing.T) {
	dir := t.TempDir()
	telemetry, err := infrastructure.InitializeTelemetry(config.TelemetryConfig{
		TraceFile:   filepath.Join(dir, "trace.jsonl"),
		MetricsFile: filepath.Join(dir, "metrics.prom"),
		Environment: "test",
	}, nil)
	require.NoError(t, err)

	cfg := testConfig(t, testutil.WriteProjectsCSV(t, testutil.SampleProjects))
	_, err = New(cfg, &bytes.Buffer{}, WithTelemetry(telemetry)).Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, telemetry.Shutdown(context.Background()))

	traces, err := os.ReadFile(filepath.Join(dir, "trace.jsonl"))
	require.NoError(t, err)
	for _, stage := range StageNames[:4] {
		assert.Contains(t, string(traces), `"Name":"`+stage+`"`)
	}
	assert.Contains(t, string(traces), `"Name":"pipeline.run"`)

	metrics, err := os.ReadFile(filepath.Join(dir, "metrics.prom"))
	require.NoError(t, err)
	text := string(metrics)
	assert.True(t, strings.Contains(text, "ecofuturo_rows_read_total"))
	assert.Contains(t, text, "ecofuturo_rows_skipped_total")
	assert.Contains(t, text, "ecofuturo_rows_dropped_total")
	assert.Contains(t, text, "ecofuturo_charts_rendered_total")
	assert.Contains(t, text, "ecofuturo_stage_duration_seconds")
}

func TestStageState(t *testing.T) {
	s := NewStageState(StageLoad)
	assert.Equal(t, StageStatusPending, s.Status)
	assert.Zero(t, s.Duration())

	s.Start()
	assert.Equal(t, StageStatusActive, s.Status)

	s.Fail(stderrors.New("boom"))
	assert.Equal(t, StageStatusFailed, s.Status)
	assert.EqualError(t, s.Error, "boom")
	assert.GreaterOrEqual(t, s.Duration().Nanoseconds(), int64(0))

	skipped := NewStageState(StageExport)
	skipped.Skip("disabled")
	assert.Equal(t, StageStatusSkipped, skipped.Status)
	assert.Equal(t, "disabled", skipped.Message)
	assert.Zero(t, skipped.Duration())
}
