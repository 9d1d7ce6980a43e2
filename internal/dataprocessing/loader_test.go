package dataprocessing

import (
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ecofuturo/internal/errors"
	"ecofuturo/internal/shared/testutil"
	"ecofuturo/pkg/contracts/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func texts(cells []domain.Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		if c.Null {
			out[i] = "<null>"
		} else {
			out[i] = c.Text
		}
	}
	return out
}

func TestIsNA(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"NA", true},
		{"N/A", true},
		{"nan", true},
		{"NULL", true},
		{"None", true},
		{"#N/A", true},
		{"Solar", false},
		{" ", false},
		{"0", false},
		{"na", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNA(tt.text))
		})
	}
}

func TestNewLoader(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		l := NewLoader(nil, LoaderConfig{})
		assert.NotNil(t, l.logger)
		assert.Equal(t, ';', l.delimiter)
		assert.Empty(t, l.sheet)
	})

	t.Run("custom delimiter", func(t *testing.T) {
		l := NewLoader(slog.Default(), LoaderConfig{Delimiter: ',', Sheet: "Datos"})
		assert.Equal(t, ',', l.delimiter)
		assert.Equal(t, "Datos", l.sheet)
	})
}

func TestLoader_ReadCSV(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantColumns []string
		wantRows    [][]string
		wantLines   []int
		wantSkipped []int
	}{
		{
			name:        "well formed",
			input:       "Proyecto;Tipo;Capacidad\nA;Solar;10\nB;Eolica;bad\nC;Solar;5\n",
			wantColumns: []string{"Proyecto", "Tipo", "Capacidad"},
			wantRows:    [][]string{{"A", "Solar", "10"}, {"B", "Eolica", "bad"}, {"C", "Solar", "5"}},
			wantLines:   []int{2, 3, 4},
		},
		{
			name:        "leading BOM is stripped",
			input:       "\ufeffProyecto;Tipo;Capacidad\nA;Solar;10\n",
			wantColumns: []string{"Proyecto", "Tipo", "Capacidad"},
			wantRows:    [][]string{{"A", "Solar", "10"}},
			wantLines:   []int{2},
		},
		{
			name:        "row with too many fields is skipped",
			input:       "Proyecto;Tipo;Capacidad\nA;Solar;10\nB;Eolica;20;extra\nC;Hidro;5\n",
			wantColumns: []string{"Proyecto", "Tipo", "Capacidad"},
			wantRows:    [][]string{{"A", "Solar", "10"}, {"C", "Hidro", "5"}},
			wantLines:   []int{2, 4},
			wantSkipped: []int{3},
		},
		{
			name:        "short row is padded",
			input:       "Proyecto;Tipo;Capacidad\nA;Solar\n",
			wantColumns: []string{"Proyecto", "Tipo", "Capacidad"},
			wantRows:    [][]string{{"A", "Solar", "<null>"}},
			wantLines:   []int{2},
		},
		{
			name:        "NA markers become missing",
			input:       "Proyecto;Tipo;Capacidad\nA;;NaN\nB;N/A;3\n",
			wantColumns: []string{"Proyecto", "Tipo", "Capacidad"},
			wantRows:    [][]string{{"A", "<null>", "<null>"}, {"B", "<null>", "3"}},
			wantLines:   []int{2, 3},
		},
		{
			name:        "blank lines are ignored",
			input:       "Proyecto;Tipo;Capacidad\n\nA;Solar;1\n\n",
			wantColumns: []string{"Proyecto", "Tipo", "Capacidad"},
			wantRows:    [][]string{{"A", "Solar", "1"}},
			wantLines:   []int{3},
		},
		{
			name:        "extra columns are carried",
			input:       "Departamento;Proyecto;Tipo;Capacidad\nBoyaca;A;Solar;1.5\n",
			wantColumns: []string{"Departamento", "Proyecto", "Tipo", "Capacidad"},
			wantRows:    [][]string{{"Boyaca", "A", "Solar", "1.5"}},
			wantLines:   []int{2},
		},
		{
			name:        "quoted field keeps delimiter",
			input:       "Proyecto;Tipo;Capacidad\n\"Parque; Norte\";Eolica;12\n",
			wantColumns: []string{"Proyecto", "Tipo", "Capacidad"},
			wantRows:    [][]string{{"Parque; Norte", "Eolica", "12"}},
			wantLines:   []int{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(slog.Default(), LoaderConfig{})
			table, err := l.ReadCSV(context.Background(), strings.NewReader(tt.input), "test.csv")
			require.NoError(t, err)

			assert.Equal(t, tt.wantColumns, table.Columns)
			require.Len(t, table.Rows, len(tt.wantRows))
			for i, row := range table.Rows {
				assert.Equal(t, tt.wantRows[i], texts(row.Cells))
				assert.Equal(t, i, row.Index)
				assert.Equal(t, tt.wantLines[i], row.Line)
			}

			var skipped []int
			for _, s := range table.Skipped {
				skipped = append(skipped, s.Line)
				assert.NotEmpty(t, s.Reason)
			}
			assert.Equal(t, tt.wantSkipped, skipped)
		})
	}
}

func TestLoader_ReadCSV_HeaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "missing Capacidad", input: "Proyecto;Tipo\nA;Solar\n"},
		{name: "wrong delimiter", input: "Proyecto,Tipo,Capacidad\nA,Solar,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(slog.Default(), LoaderConfig{})
			table, err := l.ReadCSV(context.Background(), strings.NewReader(tt.input), "test.csv")
			require.Error(t, err)
			assert.Nil(t, table)
			assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
		})
	}
}

func TestLoader_Load(t *testing.T) {
	t.Run("reads file from disk", func(t *testing.T) {
		path := writeFile(t, "meta_FNCER.csv", "Proyecto;Tipo;Capacidad\nA;Solar;10\n")
		table, err := NewLoader(slog.Default(), LoaderConfig{}).Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, path, table.Source)
		assert.Len(t, table.Rows, 1)
	})

	t.Run("missing file is a file access error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.csv")
		table, err := NewLoader(slog.Default(), LoaderConfig{}).Load(context.Background(), path)
		require.Error(t, err)
		assert.Nil(t, table)
		assert.True(t, errors.IsType(err, errors.ErrTypeFileAccess))
		assert.True(t, stderrors.Is(err, fs.ErrNotExist))
	})

	t.Run("skipped rows are logged", func(t *testing.T) {
		handler := testutil.NewBufferedSlogHandler(t)
		path := writeFile(t, "bad.csv", "Proyecto;Tipo;Capacidad\nA;Solar;1;2\n")
		table, err := NewLoader(slog.New(handler), LoaderConfig{}).Load(context.Background(), path)
		require.NoError(t, err)
		assert.Empty(t, table.Rows)
		assert.Len(t, table.Skipped, 1)
		assert.True(t, handler.ContainsMessage("Malformed rows skipped"))
	})
}

func TestLoader_LoadXLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meta.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Proyecto", "Tipo", "Capacidad"},
		{"A", "Solar", 10},
		{},
		{"B", "Eolica"},
		{"C", "Hidro", 5, "extra"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewLoader(slog.Default(), LoaderConfig{}).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Proyecto", "Tipo", "Capacidad"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"A", "Solar", "10"}, texts(table.Rows[0].Cells))
	assert.Equal(t, 2, table.Rows[0].Line)
	assert.Equal(t, []string{"B", "Eolica", "<null>"}, texts(table.Rows[1].Cells))
	assert.Equal(t, 4, table.Rows[1].Line)
	require.Len(t, table.Skipped, 1)
	assert.Equal(t, 5, table.Skipped[0].Line)

	t.Run("unknown sheet", func(t *testing.T) {
		_, err := NewLoader(slog.Default(), LoaderConfig{Sheet: "Nope"}).Load(context.Background(), path)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
	})

	t.Run("missing workbook", func(t *testing.T) {
		_, err := NewLoader(slog.Default(), LoaderConfig{}).Load(context.Background(), filepath.Join(dir, "none.xlsx"))
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeFileAccess))
	})
}
