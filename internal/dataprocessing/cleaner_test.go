package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecofuturo/pkg/contracts/domain"
)

// loadString parses semicolon-delimited text for tests
func loadString(t *testing.T, input string) *domain.RawTable {
	t.Helper()
	raw, err := NewLoader(slog.Default(), LoaderConfig{}).ReadCSV(context.Background(), strings.NewReader(input), "test.csv")
	require.NoError(t, err)
	return raw
}

func cleanString(t *testing.T, input string) (*domain.ProjectTable, CleanStats) {
	t.Helper()
	return Clean(context.Background(), slog.Default(), loadString(t, input))
}

func TestCoerceNumeric(t *testing.T) {
	tests := []struct {
		name   string
		cell   domain.Cell
		want   float64
		wantOK bool
	}{
		{name: "integer", cell: domain.Cell{Text: "10"}, want: 10, wantOK: true},
		{name: "decimal", cell: domain.Cell{Text: "19.9"}, want: 19.9, wantOK: true},
		{name: "surrounding spaces", cell: domain.Cell{Text: " 7.5 "}, want: 7.5, wantOK: true},
		{name: "exponent", cell: domain.Cell{Text: "1e3"}, want: 1000, wantOK: true},
		{name: "negative", cell: domain.Cell{Text: "-2"}, want: -2, wantOK: true},
		{name: "text", cell: domain.Cell{Text: "bad"}},
		{name: "decimal comma", cell: domain.Cell{Text: "19,9"}},
		{name: "blank", cell: domain.Cell{Text: "   "}},
		{name: "infinity", cell: domain.Cell{Text: "inf"}},
		{name: "negative infinity", cell: domain.Cell{Text: "-inf"}},
		{name: "spelled infinity", cell: domain.Cell{Text: "Infinity"}},
		{name: "nan text", cell: domain.Cell{Text: "nan"}},
		{name: "missing", cell: domain.NullCell()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceNumeric(tt.cell)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestClean(t *testing.T) {
	t.Run("drops infinite capacity so totals stay finite", func(t *testing.T) {
		table, stats := cleanString(t, "Proyecto;Tipo;Capacidad\nA;Solar;10\nB;Eolica;inf\nC;Solar;-Infinity\n")

		require.Equal(t, 1, table.Len())
		assert.Equal(t, []float64{10}, table.Capacities())
		assert.Equal(t, 2, stats.DroppedNonNumeric)
		assert.False(t, math.IsInf(TotalCapacity(table), 0))
	})

	t.Run("drops non-numeric capacity", func(t *testing.T) {
		table, stats := cleanString(t, "Proyecto;Tipo;Capacidad\nA;Solar;10\nB;Eolica;bad\nC;Solar;5\n")

		require.Equal(t, 2, table.Len())
		assert.Equal(t, "A", table.Records[0].Proyecto)
		assert.Equal(t, "C", table.Records[1].Proyecto)
		assert.Equal(t, []float64{10, 5}, table.Capacities())
		assert.Equal(t, CleanStats{Input: 3, Retained: 2, DroppedNonNumeric: 1}, stats)
		assert.Equal(t, 1, stats.Dropped())
	})

	t.Run("drops missing type", func(t *testing.T) {
		table, stats := cleanString(t, "Proyecto;Tipo;Capacidad\nA;;10\nB;NA;4\nC;Hidro;5\n")

		require.Equal(t, 1, table.Len())
		assert.Equal(t, "Hidro", table.Records[0].Tipo)
		assert.Equal(t, 2, stats.DroppedMissingTipo)
		assert.Equal(t, 0, stats.DroppedNonNumeric)
	})

	t.Run("keeps missing project name", func(t *testing.T) {
		table, _ := cleanString(t, "Proyecto;Tipo;Capacidad\n;Solar;3\n")

		require.Equal(t, 1, table.Len())
		assert.True(t, table.Records[0].ProyectoNull)
		assert.Equal(t, "", table.Records[0].Proyecto)
	})

	t.Run("preserves index and extra cells", func(t *testing.T) {
		table, _ := cleanString(t, "Proyecto;Tipo;Capacidad;Municipio\nA;Solar;x;Tunja\nB;Solar;2;Cali\n")

		require.Equal(t, 1, table.Len())
		rec := table.Records[0]
		assert.Equal(t, 1, rec.Index)
		assert.Equal(t, 3, rec.Line)
		assert.Equal(t, []string{"B", "Solar", "2", "Cali"}, texts(rec.Cells))
		assert.Equal(t, []string{"Proyecto", "Tipo", "Capacidad", "Municipio"}, table.Columns)
	})

	t.Run("every retained record is complete", func(t *testing.T) {
		table, stats := cleanString(t, "Proyecto;Tipo;Capacidad\nA;Solar;1\nB;;2\nC;Eolica;\nD;Eolica;nan\nE;Biomasa;3.25\n")

		assert.Equal(t, 2, table.Len())
		assert.Equal(t, stats.Input, stats.Retained+stats.Dropped())
		for _, r := range table.Records {
			assert.NotEmpty(t, r.Tipo)
			assert.False(t, math.IsNaN(r.Capacidad))
		}
	})

	t.Run("nil logger", func(t *testing.T) {
		raw := loadString(t, "Proyecto;Tipo;Capacidad\nA;Solar;1\n")
		table, _ := Clean(context.Background(), nil, raw)
		assert.Equal(t, 1, table.Len())
	})
}
