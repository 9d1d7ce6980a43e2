package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"ecofuturo/pkg/contracts/domain"
)

// CleanStats counts what the cleaner kept and why rows were dropped
type CleanStats struct {
	Input              int `json:"input"`
	Retained           int `json:"retained"`
	DroppedMissingTipo int `json:"dropped_missing_tipo"`
	DroppedNonNumeric  int `json:"dropped_non_numeric"`
}

// Dropped returns the total number of rows removed
func (s CleanStats) Dropped() int {
	return s.DroppedMissingTipo + s.DroppedNonNumeric
}

// CoerceNumeric converts a capacity cell to a finite number.
// Missing cells, unparsable text and NaN/Inf all report false.
func CoerceNumeric(cell domain.Cell) (float64, bool) {
	if cell.Null {
		return 0, false
	}
	s := strings.TrimSpace(cell.Text)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Clean coerces Capacidad to numeric and drops every row missing Tipo or Capacidad.
// Coercion failures are absorbed: the row is dropped, never reported as an error.
func Clean(ctx context.Context, logger *slog.Logger, raw *domain.RawTable) (*domain.ProjectTable, CleanStats) {
	if logger == nil {
		logger = slog.Default()
	}

	proyectoIdx := raw.ColumnIndex(domain.ColumnProyecto)
	tipoIdx := raw.ColumnIndex(domain.ColumnTipo)
	capacidadIdx := raw.ColumnIndex(domain.ColumnCapacidad)

	columns := make([]string, len(raw.Columns))
	copy(columns, raw.Columns)

	table := &domain.ProjectTable{
		Columns: columns,
		Records: make([]domain.ProjectRecord, 0, len(raw.Rows)),
	}
	stats := CleanStats{Input: len(raw.Rows)}

	for _, row := range raw.Rows {
		tipo := cellAt(row.Cells, tipoIdx)
		capacidad, ok := CoerceNumeric(cellAt(row.Cells, capacidadIdx))

		switch {
		case tipo.Null:
			stats.DroppedMissingTipo++
			continue
		case !ok:
			stats.DroppedNonNumeric++
			logger.DebugContext(ctx, "Dropping row with non-numeric capacity",
				slog.Int("line", row.Line),
				slog.String("capacidad", cellAt(row.Cells, capacidadIdx).Text))
			continue
		}

		proyecto := cellAt(row.Cells, proyectoIdx)
		cells := make([]domain.Cell, len(row.Cells))
		copy(cells, row.Cells)

		table.Records = append(table.Records, domain.ProjectRecord{
			Index:        row.Index,
			Line:         row.Line,
			Proyecto:     proyecto.Text,
			ProyectoNull: proyecto.Null,
			Tipo:         tipo.Text,
			Capacidad:    capacidad,
			Cells:        cells,
		})
	}
	stats.Retained = len(table.Records)

	logger.InfoContext(ctx, "Dataset cleaned",
		slog.Int("input_rows", stats.Input),
		slog.Int("retained", stats.Retained),
		slog.Int("dropped_missing_tipo", stats.DroppedMissingTipo),
		slog.Int("dropped_non_numeric", stats.DroppedNonNumeric))

	return table, stats
}

func cellAt(cells []domain.Cell, i int) domain.Cell {
	if i < 0 || i >= len(cells) {
		return domain.NullCell()
	}
	return cells[i]
}
