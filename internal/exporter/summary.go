package exporter

import (
	"context"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"ecofuturo/internal/config"
	"ecofuturo/internal/errors"
	"ecofuturo/pkg/contracts/domain"
)

// Sheet names of the summary workbook
const (
	SummarySheet  = "Resumen"
	ProjectsSheet = "Proyectos"
)

// SummaryHeaders are the columns of the per-type summary
var SummaryHeaders = []string{"Tipo", "Proyectos", "Capacidad (MW)", "Participacion (%)"}

// TotalLabel names the closing row of the summary
const TotalLabel = "Total"

// SummaryRow is one line of the per-type summary
type SummaryRow struct {
	Tipo      string
	Proyectos int
	Capacidad float64
	Share     float64
}

// SummaryRows joins counts and capacity per type, types in ascending order,
// followed by a total row
func SummaryRows(summary domain.Summary) []SummaryRow {
	counts := make(map[string]int, len(summary.CountByType))
	for _, c := range summary.CountByType {
		counts[c.Tipo] = c.Count
	}

	rows := make([]SummaryRow, 0, len(summary.ByType)+1)
	for _, tc := range summary.ByType {
		rows = append(rows, SummaryRow{
			Tipo:      tc.Tipo,
			Proyectos: counts[tc.Tipo],
			Capacidad: tc.Capacidad,
			Share:     share(tc.Capacidad, summary.TotalCapacity),
		})
	}
	total := 0.0
	if summary.Entries > 0 {
		total = 100
	}
	rows = append(rows, SummaryRow{
		Tipo:      TotalLabel,
		Proyectos: summary.Entries,
		Capacidad: summary.TotalCapacity,
		Share:     total,
	})
	return rows
}

func (r SummaryRow) strings() []string {
	return []string{r.Tipo, formatInt(r.Proyectos), formatFloat(r.Capacidad), formatFloat(r.Share)}
}

// SummaryExporter writes the summary as CSV or xlsx
type SummaryExporter struct {
	logger *slog.Logger
	csv    *CSVWriter
}

// NewSummaryExporter creates a summary exporter
func NewSummaryExporter(logger *slog.Logger) *SummaryExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryExporter{logger: logger, csv: NewCSVWriter(logger)}
}

// ExportCSV writes the per-type summary as a BOM-prefixed CSV file
func (e *SummaryExporter) ExportCSV(ctx context.Context, summary domain.Summary, path string) error {
	rows := SummaryRows(summary)
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = r.strings()
	}

	if err := e.csv.WriteSimpleCSV(ctx, path, SummaryHeaders, records); err != nil {
		return err
	}

	e.logger.InfoContext(ctx, "Summary CSV exported",
		slog.String("path", path),
		slog.Int("types", len(rows)-1))
	return nil
}

// ExportXLSX writes a workbook with the per-type summary and the cleaned projects
func (e *SummaryExporter) ExportXLSX(ctx context.Context, summary domain.Summary, table *domain.ProjectTable, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return errors.NewRenderError("failed to name summary sheet", err)
	}
	if _, err := f.NewSheet(ProjectsSheet); err != nil {
		return errors.NewRenderError("failed to create projects sheet", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.NewRenderError("failed to create header style", err)
	}

	summaryRows := [][]interface{}{toRow(SummaryHeaders)}
	for _, r := range SummaryRows(summary) {
		summaryRows = append(summaryRows, []interface{}{r.Tipo, r.Proyectos, round2(r.Capacidad), round2(r.Share)})
	}
	if err := writeSheet(f, SummarySheet, summaryRows, bold); err != nil {
		return err
	}

	projectRows := [][]interface{}{toRow(table.Columns)}
	for _, rec := range table.Records {
		projectRows = append(projectRows, projectRow(table.Columns, rec))
	}
	if err := writeSheet(f, ProjectsSheet, projectRows, bold); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), config.DirPermission); err != nil {
		return errors.NewFileAccessError("failed to create directory", err).WithContext("path", path)
	}
	if err := f.SaveAs(path); err != nil {
		return errors.NewFileAccessError("failed to save workbook", err).WithContext("path", path)
	}

	e.logger.InfoContext(ctx, "Summary workbook exported",
		slog.String("path", path),
		slog.Int("projects", table.Len()))
	return nil
}

// projectRow lists a record's cells with Capacidad as a number and missing cells empty
func projectRow(columns []string, rec domain.ProjectRecord) []interface{} {
	row := make([]interface{}, len(columns))
	for i, name := range columns {
		switch {
		case name == domain.ColumnCapacidad:
			row[i] = rec.Capacidad
		case i < len(rec.Cells) && !rec.Cells[i].Null:
			row[i] = rec.Cells[i].Text
		default:
			row[i] = nil
		}
	}
	return row
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.NewRenderError("invalid cell reference", err).WithContext("sheet", sheet)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return errors.NewRenderError("failed to write row", err).
				WithContext("sheet", sheet).
				WithContext("row", i+1)
		}
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return errors.NewRenderError("invalid cell reference", err).WithContext("sheet", sheet)
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return errors.NewRenderError("failed to style header", err).WithContext("sheet", sheet)
		}
	}
	return nil
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
