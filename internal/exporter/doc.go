// Package exporter writes optional machine-readable copies of the analysis.
//
// CSVWriter: core CSV writing with headers and a UTF-8 BOM for Excel compatibility.
//
// SummaryExporter: per-type project counts, capacity and share as a CSV file,
// and as an xlsx workbook with a Resumen sheet plus the cleaned Proyectos.
//
// Example usage:
//
//	exp := exporter.NewSummaryExporter(logger)
//	err := exp.ExportCSV(ctx, summary, "graficos_web/resumen.csv")
//	err = exp.ExportXLSX(ctx, summary, table, "graficos_web/resumen.xlsx")
package exporter
