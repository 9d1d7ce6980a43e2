// Package dataprocessing turns a renewable-energy project dataset into the
// numbers the report and the charts consume.
//
// # Architecture
//
// The package is organized into three steps:
//
// 1. Loader: reads semicolon-delimited text (or an xlsx sheet) into a raw table
// 2. Cleaner: coerces Capacidad to a number and drops incomplete rows
// 3. Aggregates: descriptive statistics, per-type totals and chart series
//
// # Usage
//
//	loader := dataprocessing.NewLoader(logger, dataprocessing.LoaderConfig{})
//	raw, err := loader.Load(ctx, "meta_FNCER.csv")
//	if err != nil {
//	    return err
//	}
//	table, stats := dataprocessing.Clean(ctx, logger, raw)
//	summary := dataprocessing.Summarize(table)
//	charts := dataprocessing.BuildChartData(table)
//
// # Data Flow
//
//	CSV/XLSX → Loader → RawTable → Cleaner → ProjectTable → Summary, ChartData
//
// # Error Handling
//
// Only the loader returns errors: a missing or unreadable file is a
// file-access error, a header without the required columns a parsing error.
// Malformed rows and non-numeric capacities are not errors; they are skipped
// or dropped and counted.
package dataprocessing
