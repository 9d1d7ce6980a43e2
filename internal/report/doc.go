// Package report prints the descriptive analysis of a cleaned project table.
//
// The report is written to any io.Writer (standard output in the CLI) in this order:
//
//	- preview of the first rows
//	- column metadata: position, non-null count and dtype
//	- descriptive statistics of Capacidad
//	- total accumulated capacity with thousands separators
//	- project count per energy type, most frequent first
//
// The printed numbers are returned as a domain.Summary so exporters reuse them.
package report
