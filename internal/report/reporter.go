package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ecofuturo/internal/dataprocessing"
	"ecofuturo/internal/errors"
	"ecofuturo/pkg/contracts/domain"
)

// DefaultPreviewRows is the number of records shown in the preview
const DefaultPreviewRows = 5

const rule = "======================================================"

// Reporter writes the descriptive analysis to an io.Writer
type Reporter struct {
	out         io.Writer
	logger      *slog.Logger
	printer     *message.Printer
	previewRows int
}

// NewReporter creates a reporter writing to out
func NewReporter(out io.Writer, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		out:         out,
		logger:      logger,
		printer:     message.NewPrinter(language.English),
		previewRows: DefaultPreviewRows,
	}
}

// Write prints the full report for table and returns the numbers it printed
func (r *Reporter) Write(ctx context.Context, table *domain.ProjectTable) (domain.Summary, error) {
	summary := dataprocessing.Summarize(table)

	w := &errWriter{w: r.out}
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "              ANÁLISIS DESCRIPTIVO DE DATOS           ")
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, "\n🔹 Vista previa de los datos limpios (head):")
	r.writePreview(w, table)

	fmt.Fprintln(w, "\n🔹 Información general del DataFrame:")
	r.writeInfo(w, table, summary)

	fmt.Fprintln(w, "\n🔹 Estadísticas descriptivas de la Capacidad (MW):")
	r.writeDescribe(w, summary.Capacity)

	fmt.Fprintf(w, "\n🔹 Capacidad Total Acumulada: %s MW\n", r.FormatTotal(summary.TotalCapacity))

	fmt.Fprintln(w, "\n🔹 Conteo de Proyectos por Tipo de Energía:")
	r.writeCounts(w, summary.CountByType)

	fmt.Fprintln(w, rule)

	if w.err != nil {
		return summary, errors.NewFileAccessError("failed to write report", w.err)
	}

	r.logger.InfoContext(ctx, "Descriptive report written",
		slog.Int("entries", summary.Entries),
		slog.Float64("total_capacity", summary.TotalCapacity),
		slog.Int("types", len(summary.CountByType)))

	return summary, nil
}

// FormatTotal formats a capacity with thousands separators and two decimals
func (r *Reporter) FormatTotal(v float64) string {
	return r.printer.Sprintf("%.2f", v)
}

func (r *Reporter) writePreview(w io.Writer, table *domain.ProjectTable) {
	if table.Len() == 0 {
		fmt.Fprintf(w, "Empty DataFrame\nColumns: [%s]\nIndex: []\n", strings.Join(table.Columns, ", "))
		return
	}

	capIdx := -1
	header := append([]string{""}, table.Columns...)
	for i, c := range table.Columns {
		if c == domain.ColumnCapacidad {
			capIdx = i
		}
	}

	t := plainTable(w)
	t.SetHeader(header)
	n := r.previewRows
	if n > table.Len() {
		n = table.Len()
	}
	for _, rec := range table.Records[:n] {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(rec.Index))
		for i := range table.Columns {
			switch {
			case i == capIdx:
				row = append(row, formatFloat(rec.Capacidad))
			case i < len(rec.Cells) && !rec.Cells[i].Null:
				row = append(row, rec.Cells[i].Text)
			default:
				row = append(row, "NaN")
			}
		}
		t.Append(row)
	}
	t.Render()
}

func (r *Reporter) writeInfo(w io.Writer, table *domain.ProjectTable, summary domain.Summary) {
	if summary.Entries == 0 {
		fmt.Fprintln(w, "Index: 0 entries")
	} else {
		first := table.Records[0].Index
		last := table.Records[len(table.Records)-1].Index
		fmt.Fprintf(w, "Index: %d entries, %d to %d\n", summary.Entries, first, last)
	}
	fmt.Fprintf(w, "Data columns (total %d columns):\n", len(summary.Columns))

	t := plainTable(w)
	t.SetHeader([]string{"#", "Column", "Non-Null Count", "Dtype"})
	tally := make(map[string]int)
	for _, c := range summary.Columns {
		t.Append([]string{
			strconv.Itoa(c.Position),
			c.Name,
			fmt.Sprintf("%d non-null", c.NonNull),
			c.Dtype,
		})
		tally[c.Dtype]++
	}
	t.Render()

	dtypes := make([]string, 0, len(tally))
	for dtype, n := range tally {
		dtypes = append(dtypes, fmt.Sprintf("%s(%d)", dtype, n))
	}
	sort.Strings(dtypes)
	fmt.Fprintf(w, "dtypes: %s\n", strings.Join(dtypes, ", "))
}

func (r *Reporter) writeDescribe(w io.Writer, d domain.Describe) {
	t := plainTable(w)
	t.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	rows := []struct {
		label string
		value float64
	}{
		{"count", float64(d.Count)},
		{"mean", d.Mean},
		{"std", d.Std},
		{"min", d.Min},
		{"25%", d.Q25},
		{"50%", d.Q50},
		{"75%", d.Q75},
		{"max", d.Max},
	}
	for _, row := range rows {
		t.Append([]string{row.label, fmt.Sprintf("%.6f", row.value)})
	}
	t.Render()
	fmt.Fprintln(w, "Name: Capacidad, dtype: float64")
}

func (r *Reporter) writeCounts(w io.Writer, counts []domain.TypeCount) {
	fmt.Fprintln(w, domain.ColumnTipo)
	t := plainTable(w)
	t.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, c := range counts {
		t.Append([]string{c.Tipo, strconv.Itoa(c.Count)})
	}
	t.Render()
	fmt.Fprintln(w, "Name: count, dtype: int64")
}

// plainTable returns a borderless table that looks like a dataframe print
func plainTable(w io.Writer) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetBorder(false)
	t.SetHeaderLine(false)
	t.SetColumnSeparator("")
	t.SetCenterSeparator("")
	t.SetRowSeparator("")
	t.SetHeaderAlignment(tablewriter.ALIGN_RIGHT)
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	t.SetTablePadding("  ")
	t.SetNoWhiteSpace(true)
	return t
}

// formatFloat prints a float the way a dataframe preview does: always with a decimal part
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// errWriter keeps the first write error and drops later writes
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
