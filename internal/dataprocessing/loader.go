package dataprocessing

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"ecofuturo/internal/errors"
	"ecofuturo/pkg/contracts/domain"
)

// naValues are the field texts treated as missing, matching the usual dataframe NA defaults
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsNA reports whether a raw field is a missing-value marker
func IsNA(text string) bool {
	_, ok := naValues[text]
	return ok
}

// NewCell builds a cell, marking NA texts as missing
func NewCell(text string) domain.Cell {
	if IsNA(text) {
		return domain.NullCell()
	}
	return domain.Cell{Text: text}
}

// RequiredColumns must be present in the header of every dataset
var RequiredColumns = []string{domain.ColumnProyecto, domain.ColumnTipo, domain.ColumnCapacidad}

// LoaderConfig holds configuration options for the Loader.
type LoaderConfig struct {
	Delimiter rune   // field separator for delimited text, ';' when zero
	Sheet     string // xlsx sheet name, first sheet when empty
}

// Loader reads project datasets into raw tables, skipping malformed rows.
type Loader struct {
	logger    *slog.Logger
	delimiter rune
	sheet     string
}

// NewLoader creates a loader with the given configuration
func NewLoader(logger *slog.Logger, cfg LoaderConfig) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ';'
	}
	return &Loader{
		logger:    logger,
		delimiter: cfg.Delimiter,
		sheet:     cfg.Sheet,
	}
}

// Load reads the dataset at path. Files ending in .xlsx are read as workbooks,
// anything else as delimited UTF-8 text.
func (l *Loader) Load(ctx context.Context, path string) (*domain.RawTable, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return l.loadXLSX(ctx, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileAccessError("failed to open input file", err).
			WithContext("path", path)
	}
	defer f.Close()

	return l.ReadCSV(ctx, f, path)
}

// ReadCSV parses delimited text from r. The first record is the header.
// Rows with more fields than the header, or with broken quoting, are skipped;
// short rows are padded with missing cells.
func (l *Loader) ReadCSV(ctx context.Context, r io.Reader, source string) (*domain.RawTable, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.Comma = l.delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParsingError("input has no header row", nil).
			WithContext("source", source)
	}
	if err != nil {
		return nil, l.readError(source, err)
	}

	table, err := newRawTable(source, header)
	if err != nil {
		return nil, err
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if stderrors.As(err, &parseErr) {
				l.skip(ctx, table, parseErr.StartLine, parseErr.Err.Error())
				continue
			}
			return nil, l.readError(source, err)
		}

		line, _ := reader.FieldPos(0)
		l.addRecord(ctx, table, record, line)
	}

	l.logLoaded(ctx, table)
	return table, nil
}

// loadXLSX reads the configured (or first) sheet of a workbook
func (l *Loader) loadXLSX(ctx context.Context, path string) (*domain.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) || stderrors.Is(err, os.ErrPermission) {
			return nil, errors.NewFileAccessError("failed to open input workbook", err).
				WithContext("path", path)
		}
		return nil, errors.NewParsingError("failed to parse input workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheet := l.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.NewParsingError("workbook has no sheets", nil).WithContext("path", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.NewParsingError("failed to read sheet", err).
			WithContext("path", path).
			WithContext("sheet", sheet)
	}

	// first non-empty row is the header
	start := 0
	for start < len(rows) && len(trimTrailingEmpty(rows[start])) == 0 {
		start++
	}
	if start == len(rows) {
		return nil, errors.NewParsingError("input has no header row", nil).WithContext("source", path)
	}

	table, err := newRawTable(path, trimTrailingEmpty(rows[start]))
	if err != nil {
		return nil, err
	}

	for i := start + 1; i < len(rows); i++ {
		row := trimTrailingEmpty(rows[i])
		if len(row) == 0 {
			continue
		}
		l.addRecord(ctx, table, row, i+1)
	}

	l.logLoaded(ctx, table)
	return table, nil
}

// newRawTable validates the header and creates an empty table
func newRawTable(source string, header []string) (*domain.RawTable, error) {
	columns := make([]string, len(header))
	copy(columns, header)

	table := &domain.RawTable{Source: source, Columns: columns}
	for _, required := range RequiredColumns {
		if table.ColumnIndex(required) < 0 {
			return nil, errors.NewParsingError("missing required column", nil).
				WithContext("column", required).
				WithContext("source", source)
		}
	}
	return table, nil
}

// addRecord appends a row or records it as skipped when it has too many fields
func (l *Loader) addRecord(ctx context.Context, table *domain.RawTable, record []string, line int) {
	if len(record) > len(table.Columns) {
		l.skip(ctx, table, line, fmt.Sprintf("expected %d fields, saw %d", len(table.Columns), len(record)))
		return
	}

	cells := make([]domain.Cell, len(table.Columns))
	for i := range cells {
		if i < len(record) {
			cells[i] = NewCell(record[i])
		} else {
			cells[i] = domain.NullCell()
		}
	}

	table.Rows = append(table.Rows, domain.RawRow{
		Index: len(table.Rows),
		Line:  line,
		Cells: cells,
	})
}

func (l *Loader) skip(ctx context.Context, table *domain.RawTable, line int, reason string) {
	table.Skipped = append(table.Skipped, domain.SkippedLine{Line: line, Reason: reason})
	l.logger.DebugContext(ctx, "Skipping malformed row",
		slog.String("source", table.Source),
		slog.Int("line", line),
		slog.String("reason", reason))
}

func (l *Loader) readError(source string, err error) error {
	var parseErr *csv.ParseError
	if stderrors.As(err, &parseErr) {
		return errors.NewParsingError("failed to parse header row", err).WithContext("source", source)
	}
	return errors.NewFileAccessError("failed to read input file", err).WithContext("source", source)
}

func (l *Loader) logLoaded(ctx context.Context, table *domain.RawTable) {
	if len(table.Skipped) > 0 {
		l.logger.WarnContext(ctx, "Malformed rows skipped",
			slog.String("source", table.Source),
			slog.Int("skipped", len(table.Skipped)))
	}
	l.logger.InfoContext(ctx, "Dataset loaded",
		slog.String("source", table.Source),
		slog.Int("columns", len(table.Columns)),
		slog.Int("rows", len(table.Rows)),
		slog.Int("skipped", len(table.Skipped)))
}

func trimTrailingEmpty(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}
