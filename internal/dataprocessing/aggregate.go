package dataprocessing

import (
	"sort"
	"strconv"
	"strings"

	"ecofuturo/pkg/contracts/domain"
)

// Summarize computes everything the descriptive report prints
func Summarize(table *domain.ProjectTable) domain.Summary {
	return domain.Summary{
		Entries:       table.Len(),
		Columns:       ColumnInfo(table),
		Capacity:      Describe(table.Capacities()),
		TotalCapacity: TotalCapacity(table),
		CountByType:   CountByType(table),
		ByType:        CapacityByType(table),
	}
}

// TypesInOrder returns the distinct Tipo values in order of first appearance
func TypesInOrder(records []domain.ProjectRecord) []string {
	seen := make(map[string]bool)
	var types []string
	for _, r := range records {
		if !seen[r.Tipo] {
			seen[r.Tipo] = true
			types = append(types, r.Tipo)
		}
	}
	return types
}

// CapacityByType sums Capacidad per Tipo, keys in ascending order
func CapacityByType(table *domain.ProjectTable) []domain.TypeCapacity {
	sums := make(map[string]float64)
	for _, r := range table.Records {
		sums[r.Tipo] += r.Capacidad
	}

	out := make([]domain.TypeCapacity, 0, len(sums))
	for tipo, total := range sums {
		out = append(out, domain.TypeCapacity{Tipo: tipo, Capacidad: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tipo < out[j].Tipo })
	return out
}

// CountByType counts records per Tipo by descending frequency.
// Ties keep the order in which the types first appear.
func CountByType(table *domain.ProjectTable) []domain.TypeCount {
	counts := make(map[string]int)
	for _, r := range table.Records {
		counts[r.Tipo]++
	}

	types := TypesInOrder(table.Records)
	out := make([]domain.TypeCount, 0, len(types))
	for _, tipo := range types {
		out = append(out, domain.TypeCount{Tipo: tipo, Count: counts[tipo]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// SortedByCapacity returns a copy of the records in ascending capacity order.
// Equal capacities keep their source order.
func SortedByCapacity(table *domain.ProjectTable) []domain.ProjectRecord {
	sorted := make([]domain.ProjectRecord, len(table.Records))
	copy(sorted, table.Records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Capacidad < sorted[j].Capacidad })
	return sorted
}

// LineSeries builds one series per type over the projects sorted by capacity.
// Slots that belong to another type are gaps.
func LineSeries(table *domain.ProjectTable) ([]string, []domain.Series) {
	sorted := SortedByCapacity(table)
	return categories(sorted), seriesPerType(sorted, func(float64) *float64 { return nil })
}

// AreaSeries builds one independent (type, series) pair per distinct type over
// the projects in source order. Slots of other types are zero so the stack
// stays continuous.
func AreaSeries(table *domain.ProjectTable) ([]string, []domain.Series) {
	return categories(table.Records), seriesPerType(table.Records, func(float64) *float64 {
		zero := 0.0
		return &zero
	})
}

// BuildChartData computes the data behind all four charts
func BuildChartData(table *domain.ProjectTable) domain.ChartData {
	lineCategory, lineSeries := LineSeries(table)
	areaCategory, areaSeries := AreaSeries(table)
	return domain.ChartData{
		ByType:       CapacityByType(table),
		LineCategory: lineCategory,
		LineSeries:   lineSeries,
		AreaCategory: areaCategory,
		AreaSeries:   areaSeries,
	}
}

func categories(records []domain.ProjectRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Proyecto
	}
	return out
}

func seriesPerType(records []domain.ProjectRecord, filler func(float64) *float64) []domain.Series {
	types := TypesInOrder(records)
	out := make([]domain.Series, 0, len(types))
	for _, tipo := range types {
		values := make([]*float64, len(records))
		for i, r := range records {
			if r.Tipo == tipo {
				v := r.Capacidad
				values[i] = &v
			} else {
				values[i] = filler(r.Capacidad)
			}
		}
		out = append(out, domain.Series{Name: tipo, Values: values})
	}
	return out
}

// ColumnInfo reports position, non-null count and inferred dtype per column.
// Capacidad is always float64 after cleaning.
func ColumnInfo(table *domain.ProjectTable) []domain.ColumnInfo {
	out := make([]domain.ColumnInfo, len(table.Columns))
	for i, name := range table.Columns {
		info := domain.ColumnInfo{Position: i, Name: name}
		var values []string
		nulls := 0
		for _, r := range table.Records {
			c := cellAt(r.Cells, i)
			if c.Null {
				nulls++
				continue
			}
			values = append(values, c.Text)
		}
		info.NonNull = len(values)
		if name == domain.ColumnCapacidad {
			info.Dtype = "float64"
		} else {
			info.Dtype = inferDtype(values, nulls)
		}
		out[i] = info
	}
	return out
}

// inferDtype mimics how a dataframe library types a text column
func inferDtype(values []string, nulls int) string {
	if len(values) == 0 {
		return "float64"
	}

	allInt, allNum, allBool := true, true, true
	for _, v := range values {
		s := strings.TrimSpace(v)
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			allNum = false
		}
		switch s {
		case "True", "TRUE", "true", "False", "FALSE", "false":
		default:
			allBool = false
		}
	}

	switch {
	case allBool && nulls == 0:
		return "bool"
	case allInt && nulls == 0:
		return "int64"
	case allNum:
		return "float64"
	default:
		return "object"
	}
}
