package domain

// Column names every project dataset must carry
const (
	ColumnProyecto  = "Proyecto"
	ColumnTipo      = "Tipo"
	ColumnCapacidad = "Capacidad"
)

// Cell is a single raw field. Null is the missing-value marker.
type Cell struct {
	Text string `json:"text"`
	Null bool   `json:"null"`
}

// NullCell returns a missing cell
func NullCell() Cell {
	return Cell{Null: true}
}

// RawRow is one accepted data row as read from the source
type RawRow struct {
	Index int    `json:"index"` // position among accepted rows, starting at 0
	Line  int    `json:"line"`  // 1-based source line (or sheet row)
	Cells []Cell `json:"cells"`
}

// SkippedLine records a malformed row the loader dropped
type SkippedLine struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// RawTable is the loader output: header plus raw rows, capacity still text
type RawTable struct {
	Source  string        `json:"source"`
	Columns []string      `json:"columns"`
	Rows    []RawRow      `json:"rows"`
	Skipped []SkippedLine `json:"skipped,omitempty"`
}

// ColumnIndex returns the position of the named column or -1
func (t *RawTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ProjectRecord is a cleaned renewable-energy project.
// Tipo is never missing and Capacidad is always a finite number.
type ProjectRecord struct {
	Index        int     `json:"index"`
	Line         int     `json:"line"`
	Proyecto     string  `json:"proyecto"`
	ProyectoNull bool    `json:"proyecto_null,omitempty"`
	Tipo         string  `json:"tipo"`
	Capacidad    float64 `json:"capacidad"`
	Cells        []Cell  `json:"cells"` // every column, in table order
}

// ProjectTable is the cleaned collection. It is not mutated after cleaning.
type ProjectTable struct {
	Columns []string        `json:"columns"`
	Records []ProjectRecord `json:"records"`
}

// Len returns the number of retained records
func (t *ProjectTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Capacities returns the capacity column in record order
func (t *ProjectTable) Capacities() []float64 {
	out := make([]float64, 0, t.Len())
	for _, r := range t.Records {
		out = append(out, r.Capacidad)
	}
	return out
}
