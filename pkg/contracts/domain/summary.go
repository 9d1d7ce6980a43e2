package domain

// Describe holds descriptive statistics of a numeric column.
// Fields other than Count are NaN when they are undefined for the sample.
type Describe struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Q25   float64 `json:"q25"`
	Q50   float64 `json:"q50"`
	Q75   float64 `json:"q75"`
	Max   float64 `json:"max"`
}

// TypeCount is the number of projects of one energy type
type TypeCount struct {
	Tipo  string `json:"tipo"`
	Count int    `json:"count"`
}

// TypeCapacity is the summed capacity of one energy type
type TypeCapacity struct {
	Tipo      string  `json:"tipo"`
	Capacidad float64 `json:"capacidad"`
}

// ColumnInfo describes one column of the cleaned table
type ColumnInfo struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	NonNull  int    `json:"non_null"`
	Dtype    string `json:"dtype"`
}

// Summary is everything the descriptive report prints
type Summary struct {
	Entries       int            `json:"entries"`
	Columns       []ColumnInfo   `json:"columns"`
	Capacity      Describe       `json:"capacity"`
	TotalCapacity float64        `json:"total_capacity"`
	CountByType   []TypeCount    `json:"count_by_type"`
	ByType        []TypeCapacity `json:"by_type"`
}

// Series is a named list of values aligned with a category axis
type Series struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"` // nil marks a gap
}

// ChartData is the data behind the four charts
type ChartData struct {
	ByType       []TypeCapacity `json:"by_type"`
	LineCategory []string       `json:"line_category"`
	LineSeries   []Series       `json:"line_series"`
	AreaCategory []string       `json:"area_category"`
	AreaSeries   []Series       `json:"area_series"`
}
