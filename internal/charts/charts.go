package charts

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"ecofuturo/pkg/contracts/domain"
)

// Chart titles
const (
	BarTitle  = "Producción de Energía Renovable por Fuente (MW)"
	PieTitle  = "Participación de Energías Renovables"
	LineTitle = "Distribución de Capacidad Instalada por Proyecto"
	AreaTitle = "Comparación entre tipos de Energía Renovable (MW)"
)

// AreaStack is the stack group shared by every area series
const AreaStack = "one"

// palette assigns one color per energy type, cycling when there are more types
var palette = []string{
	"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A",
	"#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// ColorFor returns the palette color for the i-th type
func ColorFor(i int) string {
	return palette[i%len(palette)]
}

// Size is the chart canvas size in CSS units
type Size struct {
	Width  string
	Height string
}

// globalOpts sets a fixed chart id so the same data always renders the same document
func globalOpts(id, title string, size Size) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			ChartID:   id,
			PageTitle: title,
			Width:     size.Width,
			Height:    size.Height,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "30"}),
	}
}

// NewBarChart draws one bar per type with the summed capacity, colored by type
func NewBarChart(byType []domain.TypeCapacity, size Size) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOpts("grafico_barras", BarTitle, size),
		charts.WithXAxisOpts(opts.XAxis{Name: domain.ColumnTipo}),
		charts.WithYAxisOpts(opts.YAxis{Name: domain.ColumnCapacidad}),
	)...)

	categories := make([]string, len(byType))
	items := make([]opts.BarData, len(byType))
	for i, tc := range byType {
		categories[i] = tc.Tipo
		items[i] = opts.BarData{
			Name:      tc.Tipo,
			Value:     tc.Capacidad,
			ItemStyle: &opts.ItemStyle{Color: ColorFor(i)},
		}
	}

	bar.SetXAxis(categories).AddSeries(domain.ColumnCapacidad, items)
	return bar
}

// NewPieChart draws the summed capacity per type as slices labeled with their share
func NewPieChart(byType []domain.TypeCapacity, size Size) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(globalOpts("grafico_torta", PieTitle, size)...)

	items := make([]opts.PieData, len(byType))
	for i, tc := range byType {
		items[i] = opts.PieData{
			Name:      tc.Tipo,
			Value:     tc.Capacidad,
			ItemStyle: &opts.ItemStyle{Color: ColorFor(i)},
		}
	}

	pie.AddSeries(domain.ColumnTipo, items,
		charts.WithLabelOpts(opts.Label{Show: true, Formatter: "{b}: {d}%"}),
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"0%", "65%"}}),
	)
	return pie
}

// NewLineChart draws one line per type over the projects sorted by capacity.
// Gaps where a slot belongs to another type are connected.
func NewLineChart(category []string, series []domain.Series, size Size) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(globalOpts("grafico_lineas", LineTitle, size),
		charts.WithXAxisOpts(opts.XAxis{Name: domain.ColumnProyecto}),
		charts.WithYAxisOpts(opts.YAxis{Name: domain.ColumnCapacidad}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)...)

	line.SetXAxis(category)
	for i, s := range series {
		line.AddSeries(s.Name, lineData(s.Values),
			charts.WithLineChartOpts(opts.LineChart{ConnectNulls: true, ShowSymbol: true}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorFor(i)}),
		)
	}
	return line
}

// NewAreaChart stacks one area series per type in stack group "one"
func NewAreaChart(category []string, series []domain.Series, size Size) *charts.Line {
	area := charts.NewLine()
	area.SetGlobalOptions(append(globalOpts("grafico_area", AreaTitle, size),
		charts.WithXAxisOpts(opts.XAxis{Name: domain.ColumnProyecto}),
		charts.WithYAxisOpts(opts.YAxis{Name: domain.ColumnCapacidad}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)...)

	area.SetXAxis(category)
	for i, s := range series {
		area.AddSeries(s.Name, lineData(s.Values),
			charts.WithLineChartOpts(opts.LineChart{Stack: AreaStack}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: ColorFor(i), Opacity: 0.5}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorFor(i)}),
		)
	}
	return area
}

// lineData converts series values; "-" is the missing-point marker for echarts
func lineData(values []*float64) []opts.LineData {
	items := make([]opts.LineData, len(values))
	for i, v := range values {
		if v == nil {
			items[i] = opts.LineData{Value: "-"}
		} else {
			items[i] = opts.LineData{Value: *v}
		}
	}
	return items
}
