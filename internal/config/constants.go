package config

// Application constants
const (
	AppName    = "ecofuturo"
	AppVersion = "1.0.0"

	DefaultInputFile = "meta_FNCER.csv"
	DefaultOutputDir = "graficos_web"

	// Chart documents written to the output directory
	BarChartFile  = "grafico_barras.html"
	PieChartFile  = "grafico_torta.html"
	LineChartFile = "grafico_lineas.html"
	AreaChartFile = "grafico_area.html"

	// Directory and file permissions
	DirPermission  = 0755
	FilePermission = 0644
)
