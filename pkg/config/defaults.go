package config

import "github.com/Sumatoshi-tech/contribplot/pkg/contrib"

// Output defaults.
const (
	DefaultOutputDir      = "out/latest"
	DefaultOutputOverview = false
	DefaultOutputSummary  = false
)

// Template defaults, relative to the working directory.
const (
	DefaultIndexTemplate = "templates/plot/index.tpl.html"
	DefaultTabTemplate   = "templates/plot/tabs.tpl.html"
)

// Chart defaults.
const (
	DefaultChartWidthInches  = 8.0
	DefaultChartHeightInches = 12.0
)

// Logging defaults.
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false
)

// Observability defaults.
const (
	DefaultOTLPEndpoint    = ""
	DefaultOTLPInsecure    = false
	DefaultMetricsTextfile = ""
)

// DefaultRepository is the repository opened when none is configured.
const DefaultRepository = "."

type defaultSetter interface {
	SetDefault(key string, value any)
}

func applyDefaults(v defaultSetter) {
	v.SetDefault("repository", DefaultRepository)

	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.overview", DefaultOutputOverview)
	v.SetDefault("output.summary", DefaultOutputSummary)

	v.SetDefault("templates.index", DefaultIndexTemplate)
	v.SetDefault("templates.tab", DefaultTabTemplate)

	v.SetDefault("chart.width_inches", DefaultChartWidthInches)
	v.SetDefault("chart.height_inches", DefaultChartHeightInches)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.json", DefaultLogJSON)

	v.SetDefault("observability.otlp_endpoint", DefaultOTLPEndpoint)
	v.SetDefault("observability.otlp_insecure", DefaultOTLPInsecure)
	v.SetDefault("observability.metrics_textfile", DefaultMetricsTextfile)

	v.SetDefault("windows", defaultWindowMaps())
}

func defaultWindowMaps() []map[string]any {
	windows := contrib.DefaultWindows()
	maps := make([]map[string]any, 0, len(windows))

	for _, w := range windows {
		maps = append(maps, map[string]any{"name": w.Name, "days": w.Days})
	}

	return maps
}
