// Package config provides configuration loading for ecofuturo.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority), optionally seeded from .env
//	2. YAML file (ecofuturo.yaml, configs/ecofuturo.yaml, or -config)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern ECO_<SECTION>_<FIELD>:
//
//	ECO_INPUT_PATH=meta_FNCER.csv
//	ECO_INPUT_DELIMITER=;
//	ECO_OUTPUT_DIR=graficos_web
//	ECO_OUTPUT_SUMMARY_CSV=resumen_tipos.csv
//	ECO_CHARTS_PARALLELISM=4
//	ECO_LOGGING_LEVEL=debug
//	ECO_TELEMETRY_METRICS_FILE=metrics.prom
//
// The defaults reproduce the historical behaviour: read meta_FNCER.csv from
// the working directory and write the four charts into graficos_web.
//
// # Paths
//
// Config.Paths resolves every input and output file:
//
//	paths := cfg.Paths()
//	if err := paths.EnsureOutputDir(); err != nil {
//	    return err
//	}
package config
