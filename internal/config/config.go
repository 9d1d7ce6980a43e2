package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"ecofuturo/internal/errors"
)

// EnvPrefix namespaces every environment variable (ECO_INPUT_PATH, ...)
const EnvPrefix = "ECO"

// Config represents the complete application configuration
type Config struct {
	Input     InputConfig     `yaml:"input" envconfig:"INPUT"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Charts    ChartsConfig    `yaml:"charts" envconfig:"CHARTS"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// InputConfig describes the dataset to load
type InputConfig struct {
	Path      string `yaml:"path" split_words:"true" default:"meta_FNCER.csv" validate:"required"`
	Delimiter string `yaml:"delimiter" split_words:"true" default:";" validate:"required,len=1"`
	Sheet     string `yaml:"sheet" split_words:"true"` // xlsx only; first sheet when empty
}

// OutputConfig contains output locations. Summary exports are disabled when empty.
type OutputConfig struct {
	Dir         string `yaml:"dir" split_words:"true" default:"graficos_web" validate:"required"`
	SummaryCSV  string `yaml:"summary_csv" split_words:"true"`
	SummaryXLSX string `yaml:"summary_xlsx" split_words:"true"`
}

// ChartsConfig contains chart rendering options
type ChartsConfig struct {
	Parallelism int    `yaml:"parallelism" split_words:"true" default:"1" validate:"min=1,max=4"`
	Width       string `yaml:"width" split_words:"true" default:"900px" validate:"required"`
	Height      string `yaml:"height" split_words:"true" default:"500px" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true" default:"info" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" split_words:"true" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" split_words:"true" default:"logs/ecofuturo.log"`
}

// TelemetryConfig contains tracing and metrics export configuration.
// Each exporter is off when its file is empty.
type TelemetryConfig struct {
	TraceFile   string `yaml:"trace_file" split_words:"true"`
	MetricsFile string `yaml:"metrics_file" split_words:"true"`
	Environment string `yaml:"environment" split_words:"true" default:"development"`
}

// Load loads configuration from .env, environment variables and an optional YAML file.
// Explicitly set environment variables win over the file; the file wins over defaults.
func Load(configFile string) (*Config, error) {
	if FileExists(".env") {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.NewConfigError("failed to load .env file", err)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, errors.NewConfigError("failed to load config from env", err)
	}

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, errors.NewConfigError("failed to load config from file", err).
				WithContext("path", configFile)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config into env config.
// A file value applies only when the matching variable is not set in the environment.
func mergeConfigs(fileConfig, envConfig Config) Config {
	c := &envConfig
	f := &fileConfig

	c.Input.Path = pick("INPUT_PATH", c.Input.Path, f.Input.Path)
	c.Input.Delimiter = pick("INPUT_DELIMITER", c.Input.Delimiter, f.Input.Delimiter)
	c.Input.Sheet = pick("INPUT_SHEET", c.Input.Sheet, f.Input.Sheet)

	c.Output.Dir = pick("OUTPUT_DIR", c.Output.Dir, f.Output.Dir)
	c.Output.SummaryCSV = pick("OUTPUT_SUMMARY_CSV", c.Output.SummaryCSV, f.Output.SummaryCSV)
	c.Output.SummaryXLSX = pick("OUTPUT_SUMMARY_XLSX", c.Output.SummaryXLSX, f.Output.SummaryXLSX)

	c.Charts.Parallelism = pickInt("CHARTS_PARALLELISM", c.Charts.Parallelism, f.Charts.Parallelism)
	c.Charts.Width = pick("CHARTS_WIDTH", c.Charts.Width, f.Charts.Width)
	c.Charts.Height = pick("CHARTS_HEIGHT", c.Charts.Height, f.Charts.Height)

	c.Logging.Level = pick("LOGGING_LEVEL", c.Logging.Level, f.Logging.Level)
	c.Logging.Output = pick("LOGGING_OUTPUT", c.Logging.Output, f.Logging.Output)
	c.Logging.FilePath = pick("LOGGING_FILE_PATH", c.Logging.FilePath, f.Logging.FilePath)

	c.Telemetry.TraceFile = pick("TELEMETRY_TRACE_FILE", c.Telemetry.TraceFile, f.Telemetry.TraceFile)
	c.Telemetry.MetricsFile = pick("TELEMETRY_METRICS_FILE", c.Telemetry.MetricsFile, f.Telemetry.MetricsFile)
	c.Telemetry.Environment = pick("TELEMETRY_ENVIRONMENT", c.Telemetry.Environment, f.Telemetry.Environment)

	return envConfig
}

func pick(key, envValue, fileValue string) string {
	if _, ok := os.LookupEnv(EnvPrefix + "_" + key); ok || fileValue == "" {
		return envValue
	}
	return fileValue
}

func pickInt(key string, envValue, fileValue int) int {
	if _, ok := os.LookupEnv(EnvPrefix + "_" + key); ok || fileValue == 0 {
		return envValue
	}
	return fileValue
}

// validate validates the configuration
func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return errors.NewValidationError(fmt.Sprintf("invalid %s: %q fails %s",
				first.Namespace(), fmt.Sprint(first.Value()), first.Tag())).
				WithContext("violations", strconv.Itoa(len(verrs)))
		}
		return errors.NewConfigError("config validation failed", err)
	}
	return nil
}

// Validate exposes validation for configurations built in code
func (c *Config) Validate() error {
	return c.validate()
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"ecofuturo.yaml",
		"configs/ecofuturo.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path:      DefaultInputFile,
			Delimiter: ";",
		},
		Output: OutputConfig{
			Dir: DefaultOutputDir,
		},
		Charts: ChartsConfig{
			Parallelism: 1,
			Width:       "900px",
			Height:      "500px",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/ecofuturo.log",
		},
		Telemetry: TelemetryConfig{
			Environment: "development",
		},
	}
}
