package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"ecofuturo/internal/config"
	"ecofuturo/internal/infrastructure"
	"ecofuturo/internal/pipeline"
)

// shutdownTimeout bounds flushing spans and writing the metrics textfile
const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the analysis and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	configFile := flags.String("config", "", "YAML config file (defaults to ecofuturo.yaml or configs/ecofuturo.yaml when present)")
	input := flags.String("input", "", "input dataset, .csv or .xlsx (overrides ECO_INPUT_PATH)")
	outDir := flags.String("out", "", "output directory for the chart files (overrides ECO_OUTPUT_DIR)")
	version := flags.Bool("version", false, "print version and exit")
	if err := flags.Parse(args); err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *version {
		fmt.Fprintf(stdout, "%s %s\n", config.AppName, config.AppVersion)
		return 0
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *input != "" {
		cfg.Input.Path = *input
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize logger: %v\n", err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	telemetry, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger)
	if err != nil {
		infrastructure.WithError(logger, err).Error("Failed to initialize telemetry")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx = infrastructure.EnsureRunID(ctx)
	p := pipeline.New(cfg, stdout,
		pipeline.WithLogger(logger),
		pipeline.WithTelemetry(telemetry))
	_, runErr := p.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdownErr := telemetry.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		infrastructure.WithError(logger, shutdownErr).ErrorContext(ctx, "Telemetry shutdown failed")
	}

	if runErr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		return 1
	}
	if shutdownErr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", shutdownErr)
		return 1
	}

	fmt.Fprintln(stdout, "\n✅ Todos los gráficos interactivos fueron creados correctamente en:")
	fmt.Fprintln(stdout, p.Paths().OutputDir)
	return 0
}
