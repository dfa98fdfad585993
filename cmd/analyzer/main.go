package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"fraud-analysis/internal/domain"
	"fraud-analysis/internal/gateway"
	"fraud-analysis/internal/logger"
	"fraud-analysis/internal/usecase"
)

// parseConfig builds the pipeline configuration from command-line flags.
// The seed is only fixed when -seed was given explicitly, so every int64
// value (0 included) is usable; an omitted flag means a time-based seed.
func parseConfig(fs *flag.FlagSet, args []string) (domain.Config, error) {
	inputPath := fs.String("input", "", "Path to the credit card transactions CSV file (required)")
	outputDir := fs.String("output", "artifacts", "Directory for chart and export artifacts")
	sampleSize := fs.Int("sample-size", domain.DefaultSamplePerClass, "Rows to sample per class for the dashboard export")
	seed := fs.Int64("seed", 0, "Random seed for the balanced sample (omit for a time-based seed)")

	if err := fs.Parse(args); err != nil {
		return domain.Config{}, err
	}
	if *inputPath == "" {
		return domain.Config{}, errors.New("the -input flag is required")
	}

	cfg := domain.Config{
		InputPath:      *inputPath,
		OutputDir:      *outputDir,
		SamplePerClass: *sampleSize,
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.Seed = seed
		}
	})
	return cfg, nil
}

func main() {
	cfg, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	log := logger.New()

	// --- Dependency Injection (Wiring the application) ---
	// 1. Create the gateways (the outermost layer)
	repo := gateway.NewCSVDatasetRepository()
	renderer := gateway.NewPlotChartRenderer()

	// 2. Create the usecase and inject the gateways (the core logic layer)
	analysisUseCase := usecase.NewAnalysisUseCase(repo, renderer, log)

	// --- Execute the Usecase ---
	report, err := analysisUseCase.Run(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("analysis failed")
	}

	// --- Present the Output ---
	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to generate JSON report")
	}

	fmt.Println(string(output))
}
