package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/launchessentials/finplan/internal/analytics"
	"github.com/launchessentials/finplan/internal/config"
	"github.com/launchessentials/finplan/internal/planner"
	"github.com/launchessentials/finplan/internal/server"
	"github.com/launchessentials/finplan/pkg/constants"
	"github.com/launchessentials/finplan/pkg/faults"
	"github.com/launchessentials/finplan/pkg/output"
	"github.com/launchessentials/finplan/pkg/projection"
	"github.com/launchessentials/finplan/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to plan file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	savePath := flag.String("save", "", "write the save-record JSON to this path")
	serve := flag.Bool("serve", false, "run the HTTP planning API instead of a one-shot plan")
	address := flag.String("address", "", "listen address override for -serve")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	if *serve {
		runServer(*serverConfigLocation, *address, *logLevel)
		return
	}

	// Load the plan file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		classified := faults.Classify(err)
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load plan at %s\", \"category\": \"%s\", \"error\": \"%v\"}\n",
			*configLocation, classified.Category, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate the plan and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Plan warning: "+warning,
			zap.String("op", "main"),
		)
	}

	recorder := analytics.NewRecorder(logger)
	recorder.Record("plan_started", map[string]interface{}{
		"config": *configLocation,
	})

	// Run the full analysis.
	result, err := planner.Plan(logger, *conf)
	if err != nil {
		logger.Fatal("failed to compute plan",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	recorder.Record("plan_computed", map[string]interface{}{
		"model":       string(result.Model.Type),
		"periods":     len(result.Projection.Profit),
		"suggestions": len(result.Suggestions),
	})

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(result)
	case constants.OutputFormatCSV:
		output.CsvFormat(result)
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(result); err != nil {
			logger.Fatal("failed to encode result",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	if *savePath != "" {
		if err := writeSaveRecord(logger, result, conf.CashFlow, *savePath); err != nil {
			logger.Fatal("failed to write save record",
				zap.String("op", "main"),
				zap.String("path", *savePath),
				zap.Error(err),
			)
		}
		logger.Info("save record written",
			zap.String("op", "main"),
			zap.String("path", *savePath),
		)
	}
}

// writeSaveRecord persists the wizard payload, retrying transient filesystem
// failures with backoff.
func writeSaveRecord(logger *zap.Logger, result planner.Result, in projection.Input, path string) error {
	record := result.SaveRecord(in, time.Now())
	data, err := planner.MarshalSaveRecord(record)
	if err != nil {
		return err
	}

	return faults.Retry(context.Background(), logger, faults.DefaultPolicy(), "main.writeSaveRecord",
		func(ctx context.Context) error {
			if err := os.WriteFile(path, data, 0644); err != nil {
				return faults.Persistence(err)
			}
			return nil
		})
}

func runServer(configLocation, addressOverride, logLevelOverride string) {
	serverConf, err := server.LoadConfig(configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", configLocation, err)
		return
	}
	if addressOverride != "" {
		serverConf.Address = addressOverride
	}

	logger, err := initializeLogger(serverConf.Logging, logLevelOverride)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	recorder := analytics.NewRecorder(logger)
	handler := server.NewHandler(logger, recorder, serverConf.UploadSizeBytes(), version)

	logger.Info("starting planning API",
		zap.String("op", "main"),
		zap.String("address", serverConf.Address),
		zap.String("version", version),
	)

	if err := http.ListenAndServe(serverConf.Address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
