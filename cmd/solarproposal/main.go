package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/energiaa/solarproposal/internal/config"
	"github.com/energiaa/solarproposal/internal/engine"
	"github.com/energiaa/solarproposal/internal/report"
	"github.com/energiaa/solarproposal/internal/server"
	"github.com/energiaa/solarproposal/pkg/artifact"
	"github.com/energiaa/solarproposal/pkg/constants"
	"github.com/energiaa/solarproposal/pkg/output"
	"github.com/energiaa/solarproposal/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via -ldflags.
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
	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
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

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to tariff configuration file")
	customerName := flag.String("name", "", "customer full name")
	customerAddress := flag.String("address", "", "customer address")
	invoiceAmount := flag.String("invoice", "", "monthly invoice amount, e.g. 439.85 or \"R$ 439,85\"")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, pdf, xlsx")
	outputDir := flag.String("output-dir", "", "directory for pdf/xlsx artifacts (default: current directory)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "run the proposal webhook server instead of a one-shot simulation")
	serverAddr := flag.String("addr", "", "webhook listen address override, e.g. :8080")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
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

	// Validate configuration and display any warnings
	warnings, err := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	if err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *serve {
		runServer(logger, conf, *serverConfigLocation, *serverAddr)
		return
	}

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

	// Validate customer identity and invoice amount from the CLI flags.
	name, err := validation.ValidateCustomerName(*customerName)
	if err != nil {
		logger.Fatal("invalid customer name",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	address, err := validation.ValidateCustomerAddress(*customerAddress)
	if err != nil {
		logger.Fatal("invalid customer address",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	amount, err := validation.ParseInvoiceAmount(*invoiceAmount)
	if err != nil {
		logger.Fatal("invalid invoice amount",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Resolve the tariff profile for this invoice band and run the simulation.
	profile, err := conf.ResolveProfile(amount)
	if err != nil {
		logger.Fatal("failed to resolve tariff profile",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	input := engine.CustomerInput{
		FullName:      name,
		Address:       address,
		InvoiceAmount: amount,
	}
	rep, err := engine.BuildReport(input, profile, conf.SurchargeTable(), conf.SolarDiscountRate())
	if err != nil {
		logger.Fatal("failed to build economy report",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(rep)
	case constants.OutputFormatCSV:
		output.CsvFormat(rep)
	case constants.OutputFormatPDF, constants.OutputFormatXLSX:
		if err := writeArtifact(logger, rep, conf, outputFormat, *outputDir); err != nil {
			logger.Fatal("failed to write proposal artifact",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}

// writeArtifact renders the report as a PDF or XLSX proposal named after the
// customer and writes it under dir.
func writeArtifact(logger *zap.Logger, rep engine.EconomyReport, conf *config.Configuration, format, dir string) error {
	meta := report.Meta{
		GeneratedAt:     time.Now(),
		DiscountPercent: conf.Contract.SolarDiscountPercent,
		Version:         version,
	}

	var data []byte
	var err error
	switch format {
	case constants.OutputFormatPDF:
		data, err = report.BuildProposalPDF(rep, meta)
	case constants.OutputFormatXLSX:
		data, err = report.BuildProposalXLSX(rep, meta)
	}
	if err != nil {
		return err
	}

	// CLI flag wins, then the configured output directory.
	if dir == "" {
		dir = conf.Output.Directory
	}
	if dir == "" {
		dir = "."
	}
	name := artifact.ProposalFileName(rep.Customer.FullName, format)
	path, err := artifact.Write(dir, name, data)
	if err != nil {
		return err
	}
	logger.Info("proposal artifact written",
		zap.String("op", "main"),
		zap.String("path", path),
	)
	return nil
}

// runServer starts the proposal webhook API.
func runServer(logger *zap.Logger, conf *config.Configuration, serverConfigLocation, addrOverride string) {
	srvCfg, err := server.LoadConfig(serverConfigLocation)
	if err != nil {
		logger.Fatal("failed to load server configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if addrOverride != "" {
		srvCfg.Address = addrOverride
	}

	handler := server.NewHandler(logger, conf, srvCfg, version)
	logger.Info("starting proposal webhook server",
		zap.String("op", "main"),
		zap.String("address", srvCfg.Address),
		zap.String("outputDir", srvCfg.OutputDir),
	)
	if err := http.ListenAndServe(srvCfg.Address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
