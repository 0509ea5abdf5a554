package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/optave/SDK-optave-client-integration-sub000/internal/config"
	"github.com/optave/SDK-optave-client-integration-sub000/internal/discovery"
	"github.com/optave/SDK-optave-client-integration-sub000/internal/logging"
	"github.com/optave/SDK-optave-client-integration-sub000/internal/registry"
	"github.com/optave/SDK-optave-client-integration-sub000/internal/report"
	"github.com/optave/SDK-optave-client-integration-sub000/internal/rules"
	"github.com/optave/SDK-optave-client-integration-sub000/internal/schemas"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the packaged bundles in the dist directory",
	Long: `Discovers candidate bundle files, strips comments, and runs every applicable rule against them.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values. Exits 0 when all rules pass (warnings allowed unless --strict-warnings), 1 otherwise.`,
	RunE: runCheck,
}

var (
	checkConfigPath     string
	checkDistDir        string
	checkJSON           bool
	checkNoParallel     bool
	checkMaxWorkers     int
	checkSeverities     []string
	checkStrictWarnings bool
	checkVerbose        bool
	checkExportName     string
)

func init() {
	// Config file flag (processed first)
	checkCmd.Flags().StringVar(&checkConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	checkCmd.Flags().StringVar(&checkDistDir, "dist-dir", "", "Root directory to discover target files (default: dist)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Emit the structured report instead of formatted text")
	checkCmd.Flags().BoolVar(&checkNoParallel, "no-parallel", false, "Force sequential file processing")
	checkCmd.Flags().IntVar(&checkMaxWorkers, "max-workers", 0, "Cap concurrent file processing")
	checkCmd.Flags().StringSliceVar(&checkSeverities, "severity", nil, "Comma-separated severities to include (default: all)")
	checkCmd.Flags().BoolVar(&checkStrictWarnings, "strict-warnings", false, "Treat warnings as failures")
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Print detailed debug information")
	checkCmd.Flags().StringVar(&checkExportName, "export-name", "", "Global export name the bundles must expose")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	// Step 1: Load config file if provided
	var cfg config.Config
	if checkConfigPath != "" {
		loadedCfg, err := config.LoadConfig(checkConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("dist-dir") {
		cfg.DistDir = checkDistDir
	}
	if cmd.Flags().Changed("json") {
		cfg.JSON = checkJSON
	}
	if cmd.Flags().Changed("no-parallel") {
		cfg.NoParallel = checkNoParallel
	}
	if cmd.Flags().Changed("max-workers") {
		cfg.MaxWorkers = checkMaxWorkers
	}
	if cmd.Flags().Changed("severity") {
		cfg.Severities = checkSeverities
	}
	if cmd.Flags().Changed("strict-warnings") {
		cfg.StrictWarnings = checkStrictWarnings
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = checkVerbose
	}
	if cmd.Flags().Changed("export-name") {
		cfg.ExportName = checkExportName
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		DistDir:    "dist",
		Marker:     discovery.DefaultMarker,
		Extension:  discovery.DefaultExtension,
		ExportName: "OptaveClient",
		MaxWorkers: 4,
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate the merged configuration
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Step 5: Discover and read candidate files
	paths, err := discovery.DiscoverBundles(cfg.DistDir, discovery.Criteria{
		Marker:    cfg.Marker,
		Extension: cfg.Extension,
	})
	if err != nil {
		return err
	}
	logger.Debugw("discovered candidate bundles", "count", len(paths))

	files, readFaults := discovery.LoadSources(paths)

	// Step 6: Build the registry with the fixed rule set
	var allowed []rules.Severity
	for _, s := range cfg.Severities {
		allowed = append(allowed, rules.Severity(s))
	}
	reg := registry.New(logger, allowed...)
	ruleSet := []rules.Rule{
		rules.NewExportPresence(cfg.ExportName),
		rules.NewDynamicEval(),
		rules.NewForbiddenDependency(cfg.ForbiddenDeps),
		rules.NewBuildIdentity(),
		rules.NewSecurityGuard(),
	}
	for _, rule := range ruleSet {
		if err := reg.Register(rule); err != nil {
			return fmt.Errorf("failed to register rule: %w", err)
		}
	}

	// Step 7: Run and fold per-file read faults into the report
	rep := reg.RunAll(files, registry.Options{
		Parallel:   !cfg.NoParallel,
		MaxWorkers: cfg.MaxWorkers,
	})
	for _, fault := range readFaults {
		rep.Record([]rules.Violation{fault})
	}
	if len(readFaults) > 0 {
		rep.SortViolations()
	}

	// Step 8: Render
	printer := report.NewPrinter(os.Stdout)
	if cfg.JSON {
		var buf bytes.Buffer
		if err := report.NewPrinter(&buf).PrintJSON(rep); err != nil {
			return err
		}
		if err := schemas.ValidateReport(buf.Bytes()); err != nil {
			logger.Warnw("emitted report failed schema self-check", "error", err)
		}
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	} else {
		printer.PrintText(rep, cfg.StrictWarnings)
	}

	if code := rep.ExitCode(cfg.StrictWarnings); code != 0 {
		_ = logger.Sync()
		os.Exit(code)
	}
	return nil
}
