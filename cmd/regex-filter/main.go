package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/regex-filter/internal/application"
	"github.com/eugenenazirov/regex-filter/internal/config"
	"github.com/eugenenazirov/regex-filter/internal/logging"
)

const (
	exitOK      = 0
	exitFailure = 1
)

var (
	notifyContext = signal.NotifyContext
	terminate     = os.Exit
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	kingpinApp := kingpin.New("regex-filter", "Regex Filter - applies ordered regex substitutions from a filter file to every file in a directory and writes the results to a separate output directory")
	kingpinApp.HelpFlag.Short('h')
	kingpinApp.UsageWriter(stdout)
	kingpinApp.ErrorWriter(stderr)

	terminated, terminateCode := false, exitOK
	kingpinApp.Terminate(func(code int) {
		terminated, terminateCode = true, code
		terminate(code)
	})

	directory := kingpinApp.Arg("directory", "Directory of files to filter").Required().String()
	filterFile := kingpinApp.Arg("filter-file", "JSON or YAML file mapping regex patterns to replacement words").Required().String()

	var ignoreCaseSet, renameSet bool
	configFile := kingpinApp.Flag("config", "Path to YAML settings file").String()
	outputDirName := kingpinApp.Flag("output-dir-name", "Name of the output directory created inside <directory>").String()
	outputDir := kingpinApp.Flag("output-dir", "Explicit output directory path (overrides --output-dir-name)").String()
	ignoreCase := kingpinApp.Flag("ignore-case", "Match patterns case-insensitively").IsSetByUser(&ignoreCaseSet).Bool()
	rename := kingpinApp.Flag("rename", "Apply patterns to file names as well as content").IsSetByUser(&renameSet).Bool()
	encoding := kingpinApp.Flag("encoding", "Text encoding of input files (e.g. utf-8, latin1, shift_jis)").String()
	filesPerSecond := kingpinApp.Flag("files-per-second", "Maximum files processed per second (set 0 to disable)").Default("-1").Float64()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	logFormat := kingpinApp.Flag("log-format", "Log format (console or json)").String()

	_, err := kingpinApp.Parse(args)
	if terminated {
		return terminateCode
	}
	if err != nil {
		kingpinApp.Errorf("%s", err)
		kingpinApp.UsageWriter(stderr)
		kingpinApp.Usage(args)
		return exitFailure
	}

	overrides := &config.CLIOverrides{
		ConfigFile:    *configFile,
		OutputDirName: outputDirName,
		OutputDir:     outputDir,
		Encoding:      encoding,
		LogLevel:      logLevel,
		LogFormat:     logFormat,
	}
	if ignoreCaseSet {
		overrides.IgnoreCase = ignoreCase
	}
	if renameSet {
		overrides.RenameFiles = rename
	}
	if *filesPerSecond >= 0 {
		overrides.FilesPerSecond = filesPerSecond
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return exitFailure
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return exitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return exitFailure
	}

	ctx, stop := notifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := app.Run(ctx, *directory, *filterFile); err != nil {
		logger.Error("filter run failed", zap.Error(err))
		return exitFailure
	}
	return exitOK
}
