package application

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/eugenenazirov/regex-filter/internal/config"
	"github.com/eugenenazirov/regex-filter/internal/patterns"
	"github.com/eugenenazirov/regex-filter/internal/storage"
	"github.com/eugenenazirov/regex-filter/internal/substitution"
	"github.com/eugenenazirov/regex-filter/internal/textcodec"
)

// App holds the dependencies of a filter run.
type App struct {
	cfg      config.Config
	codec    *textcodec.Codec
	walker   *storage.Walker
	throttle throttler
	prefix   func() string
	logger   *zap.Logger
}

// Option configures App behaviour.
type Option func(*App)

// WithThrottle overrides the per-file throttle (primarily for tests).
func WithThrottle(t throttler) Option {
	return func(a *App) {
		a.throttle = t
	}
}

// WithNamePrefix overrides the generator used to disambiguate renamed files.
func WithNamePrefix(fn func() string) Option {
	return func(a *App) {
		a.prefix = fn
	}
}

// New initializes the application from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	codec, err := textcodec.New(cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve encoding: %w", err)
	}

	app := &App{
		cfg:      cfg,
		codec:    codec,
		walker:   storage.NewWalker(codec),
		throttle: newFileThrottle(cfg.FilesPerSecond),
		prefix:   randomPrefix,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app, nil
}

// Run filters every regular file directly inside inputDir with the patterns
// from filterFile and writes the results to the configured output directory.
//
// Configuration, missing-directory and output-directory errors abort the run
// before any file is written. Failures on individual files are logged and
// skipped; they are returned together once all files have been attempted.
func (a *App) Run(ctx context.Context, inputDir, filterFile string) (Report, error) {
	set, err := patterns.Load(filterFile, patterns.WithIgnoreCase(a.cfg.IgnoreCase))
	if err != nil {
		return Report{}, err
	}
	a.logger.Info("filter loaded",
		zap.String("filter_file", filterFile),
		zap.Int("patterns", set.Len()),
		zap.Bool("ignore_case", a.cfg.IgnoreCase),
	)

	files, err := a.walker.Files(inputDir)
	if err != nil {
		return Report{}, err
	}

	outDir := a.cfg.ResolveOutputDir(inputDir)
	writer := storage.NewWriter(outDir, a.codec)
	if err := writer.Prepare(); err != nil {
		return Report{}, err
	}
	if err := ensureDistinct(inputDir, outDir); err != nil {
		return Report{}, err
	}

	used := make(map[string]struct{})
	if a.cfg.RenameFiles {
		if used, err = a.reserveUnchangedNames(inputDir, set); err != nil {
			return Report{}, err
		}
	}

	report := Report{OutputDir: outDir}
	var errs error

	for entry, readErr := range files {
		if err := a.throttle.Wait(ctx); err != nil {
			return report, multierr.Append(errs, fmt.Errorf("run interrupted: %w", err))
		}

		report.FilesProcessed++
		if readErr != nil {
			a.fileFailed(&report, entry.Name, readErr)
			errs = multierr.Append(errs, readErr)
			continue
		}

		if err := a.process(entry, set, writer, used, &report); err != nil {
			a.fileFailed(&report, entry.Name, err)
			errs = multierr.Append(errs, err)
		}
	}

	a.logger.Info("run completed",
		zap.String("output_dir", report.OutputDir),
		zap.Int("files_processed", report.FilesProcessed),
		zap.Int("files_modified", report.FilesModified),
		zap.Int("files_renamed", report.FilesRenamed),
		zap.Int("files_failed", report.FilesFailed),
		zap.Int("substitutions", report.Substitutions),
	)
	return report, errs
}

func (a *App) process(entry storage.FileEntry, set *patterns.Set, writer *storage.Writer, used map[string]struct{}, report *Report) error {
	original := entry.Name
	content, count := substitution.ApplyCount(entry.Content, set)
	entry.Content = content

	if a.cfg.RenameFiles {
		name, err := outputName(original, set, used, a.prefix)
		if err != nil {
			return err
		}
		entry.Name = name
	}

	if err := writer.Write(entry); err != nil {
		return err
	}
	used[entry.Name] = struct{}{}

	report.Substitutions += count
	if count > 0 {
		report.FilesModified++
		a.logger.Info("file modified", zap.String("file", original), zap.Int("substitutions", count))
	} else {
		a.logger.Info("file not modified", zap.String("file", original))
	}
	if entry.Name != original {
		report.FilesRenamed++
		a.logger.Info("file renamed", zap.String("file", original), zap.String("output", entry.Name))
	}
	return nil
}

func (a *App) fileFailed(report *Report, name string, err error) {
	report.FilesFailed++
	a.logger.Warn("file skipped", zap.String("file", name), zap.Error(err))
}

// reserveUnchangedNames returns the names the filter leaves as they are, so
// renamed files are disambiguated instead of the files that keep their name.
func (a *App) reserveUnchangedNames(inputDir string, set *patterns.Set) (map[string]struct{}, error) {
	names, err := a.walker.Names(inputDir)
	if err != nil {
		return nil, err
	}
	reserved := make(map[string]struct{}, len(names))
	for _, name := range names {
		if substitution.Apply(name, set) == name {
			reserved[name] = struct{}{}
		}
	}
	return reserved, nil
}

// ensureDistinct refuses to write outputs over the originals. Both directories
// exist at this point, so symlinks and bind mounts are resolved by os.SameFile.
func ensureDistinct(inputDir, outDir string) error {
	in, err := os.Stat(inputDir)
	if err != nil {
		return fmt.Errorf("%w: stat input directory: %v", storage.ErrIO, err)
	}
	out, err := os.Stat(outDir)
	if err != nil {
		return fmt.Errorf("%w: stat output directory: %v", storage.ErrIO, err)
	}
	if os.SameFile(in, out) {
		return fmt.Errorf("%w: output directory %s is the input directory", config.ErrInvalidConfig, outDir)
	}
	return nil
}
