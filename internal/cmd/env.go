package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/batchkit/internal/config"
	"github.com/harrison/batchkit/internal/logger"
	"github.com/harrison/batchkit/internal/presets"
)

// environment is the state shared by one command invocation.
type environment struct {
	home    string
	cfg     *config.Config
	console *logger.ConsoleLogger
	file    *logger.FileLogger
	log     *logger.MultiLogger
}

// loadEnvironment resolves the home directory, loads and validates the
// configuration with flag overrides, and sets up logging. With runLog set a
// per-run log file is opened under the configured log directory.
func loadEnvironment(cmd *cobra.Command, runLog bool) (*environment, error) {
	home, err := config.GetHome()
	if err != nil {
		return nil, err
	}

	path := config.ConfigPath(home)
	if explicit, _ := cmd.Flags().GetString("config"); explicit != "" {
		path = explicit
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.MergeWithFlags(flagOverrides(cmd))
	cfg.ResolvePaths(home)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	env := &environment{
		home:    home,
		cfg:     cfg,
		console: logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel),
	}

	loggers := []logger.BatchLogger{env.console}
	if runLog {
		fl, err := logger.NewFileLoggerWithLevel(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			env.console.LogWarn(fmt.Sprintf("run log disabled: %v", err))
		} else {
			env.file = fl
			loggers = append(loggers, fl)
			env.console.LogDebug(fmt.Sprintf("Run log: %s", fl.Path()))
		}
	}
	env.log = logger.NewMultiLogger(loggers...)

	return env, nil
}

// Close flushes the run log.
func (e *environment) Close() {
	if e.file != nil {
		e.file.Close()
	}
}

// openPresets opens the presets database named by the configuration.
func (e *environment) openPresets() (*presets.Store, error) {
	store, err := presets.NewStore(e.cfg.Presets.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open presets store: %w", err)
	}
	return store, nil
}

// flagOverrides collects the flags that override configuration. Only flags
// set on the command line are returned; the rest stay nil.
func flagOverrides(cmd *cobra.Command) config.Flags {
	return config.Flags{
		LogLevel:       changedString(cmd, "log-level"),
		LogDir:         changedString(cmd, "log-dir"),
		APIURL:         changedString(cmd, "api-url"),
		Format:         changedString(cmd, "format"),
		ConflictPolicy: changedString(cmd, "on-conflict"),
		ManifestDir:    changedString(cmd, "manifest-dir"),
		UseRegex:       changedBool(cmd, "regex"),
	}
}

func changedString(cmd *cobra.Command, name string) *string {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	v := f.Value.String()
	return &v
}

func changedBool(cmd *cobra.Command, name string) *bool {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}
