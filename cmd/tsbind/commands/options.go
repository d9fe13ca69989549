package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"martianoff/tsbind/internal/build"
	"martianoff/tsbind/internal/logger"
)

// options holds the flags shared by every command.
type options struct {
	configPath   string
	jobs         int
	logLevel     string
	logFormat    string
	moduleSuffix string
}

func (o *options) bind(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", "", "Path to tsbind.toml (default: crate root)")
	flags.IntVarP(&o.jobs, "jobs", "j", 0, "Units translated concurrently (default: number of CPUs)")
	flags.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&o.logFormat, "log-format", "", "Log format: text or json")
	flags.StringVar(&o.moduleSuffix, "module-suffix", "", "Suffix appended to generated module names")
}

// load reads the configuration for input and applies the flags the user
// set, then installs the configured logger.
func (o *options) load(cmd *cobra.Command, input string) (*build.Config, error) {
	path := o.configPath
	if path == "" {
		path = build.ConfigFileName
		if crate, err := build.FindCrateRoot(input); err == nil {
			path = filepath.Join(crate.Root, build.ConfigFileName)
		}
	}
	cfg, err := build.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("jobs") {
		cfg.Output.Jobs = o.jobs
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if flags.Changed("module-suffix") {
		cfg.Output.ModuleSuffix = o.moduleSuffix
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lc, err := cfg.LoggerConfig()
	if err != nil {
		return nil, err
	}
	lc.Output = cmd.ErrOrStderr()
	if err := logger.Init(lc); err != nil {
		return nil, err
	}
	return cfg, nil
}
