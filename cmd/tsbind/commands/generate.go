package commands

import (
	"github.com/spf13/cobra"

	"martianoff/tsbind/internal/build"
	"martianoff/tsbind/internal/logger"
)

func newGenerateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <input-dir> <output-dir>",
		Short: "Translate a tree of declaration files",
		Long: `Translate every .d.ts file under input-dir into a Rust module under
output-dir, mirroring the directory layout. Each output directory gets a
mod.rs declaring its modules.

The input must live inside a Cargo crate. Settings are read from
tsbind.toml at the crate root; flags override them.

Examples:
  tsbind generate ts src/bindings
  tsbind generate ts src/bindings --jobs 8 --log-level debug`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args[0], args[1])
		},
	}
}

func runGenerate(cmd *cobra.Command, opts *options, in, out string) error {
	cfg, err := opts.load(cmd, in)
	if err != nil {
		return err
	}

	report, err := build.NewBuilder(cfg).WithDisplay(cmd.ErrOrStderr()).Build(cmd.Context(), in, out)
	if err != nil {
		return err
	}
	logger.PrintSummary(cmd.ErrOrStderr(), len(report.Units), report.Failed, report.Diagnostics)
	return report.Err()
}
