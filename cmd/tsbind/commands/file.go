package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"martianoff/tsbind/internal/build"
	"martianoff/tsbind/internal/logger"
)

func newFileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "file <input.d.ts>",
		Short: "Translate one declaration file to stdout",
		Long: `Translate a single .d.ts file and print the Rust bindings to stdout.
Diagnostics are printed to stderr.

Examples:
  tsbind file ts/dom.d.ts > src/dom.rs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg, err := opts.load(cmd, path)
			if err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}

			res, err := build.NewTranspiler(cfg).Transpile(cmd.Context(), src, path)
			if res != nil {
				for _, d := range res.Diagnostics {
					logger.PrintDiagnostic(cmd.ErrOrStderr(), d)
				}
			}
			if err != nil {
				return fmt.Errorf("translation failed: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), res.Code)
			return nil
		},
	}
}
