// Package commands provides the CLI commands for the tsbind tool.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Every call returns independent flag
// state.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "tsbind [input-dir output-dir]",
		Short: "TypeScript declaration to wasm_bindgen binding generator",
		Long: `tsbind translates TypeScript ambient declaration files (.d.ts) into
Rust wasm_bindgen extern bindings.

Usage:
  tsbind <input-dir> <output-dir>            Translate a tree (shorthand)
  tsbind generate <input-dir> <output-dir>   Translate a tree explicitly
  tsbind file <input.d.ts>                   Translate one file to stdout
  tsbind version                             Print version`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				return cmd.Help()
			case 2:
				return runGenerate(cmd, opts, args[0], args[1])
			}
			return fmt.Errorf("unknown command %q for \"tsbind\"\nRun 'tsbind --help' for usage", args[0])
		},
	}

	opts.bind(root)
	root.AddCommand(newGenerateCmd(opts))
	root.AddCommand(newFileCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
