// Command minitt is the CLI front end for the elaborator: run/check a
// single .stt file or a minitt.yaml project, or start the REPL
// (SPEC_FULL.md §2).
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version info, set by ldflags during build.
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "minitt",
		Short: "minitt: a glued-evaluation dependent type elaborator",
	}
	flags := pflag.NewFlagSet("minitt", pflag.ContinueOnError)
	noColor := flags.Bool("no-color", false, "disable colored output")
	root.PersistentFlags().AddFlagSet(flags)
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *noColor {
			color.NoColor = true
		}
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newReplCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("minitt %s\n", bold(Version))
			if Commit != "unknown" {
				fmt.Printf("commit: %s\n", Commit)
			}
			if BuildTime != "unknown" {
				fmt.Printf("built:  %s\n", BuildTime)
			}
			return nil
		},
	}
}
