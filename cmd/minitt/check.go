package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "check [file.stt]",
		Short: "Elaborate a file or project, reporting only pass/fail (exit 1 on any error)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			paths, proj, err := loadFiles(file, manifestPath)
			if err != nil {
				return err
			}
			timing := proj != nil && proj.Timing
			if !elaborateAll(os.Stdout, paths, proj, timing, true) {
				fmt.Println(red("✗ check failed"))
				os.Exit(1)
			}
			fmt.Println(green("✓ check passed"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "minitt.yaml project file (instead of a single file)")
	return cmd
}
