package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var manifestPath string
	var timing bool

	cmd := &cobra.Command{
		Use:   "run [file.stt]",
		Short: "Elaborate a file or project and print each declaration's result",
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
			if proj != nil && proj.Timing {
				timing = true
			}
			if !elaborateAll(os.Stdout, paths, proj, timing, false) {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "minitt.yaml project file (instead of a single file)")
	cmd.Flags().BoolVar(&timing, "timing", false, "report wall-clock elaboration time for every declaration")
	return cmd
}
