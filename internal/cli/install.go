package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <name> <version>",
	Short: "Remount with a program/version as the write layer",
	Long: `Remount the prefix so that new files and folders placed into it land
in the given program/version directory. The directory is created if it
does not exist, and the version becomes the persisted default.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, version := args[0], args[1]

		eng, err := newEngine()
		if err != nil {
			return err
		}

		if err := eng.Install(context.Background(), name, version); err != nil {
			return err
		}

		PrintSuccess(fmt.Sprintf("Installing into %s %s: prefix writes go there", name, version))
		return nil
	},
}
