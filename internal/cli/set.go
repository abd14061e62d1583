package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <name> <version>",
	Short: "Pin a program to a specific version",
	Long: `Change the default version of a program in the prefix and remount.
The version must already exist in the opt folder.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, version := args[0], args[1]

		eng, err := newEngine()
		if err != nil {
			return err
		}

		if err := eng.Set(context.Background(), name, version); err != nil {
			return err
		}

		PrintSuccess(fmt.Sprintf("Pinned %s to %s", name, version))
		return nil
	},
}
