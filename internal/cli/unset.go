package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var unsetCmd = &cobra.Command{
	Use:   "unset <name>",
	Short: "Remove a program's version pin",
	Long: `Remove a version override previously provided as a prefix default and
remount with the first discovered version.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		eng, err := newEngine()
		if err != nil {
			return err
		}

		if err := eng.Unset(context.Background(), name); err != nil {
			return err
		}

		PrintSuccess(fmt.Sprintf("Removed pin for %s", name))
		return nil
	},
}
