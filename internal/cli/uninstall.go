package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <name>",
	Short: "Exclude a program from the prefix",
	Long: `Disable a program from participating in the prefix and remount with
it removed. The program's directories stay on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		eng, err := newEngine()
		if err != nil {
			return err
		}

		if err := eng.Uninstall(context.Background(), name); err != nil {
			return err
		}

		PrintSuccess(fmt.Sprintf("Excluded %s from the prefix", name))
		return nil
	},
}
