package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use <name> [version]",
	Short: "Remount with a temporary selection",
	Long: `Remount the prefix with a specific program/version without updating
the permanent settings. Without a version, temporarily lift any
exclusion or pin for the program. The next mount restores the
persisted selection.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		var version string
		if len(args) == 2 {
			version = args[1]
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		if err := eng.Use(context.Background(), name, version); err != nil {
			return err
		}

		if version != "" {
			PrintSuccess(fmt.Sprintf("Temporarily using %s %s", name, version))
		} else {
			PrintSuccess(fmt.Sprintf("Temporarily using %s", name))
		}
		return nil
	},
}
