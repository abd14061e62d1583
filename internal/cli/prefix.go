package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var prefixCmd = &cobra.Command{
	Use:   "prefix",
	Short: "Print the prefix mount point path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(map[string]string{"prefix": eng.Prefix()})
		}

		fmt.Fprintln(cmd.OutOrStdout(), eng.Prefix())
		return nil
	},
}
