package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var mountCmd = &cobra.Command{
	Use:   "mount",
	Short: "Recompose and remount the prefix",
	Long: `Collect program/version directories from the opt folder and overlay
them into the prefix, honoring persisted pins and exclusions.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		if err := eng.Mount(context.Background()); err != nil {
			return err
		}

		PrintSuccess("Prefix mounted at: " + eng.Prefix())
		return nil
	},
}
