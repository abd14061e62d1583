package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [program]",
	Short: "List installed programs and versions",
	Long: `Display every program/version found in the opt folder along with its
composition status. With a program name, show only that program.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) == 1 {
			name = args[0]
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		statuses, err := eng.List(context.Background(), name)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(statuses)
		}

		if len(statuses) == 0 {
			PrintEmptyState("No programs installed")
			return nil
		}

		rows := make([][]string, 0, len(statuses))
		for _, s := range statuses {
			var flags []string
			if s.Mounted {
				flags = append(flags, "mounted")
			}
			if s.Pinned {
				flags = append(flags, "pinned")
			}
			if s.Excluded {
				flags = append(flags, "excluded")
			}
			if s.Shadowed {
				flags = append(flags, "shadowed")
			}
			rows = append(rows, []string{s.Name, s.Version, strings.Join(flags, ", ")})
		}

		PrintTable([]string{"NAME", "VERSION", "STATUS"}, rows)
		return nil
	},
}
