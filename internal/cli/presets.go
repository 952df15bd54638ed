package cli

import (
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Print the available film presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return a.ListPresets(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
