package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darkroom-dev/darkroom/internal/webext"
)

var webextCmd = &cobra.Command{
	Use:   "webext",
	Short: "Copy the browser-console helper script to the clipboard",
	Long: `Webext copies a small script to the clipboard. Pasted into the browser
console on the Filmlab web app, it lists the available presets and copies
their states back out. When no clipboard is available the script is written
to a file instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := webext.CopyToClipboard()
		if err != nil {
			return err
		}
		if path != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No clipboard available, script written to %s\n", path)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Script copied to the clipboard.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(webextCmd)
}
