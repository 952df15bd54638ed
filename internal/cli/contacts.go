package cli

import (
	"github.com/spf13/cobra"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts <image>",
	Short: "Create contact previews of an image with every preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return a.Contacts(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(contactsCmd)
}
