package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one script or group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			store, done, err := flags.openLibrary()
			if err != nil {
				return err
			}
			defer done()

			s, err := store.Get(id)
			if err != nil {
				return classify(fmt.Errorf("record %d: %w", id, err))
			}
			if flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			renderScript(cmd.OutOrStdout(), s)
			return nil
		},
	}
}
