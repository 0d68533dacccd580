package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMoveCmd(flags *rootFlags) *cobra.Command {
	var (
		parent   string
		topLevel bool
	)
	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a script into a group or to the top level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if (parent == "") == !topLevel {
				return userError(fmt.Errorf("exactly one of --parent or --top-level is required"))
			}
			pid, err := parseParent(parent)
			if err != nil {
				return err
			}

			store, done, err := flags.openLibrary()
			if err != nil {
				return err
			}
			defer done()

			if err := store.Move(id, pid); err != nil {
				return classify(fmt.Errorf("move %d: %w", id, err))
			}
			if flags.jsonMode {
				rec, err := store.Get(id)
				if err != nil {
					return classify(err)
				}
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			if pid == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %d to the top level\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %d into group %d\n", id, *pid)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "id of the destination group")
	cmd.Flags().BoolVar(&topLevel, "top-level", false, "move to the top level")
	return cmd
}
