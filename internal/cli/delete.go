package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a script, or a group and its scripts",
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

			removed, err := store.Delete(id)
			if err != nil {
				return classify(fmt.Errorf("delete %d: %w", id, err))
			}
			if flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string][]int64{"removed": removed})
			}
			ids := make([]string, len(removed))
			for i, r := range removed {
				ids[i] = strconv.FormatInt(r, 10)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", strings.Join(ids, ", "))
			return nil
		},
	}
}
