package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/prompter/internal/library"
	"github.com/mesh-intelligence/prompter/pkg/types"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	var (
		group string
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scripts and groups",
		Long: `List the top-level scripts and groups in collection order.

With --group, list the children of one group instead. With --all, list the
whole library as a tree, children indented under their group.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if group != "" && all {
				return userError(fmt.Errorf("--group and --all are mutually exclusive"))
			}
			parent, err := parseParent(group)
			if err != nil {
				return err
			}

			store, done, err := flags.openLibrary()
			if err != nil {
				return err
			}
			defer done()

			var rows []listRow
			switch {
			case all:
				rows = treeRows(store)
			case parent != nil:
				g, err := store.Get(*parent)
				if err != nil {
					return classify(fmt.Errorf("group %d: %w", *parent, err))
				}
				if !g.IsGroup {
					return userError(fmt.Errorf("record %d is not a group", g.ID))
				}
				for _, s := range store.ListChildren(parent) {
					rows = append(rows, listRow{script: s})
				}
			default:
				for _, s := range store.ListChildren(nil) {
					rows = append(rows, listRow{script: s})
				}
			}

			if flags.jsonMode {
				out := make([]types.Script, len(rows))
				for i, r := range rows {
					out[i] = r.script
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No scripts.")
				return nil
			}
			renderScripts(cmd.OutOrStdout(), rows, isTerminal(cmd.OutOrStdout()))
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "list the children of this group id")
	cmd.Flags().BoolVar(&all, "all", false, "list the whole library as a tree")
	return cmd
}

// treeRows walks the top level in order, placing each group's children
// directly after it.
func treeRows(store *library.Store) []listRow {
	var rows []listRow
	for _, s := range store.ListChildren(nil) {
		rows = append(rows, listRow{script: s})
		if !s.IsGroup {
			continue
		}
		id := s.ID
		for _, c := range store.ListChildren(&id) {
			rows = append(rows, listRow{script: c, depth: 1})
		}
	}
	return rows
}
