package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/prompter/internal/importer"
)

func newUpdateCmd(flags *rootFlags) *cobra.Command {
	var (
		name     string
		content  string
		file     string
		parent   string
		topLevel bool
		playback playbackFlags
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a script or group",
		Long: `Update replaces the fields given by flags and keeps the rest. A record
cannot change between script and group.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("content") && file != "" {
				return userError(fmt.Errorf("--content and --file are mutually exclusive"))
			}
			if parent != "" && topLevel {
				return userError(fmt.Errorf("--parent and --top-level are mutually exclusive"))
			}

			store, done, err := flags.openLibrary()
			if err != nil {
				return err
			}
			defer done()

			existing, err := store.Get(id)
			if err != nil {
				return classify(fmt.Errorf("record %d: %w", id, err))
			}
			d := existing.Draft()

			if cmd.Flags().Changed("name") {
				d.Name = name
			}
			if cmd.Flags().Changed("content") {
				d.Content = content
			}
			if file != "" {
				imported, err := importer.ReadFile(file)
				if err != nil {
					return classify(err)
				}
				d.Content = imported.Content
			}
			switch {
			case topLevel:
				d.ParentID = nil
			case parent != "":
				if d.ParentID, err = parseParent(parent); err != nil {
					return err
				}
			}
			playback.apply(cmd, &d)

			if err := store.Update(id, d); err != nil {
				return classify(fmt.Errorf("update %d: %w", id, err))
			}
			rec, err := store.Get(id)
			if err != nil {
				return classify(err)
			}
			if flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %q: %d\n", kind(rec), rec.Name, rec.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&content, "content", "", "new script text")
	cmd.Flags().StringVar(&file, "file", "", "read the new script text from a file")
	cmd.Flags().StringVar(&parent, "parent", "", "move into this group id")
	cmd.Flags().BoolVar(&topLevel, "top-level", false, "move to the top level")
	playback.register(cmd)
	return cmd
}
