package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/prompter/internal/importer"
	"github.com/mesh-intelligence/prompter/pkg/types"
)

func newImportCmd(flags *rootFlags) *cobra.Command {
	var parent string
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Create one script per text file",
		Long: `Import reads each file as UTF-8 (or UTF-16 with a byte order mark) and
creates a script named after the file. Every file is read and checked before
anything is created, so a bad file leaves the library unchanged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parseParent(parent)
			if err != nil {
				return err
			}

			drafts := make([]types.Draft, 0, len(args))
			for _, path := range args {
				d, err := importer.ReadFile(path)
				if err != nil {
					return classify(err)
				}
				if err := d.Validate(); err != nil {
					return classify(fmt.Errorf("%s: %w", path, err))
				}
				d.ParentID = pid
				drafts = append(drafts, d)
			}

			store, done, err := flags.openLibrary()
			if err != nil {
				return err
			}
			defer done()

			created := make([]types.Script, 0, len(drafts))
			for _, d := range drafts {
				rec, err := store.Create(d)
				if err != nil {
					return classify(fmt.Errorf("import %q: %w", d.Name, err))
				}
				created = append(created, rec)
			}

			if flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), created)
			}
			for _, rec := range created {
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %q: %d\n", rec.Name, rec.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "id of the group to import into")
	return cmd
}
