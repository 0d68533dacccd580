package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the library as a JSON array",
		Long:  "Export writes the collection exactly as it is stored, to stdout or to --output.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, done, err := flags.openLibrary()
			if err != nil {
				return err
			}
			defer done()

			data, err := store.Export()
			if err != nil {
				return sysError(fmt.Errorf("encode library: %w", err))
			}
			if output == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return sysError(fmt.Errorf("write %s: %w", output, err))
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d records to %s\n", store.Len(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write instead of stdout")
	return cmd
}
