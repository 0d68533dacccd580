package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/prompter/internal/importer"
	"github.com/mesh-intelligence/prompter/pkg/types"
)

// playbackFlags are the optional per-script overrides shared by create and
// update.
type playbackFlags struct {
	fontSize int
	speed    float64
}

func (p *playbackFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.fontSize, "font-size", 0, fmt.Sprintf("saved font size (%d-%d)", types.MinFontSize, types.MaxFontSize))
	cmd.Flags().Float64Var(&p.speed, "speed", 0, fmt.Sprintf("saved scroll speed (%.1f-%.1f)", types.MinScrollSpeed, types.MaxScrollSpeed))
}

// apply copies the overrides the user set onto d.
func (p *playbackFlags) apply(cmd *cobra.Command, d *types.Draft) {
	if cmd.Flags().Changed("font-size") {
		d.FontSize = types.IntPtr(p.fontSize)
	}
	if cmd.Flags().Changed("speed") {
		d.ScrollSpeed = types.FloatPtr(p.speed)
	}
}

func newCreateCmd(flags *rootFlags) *cobra.Command {
	var (
		name      string
		content   string
		file      string
		clipboard bool
		isGroup   bool
		parent    string
		playback  playbackFlags
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a script or group",
		Long: `Create a script from --content, --file or --clipboard, or an empty group
with --group. Scripts may be placed in a group with --parent; groups are
always top level.`,
		Example: `  prompter create --name Keynote --file keynote.txt
  prompter create --group --name "Conference talks"
  prompter create --name Intro --content "Good evening" --parent 1700000000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := 0
			for _, set := range []bool{cmd.Flags().Changed("content"), file != "", clipboard} {
				if set {
					sources++
				}
			}
			if isGroup && sources > 0 {
				return userError(fmt.Errorf("groups have no content"))
			}
			if !isGroup && sources != 1 {
				return userError(fmt.Errorf("exactly one of --content, --file or --clipboard is required"))
			}

			d := types.Draft{Name: name, Content: content, IsGroup: isGroup}
			switch {
			case file != "":
				imported, err := importer.ReadFile(file)
				if err != nil {
					return classify(err)
				}
				d.Content = imported.Content
				if d.Name == "" {
					d.Name = imported.Name
				}
			case clipboard:
				imported, err := importer.FromClipboard(name)
				if err != nil {
					return classify(err)
				}
				d.Content = imported.Content
			}

			pid, err := parseParent(parent)
			if err != nil {
				return err
			}
			d.ParentID = pid
			playback.apply(cmd, &d)

			store, done, err := flags.openLibrary()
			if err != nil {
				return err
			}
			defer done()

			rec, err := store.Create(d)
			if err != nil {
				return classify(fmt.Errorf("create: %w", err))
			}
			if flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q: %d\n", kind(rec), rec.Name, rec.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the file name with --file)")
	cmd.Flags().StringVar(&content, "content", "", "script text")
	cmd.Flags().StringVar(&file, "file", "", "read the script text from a file")
	cmd.Flags().BoolVar(&clipboard, "clipboard", false, "read the script text from the clipboard")
	cmd.Flags().BoolVar(&isGroup, "group", false, "create a group instead of a script")
	cmd.Flags().StringVar(&parent, "parent", "", "id of the group to place the script in")
	playback.register(cmd)
	return cmd
}
