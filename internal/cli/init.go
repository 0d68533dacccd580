package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/prompter/internal/storage"
	"github.com/mesh-intelligence/prompter/pkg/types"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize prompter storage",
		Long:  "Create the configuration and data directories, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}
}

// runInit relies on setup having written config.yaml; it only has to
// bring the backend up once so its files exist.
func runInit(cmd *cobra.Command, flags *rootFlags) error {
	configDir, err := flags.resolveConfigDir()
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	dataDir, err := flags.resolveDataDir()
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	cfg := types.Config{Backend: flags.cfg.Backend, DataDir: dataDir}
	st, err := storage.Open(cfg)
	if err != nil {
		return classify(fmt.Errorf("initialize storage: %w", err))
	}
	if err := st.Detach(); err != nil {
		return sysError(fmt.Errorf("finalize storage: %w", err))
	}

	if flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), map[string]string{
			"config_dir": configDir,
			"data_dir":   dataDir,
			"backend":    cfg.Backend,
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Prompter initialized successfully")
	fmt.Fprintf(out, "config: %s\ndata:   %s (%s)\n", configDir, dataDir, cfg.Backend)
	return nil
}
