// Package cli implements the prompter command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/prompter/internal/logger"
)

// rootFlags holds global flag values and the configuration loaded from
// them. Each root command gets its own, so commands stay independent in
// tests.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string

	cfg settings
}

// NewRootCmd creates the top-level "prompter" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "prompter",
		Short: "A terminal teleprompter",
		Long: "Prompter keeps a library of scripts, optionally organized into groups,\n" +
			"and plays them back as auto-scrolling text at a chosen speed and size.",
		Version: Version,
		// Errors are printed once by Execute.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	root.AddCommand(newListCmd(flags))
	root.AddCommand(newShowCmd(flags))
	root.AddCommand(newCreateCmd(flags))
	root.AddCommand(newUpdateCmd(flags))
	root.AddCommand(newMoveCmd(flags))
	root.AddCommand(newDeleteCmd(flags))
	root.AddCommand(newImportCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newPlayCmd(flags))

	return root
}

// setup loads config.yaml and starts logging. The player logs to a file,
// so play initializes its own logger once the data directory is known.
func (f *rootFlags) setup(cmd *cobra.Command) error {
	configDir, err := f.resolveConfigDir()
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	f.cfg = cfg

	if cmd.Name() == "play" {
		return nil
	}
	if err := logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		return sysError(fmt.Errorf("init logger: %w", err))
	}
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	_ = logger.Sync()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "prompter:", err)
	return exitCode(err)
}
