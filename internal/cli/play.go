package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/prompter/internal/logger"
	"github.com/mesh-intelligence/prompter/internal/player"
	"github.com/mesh-intelligence/prompter/internal/session"
)

// logFileName is the player's log file under the data directory when
// log_file is not configured.
const logFileName = "prompter.log"

// runPlayer is swapped in tests, which have no terminal.
var runPlayer = func(ctx context.Context, m *player.Model) error {
	return player.Run(ctx, m)
}

func newPlayCmd(flags *rootFlags) *cobra.Command {
	var autoplay bool
	cmd := &cobra.Command{
		Use:   "play <id>",
		Short: "Play a script in the terminal",
		Long: `Play opens the script full screen. Keys:
  space     play/pause            g/home, G/end  jump to start/end
  + / -     speed                 ] / [          font size
  h / v     mirror                a              cycle alignment
  t         dark/light theme      e              save size and speed
  q / esc   quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			dataDir, err := flags.resolveDataDir()
			if err != nil {
				return sysError(fmt.Errorf("resolve data dir: %w", err))
			}

			store, done, err := flags.openLibrary()
			if err != nil {
				return err
			}
			defer done()

			// The terminal belongs to the player, so logs go to a file.
			logFile := flags.cfg.LogFile
			if logFile == "" {
				logFile = filepath.Join(dataDir, logFileName)
			}
			if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
				return sysError(fmt.Errorf("create log dir: %w", err))
			}
			if err := logger.Init(logger.Options{Level: flags.cfg.LogLevel, File: logFile}); err != nil {
				return sysError(fmt.Errorf("init logger: %w", err))
			}

			rec, err := store.Load(id)
			if err != nil {
				return classify(fmt.Errorf("play %d: %w", id, err))
			}

			sess := session.New(flags.cfg.sessionDefaults())
			m := player.New(store, rec, sess, player.Options{
				FrameRate: flags.cfg.FrameRate,
				Autoplay:  autoplay,
			})
			if err := runPlayer(cmd.Context(), m); err != nil {
				logger.WithModule("cli").Error("player exited", zap.Error(err))
				return sysError(fmt.Errorf("player: %w", err))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&autoplay, "autoplay", false, "start scrolling immediately")
	return cmd
}
