package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/prompter/internal/paths"
	"github.com/mesh-intelligence/prompter/internal/player"
	"github.com/mesh-intelligence/prompter/internal/session"
	"github.com/mesh-intelligence/prompter/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "PROMPTER"

	cfgKeyBackend          = "backend"
	cfgKeyDataDir          = "data_dir"
	cfgKeyFontSize         = "font_size"
	cfgKeyScrollSpeed      = "scroll_speed"
	cfgKeyDarkMode         = "dark_mode"
	cfgKeyTextAlign        = "text_align"
	cfgKeyMirrorHorizontal = "mirror_horizontal"
	cfgKeyMirrorVertical   = "mirror_vertical"
	cfgKeyFrameRate        = "frame_rate"
	cfgKeyLogLevel         = "log_level"
	cfgKeyLogFile          = "log_file"

	defaultLogLevel = "warn"
)

// settings is the effective configuration. Field tags double as the layout
// of config.yaml.
type settings struct {
	Backend          string  `yaml:"backend" json:"backend"`
	DataDir          string  `yaml:"data_dir,omitempty" json:"data_dir,omitempty"`
	FontSize         int     `yaml:"font_size" json:"font_size"`
	ScrollSpeed      float64 `yaml:"scroll_speed" json:"scroll_speed"`
	DarkMode         bool    `yaml:"dark_mode" json:"dark_mode"`
	TextAlign        string  `yaml:"text_align" json:"text_align"`
	MirrorHorizontal bool    `yaml:"mirror_horizontal" json:"mirror_horizontal"`
	MirrorVertical   bool    `yaml:"mirror_vertical" json:"mirror_vertical"`
	FrameRate        int     `yaml:"frame_rate" json:"frame_rate"`
	LogLevel         string  `yaml:"log_level" json:"log_level"`
	LogFile          string  `yaml:"log_file,omitempty" json:"log_file,omitempty"`
}

func defaultSettings() settings {
	return settings{
		Backend:     types.BackendSQLite,
		FontSize:    types.DefaultFontSize,
		ScrollSpeed: types.DefaultScrollSpeed,
		DarkMode:    true,
		TextAlign:   string(session.AlignLeft),
		FrameRate:   player.DefaultFrameRate,
		LogLevel:    defaultLogLevel,
	}
}

// sessionDefaults seeds a playback session from configuration.
func (s settings) sessionDefaults() session.Defaults {
	return session.Defaults{
		FontSize:         s.FontSize,
		ScrollSpeed:      s.ScrollSpeed,
		DarkMode:         s.DarkMode,
		Alignment:        session.Alignment(s.TextAlign),
		MirrorHorizontal: s.MirrorHorizontal,
		MirrorVertical:   s.MirrorVertical,
	}
}

const defaultConfigHeader = `# Prompter configuration.
# Every key except data_dir can be overridden with PROMPTER_<KEY>,
# for example PROMPTER_SCROLL_SPEED=1.5.
`

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run. A missing config.yaml
// is not an error.
func loadConfig(configDir string) (settings, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return settings{}, fmt.Errorf("create config dir: %w", err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt)); err != nil {
		return settings{}, fmt.Errorf("write default config: %w", err)
	}

	def := defaultSettings()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyFontSize, def.FontSize)
	v.SetDefault(cfgKeyScrollSpeed, def.ScrollSpeed)
	v.SetDefault(cfgKeyDarkMode, def.DarkMode)
	v.SetDefault(cfgKeyTextAlign, def.TextAlign)
	v.SetDefault(cfgKeyMirrorHorizontal, def.MirrorHorizontal)
	v.SetDefault(cfgKeyMirrorVertical, def.MirrorVertical)
	v.SetDefault(cfgKeyFrameRate, def.FrameRate)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)

	// data_dir is left out: PROMPTER_DATA_DIR ranks below config.yaml and
	// is resolved by internal/paths.
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{
		cfgKeyBackend, cfgKeyFontSize, cfgKeyScrollSpeed, cfgKeyDarkMode, cfgKeyTextAlign,
		cfgKeyMirrorHorizontal, cfgKeyMirrorVertical, cfgKeyFrameRate, cfgKeyLogLevel, cfgKeyLogFile,
	} {
		if err := v.BindEnv(key); err != nil {
			return settings{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	return settings{
		Backend:          v.GetString(cfgKeyBackend),
		DataDir:          v.GetString(cfgKeyDataDir),
		FontSize:         v.GetInt(cfgKeyFontSize),
		ScrollSpeed:      v.GetFloat64(cfgKeyScrollSpeed),
		DarkMode:         v.GetBool(cfgKeyDarkMode),
		TextAlign:        v.GetString(cfgKeyTextAlign),
		MirrorHorizontal: v.GetBool(cfgKeyMirrorHorizontal),
		MirrorVertical:   v.GetBool(cfgKeyMirrorVertical),
		FrameRate:        v.GetInt(cfgKeyFrameRate),
		LogLevel:         v.GetString(cfgKeyLogLevel),
		LogFile:          v.GetString(cfgKeyLogFile),
	}, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. An existing file is left alone.
func writeConfigIfMissing(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(defaultSettings())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(defaultConfigHeader), data...), 0o644)
}

func (f *rootFlags) resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(f.configDir)
}

// resolveDataDir applies --data-dir > config.yaml data_dir >
// PROMPTER_DATA_DIR > platform default.
func (f *rootFlags) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(f.dataDir, f.cfg.DataDir)
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := flags.resolveConfigDir()
			if err != nil {
				return sysError(err)
			}
			dataDir, err := flags.resolveDataDir()
			if err != nil {
				return sysError(err)
			}
			eff := flags.cfg
			eff.DataDir = dataDir

			if flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), struct {
					ConfigDir string `json:"config_dir"`
					settings
				}{configDir, eff})
			}

			data, err := yaml.Marshal(eff)
			if err != nil {
				return sysError(fmt.Errorf("marshal config: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# config dir: %s\n%s", configDir, data)
			return nil
		},
	}
}
