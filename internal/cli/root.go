// Package cli implements the headless StudyDesk command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"studydesk/internal/audio"
	"studydesk/internal/core/model"
	"studydesk/internal/core/timekeeper"
	"studydesk/internal/notify"
	"studydesk/internal/platform"
	"studydesk/internal/storage"
)

// AppName names the config directory shared with the desktop app.
const AppName = "StudyDesk"

// Keys shared by the settings file, flags and STUDYDESK_ environment variables.
const (
	keyWork       = "work_minutes"
	keyShort      = "short_break_minutes"
	keyLong       = "long_break_minutes"
	keyHydration  = "hydration_minutes"
	keyAutoSwitch = "auto_switch"
	keyVolume     = "cue_volume"
)

type state struct {
	config    *viper.Viper
	configDir string
	notifier  string
	sound     string
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	st := &state{config: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "studydesk-cli",
		Short: "Pomodoro and hydration timers for the terminal",
		Long: `studydesk-cli runs the StudyDesk timers without a window.

Durations come from the desktop app's settings.yaml, overridden by
STUDYDESK_* environment variables, overridden by flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.load()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&st.configDir, "config-dir", "", "Use an alternate StudyDesk config directory")
	flags.String("work", "", "Work session length in minutes")
	flags.String("short", "", "Short break length in minutes")
	flags.String("long", "", "Long break length in minutes")
	flags.String("hydration", "", "Hydration reminder interval in minutes")
	flags.Bool("auto-switch", model.DefaultTimerConfig().AutoSwitch, "Start the next session automatically")
	flags.Float64("volume", model.DefaultCueVolume, "Cue volume between 0 and 1")
	flags.StringVar(&st.notifier, "notify", "auto", "Alert delivery: auto, desktop or console")
	flags.StringVar(&st.sound, "sound", "system", "Cue playback: system, bell or none")

	bindings := map[string]string{
		keyWork:       "work",
		keyShort:      "short",
		keyLong:       "long",
		keyHydration:  "hydration",
		keyAutoSwitch: "auto-switch",
		keyVolume:     "volume",
	}
	for key, flag := range bindings {
		_ = st.config.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(newPomodoroCmd(st))
	rootCmd.AddCommand(newHydrateCmd(st))
	rootCmd.AddCommand(newTasksCmd(st))
	rootCmd.AddCommand(newConfigCmd(st))
	rootCmd.AddCommand(newAutostartCmd(st))
	return rootCmd
}

// load reads settings.yaml into viper and layers the environment on top.
func (st *state) load() error {
	defaults := model.DefaultTimerConfig()
	st.config.SetDefault(keyWork, defaults.WorkMinutes)
	st.config.SetDefault(keyShort, defaults.ShortBreakMinutes)
	st.config.SetDefault(keyLong, defaults.LongBreakMinutes)
	st.config.SetDefault(keyHydration, defaults.HydrationMinutes)
	st.config.SetDefault(keyAutoSwitch, defaults.AutoSwitch)
	st.config.SetDefault(keyVolume, defaults.CueVolume)

	st.config.SetEnvPrefix("STUDYDESK")
	st.config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	st.config.AutomaticEnv()

	settingsPath, err := st.settingsPath()
	if err != nil {
		return err
	}
	st.config.SetConfigFile(settingsPath)
	st.config.SetConfigType("yaml")
	if err := st.config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read settings: %w", err)
		}
	}
	return nil
}

// timerConfig resolves the effective durations. Raw values go through the
// same clamp rules as the preferences window.
func (st *state) timerConfig() model.TimerConfig {
	return model.TimerConfig{
		WorkMinutes:       model.ParseMinutes(st.config.GetString(keyWork), model.DefaultWorkMinutes, model.MinPhaseMinutes),
		ShortBreakMinutes: model.ParseMinutes(st.config.GetString(keyShort), model.DefaultShortBreakMinutes, model.MinPhaseMinutes),
		LongBreakMinutes:  model.ParseMinutes(st.config.GetString(keyLong), model.DefaultLongBreakMinutes, model.MinPhaseMinutes),
		HydrationMinutes:  model.ParseMinutes(st.config.GetString(keyHydration), model.DefaultHydrationMinutes, model.MinHydrationMinutes),
		AutoSwitch:        st.config.GetBool(keyAutoSwitch),
		CueVolume:         st.config.GetFloat64(keyVolume),
	}.Normalized()
}

func (st *state) dir() (string, error) {
	if st.configDir != "" {
		return st.configDir, nil
	}
	settingsPath, err := storage.ConfigPath(AppName)
	if err != nil {
		return "", err
	}
	return filepath.Dir(settingsPath), nil
}

func (st *state) settingsPath() (string, error) {
	dir, err := st.dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, storage.SettingsFileName), nil
}

func (st *state) tasksPath() (string, error) {
	dir, err := st.dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tasks.json"), nil
}

// effects builds the side-effect queue for a timer command.
func (st *state) effects(out io.Writer, volume func() float64) (*timekeeper.EffectQueue, error) {
	console := notify.Console{Writer: out}
	var sink notify.Sink
	permission := model.PermissionDenied
	switch st.notifier {
	case "console":
		sink = console
	case "auto", "desktop":
		native, ok := notify.NewCommand()
		if !ok && st.notifier == "desktop" {
			return nil, errors.New("no desktop notification helper found")
		}
		if ok {
			permission = model.PermissionGranted
			sink = notify.NewSelector(notify.Static(permission), native, console)
		} else {
			sink = console
		}
	default:
		return nil, fmt.Errorf("unknown --notify value %q", st.notifier)
	}

	var player audio.Player
	switch st.sound {
	case "system":
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			cacheDir = os.TempDir()
		}
		player = audio.NewCommand(filepath.Join(cacheDir, AppName))
	case "bell":
		player = audio.Bell{Writer: out}
	case "none":
		player = audio.Nop{}
	default:
		return nil, fmt.Errorf("unknown --sound value %q", st.sound)
	}

	return timekeeper.NewEffectQueue(sink, player, notify.Static(permission), volume), nil
}

func (st *state) autostart() platform.Service {
	if st.configDir != "" {
		return platform.NewServiceAt(st.configDir)
	}
	return platform.NewService()
}

// syncWriter serialises writes from the render loop and the effect worker.
type syncWriter struct {
	mu     sync.Mutex
	writer io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writer.Write(p)
}
