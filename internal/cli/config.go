package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"studydesk/internal/storage"
)

type effectiveConfig struct {
	WorkMinutes       int     `yaml:"work_minutes"`
	ShortBreakMinutes int     `yaml:"short_break_minutes"`
	LongBreakMinutes  int     `yaml:"long_break_minutes"`
	HydrationMinutes  int     `yaml:"hydration_minutes"`
	AutoSwitch        bool    `yaml:"auto_switch"`
	CueVolume         float64 `yaml:"cue_volume"`
}

func newConfigCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or persist the effective timer settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings after flags and environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := st.timerConfig()
			out, err := yaml.Marshal(effectiveConfig{
				WorkMinutes:       config.WorkMinutes,
				ShortBreakMinutes: config.ShortBreakMinutes,
				LongBreakMinutes:  config.LongBreakMinutes,
				HydrationMinutes:  config.HydrationMinutes,
				AutoSwitch:        config.AutoSwitch,
				CueVolume:         config.CueVolume,
			})
			if err != nil {
				return fmt.Errorf("marshal settings: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Write the effective settings to settings.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := st.settingsPath()
			if err != nil {
				return err
			}
			settings, err := storage.LoadSettingsFile(path)
			if err != nil {
				return err
			}
			config := st.timerConfig()
			settings.WorkMinutes = config.WorkMinutes
			settings.ShortBreakMinutes = config.ShortBreakMinutes
			settings.LongBreakMinutes = config.LongBreakMinutes
			settings.HydrationMinutes = config.HydrationMinutes
			settings.AutoSwitch = config.AutoSwitch
			settings.CueVolume = config.CueVolume
			if err := storage.SaveSettingsFile(path, settings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
			return nil
		},
	})

	return cmd
}
