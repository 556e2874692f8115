package preferences

import (
	"studydesk/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	HydrationMinutes  int
	AutoSwitch        bool
	CueVolume         float64

	NotificationPermission model.Permission

	// LaunchAtLogin mirrors the OS autostart entry and is not written to the
	// settings file.
	LaunchAtLogin bool
}

// DefaultSettings returns default settings for StudyDesk.
func DefaultSettings() Settings {
	defaults := model.DefaultTimerConfig()
	return Settings{
		WorkMinutes:            defaults.WorkMinutes,
		ShortBreakMinutes:      defaults.ShortBreakMinutes,
		LongBreakMinutes:       defaults.LongBreakMinutes,
		HydrationMinutes:       defaults.HydrationMinutes,
		AutoSwitch:             defaults.AutoSwitch,
		CueVolume:              defaults.CueVolume,
		NotificationPermission: model.PermissionDefault,
	}
}

// TimerConfig converts settings to the configuration read by the timers.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		WorkMinutes:       settings.WorkMinutes,
		ShortBreakMinutes: settings.ShortBreakMinutes,
		LongBreakMinutes:  settings.LongBreakMinutes,
		HydrationMinutes:  settings.HydrationMinutes,
		AutoSwitch:        settings.AutoSwitch,
		CueVolume:         settings.CueVolume,
	}.Normalized()
}
