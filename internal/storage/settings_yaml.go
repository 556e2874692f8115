package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"studydesk/internal/core/model"
	"studydesk/internal/platform"
	"studydesk/internal/ui/preferences"
)

// SettingsFileName is the settings file inside the app config directory.
const SettingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkMinutes            int      `yaml:"work_minutes"`
	ShortBreakMinutes      int      `yaml:"short_break_minutes"`
	LongBreakMinutes       int      `yaml:"long_break_minutes"`
	HydrationMinutes       int      `yaml:"hydration_minutes"`
	AutoSwitch             *bool    `yaml:"auto_switch"`
	CueVolume              *float64 `yaml:"cue_volume"`
	NotificationPermission string   `yaml:"notification_permission"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := ConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads user preferences from configPath.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := ConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes user preferences to configPath.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	autoSwitch := settings.AutoSwitch
	cueVolume := settings.CueVolume
	fileData := yamlSettings{
		WorkMinutes:            settings.WorkMinutes,
		ShortBreakMinutes:      settings.ShortBreakMinutes,
		LongBreakMinutes:       settings.LongBreakMinutes,
		HydrationMinutes:       settings.HydrationMinutes,
		AutoSwitch:             &autoSwitch,
		CueVolume:              &cueVolume,
		NotificationPermission: string(settings.NotificationPermission),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// ConfigPath returns the settings file location for appName.
func ConfigPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, SettingsFileName), nil
}

// DataPath returns a file location next to the settings file.
func DataPath(appName, fileName string) (string, error) {
	configPath, err := ConfigPath(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(configPath), fileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkMinutes > 0 {
		settings.WorkMinutes = fileData.WorkMinutes
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreakMinutes = fileData.ShortBreakMinutes
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreakMinutes = fileData.LongBreakMinutes
	}
	if fileData.HydrationMinutes >= model.MinHydrationMinutes {
		settings.HydrationMinutes = fileData.HydrationMinutes
	}

	if fileData.AutoSwitch != nil {
		settings.AutoSwitch = *fileData.AutoSwitch
	}
	if fileData.CueVolume != nil && *fileData.CueVolume >= 0 && *fileData.CueVolume <= 1 {
		settings.CueVolume = *fileData.CueVolume
	}
	settings.NotificationPermission = model.ParsePermission(fileData.NotificationPermission)
}
