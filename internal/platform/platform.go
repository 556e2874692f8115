package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Service defines the OS-specific helpers StudyDesk needs.
type Service interface {
	ConfigDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
	AutostartEnabled(appName string) bool
}

type platformService struct {
	configDir string
}

// NewService returns the implementation for the running OS.
func NewService() Service {
	return &platformService{}
}

// NewServiceAt returns a service rooted at configDir instead of the user's
// config directory.
func NewServiceAt(configDir string) Service {
	return &platformService{configDir: configDir}
}

// ConfigDir returns the OS-standard configuration directory.
func (service *platformService) ConfigDir() (string, error) {
	if service.configDir != "" {
		return service.configDir, nil
	}
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}
	return fallbackConfigDir(homeDir), nil
}

// ConfigDir resolves the configuration directory for the running OS.
func ConfigDir() (string, error) {
	return NewService().ConfigDir()
}

// SetAutostart enables or disables launching appName at login using the
// current executable.
func SetAutostart(service Service, appName string, enabled bool) error {
	if !enabled {
		return service.DisableAutostart(appName)
	}
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("enable autostart: resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return service.EnableAutostart(appName, execPath)
}

var errEmptyAppName = errors.New("autostart: app name is empty")

func checkAutostartArgs(appName, execPath string) error {
	if appName == "" {
		return errEmptyAppName
	}
	if execPath == "" {
		return errors.New("autostart: exec path is empty")
	}
	return nil
}

func slug(appName string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	if name == "" {
		name = "studydesk"
	}
	return strings.ReplaceAll(name, " ", "-")
}
