//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAutostartDesktopEntry(t *testing.T) {
	dir := t.TempDir()
	service := NewServiceAt(dir)
	if service.AutostartEnabled("StudyDesk") {
		t.Fatalf("expected autostart disabled initially")
	}
	if err := service.EnableAutostart("StudyDesk", "/opt/study desk/studydesk"); err != nil {
		t.Fatalf("enable: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "autostart", "studydesk.desktop"))
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if !strings.Contains(string(data), `Exec="/opt/study desk/studydesk"`) {
		t.Fatalf("expected quoted exec line, got %s", data)
	}
	if !service.AutostartEnabled("StudyDesk") {
		t.Fatalf("expected autostart enabled")
	}
	if err := service.DisableAutostart("StudyDesk"); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if err := service.DisableAutostart("StudyDesk"); err != nil {
		t.Fatalf("disable twice: %v", err)
	}
	if service.AutostartEnabled("StudyDesk") {
		t.Fatalf("expected autostart disabled")
	}
}

func TestEnableAutostartValidates(t *testing.T) {
	service := NewServiceAt(t.TempDir())
	if err := service.EnableAutostart("", "/bin/true"); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := service.EnableAutostart("StudyDesk", ""); err == nil {
		t.Fatalf("expected error for empty exec path")
	}
}
