package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"studydesk/internal/storage"
)

type lockedBuffer struct {
	mu     sync.Mutex
	buffer bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffer.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffer.String()
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := &lockedBuffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTasksCommands(t *testing.T) {
	dir := t.TempDir()
	for _, text := range []string{"read chapter", "write essay"} {
		if _, err := execute(t, "", "--config-dir", dir, "tasks", "add", text); err != nil {
			t.Fatalf("add %q: %v", text, err)
		}
	}

	out, err := execute(t, "", "--config-dir", dir, "tasks", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, " 1. [ ] write essay") || !strings.Contains(out, " 2. [ ] read chapter") {
		t.Fatalf("unexpected list output:\n%s", out)
	}

	if out, err = execute(t, "", "--config-dir", dir, "tasks", "done", "2"); err != nil || !strings.Contains(out, "done: read chapter") {
		t.Fatalf("done: %v\n%s", err, out)
	}
	if out, err = execute(t, "", "--config-dir", dir, "tasks", "clear"); err != nil || !strings.Contains(out, "removed 1") {
		t.Fatalf("clear: %v\n%s", err, out)
	}
	if _, err = execute(t, "", "--config-dir", dir, "tasks", "rm", "5"); err == nil {
		t.Fatalf("expected out of range error")
	}
	if _, err = execute(t, "", "--config-dir", dir, "tasks", "rm", "zero"); err == nil {
		t.Fatalf("expected invalid number error")
	}
	if _, err = execute(t, "", "--config-dir", dir, "tasks", "rm", "1"); err != nil {
		t.Fatalf("rm: %v", err)
	}

	out, _ = execute(t, "", "--config-dir", dir, "tasks", "list")
	if !strings.Contains(out, "No tasks yet") {
		t.Fatalf("expected empty list, got:\n%s", out)
	}
}

func TestConfigLayering(t *testing.T) {
	dir := t.TempDir()
	raw := "work_minutes: 50\nshort_break_minutes: 10\nauto_switch: false\n"
	if err := os.WriteFile(filepath.Join(dir, storage.SettingsFileName), []byte(raw), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	t.Setenv("STUDYDESK_SHORT_BREAK_MINUTES", "7")

	out, err := execute(t, "", "--config-dir", dir, "--long", "abc", "--hydration", "2", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{
		"work_minutes: 50",
		"short_break_minutes: 7",
		"long_break_minutes: 15",
		"hydration_minutes: 5",
		"auto_switch: false",
		"cue_volume: 0.6",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestConfigSave(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "", "--config-dir", dir, "--work", "40", "--volume", "0.3", "config", "save"); err != nil {
		t.Fatalf("config save: %v", err)
	}
	settings, err := storage.LoadSettingsFile(filepath.Join(dir, storage.SettingsFileName))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.WorkMinutes != 40 || settings.CueVolume != 0.3 || !settings.AutoSwitch {
		t.Fatalf("unexpected saved settings %+v", settings)
	}
}

func TestPomodoroCommand(t *testing.T) {
	out, err := execute(t, "p\ns\nq\n",
		"--config-dir", t.TempDir(), "--notify", "console", "--sound", "none",
		"pomodoro", "--paused", "--tick", "1h")
	if err != nil {
		t.Fatalf("pomodoro: %v", err)
	}
	for _, want := range []string{"Work  25:00   0%  cycles 0  paused", "running", "Short 05:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestHydrateCommand(t *testing.T) {
	out, err := execute(t, "x\ns\n",
		"--config-dir", t.TempDir(), "--notify", "console", "--sound", "none",
		"hydrate", "--tick", "1h")
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if !strings.Contains(out, `unknown command "x"`) || !strings.Contains(out, "water  stopped") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRejectsUnknownSound(t *testing.T) {
	_, err := execute(t, "q\n", "--config-dir", t.TempDir(), "--notify", "console", "--sound", "loud", "pomodoro")
	if err == nil || !strings.Contains(err.Error(), "--sound") {
		t.Fatalf("expected sound error, got %v", err)
	}
}

func TestAutostartCommand(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("autostart entry location is only redirected on linux")
	}
	dir := t.TempDir()
	out, err := execute(t, "", "--config-dir", dir, "autostart", "on")
	if err != nil || !strings.Contains(out, "autostart: on") {
		t.Fatalf("autostart on: %v\n%s", err, out)
	}
	out, err = execute(t, "", "--config-dir", dir, "autostart", "off")
	if err != nil || !strings.Contains(out, "autostart: off") {
		t.Fatalf("autostart off: %v\n%s", err, out)
	}
	if _, err := execute(t, "", "--config-dir", dir, "autostart", "maybe"); err == nil {
		t.Fatalf("expected invalid argument error")
	}
}
