// Package audio plays the short cue that accompanies timer alerts.
package audio

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"
)

// Player plays the cue at a volume in [0,1]. Failures are swallowed.
type Player interface {
	PlayCue(volume float64)
}

// Nop discards cues.
type Nop struct{}

// PlayCue does nothing.
func (Nop) PlayCue(float64) {}

// Bell rings the terminal bell.
type Bell struct {
	Writer io.Writer
}

// PlayCue writes BEL unless muted.
func (bell Bell) PlayCue(volume float64) {
	if bell.Writer == nil || clamp(volume) == 0 {
		return
	}
	if _, err := io.WriteString(bell.Writer, "\a"); err != nil {
		log.Printf("audio: bell: %v", err)
	}
}

// Command plays a generated tone through the platform's audio helper.
type Command struct {
	cacheDir string
	goos     string

	once     sync.Once
	cuePath  string
	cueError error
}

// NewCommand creates a Command that keeps its tone file in cacheDir.
func NewCommand(cacheDir string) *Command {
	return &Command{cacheDir: cacheDir, goos: runtime.GOOS}
}

// PlayCue starts the helper without waiting for playback to finish.
func (command *Command) PlayCue(volume float64) {
	volume = clamp(volume)
	if volume == 0 {
		return
	}
	var path string
	var err error
	if command.goos == "windows" {
		path, err = command.scaledCueFile(volume)
	} else {
		path, err = command.cueFile()
	}
	if err != nil {
		log.Printf("audio: %v", err)
		return
	}
	name, args := commandFor(command.goos, path, volume)
	if name == "" {
		return
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		log.Printf("audio: %s: %v", name, err)
		return
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("audio: %s: %v", name, err)
		}
	}()
}

func (command *Command) cueFile() (string, error) {
	command.once.Do(func() {
		if err := os.MkdirAll(command.cacheDir, 0o755); err != nil {
			command.cueError = fmt.Errorf("create cache dir: %w", err)
			return
		}
		path := filepath.Join(command.cacheDir, "cue.wav")
		if err := os.WriteFile(path, EncodeTone(880, 250*time.Millisecond), 0o644); err != nil {
			command.cueError = fmt.Errorf("write cue: %w", err)
			return
		}
		command.cuePath = path
	})
	return command.cuePath, command.cueError
}

// scaledCueFile returns a tone file with the volume baked into the samples,
// one file per volume percent.
func (command *Command) scaledCueFile(volume float64) (string, error) {
	path := filepath.Join(command.cacheDir, fmt.Sprintf("cue-%03d.wav", int(math.Round(volume*100))))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.MkdirAll(command.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(path, EncodeToneGain(880, 250*time.Millisecond, volume), 0o644); err != nil {
		return "", fmt.Errorf("write cue: %w", err)
	}
	return path, nil
}

// commandFor returns the helper invocation for goos. The Windows SoundPlayer
// has no volume control, so there volume is carried by the file itself
// (see scaledCueFile).
func commandFor(goos, path string, volume float64) (string, []string) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		// paplay treats 65536 as 100%.
		return "paplay", []string{"--volume=" + strconv.Itoa(int(volume*65536)), path}
	case "darwin":
		return "afplay", []string{"-v", strconv.FormatFloat(volume, 'f', 2, 64), path}
	case "windows":
		script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", path)
		return "powershell", []string{"-NoProfile", "-Command", script}
	default:
		return "", nil
	}
}

func clamp(volume float64) float64 {
	if volume < 0 {
		return 0
	}
	if volume > 1 {
		return 1
	}
	return volume
}
