package notify

import (
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"strconv"
)

// Command sends desktop notifications through a platform helper binary.
type Command struct {
	path string
	args func(title, body string) []string
}

// NewCommand finds the notification helper for this platform.
// It returns false when none is installed.
func NewCommand() (*Command, bool) {
	name, args := commandFor(runtime.GOOS)
	if name == "" {
		return nil, false
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, false
	}
	return &Command{path: path, args: args}, true
}

// Notify runs the helper and waits for it to exit.
func (command *Command) Notify(title, body string) {
	output, err := exec.Command(command.path, command.args(title, body)...).CombinedOutput()
	if err != nil {
		log.Printf("notify: %s: %v: %s", command.path, err, output)
	}
}

func commandFor(goos string) (string, func(title, body string) []string) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "notify-send", func(title, body string) []string {
			return []string{"--app-name=StudyDesk", title, body}
		}
	case "darwin":
		return "osascript", func(title, body string) []string {
			script := fmt.Sprintf("display notification %s with title %s", strconv.Quote(body), strconv.Quote(title))
			return []string{"-e", script}
		}
	default:
		return "", nil
	}
}
