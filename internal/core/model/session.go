package model

import (
	"fmt"
	"math"
)

// Mode is the active pomodoro phase.
type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "short"
	ModeLongBreak  Mode = "long"
)

// Label returns the display name of the mode.
func (mode Mode) Label() string {
	switch mode {
	case ModeShortBreak:
		return "Short"
	case ModeLongBreak:
		return "Long"
	default:
		return "Work"
	}
}

// EffectKind names a side effect requested by a timer.
type EffectKind string

const (
	EffectNotify    EffectKind = "notify"
	EffectCue       EffectKind = "cue"
	EffectAuthorize EffectKind = "authorize"
)

// Effect is a side effect the host executes after a timer operation returns.
type Effect struct {
	Kind  EffectKind
	Title string
	Body  string
}

// Notify builds a notification effect.
func Notify(title, body string) Effect {
	return Effect{Kind: EffectNotify, Title: title, Body: body}
}

// Cue builds an audio cue effect.
func Cue() Effect {
	return Effect{Kind: EffectCue}
}

// Authorize builds a notification permission request effect.
func Authorize() Effect {
	return Effect{Kind: EffectAuthorize}
}

// Permission is the notification authorization decision.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// ParsePermission maps stored text to a Permission; unknown values are undecided.
func ParsePermission(value string) Permission {
	switch Permission(value) {
	case PermissionGranted, PermissionDenied:
		return Permission(value)
	default:
		return PermissionDefault
	}
}

// PomodoroSnapshot is the read-only projection of a pomodoro session.
type PomodoroSnapshot struct {
	Mode               Mode
	ModeLabel          string
	RemainingSeconds   int
	TotalSeconds       int
	RemainingFormatted string
	PercentComplete    int
	CycleCount         int
	Running            bool
}

// HydrationSnapshot is the read-only projection of the hydration timer.
type HydrationSnapshot struct {
	ElapsedSeconds   int
	TargetSeconds    int
	PercentComplete  int
	MinutesElapsed   int
	MinutesRemaining int
	Running          bool
}

// NextLabel returns the "next reminder in" text.
func (snapshot HydrationSnapshot) NextLabel() string {
	if snapshot.MinutesRemaining <= 0 {
		return "Soon"
	}
	return fmt.Sprintf("%dm", snapshot.MinutesRemaining)
}

// FormatClock renders seconds as mm:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// PercentElapsed returns 100 × (1 − remaining/total) rounded to the nearest integer.
func PercentElapsed(remaining, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(100 * (1 - float64(remaining)/float64(total))))
}
