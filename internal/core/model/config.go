package model

import (
	"strconv"
	"strings"
	"sync"
)

// Default phase lengths in minutes.
const (
	DefaultWorkMinutes       = 25
	DefaultShortBreakMinutes = 5
	DefaultLongBreakMinutes  = 15
	DefaultHydrationMinutes  = 45
	DefaultCueVolume         = 0.6

	MinPhaseMinutes     = 1
	MinHydrationMinutes = 5
)

// TimerConfig contains the operator-editable settings read by both timers.
// Minute fields are stored as entered; the accessor methods apply the clamp
// and fallback rules, so a zero value still yields usable durations.
type TimerConfig struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	HydrationMinutes  int
	AutoSwitch        bool
	CueVolume         float64
}

// ConfigSource is read by the timers whenever they enter a mode or interval.
type ConfigSource interface {
	TimerConfig() TimerConfig
}

// DefaultTimerConfig returns the stock 25/5/15 pomodoro with a 45 minute water interval.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		WorkMinutes:       DefaultWorkMinutes,
		ShortBreakMinutes: DefaultShortBreakMinutes,
		LongBreakMinutes:  DefaultLongBreakMinutes,
		HydrationMinutes:  DefaultHydrationMinutes,
		AutoSwitch:        true,
		CueVolume:         DefaultCueVolume,
	}
}

// TimerConfig lets a plain value act as its own source.
func (config TimerConfig) TimerConfig() TimerConfig {
	return config
}

// PhaseSeconds returns the clamped length of the given pomodoro mode.
func (config TimerConfig) PhaseSeconds(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return ClampMinutes(config.ShortBreakMinutes, DefaultShortBreakMinutes, MinPhaseMinutes) * 60
	case ModeLongBreak:
		return ClampMinutes(config.LongBreakMinutes, DefaultLongBreakMinutes, MinPhaseMinutes) * 60
	default:
		return ClampMinutes(config.WorkMinutes, DefaultWorkMinutes, MinPhaseMinutes) * 60
	}
}

// HydrationSeconds returns the clamped reminder interval.
func (config TimerConfig) HydrationSeconds() int {
	return ClampMinutes(config.HydrationMinutes, DefaultHydrationMinutes, MinHydrationMinutes) * 60
}

// Volume returns the cue volume limited to [0,1].
func (config TimerConfig) Volume() float64 {
	switch {
	case config.CueVolume < 0:
		return 0
	case config.CueVolume > 1:
		return 1
	default:
		return config.CueVolume
	}
}

// Normalized returns a copy with every minute field replaced by its clamped value.
func (config TimerConfig) Normalized() TimerConfig {
	config.WorkMinutes = config.PhaseSeconds(ModeWork) / 60
	config.ShortBreakMinutes = config.PhaseSeconds(ModeShortBreak) / 60
	config.LongBreakMinutes = config.PhaseSeconds(ModeLongBreak) / 60
	config.HydrationMinutes = config.HydrationSeconds() / 60
	config.CueVolume = config.Volume()
	return config
}

// ClampMinutes applies the degraded-input policy: zero (missing) falls back to
// the default, anything else is raised to at least minimum.
func ClampMinutes(value, fallback, minimum int) int {
	if value == 0 {
		value = fallback
	}
	if value < minimum {
		return minimum
	}
	return value
}

// ParseMinutes turns raw operator text into a clamped minute count. Only the
// leading integer is read, so "12abc" and "1.5" give 12 and 1; text with no
// leading digits is treated as missing.
func ParseMinutes(raw string, fallback, minimum int) int {
	return ClampMinutes(leadingInt(raw), fallback, minimum)
}

func leadingInt(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	value, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0
	}
	return value
}

// LiveConfig is a ConfigSource that the operator surface writes and the timers read.
type LiveConfig struct {
	mu    sync.RWMutex
	value TimerConfig
}

// NewLiveConfig creates a holder seeded with config.
func NewLiveConfig(config TimerConfig) *LiveConfig {
	return &LiveConfig{value: config}
}

// TimerConfig returns the current value.
func (live *LiveConfig) TimerConfig() TimerConfig {
	live.mu.RLock()
	defer live.mu.RUnlock()
	return live.value
}

// Set replaces the current value.
func (live *LiveConfig) Set(config TimerConfig) {
	live.mu.Lock()
	live.value = config
	live.mu.Unlock()
}
