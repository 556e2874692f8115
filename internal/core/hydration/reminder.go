// Package hydration implements the repeating water reminder countdown.
package hydration

import (
	"math"

	"studydesk/internal/core/model"
)

const (
	notifyTitle = "Hydration Reminder"
	notifyBody  = "Time to drink some water 💧"
)

// Reminder counts elapsed seconds up to the configured interval, fires and
// starts over within the same tick.
type Reminder struct {
	config  model.ConfigSource
	elapsed int
	target  int
	running bool
}

// New creates a stopped reminder.
func New(config model.ConfigSource) *Reminder {
	return &Reminder{
		config: config,
		target: config.TimerConfig().HydrationSeconds(),
	}
}

// Start asks for notification permission, re-reads the interval and resumes
// counting. Progress is kept across stop-free restarts.
func (reminder *Reminder) Start() []model.Effect {
	effects := []model.Effect{model.Authorize()}
	reminder.target = reminder.config.TimerConfig().HydrationSeconds()
	reminder.running = true
	return effects
}

// Stop halts the reminder and clears progress.
func (reminder *Reminder) Stop() []model.Effect {
	reminder.running = false
	reminder.elapsed = 0
	return nil
}

// Tick counts one second and fires the reminder when the interval is reached.
func (reminder *Reminder) Tick() []model.Effect {
	if !reminder.running {
		return nil
	}
	reminder.elapsed++
	if reminder.elapsed < reminder.target {
		return nil
	}
	reminder.elapsed = 0
	return []model.Effect{
		model.Cue(),
		model.Notify(notifyTitle, notifyBody),
	}
}

// Acknowledge records that the user drank without waiting for the reminder.
func (reminder *Reminder) Acknowledge() []model.Effect {
	reminder.elapsed = 0
	return nil
}

// Reconfigure applies a live interval change.
func (reminder *Reminder) Reconfigure() []model.Effect {
	reminder.target = reminder.config.TimerConfig().HydrationSeconds()
	return nil
}

// Elapsed returns the seconds counted since the last reset.
func (reminder *Reminder) Elapsed() int { return reminder.elapsed }

// Target returns the reminder interval in seconds.
func (reminder *Reminder) Target() int { return reminder.target }

// Running reports whether the reminder is counting.
func (reminder *Reminder) Running() bool { return reminder.running }

// Snapshot returns the projection consumed by the presentation layer.
func (reminder *Reminder) Snapshot() model.HydrationSnapshot {
	elapsed := float64(reminder.elapsed)
	target := float64(reminder.target)
	percent := 100
	if target > 0 {
		percent = int(math.Min(100, math.Round(100*elapsed/target)))
	}
	return model.HydrationSnapshot{
		ElapsedSeconds:   reminder.elapsed,
		TargetSeconds:    reminder.target,
		PercentComplete:  percent,
		MinutesElapsed:   reminder.elapsed / 60,
		MinutesRemaining: int(math.Ceil(math.Max(0, target-elapsed) / 60)),
		Running:          reminder.running,
	}
}
