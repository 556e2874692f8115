// Package pomodoro implements the work/break session state machine.
//
// A Session performs no I/O. Every operation mutates the session and returns
// the side effects (notifications, audio cue) the host should run afterwards.
package pomodoro

import "studydesk/internal/core/model"

// LongBreakEvery is the number of completed work phases between long breaks.
const LongBreakEvery = 4

const notifyTitle = "Pomodoro"

// Session owns the pomodoro mode, countdown and completed-cycle count.
type Session struct {
	config    model.ConfigSource
	mode      model.Mode
	remaining int
	total     int
	running   bool
	cycles    int
}

// New creates a stopped session in work mode with a full countdown.
func New(config model.ConfigSource) *Session {
	session := &Session{config: config}
	session.enter(model.ModeWork)
	return session
}

// Start resumes the countdown. Durations are re-read so edits made while
// paused take effect. Starting a running session does nothing.
func (session *Session) Start() []model.Effect {
	if session.running {
		return nil
	}
	session.total = session.config.TimerConfig().PhaseSeconds(session.mode)
	if session.remaining > session.total {
		session.remaining = session.total
	}
	session.running = true
	return nil
}

// Pause stops the countdown without touching the remaining time.
func (session *Session) Pause() []model.Effect {
	session.running = false
	return nil
}

// Tick advances the countdown by one second and completes the phase when it
// reaches zero. Ticks while paused are ignored.
func (session *Session) Tick() []model.Effect {
	if !session.running {
		return nil
	}
	if session.remaining > 0 {
		session.remaining--
	}
	if session.remaining > 0 {
		return nil
	}
	return session.complete()
}

// Skip abandons the current phase and moves to the next one. A skipped work
// phase still counts as a completed cycle.
func (session *Session) Skip() []model.Effect {
	if session.mode == model.ModeWork {
		session.cycles++
	}
	session.enter(session.next())
	return []model.Effect{model.Notify(notifyTitle, "Skipped to next session.")}
}

// Reset stops the session and returns to a fresh work phase with no cycles.
func (session *Session) Reset() []model.Effect {
	session.running = false
	session.cycles = 0
	session.enter(model.ModeWork)
	return nil
}

// Reconfigure applies a live configuration change. When the length of the
// current mode changed, the countdown restarts at the new length.
func (session *Session) Reconfigure() []model.Effect {
	total := session.config.TimerConfig().PhaseSeconds(session.mode)
	if total != session.total {
		session.total = total
		session.remaining = total
	}
	return nil
}

func (session *Session) complete() []model.Effect {
	ended := session.mode
	effects := []model.Effect{
		model.Cue(),
		model.Notify(notifyTitle, endedMessage(ended)),
	}
	if ended == model.ModeWork {
		session.cycles++
	}

	next := ended
	if session.config.TimerConfig().AutoSwitch {
		next = session.next()
	} else {
		session.running = false
	}
	session.enter(next)

	return append(effects, model.Notify(notifyTitle, startMessage(next)))
}

// next applies the transition rule to the current mode and cycle count.
func (session *Session) next() model.Mode {
	if session.mode != model.ModeWork {
		return model.ModeWork
	}
	if session.cycles > 0 && session.cycles%LongBreakEvery == 0 {
		return model.ModeLongBreak
	}
	return model.ModeShortBreak
}

func (session *Session) enter(mode model.Mode) {
	session.mode = mode
	session.total = session.config.TimerConfig().PhaseSeconds(mode)
	session.remaining = session.total
}

// Mode returns the active phase.
func (session *Session) Mode() model.Mode { return session.mode }

// Remaining returns the seconds left in the current phase.
func (session *Session) Remaining() int { return session.remaining }

// Total returns the configured length of the current phase in seconds.
func (session *Session) Total() int { return session.total }

// Running reports whether the countdown is active.
func (session *Session) Running() bool { return session.running }

// Cycles returns the number of completed work phases.
func (session *Session) Cycles() int { return session.cycles }

// Snapshot returns the projection consumed by the presentation layer.
func (session *Session) Snapshot() model.PomodoroSnapshot {
	return model.PomodoroSnapshot{
		Mode:               session.mode,
		ModeLabel:          session.mode.Label(),
		RemainingSeconds:   session.remaining,
		TotalSeconds:       session.total,
		RemainingFormatted: model.FormatClock(session.remaining),
		PercentComplete:    model.PercentElapsed(session.remaining, session.total),
		CycleCount:         session.cycles,
		Running:            session.running,
	}
}

func endedMessage(mode model.Mode) string {
	switch mode {
	case model.ModeShortBreak:
		return "Short break ended."
	case model.ModeLongBreak:
		return "Long break ended."
	default:
		return "Work session ended."
	}
}

func startMessage(mode model.Mode) string {
	switch mode {
	case model.ModeShortBreak:
		return "Time for short break."
	case model.ModeLongBreak:
		return "Time for long break."
	default:
		return "Time for work."
	}
}
