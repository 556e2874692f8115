// Package timekeeper hosts the session timers: it owns the one-second
// schedule of each timer, serialises operations on it, publishes snapshots to
// observers and hands side effects to a Dispatcher.
package timekeeper

import (
	"sync"
	"time"

	"studydesk/internal/core/hydration"
	"studydesk/internal/core/model"
	"studydesk/internal/core/pomodoro"
)

// Config contains runtime options for the hosts.
type Config struct {
	TickInterval time.Duration
}

// Dispatcher executes side effects returned by the timers. Dispatch is called
// with the timer locked, in operation order, and must not block.
type Dispatcher interface {
	Dispatch(effects []model.Effect)
}

type machine interface {
	Tick() []model.Effect
	Running() bool
}

// timerLoop is the shared host for one timer. At most one schedule exists at a
// time and ticks from a cancelled schedule are discarded under the lock, so
// no tick lands after Pause/Stop returns.
type timerLoop struct {
	mu         sync.Mutex
	options    Config
	dispatcher Dispatcher
	machine    machine
	project    func(now time.Time) Event
	schedule   *schedule
	events     []chan Event
	closed     bool
}

func (loop *timerLoop) init(machine machine, dispatcher Dispatcher, options Config, project func(time.Time) Event) {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	loop.options = options
	loop.dispatcher = dispatcher
	loop.machine = machine
	loop.project = project
}

// Subscribe registers a new observer channel. Slow observers miss events
// rather than stalling the timer.
func (loop *timerLoop) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	loop.mu.Lock()
	if loop.closed {
		close(ch)
	} else {
		loop.events = append(loop.events, ch)
	}
	loop.mu.Unlock()
	return ch
}

// Close cancels the schedule and closes observers. Later operations are ignored.
func (loop *timerLoop) Close() {
	loop.mu.Lock()
	if loop.closed {
		loop.mu.Unlock()
		return
	}
	loop.closed = true
	if loop.schedule != nil {
		loop.schedule.cancel()
		loop.schedule = nil
	}
	events := loop.events
	loop.events = nil
	loop.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Tick advances the timer by one step as its schedule would.
func (loop *timerLoop) Tick() {
	loop.apply(nil, loop.machine.Tick)
}

func (loop *timerLoop) apply(from *schedule, operation func() []model.Effect) {
	loop.mu.Lock()
	if loop.closed || (from != nil && from != loop.schedule) {
		loop.mu.Unlock()
		return
	}
	effects := operation()
	loop.syncScheduleLocked()
	loop.emitLocked(loop.project(time.Now()))
	if len(effects) > 0 && loop.dispatcher != nil {
		loop.dispatcher.Dispatch(effects)
	}
	loop.mu.Unlock()
}

func (loop *timerLoop) syncScheduleLocked() {
	running := loop.machine.Running()
	switch {
	case running && loop.schedule == nil:
		loop.schedule = startSchedule(loop.options.TickInterval, func(from *schedule) {
			loop.apply(from, loop.machine.Tick)
		})
	case !running && loop.schedule != nil:
		loop.schedule.cancel()
		loop.schedule = nil
	}
}

func (loop *timerLoop) scheduled() bool {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	return loop.schedule != nil
}

func (loop *timerLoop) emitLocked(event Event) {
	for _, ch := range loop.events {
		select {
		case ch <- event:
		default:
		}
	}
}

type schedule struct {
	stopCh chan struct{}
}

func startSchedule(interval time.Duration, tick func(*schedule)) *schedule {
	current := &schedule{stopCh: make(chan struct{})}
	go current.run(interval, tick)
	return current
}

func (current *schedule) run(interval time.Duration, tick func(*schedule)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-current.stopCh:
			return
		case <-ticker.C:
			tick(current)
		}
	}
}

func (current *schedule) cancel() {
	close(current.stopCh)
}

// Pomodoro hosts a pomodoro session.
type Pomodoro struct {
	timerLoop
	session *pomodoro.Session
}

// NewPomodoro creates a paused pomodoro host in work mode.
func NewPomodoro(config model.ConfigSource, dispatcher Dispatcher, options Config) *Pomodoro {
	session := pomodoro.New(config)
	host := &Pomodoro{session: session}
	host.init(session, dispatcher, options, func(now time.Time) Event {
		return Event{Type: EventPomodoro, Pomodoro: session.Snapshot(), At: now}
	})
	return host
}

// Start resumes the countdown.
func (host *Pomodoro) Start() { host.apply(nil, host.session.Start) }

// Pause halts the countdown.
func (host *Pomodoro) Pause() { host.apply(nil, host.session.Pause) }

// Toggle starts a paused session or pauses a running one.
func (host *Pomodoro) Toggle() {
	host.apply(nil, func() []model.Effect {
		if host.session.Running() {
			return host.session.Pause()
		}
		return host.session.Start()
	})
}

// Skip moves to the next phase.
func (host *Pomodoro) Skip() { host.apply(nil, host.session.Skip) }

// Reset returns to a stopped, fresh work phase.
func (host *Pomodoro) Reset() { host.apply(nil, host.session.Reset) }

// Reconfigure applies a live configuration change.
func (host *Pomodoro) Reconfigure() { host.apply(nil, host.session.Reconfigure) }

// Snapshot returns the current projection.
func (host *Pomodoro) Snapshot() model.PomodoroSnapshot {
	host.mu.Lock()
	defer host.mu.Unlock()
	return host.session.Snapshot()
}

// Hydration hosts the water reminder.
type Hydration struct {
	timerLoop
	reminder *hydration.Reminder
}

// NewHydration creates a stopped hydration host.
func NewHydration(config model.ConfigSource, dispatcher Dispatcher, options Config) *Hydration {
	reminder := hydration.New(config)
	host := &Hydration{reminder: reminder}
	host.init(reminder, dispatcher, options, func(now time.Time) Event {
		return Event{Type: EventHydration, Hydration: reminder.Snapshot(), At: now}
	})
	return host
}

// Start begins or resumes counting.
func (host *Hydration) Start() { host.apply(nil, host.reminder.Start) }

// Stop halts counting and clears progress.
func (host *Hydration) Stop() { host.apply(nil, host.reminder.Stop) }

// Toggle starts a stopped reminder or stops a running one.
func (host *Hydration) Toggle() {
	host.apply(nil, func() []model.Effect {
		if host.reminder.Running() {
			return host.reminder.Stop()
		}
		return host.reminder.Start()
	})
}

// Acknowledge clears progress after the user drank.
func (host *Hydration) Acknowledge() { host.apply(nil, host.reminder.Acknowledge) }

// Reconfigure applies a live interval change.
func (host *Hydration) Reconfigure() { host.apply(nil, host.reminder.Reconfigure) }

// Snapshot returns the current projection.
func (host *Hydration) Snapshot() model.HydrationSnapshot {
	host.mu.Lock()
	defer host.mu.Unlock()
	return host.reminder.Snapshot()
}
