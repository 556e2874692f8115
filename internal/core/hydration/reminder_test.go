package hydration_test

import (
	"testing"

	"studydesk/internal/core/hydration"
	"studydesk/internal/core/model"
)

func fiveMinutes() model.TimerConfig {
	config := model.DefaultTimerConfig()
	config.HydrationMinutes = 5
	return config
}

func countReminders(effects []model.Effect) int {
	count := 0
	for _, effect := range effects {
		if effect.Kind == model.EffectNotify && effect.Title == "Hydration Reminder" {
			count++
		}
	}
	return count
}

func TestReminderFiresOnTarget(t *testing.T) {
	reminder := hydration.New(fiveMinutes())
	reminder.Start()
	if reminder.Target() != 300 {
		t.Fatalf("expected target 300, got %d", reminder.Target())
	}

	fired := 0
	for range 299 {
		fired += countReminders(reminder.Tick())
	}
	if fired != 0 || reminder.Elapsed() != 299 {
		t.Fatalf("expected no reminder at 299, got %d fired, elapsed %d", fired, reminder.Elapsed())
	}

	effects := reminder.Tick()
	if countReminders(effects) != 1 {
		t.Fatalf("expected one reminder, got %+v", effects)
	}
	if effects[0].Kind != model.EffectCue {
		t.Fatalf("expected cue before the reminder, got %+v", effects)
	}
	if reminder.Elapsed() != 0 {
		t.Fatalf("expected elapsed reset, got %d", reminder.Elapsed())
	}
	if !reminder.Running() {
		t.Fatalf("expected reminder to keep running")
	}
}

func TestReminderCycleRepeats(t *testing.T) {
	reminder := hydration.New(fiveMinutes())
	reminder.Start()
	fired := 0
	for range 3 * 300 {
		fired += countReminders(reminder.Tick())
	}
	if fired != 3 || reminder.Elapsed() != 0 {
		t.Fatalf("expected 3 reminders and elapsed 0, got %d/%d", fired, reminder.Elapsed())
	}
}

func TestStartRequestsAuthorization(t *testing.T) {
	reminder := hydration.New(fiveMinutes())
	effects := reminder.Start()
	if len(effects) != 1 || effects[0].Kind != model.EffectAuthorize {
		t.Fatalf("expected authorize effect, got %+v", effects)
	}
}

func TestStartKeepsProgress(t *testing.T) {
	config := model.NewLiveConfig(fiveMinutes())
	reminder := hydration.New(config)
	reminder.Start()
	for range 10 {
		reminder.Tick()
	}

	next := fiveMinutes()
	next.HydrationMinutes = 20
	config.Set(next)
	reminder.Start()

	if reminder.Elapsed() != 10 {
		t.Fatalf("expected progress kept, got %d", reminder.Elapsed())
	}
	if reminder.Target() != 1200 {
		t.Fatalf("expected target reloaded on re-entrant start, got %d", reminder.Target())
	}
}

func TestStopResetsProgress(t *testing.T) {
	reminder := hydration.New(fiveMinutes())
	reminder.Start()
	for range 42 {
		reminder.Tick()
	}
	reminder.Stop()
	if reminder.Running() || reminder.Elapsed() != 0 {
		t.Fatalf("expected stopped and cleared, got running=%v elapsed=%d", reminder.Running(), reminder.Elapsed())
	}
	if effects := reminder.Tick(); effects != nil || reminder.Elapsed() != 0 {
		t.Fatalf("expected ticks ignored after stop")
	}
}

func TestAcknowledgeKeepsRunState(t *testing.T) {
	reminder := hydration.New(fiveMinutes())
	reminder.Start()
	for range 120 {
		reminder.Tick()
	}
	reminder.Acknowledge()
	if reminder.Elapsed() != 0 || !reminder.Running() {
		t.Fatalf("expected running with elapsed 0")
	}

	stopped := hydration.New(fiveMinutes())
	stopped.Acknowledge()
	if stopped.Elapsed() != 0 || stopped.Running() {
		t.Fatalf("expected stopped reminder to stay stopped")
	}
}

func TestIntervalClampedToFiveMinutes(t *testing.T) {
	config := model.DefaultTimerConfig()
	config.HydrationMinutes = 2
	reminder := hydration.New(config)
	if reminder.Target() != 300 {
		t.Fatalf("expected 300, got %d", reminder.Target())
	}
}

func TestReconfigureShrinkingTargetFiresNextTick(t *testing.T) {
	config := model.NewLiveConfig(model.DefaultTimerConfig())
	reminder := hydration.New(config)
	reminder.Start()
	for range 400 {
		reminder.Tick()
	}

	config.Set(fiveMinutes())
	reminder.Reconfigure()
	if snapshot := reminder.Snapshot(); snapshot.MinutesRemaining != 0 || snapshot.PercentComplete != 100 {
		t.Fatalf("expected clamped display, got %+v", snapshot)
	}
	if countReminders(reminder.Tick()) != 1 || reminder.Elapsed() != 0 {
		t.Fatalf("expected reminder on the next tick")
	}
}

func TestSnapshotDisplayValues(t *testing.T) {
	reminder := hydration.New(fiveMinutes())
	reminder.Start()
	for range 90 {
		reminder.Tick()
	}
	snapshot := reminder.Snapshot()
	if snapshot.PercentComplete != 30 {
		t.Fatalf("expected 30%%, got %d", snapshot.PercentComplete)
	}
	if snapshot.MinutesElapsed != 1 {
		t.Fatalf("expected 1 minute elapsed, got %d", snapshot.MinutesElapsed)
	}
	if snapshot.MinutesRemaining != 4 {
		t.Fatalf("expected 4 minutes remaining, got %d", snapshot.MinutesRemaining)
	}
	if snapshot.NextLabel() != "4m" {
		t.Fatalf("expected 4m, got %s", snapshot.NextLabel())
	}
}
