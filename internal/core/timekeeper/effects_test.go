package timekeeper

import (
	"testing"
	"time"

	"studydesk/internal/core/model"
)

type channelSink struct {
	delivered chan string
}

func (sink channelSink) Notify(title, body string) {
	sink.delivered <- title + ": " + body
}

type channelPlayer struct {
	volumes chan float64
}

func (player channelPlayer) PlayCue(volume float64) {
	player.volumes <- volume
}

type panicPlayer struct{}

func (panicPlayer) PlayCue(float64) {
	panic("no audio device")
}

type countingAuthorizer struct {
	permission model.Permission
	requests   chan struct{}
}

func (authorizer *countingAuthorizer) Permission() model.Permission { return authorizer.permission }

func (authorizer *countingAuthorizer) Request() model.Permission {
	authorizer.requests <- struct{}{}
	return authorizer.permission
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case value := <-ch:
		return value
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for effect")
	}
	var zero T
	return zero
}

func TestEffectQueueExecutesInOrder(t *testing.T) {
	sink := channelSink{delivered: make(chan string, 4)}
	player := channelPlayer{volumes: make(chan float64, 4)}
	queue := NewEffectQueue(sink, player, nil, func() float64 { return 0.4 })
	defer queue.Close()

	queue.Dispatch([]model.Effect{
		model.Cue(),
		model.Notify("Pomodoro", "Work session ended."),
		model.Notify("Pomodoro", "Time for short break."),
	})

	if volume := receive(t, player.volumes); volume != 0.4 {
		t.Fatalf("expected volume 0.4, got %v", volume)
	}
	if got := receive(t, sink.delivered); got != "Pomodoro: Work session ended." {
		t.Fatalf("unexpected first alert %q", got)
	}
	if got := receive(t, sink.delivered); got != "Pomodoro: Time for short break." {
		t.Fatalf("unexpected second alert %q", got)
	}
}

func TestEffectQueueSurvivesFailingPlayer(t *testing.T) {
	sink := channelSink{delivered: make(chan string, 1)}
	queue := NewEffectQueue(sink, panicPlayer{}, nil, nil)
	defer queue.Close()

	queue.Dispatch([]model.Effect{model.Cue(), model.Notify("Hydration Reminder", "drink")})
	if got := receive(t, sink.delivered); got != "Hydration Reminder: drink" {
		t.Fatalf("unexpected alert %q", got)
	}
}

func TestEffectQueueRequestsOnlyUndecidedPermission(t *testing.T) {
	undecided := &countingAuthorizer{permission: model.PermissionDefault, requests: make(chan struct{}, 1)}
	queue := NewEffectQueue(nil, nil, undecided, nil)
	defer queue.Close()
	queue.Dispatch([]model.Effect{model.Authorize()})
	receive(t, undecided.requests)

	decided := &countingAuthorizer{permission: model.PermissionDenied, requests: make(chan struct{}, 1)}
	sink := channelSink{delivered: make(chan string, 1)}
	other := NewEffectQueue(sink, nil, decided, nil)
	defer other.Close()
	other.Dispatch([]model.Effect{model.Authorize(), model.Notify("a", "b")})
	receive(t, sink.delivered)
	time.Sleep(10 * time.Millisecond)
	if len(decided.requests) != 0 {
		t.Fatalf("expected no request for a decided permission")
	}
}

func TestEffectQueueDropsAfterClose(t *testing.T) {
	sink := channelSink{delivered: make(chan string, 1)}
	queue := NewEffectQueue(sink, nil, nil, nil)
	queue.Close()
	queue.Close()
	queue.Dispatch([]model.Effect{model.Notify("a", "b")})
	time.Sleep(10 * time.Millisecond)
	if len(sink.delivered) != 0 {
		t.Fatalf("expected nothing delivered after close")
	}
}
