package timekeeper

import (
	"log"
	"sync"

	"studydesk/internal/audio"
	"studydesk/internal/core/model"
	"studydesk/internal/notify"
)

// EffectQueue runs timer side effects on its own goroutine so a blocking
// alert never stalls a timer. Permission requests run detached.
type EffectQueue struct {
	sink       notify.Sink
	player     audio.Player
	authorizer notify.Authorizer
	volume     func() float64

	queue     chan []model.Effect
	stopCh    chan struct{}
	closeOnce sync.Once
}

// NewEffectQueue starts a queue. volume is read each time a cue plays.
func NewEffectQueue(sink notify.Sink, player audio.Player, authorizer notify.Authorizer, volume func() float64) *EffectQueue {
	queue := &EffectQueue{
		sink:       sink,
		player:     player,
		authorizer: authorizer,
		volume:     volume,
		queue:      make(chan []model.Effect, 32),
		stopCh:     make(chan struct{}),
	}
	go queue.run()
	return queue
}

// Dispatch enqueues effects. A full queue drops them.
func (queue *EffectQueue) Dispatch(effects []model.Effect) {
	select {
	case <-queue.stopCh:
		return
	default:
	}
	select {
	case queue.queue <- effects:
	default:
		log.Printf("timekeeper: effect queue full, dropped %d effects", len(effects))
	}
}

// Close stops the worker. Effects still queued are discarded.
func (queue *EffectQueue) Close() {
	queue.closeOnce.Do(func() {
		close(queue.stopCh)
	})
}

func (queue *EffectQueue) run() {
	for {
		select {
		case <-queue.stopCh:
			return
		case effects := <-queue.queue:
			for _, effect := range effects {
				queue.execute(effect)
			}
		}
	}
}

func (queue *EffectQueue) execute(effect model.Effect) {
	switch effect.Kind {
	case model.EffectNotify:
		notify.Deliver(queue.sink, effect.Title, effect.Body)
	case model.EffectCue:
		queue.playCue()
	case model.EffectAuthorize:
		go queue.authorize()
	}
}

func (queue *EffectQueue) playCue() {
	if queue.player == nil {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("timekeeper: cue: %v", recovered)
		}
	}()
	volume := 1.0
	if queue.volume != nil {
		volume = queue.volume()
	}
	queue.player.PlayCue(volume)
}

func (queue *EffectQueue) authorize() {
	if queue.authorizer == nil {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("timekeeper: authorize: %v", recovered)
		}
	}()
	if queue.authorizer.Permission() == model.PermissionDefault {
		queue.authorizer.Request()
	}
}
