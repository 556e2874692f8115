// Package notify delivers user alerts for the session timers.
//
// Every Sink is best effort: delivery failures are logged and dropped so the
// timers never observe them.
package notify

import (
	"fmt"
	"io"
	"log"
	"sync"

	"studydesk/internal/core/model"
)

// Sink alerts the user.
type Sink interface {
	Notify(title, body string)
}

// Authorizer tracks and requests permission for system notifications.
type Authorizer interface {
	Permission() model.Permission
	Request() model.Permission
}

// Selector routes alerts to the native sink when notifications are permitted
// and to the fallback sink otherwise. The choice is made once, on first use.
type Selector struct {
	authorizer Authorizer
	native     Sink
	fallback   Sink

	once   sync.Once
	chosen Sink
}

// NewSelector creates a Selector.
func NewSelector(authorizer Authorizer, native, fallback Sink) *Selector {
	return &Selector{
		authorizer: authorizer,
		native:     native,
		fallback:   fallback,
	}
}

// Notify delivers through the selected sink.
func (selector *Selector) Notify(title, body string) {
	selector.once.Do(func() {
		selector.chosen = selector.fallback
		if selector.native != nil && permissionOf(selector.authorizer) == model.PermissionGranted {
			selector.chosen = selector.native
		}
	})
	Deliver(selector.chosen, title, body)
}

// Deliver calls sink and swallows any panic raised by it.
func Deliver(sink Sink, title, body string) {
	if sink == nil {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("notify: %s: %v", title, recovered)
		}
	}()
	sink.Notify(title, body)
}

func permissionOf(authorizer Authorizer) (permission model.Permission) {
	if authorizer == nil {
		return model.PermissionDefault
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("notify: permission: %v", recovered)
			permission = model.PermissionDefault
		}
	}()
	return authorizer.Permission()
}

// Static is an Authorizer with a fixed decision.
type Static model.Permission

// Permission returns the fixed decision.
func (static Static) Permission() model.Permission {
	return model.Permission(static)
}

// Request returns the fixed decision.
func (static Static) Request() model.Permission {
	return model.Permission(static)
}

// Console writes alerts to a terminal.
type Console struct {
	Writer io.Writer
}

// Notify prints the alert.
func (console Console) Notify(title, body string) {
	if console.Writer == nil {
		return
	}
	if _, err := fmt.Fprintf(console.Writer, "\n[%s] %s\n", title, body); err != nil {
		log.Printf("notify: console: %v", err)
	}
}
