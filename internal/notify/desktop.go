package notify

import (
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"studydesk/internal/core/model"
)

// Notifier is the part of fyne.App used for system notifications.
type Notifier interface {
	SendNotification(*fyne.Notification)
}

// Native sends fyne system notifications.
type Native struct {
	notifier Notifier
}

// NewNative creates a Native sink.
func NewNative(notifier Notifier) *Native {
	return &Native{notifier: notifier}
}

// Notify sends the notification.
func (native *Native) Notify(title, body string) {
	native.notifier.SendNotification(fyne.NewNotification(title, body))
}

// Alert shows a modal dialog and blocks until the user dismisses it.
// It must not be called from the fyne event loop.
type Alert struct {
	window func() fyne.Window
}

// NewAlert creates an Alert that parents its dialog on the window returned by window.
func NewAlert(window func() fyne.Window) *Alert {
	return &Alert{window: window}
}

// Notify shows the dialog and waits for it to close.
func (alert *Alert) Notify(title, body string) {
	parent := alert.window()
	if parent == nil {
		log.Printf("notify: alert %q: no window", title)
		return
	}
	closed := make(chan struct{})
	fyne.Do(func() {
		info := dialog.NewInformation(title, body, parent)
		info.SetOnClosed(func() {
			close(closed)
		})
		parent.Show()
		info.Show()
	})
	<-closed
}

// Prompt asks the user once whether StudyDesk may send system notifications.
type Prompt struct {
	mu         sync.Mutex
	permission model.Permission
	requesting bool
	window     func() fyne.Window
	onDecide   func(model.Permission)
}

// NewPrompt creates a Prompt seeded with a stored decision. onDecide is called
// once the user answers.
func NewPrompt(permission model.Permission, window func() fyne.Window, onDecide func(model.Permission)) *Prompt {
	return &Prompt{
		permission: permission,
		window:     window,
		onDecide:   onDecide,
	}
}

// Permission returns the current decision.
func (prompt *Prompt) Permission() model.Permission {
	prompt.mu.Lock()
	defer prompt.mu.Unlock()
	return prompt.permission
}

// Request shows the permission dialog when no decision exists and waits for
// the answer. Concurrent requests while a dialog is open return immediately.
func (prompt *Prompt) Request() model.Permission {
	prompt.mu.Lock()
	if prompt.permission != model.PermissionDefault || prompt.requesting {
		permission := prompt.permission
		prompt.mu.Unlock()
		return permission
	}
	parent := prompt.window()
	if parent == nil {
		prompt.mu.Unlock()
		return model.PermissionDefault
	}
	prompt.requesting = true
	prompt.mu.Unlock()

	answer := make(chan bool, 1)
	fyne.Do(func() {
		dialog.ShowConfirm("Notifications", "Allow StudyDesk to show desktop notifications?", func(allowed bool) {
			answer <- allowed
		}, parent)
	})

	permission := model.PermissionDenied
	if <-answer {
		permission = model.PermissionGranted
	}

	prompt.mu.Lock()
	prompt.permission = permission
	prompt.requesting = false
	prompt.mu.Unlock()

	if prompt.onDecide != nil {
		prompt.onDecide(permission)
	}
	return permission
}
