package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"studydesk/internal/core/model"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnOpen           func()
	OnTogglePomodoro func()
	OnSkip           func()
	OnReset          func()
	OnToggleWater    func()
	OnDrank          func()
	OnPreferences    func()
	OnQuit           func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	pomodoro    model.PomodoroSnapshot
	hydration   model.HydrationSnapshot
	statusItem  *fyne.MenuItem
	waterStatus *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	waterItem   *fyne.MenuItem
	activeIcon  fyne.Resource
	pausedIcon  fyne.Resource
}

// New creates a tray manager with the provided callbacks. A nil app keeps
// the menu state without installing it, which is how tests use it.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Pomodoro --:--", nil)
	manager.statusItem.Disabled = true
	manager.waterStatus = fyne.NewMenuItem("Water: stopped", nil)
	manager.waterStatus.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", func() { call(manager.callbacks.OnTogglePomodoro) })
	manager.waterItem = fyne.NewMenuItem("Start water reminder", func() { call(manager.callbacks.OnToggleWater) })

	manager.refreshMenu()
	return manager
}

// SetIcons sets the tray icons shown while the pomodoro runs and while it is
// paused.
func (manager *Manager) SetIcons(active, paused fyne.Resource) {
	manager.activeIcon = active
	manager.pausedIcon = paused
	manager.refreshIcon()
}

// SetPomodoro updates the pomodoro status line and the start/pause item.
func (manager *Manager) SetPomodoro(snapshot model.PomodoroSnapshot) {
	manager.pomodoro = snapshot
	manager.statusItem.Label = fmt.Sprintf("Pomodoro %s (%s)", snapshot.RemainingFormatted, snapshot.ModeLabel)
	if snapshot.Running {
		manager.toggleItem.Label = "Pause"
	} else {
		manager.toggleItem.Label = "Start"
	}
	manager.refreshIcon()
	manager.refreshMenu()
}

// SetHydration updates the water status line and the reminder toggle.
func (manager *Manager) SetHydration(snapshot model.HydrationSnapshot) {
	manager.hydration = snapshot
	if snapshot.Running {
		manager.waterStatus.Label = "Water: next in " + snapshot.NextLabel()
		manager.waterItem.Label = "Stop water reminder"
	} else {
		manager.waterStatus.Label = "Water: stopped"
		manager.waterItem.Label = "Start water reminder"
	}
	manager.refreshMenu()
}

// StatusLine returns the current pomodoro status label.
func (manager *Manager) StatusLine() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshIcon() {
	icon := manager.pausedIcon
	if manager.pomodoro.Running {
		icon = manager.activeIcon
	}
	if manager.app == nil || icon == nil {
		return
	}
	manager.app.SetSystemTrayIcon(icon)
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("StudyDesk",
		manager.statusItem,
		manager.waterStatus,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open StudyDesk", func() { call(manager.callbacks.OnOpen) }),
		manager.toggleItem,
		fyne.NewMenuItem("Skip", func() { call(manager.callbacks.OnSkip) }),
		fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) }),
		fyne.NewMenuItemSeparator(),
		manager.waterItem,
		fyne.NewMenuItem("I drank", func() { call(manager.callbacks.OnDrank) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() { call(manager.callbacks.OnPreferences) }),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	))
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
