package preferences

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"studydesk/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	work       *widget.Entry
	shortBreak *widget.Entry
	longBreak  *widget.Entry
	hydration  *widget.Entry
	autoSwitch *widget.Check
	volume     *widget.Slider
	autostart  *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("StudyDesk Settings")

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		work:       widget.NewEntry(),
		shortBreak: widget.NewEntry(),
		longBreak:  widget.NewEntry(),
		hydration:  widget.NewEntry(),
		autoSwitch: widget.NewCheck("Switch sessions automatically", nil),
		volume:     widget.NewSlider(0, 1),
		autostart:  widget.NewCheck("Launch at login", nil),
	}
	prefs.volume.Step = 0.05
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Pomodoro", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work"), prefs.work, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), prefs.shortBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), prefs.longBreak, widget.NewLabel("min")),
		prefs.autoSwitch,
		widget.NewLabelWithStyle("Hydration", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Remind every"), prefs.hydration, widget.NewLabel("min")),
		widget.NewLabel("Sound volume"),
		prefs.volume,
		prefs.autostart,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 420))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Window returns the underlying fyne window.
func (prefs *Window) Window() fyne.Window {
	return prefs.window
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.work.SetText(strconv.Itoa(settings.WorkMinutes))
	prefs.shortBreak.SetText(strconv.Itoa(settings.ShortBreakMinutes))
	prefs.longBreak.SetText(strconv.Itoa(settings.LongBreakMinutes))
	prefs.hydration.SetText(strconv.Itoa(settings.HydrationMinutes))
	prefs.autoSwitch.SetChecked(settings.AutoSwitch)
	prefs.volume.SetValue(settings.CueVolume)
	prefs.autostart.SetChecked(settings.LaunchAtLogin)
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// handleSave corrects malformed entries to their clamped values and shows
// the corrected text before saving.
func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.WorkMinutes = model.ParseMinutes(prefs.work.Text, model.DefaultWorkMinutes, model.MinPhaseMinutes)
	settings.ShortBreakMinutes = model.ParseMinutes(prefs.shortBreak.Text, model.DefaultShortBreakMinutes, model.MinPhaseMinutes)
	settings.LongBreakMinutes = model.ParseMinutes(prefs.longBreak.Text, model.DefaultLongBreakMinutes, model.MinPhaseMinutes)
	settings.HydrationMinutes = model.ParseMinutes(prefs.hydration.Text, model.DefaultHydrationMinutes, model.MinHydrationMinutes)
	settings.AutoSwitch = prefs.autoSwitch.Checked
	settings.CueVolume = prefs.volume.Value
	settings.LaunchAtLogin = prefs.autostart.Checked

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
