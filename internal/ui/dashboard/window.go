// Package dashboard renders the timers and the task list in the main window.
package dashboard

import (
	"errors"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"studydesk/internal/core/model"
	"studydesk/internal/tasks"
)

// Callbacks defines timer control handlers.
type Callbacks struct {
	OnTogglePomodoro func()
	OnSkip           func()
	OnReset          func()
	OnStartWater     func()
	OnStopWater      func()
	OnDrank          func()
}

// Window is the main StudyDesk window. Its methods must run on the fyne
// event loop.
type Window struct {
	window    fyne.Window
	callbacks Callbacks
	tasks     *tasks.List
	items     []tasks.Task

	modeLabel   *widget.Label
	timeLabel   *widget.Label
	cycleLabel  *widget.Label
	pomProgress *widget.ProgressBar
	startPause  *widget.Button

	waterProgress  *widget.ProgressBar
	waterElapsed   *widget.Label
	waterRemaining *widget.Label
	waterNext      *widget.Label

	taskEntry  *widget.Entry
	taskList   *widget.List
	emptyLabel *widget.Label
}

// New creates the dashboard window.
func New(app fyne.App, list *tasks.List, callbacks Callbacks) *Window {
	dash := &Window{
		window:         app.NewWindow("StudyDesk"),
		callbacks:      callbacks,
		tasks:          list,
		modeLabel:      widget.NewLabelWithStyle("Work", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		timeLabel:      widget.NewLabelWithStyle("--:--", fyne.TextAlignCenter, fyne.TextStyle{Monospace: true}),
		cycleLabel:     widget.NewLabel("Cycles: 0"),
		pomProgress:    widget.NewProgressBar(),
		waterProgress:  widget.NewProgressBar(),
		waterElapsed:   widget.NewLabel("0m"),
		waterRemaining: widget.NewLabel("0m"),
		waterNext:      widget.NewLabel("Soon"),
		taskEntry:      widget.NewEntry(),
		emptyLabel:     widget.NewLabel("No tasks yet"),
	}
	dash.pomProgress.Max = 100
	dash.waterProgress.Max = 100
	dash.waterProgress.TextFormatter = func() string { return "" }

	dash.startPause = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() { call(dash.callbacks.OnTogglePomodoro) })
	pomodoroCard := widget.NewCard("Pomodoro", "", container.NewVBox(
		dash.modeLabel,
		dash.timeLabel,
		dash.pomProgress,
		container.NewHBox(
			dash.startPause,
			widget.NewButtonWithIcon("Skip", theme.MediaSkipNextIcon(), func() { call(dash.callbacks.OnSkip) }),
			widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() { call(dash.callbacks.OnReset) }),
			layout.NewSpacer(),
			dash.cycleLabel,
		),
	))

	waterCard := widget.NewCard("Hydration", "", container.NewVBox(
		dash.waterProgress,
		container.NewGridWithColumns(3,
			labelled("Elapsed", dash.waterElapsed),
			labelled("Remaining", dash.waterRemaining),
			labelled("Next", dash.waterNext),
		),
		container.NewHBox(
			widget.NewButton("Start", func() { call(dash.callbacks.OnStartWater) }),
			widget.NewButton("Stop", func() { call(dash.callbacks.OnStopWater) }),
			widget.NewButton("I drank", func() { call(dash.callbacks.OnDrank) }),
		),
	))

	dash.taskEntry.SetPlaceHolder("Add a task")
	dash.taskEntry.OnSubmitted = func(string) { dash.addTask() }
	dash.taskList = widget.NewList(
		func() int { return len(dash.items) },
		newTaskRow,
		dash.updateTaskRow,
	)
	taskHeader := container.NewBorder(nil, nil, nil,
		container.NewHBox(
			widget.NewButtonWithIcon("", theme.ContentAddIcon(), dash.addTask),
			widget.NewButton("Clear done", dash.clearDone),
		),
		dash.taskEntry,
	)
	taskCard := widget.NewCard("Tasks", "", container.NewBorder(taskHeader, nil, nil, nil,
		container.NewStack(dash.taskList, container.NewCenter(dash.emptyLabel)),
	))

	dash.window.SetContent(container.NewBorder(
		container.NewVBox(pomodoroCard, waterCard), nil, nil, nil, taskCard,
	))
	dash.window.Resize(fyne.NewSize(420, 640))
	dash.window.SetCloseIntercept(func() {
		dash.window.Hide()
	})
	dash.RefreshTasks()
	return dash
}

// Window returns the underlying fyne window.
func (dash *Window) Window() fyne.Window {
	return dash.window
}

// Show displays the window.
func (dash *Window) Show() {
	dash.window.Show()
	dash.window.RequestFocus()
}

// ShowPomodoro renders a pomodoro snapshot.
func (dash *Window) ShowPomodoro(snapshot model.PomodoroSnapshot) {
	dash.modeLabel.SetText(snapshot.ModeLabel)
	dash.timeLabel.SetText(snapshot.RemainingFormatted)
	dash.pomProgress.SetValue(float64(snapshot.PercentComplete))
	dash.cycleLabel.SetText("Cycles: " + strconv.Itoa(snapshot.CycleCount))
	if snapshot.Running {
		dash.startPause.SetText("Pause")
		dash.startPause.SetIcon(theme.MediaPauseIcon())
	} else {
		dash.startPause.SetText("Start")
		dash.startPause.SetIcon(theme.MediaPlayIcon())
	}
	dash.window.SetTitle(fmt.Sprintf("%s — %s • StudyDesk", snapshot.RemainingFormatted, snapshot.ModeLabel))
}

// ShowHydration renders a hydration snapshot.
func (dash *Window) ShowHydration(snapshot model.HydrationSnapshot) {
	dash.waterProgress.SetValue(float64(snapshot.PercentComplete))
	dash.waterElapsed.SetText(strconv.Itoa(snapshot.MinutesElapsed) + "m")
	dash.waterRemaining.SetText(strconv.Itoa(snapshot.MinutesRemaining) + "m")
	dash.waterNext.SetText(snapshot.NextLabel())
}

// RefreshTasks reloads the task list.
func (dash *Window) RefreshTasks() {
	dash.items = dash.tasks.All()
	if len(dash.items) == 0 {
		dash.emptyLabel.Show()
	} else {
		dash.emptyLabel.Hide()
	}
	dash.taskList.Refresh()
}

func (dash *Window) addTask() {
	if _, err := dash.tasks.Add(dash.taskEntry.Text); err != nil {
		if !errors.Is(err, tasks.ErrEmptyText) {
			dialog.ShowError(err, dash.window)
		}
		return
	}
	dash.taskEntry.SetText("")
	dash.RefreshTasks()
}

func (dash *Window) clearDone() {
	if _, err := dash.tasks.ClearDone(); err != nil {
		dialog.ShowError(err, dash.window)
	}
	dash.RefreshTasks()
}

func (dash *Window) toggleTask(index int) {
	if _, err := dash.tasks.Toggle(index); err != nil {
		dialog.ShowError(err, dash.window)
	}
	dash.RefreshTasks()
}

func (dash *Window) deleteTask(index int) {
	if err := dash.tasks.Delete(index); err != nil {
		dialog.ShowError(err, dash.window)
	}
	dash.RefreshTasks()
}

func newTaskRow() fyne.CanvasObject {
	return container.NewBorder(nil, nil,
		widget.NewCheck("", nil),
		widget.NewButtonWithIcon("", theme.CancelIcon(), nil),
		widget.NewLabel(""),
	)
}

// updateTaskRow relies on the Border layout placing the center object first.
func (dash *Window) updateTaskRow(id widget.ListItemID, object fyne.CanvasObject) {
	row := object.(*fyne.Container)
	text := row.Objects[0].(*widget.Label)
	check := row.Objects[1].(*widget.Check)
	remove := row.Objects[2].(*widget.Button)

	task := dash.items[id]
	text.SetText(task.Text)
	if task.Done {
		text.TextStyle = fyne.TextStyle{Italic: true}
		text.Importance = widget.LowImportance
	} else {
		text.TextStyle = fyne.TextStyle{}
		text.Importance = widget.MediumImportance
	}
	text.Refresh()

	check.OnChanged = nil
	check.SetChecked(task.Done)
	check.OnChanged = func(bool) { dash.toggleTask(id) }
	remove.OnTapped = func() { dash.deleteTask(id) }
}

func labelled(caption string, value *widget.Label) fyne.CanvasObject {
	return container.NewVBox(widget.NewLabelWithStyle(caption, fyne.TextAlignLeading, fyne.TextStyle{Italic: true}), value)
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
