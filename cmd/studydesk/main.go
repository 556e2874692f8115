package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"studydesk/internal/audio"
	"studydesk/internal/core/model"
	"studydesk/internal/core/timekeeper"
	"studydesk/internal/notify"
	"studydesk/internal/platform"
	"studydesk/internal/storage"
	"studydesk/internal/tasks"
	"studydesk/internal/ui/dashboard"
	"studydesk/internal/ui/preferences"
	"studydesk/internal/ui/tray"
	"studydesk/resources"
)

const (
	appName           = "StudyDesk"
	permissionDelay   = 4 * time.Second
	subscriberBuffer  = 8
	defaultTickPeriod = time.Second
)

func main() {
	var dash *dashboard.Window
	guard, err := platform.AcquireSingleInstance(appName, func() {
		fyne.Do(func() {
			if dash != nil {
				dash.Show()
			}
		})
	})
	if err != nil {
		if signalErr := platform.SignalRunningInstance(appName); signalErr != nil {
			log.Printf("single instance: %v", signalErr)
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	service := platform.NewService()
	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}
	settings.LaunchAtLogin = service.AutostartEnabled(appName)
	live := model.NewLiveConfig(settings.TimerConfig())

	fyneApp := app.NewWithID("com.studydesk.app")
	fyneApp.SetIcon(resources.MustLogo(resources.LogoActive))

	mainWindow := func() fyne.Window {
		if dash == nil {
			return nil
		}
		return dash.Window()
	}
	prompt := notify.NewPrompt(settings.NotificationPermission, mainWindow, func(permission model.Permission) {
		fyne.Do(func() {
			settings.NotificationPermission = permission
			if err := storage.SaveSettings(appName, settings); err != nil {
				log.Printf("save settings: %v", err)
			}
		})
	})
	sink := notify.NewSelector(prompt, notify.NewNative(fyneApp), notify.NewAlert(mainWindow))
	player := audio.NewCommand(cacheDir())
	queue := timekeeper.NewEffectQueue(sink, player, prompt, func() float64 {
		return live.TimerConfig().Volume()
	})

	options := timekeeper.Config{TickInterval: defaultTickPeriod}
	pomodoro := timekeeper.NewPomodoro(live, queue, options)
	hydration := timekeeper.NewHydration(live, queue, options)

	taskList := tasks.NewList(fyneApp.Preferences())
	dash = dashboard.New(fyneApp, taskList, dashboard.Callbacks{
		OnTogglePomodoro: pomodoro.Toggle,
		OnSkip:           pomodoro.Skip,
		OnReset:          pomodoro.Reset,
		OnStartWater:     hydration.Start,
		OnStopWater:      hydration.Stop,
		OnDrank:          hydration.Acknowledge,
	})

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if updated.LaunchAtLogin != settings.LaunchAtLogin {
			if err := platform.SetAutostart(service, appName, updated.LaunchAtLogin); err != nil {
				log.Printf("autostart: %v", err)
				updated.LaunchAtLogin = settings.LaunchAtLogin
			}
		}
		settings = updated
		live.Set(settings.TimerConfig())
		pomodoro.Reconfigure()
		hydration.Reconfigure()
		if err := storage.SaveSettings(appName, settings); err != nil {
			log.Printf("save settings: %v", err)
		}
	})

	quit := fyneApp.Quit

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnOpen:           dash.Show,
			OnTogglePomodoro: pomodoro.Toggle,
			OnSkip:           pomodoro.Skip,
			OnReset:          pomodoro.Reset,
			OnToggleWater:    hydration.Toggle,
			OnDrank:          hydration.Acknowledge,
			OnPreferences:    prefsWindow.Show,
			OnQuit:           quit,
		})
		trayManager.SetIcons(resources.MustLogo(resources.LogoActive), resources.MustLogo(resources.LogoPaused))
	} else {
		log.Printf("system tray unsupported on this platform")
		dash.Window().SetCloseIntercept(quit)
	}

	render(pomodoro.Subscribe(subscriberBuffer), dash, trayManager)
	render(hydration.Subscribe(subscriberBuffer), dash, trayManager)
	dash.ShowPomodoro(pomodoro.Snapshot())
	dash.ShowHydration(hydration.Snapshot())
	if trayManager != nil {
		trayManager.SetPomodoro(pomodoro.Snapshot())
		trayManager.SetHydration(hydration.Snapshot())
	}

	if prompt.Permission() == model.PermissionDefault {
		time.AfterFunc(permissionDelay, func() {
			prompt.Request()
		})
	}

	dash.Show()
	fyneApp.Run()
	pomodoro.Close()
	hydration.Close()
	queue.Close()
}

// render forwards host events to the widgets on the fyne event loop.
func render(events <-chan timekeeper.Event, dash *dashboard.Window, trayManager *tray.Manager) {
	go func() {
		for event := range events {
			fyne.Do(func() {
				switch event.Type {
				case timekeeper.EventPomodoro:
					dash.ShowPomodoro(event.Pomodoro)
					if trayManager != nil {
						trayManager.SetPomodoro(event.Pomodoro)
					}
				case timekeeper.EventHydration:
					dash.ShowHydration(event.Hydration)
					if trayManager != nil {
						trayManager.SetHydration(event.Hydration)
					}
				}
			})
		}
	}()
}

func cacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, appName)
}
