package model

import "testing"

func TestClampMinutes(t *testing.T) {
	cases := []struct {
		name     string
		value    int
		fallback int
		minimum  int
		want     int
	}{
		{name: "valid", value: 30, fallback: 25, minimum: 1, want: 30},
		{name: "missing", value: 0, fallback: 25, minimum: 1, want: 25},
		{name: "negative", value: -4, fallback: 25, minimum: 1, want: 1},
		{name: "below hydration minimum", value: 3, fallback: 45, minimum: 5, want: 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampMinutes(tc.value, tc.fallback, tc.minimum); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestParseMinutes(t *testing.T) {
	cases := map[string]int{
		"40":    40,
		" 12 ":  12,
		"":      25,
		"abc":   25,
		"0":     25,
		"-3":    1,
		"2.5":   2,
		"1.5":   1,
		"12abc": 12,
		"+7":    7,
		"-":     25,
		"x12":   25,
	}
	for raw, want := range cases {
		if got := ParseMinutes(raw, DefaultWorkMinutes, MinPhaseMinutes); got != want {
			t.Fatalf("ParseMinutes(%q): expected %d, got %d", raw, want, got)
		}
	}
}

func TestPhaseSecondsFallsBackToDefaults(t *testing.T) {
	var config TimerConfig
	if got := config.PhaseSeconds(ModeWork); got != 25*60 {
		t.Fatalf("expected work 1500, got %d", got)
	}
	if got := config.PhaseSeconds(ModeShortBreak); got != 5*60 {
		t.Fatalf("expected short 300, got %d", got)
	}
	if got := config.PhaseSeconds(ModeLongBreak); got != 15*60 {
		t.Fatalf("expected long 900, got %d", got)
	}
	if got := config.HydrationSeconds(); got != 45*60 {
		t.Fatalf("expected hydration 2700, got %d", got)
	}
}

func TestNormalized(t *testing.T) {
	config := TimerConfig{WorkMinutes: -2, HydrationMinutes: 1, CueVolume: 3}.Normalized()
	if config.WorkMinutes != 1 || config.ShortBreakMinutes != 5 || config.LongBreakMinutes != 15 {
		t.Fatalf("unexpected phases %+v", config)
	}
	if config.HydrationMinutes != 5 {
		t.Fatalf("expected hydration 5, got %d", config.HydrationMinutes)
	}
	if config.CueVolume != 1 {
		t.Fatalf("expected volume 1, got %v", config.CueVolume)
	}
}

func TestLiveConfig(t *testing.T) {
	live := NewLiveConfig(DefaultTimerConfig())
	next := DefaultTimerConfig()
	next.WorkMinutes = 50
	live.Set(next)
	if live.TimerConfig().WorkMinutes != 50 {
		t.Fatalf("expected 50, got %d", live.TimerConfig().WorkMinutes)
	}
}

func TestFormatClockAndPercent(t *testing.T) {
	if got := FormatClock(1500); got != "25:00" {
		t.Fatalf("expected 25:00, got %s", got)
	}
	if got := FormatClock(59); got != "00:59" {
		t.Fatalf("expected 00:59, got %s", got)
	}
	if got := PercentElapsed(1500, 1500); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := PercentElapsed(0, 300); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := PercentElapsed(200, 300); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
}

func TestParsePermission(t *testing.T) {
	if ParsePermission("granted") != PermissionGranted {
		t.Fatalf("expected granted")
	}
	if ParsePermission("bogus") != PermissionDefault {
		t.Fatalf("expected default for unknown value")
	}
}
