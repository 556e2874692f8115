package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"studydesk/internal/core/model"
	"studydesk/internal/core/timekeeper"
)

const eventBuffer = 16

func newPomodoroCmd(st *state) *cobra.Command {
	var tick time.Duration
	var paused bool

	cmd := &cobra.Command{
		Use:   "pomodoro",
		Short: "Run the pomodoro timer",
		Long: `Run the pomodoro timer in the terminal.

Commands (one per line): p start/pause, s skip, r reset, q quit.
End of input also quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &syncWriter{writer: cmd.OutOrStdout()}
			live := model.NewLiveConfig(st.timerConfig())
			queue, err := st.effects(out, func() float64 { return live.TimerConfig().Volume() })
			if err != nil {
				return err
			}
			defer queue.Close()

			host := timekeeper.NewPomodoro(live, queue, timekeeper.Config{TickInterval: tick})
			printed := printEvents(host.Subscribe(eventBuffer), out)
			fmt.Fprintln(out, formatPomodoro(host.Snapshot()))
			if !paused {
				host.Start()
			}

			err = readCommands(cmd.Context(), cmd.InOrStdin(), func(command string) bool {
				switch command {
				case "p", "":
					host.Toggle()
				case "s":
					host.Skip()
				case "r":
					host.Reset()
				case "q":
					return false
				default:
					fmt.Fprintf(out, "unknown command %q (p, s, r, q)\n", command)
				}
				return true
			})
			host.Close()
			<-printed
			return err
		},
	}
	cmd.Flags().DurationVar(&tick, "tick", time.Second, "Timer tick interval")
	cmd.Flags().BoolVar(&paused, "paused", false, "Wait for p before starting")
	_ = cmd.Flags().MarkHidden("tick")
	return cmd
}

func newHydrateCmd(st *state) *cobra.Command {
	var tick time.Duration

	cmd := &cobra.Command{
		Use:   "hydrate",
		Short: "Run the hydration reminder",
		Long: `Run the hydration reminder in the terminal.

Commands (one per line): d I drank, s start/stop, q quit.
End of input also quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &syncWriter{writer: cmd.OutOrStdout()}
			live := model.NewLiveConfig(st.timerConfig())
			queue, err := st.effects(out, func() float64 { return live.TimerConfig().Volume() })
			if err != nil {
				return err
			}
			defer queue.Close()

			host := timekeeper.NewHydration(live, queue, timekeeper.Config{TickInterval: tick})
			printed := printEvents(host.Subscribe(eventBuffer), out)
			host.Start()

			err = readCommands(cmd.Context(), cmd.InOrStdin(), func(command string) bool {
				switch command {
				case "d", "":
					host.Acknowledge()
				case "s":
					host.Toggle()
				case "q":
					return false
				default:
					fmt.Fprintf(out, "unknown command %q (d, s, q)\n", command)
				}
				return true
			})
			host.Close()
			<-printed
			return err
		},
	}
	cmd.Flags().DurationVar(&tick, "tick", time.Second, "Timer tick interval")
	_ = cmd.Flags().MarkHidden("tick")
	return cmd
}

// printEvents renders snapshots until the host closes the channel.
func printEvents(events <-chan timekeeper.Event, out io.Writer) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range events {
			switch event.Type {
			case timekeeper.EventPomodoro:
				fmt.Fprintln(out, formatPomodoro(event.Pomodoro))
			case timekeeper.EventHydration:
				fmt.Fprintln(out, formatHydration(event.Hydration))
			}
		}
	}()
	return done
}

// readCommands feeds trimmed input lines to handle until it returns false,
// input ends or ctx is cancelled.
func readCommands(ctx context.Context, in io.Reader, handle func(string) bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.ToLower(strings.TrimSpace(scanner.Text())):
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("read commands: %w", err)
				}
				return nil
			}
			if !handle(line) {
				return nil
			}
		}
	}
}

func formatPomodoro(snapshot model.PomodoroSnapshot) string {
	status := "paused"
	if snapshot.Running {
		status = "running"
	}
	return fmt.Sprintf("%-5s %s %3d%%  cycles %d  %s",
		snapshot.ModeLabel, snapshot.RemainingFormatted, snapshot.PercentComplete, snapshot.CycleCount, status)
}

func formatHydration(snapshot model.HydrationSnapshot) string {
	if !snapshot.Running {
		return fmt.Sprintf("water  stopped  elapsed %dm", snapshot.MinutesElapsed)
	}
	return fmt.Sprintf("water  %3d%%  elapsed %dm  next %s",
		snapshot.PercentComplete, snapshot.MinutesElapsed, snapshot.NextLabel())
}
