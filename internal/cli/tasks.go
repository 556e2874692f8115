package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"studydesk/internal/tasks"
)

func newTasksCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage the task list",
	}

	openList := func() (*tasks.List, error) {
		path, err := st.tasksPath()
		if err != nil {
			return nil, err
		}
		kv, err := tasks.OpenFileKV(path)
		if err != nil {
			return nil, fmt.Errorf("open tasks: %w", err)
		}
		return tasks.NewList(kv), nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <text>",
		Short: "Add a task to the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := openList()
			if err != nil {
				return err
			}
			task, err := list.Add(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added: %s\n", task.Text)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the task list",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := openList()
			if err != nil {
				return err
			}
			items := list.All()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks yet")
				return nil
			}
			for i, task := range items {
				mark := " "
				if task.Done {
					mark = "x"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. [%s] %s\n", i+1, mark, task.Text)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "done <n>",
		Short: "Toggle the done state of task n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			list, err := openList()
			if err != nil {
				return err
			}
			task, err := list.Toggle(index)
			if err != nil {
				return err
			}
			status := "open"
			if task.Done {
				status = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", status, task.Text)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <n>",
		Aliases: []string{"delete"},
		Short:   "Delete task n",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			list, err := openList()
			if err != nil {
				return err
			}
			return list.Delete(index)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := openList()
			if err != nil {
				return err
			}
			removed, err := list.ClearDone()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d completed task(s)\n", removed)
			return nil
		},
	})

	return cmd
}

// parsePosition converts a 1-based list position to an index.
func parsePosition(raw string) (int, error) {
	position, err := strconv.Atoi(raw)
	if err != nil || position < 1 {
		return 0, fmt.Errorf("invalid task number %q", raw)
	}
	return position - 1, nil
}
