package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"studydesk/internal/platform"
)

func newAutostartCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:       "autostart [on|off]",
		Short:     "Show or change whether the desktop app starts at login",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			service := st.autostart()
			if len(args) == 1 {
				if err := platform.SetAutostart(service, AppName, args[0] == "on"); err != nil {
					return err
				}
			}
			status := "off"
			if service.AutostartEnabled(AppName) {
				status = "on"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "autostart: %s\n", status)
			return nil
		},
	}
}
