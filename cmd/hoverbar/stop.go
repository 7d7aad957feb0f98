package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoverbar/hoverbar/internal/daemon"
)

func newStopCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running hoverbar instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd.Flags(), false)
			if err != nil {
				return err
			}

			pid, err := daemon.New(cfg.Daemon.PIDFile).Stop()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sent SIGTERM to hoverbar (PID: %d)\n", pid)
			return nil
		},
	}
}
