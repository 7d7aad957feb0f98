package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hoverbar/hoverbar/internal/daemon"
	"github.com/hoverbar/hoverbar/internal/hover"
	"github.com/hoverbar/hoverbar/pkg/locator"
)

const statusSampleTimeout = 2 * time.Second

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show instance status, pointer backends and the current pointer position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd.Flags(), false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			running, pid, err := daemon.New(cfg.Daemon.PIDFile).IsRunning()
			if err != nil {
				return err
			}
			if running {
				fmt.Fprintf(out, "hoverbar is running (PID: %d)\n", pid)
			} else {
				fmt.Fprintln(out, "hoverbar is not running")
			}
			fmt.Fprintf(out, "Session: %s\n\n", locator.DetectSession())

			loc := locator.New(a.logger)
			defer loc.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), statusSampleTimeout)
			defer cancel()

			y, ok := loc.Sample(ctx)
			fmt.Fprint(out, loc.GetStatus())
			if !ok {
				fmt.Fprintln(out, "\nPointer: unavailable")
				return nil
			}

			zone := "away"
			switch {
			case y <= hover.TopEdge:
				zone = "top edge"
			case y <= cfg.Hover.YThreshold:
				zone = "hysteresis band"
			}
			fmt.Fprintf(out, "\nPointer: y=%d (%s)\n", y, zone)
			return nil
		},
	}
}
