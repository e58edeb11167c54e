package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"ladle/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Running:          %s\n", yesNo(resp.Running))
				fmt.Fprintf(out, "PID:              %d\n", resp.PID)
				fmt.Fprintf(out, "Database:         %s\n", resp.DatabasePath)
				fmt.Fprintf(out, "Lock file:        %s\n", resp.LockPath)
				fmt.Fprintf(out, "Socket:           %s\n", resp.SocketPath)
				fmt.Fprintf(out, "Active pipelines: %d\n", resp.ActivePipelines)
				if len(resp.RecipeStats) > 0 {
					fmt.Fprintln(out, "Recipes:")
					statuses := make([]string, 0, len(resp.RecipeStats))
					for status := range resp.RecipeStats {
						statuses = append(statuses, status)
					}
					sort.Strings(statuses)
					for _, status := range statuses {
						fmt.Fprintf(out, "  %-12s %d\n", status, resp.RecipeStats[status])
					}
				}
				return nil
			})
		},
	}
}

func newStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon's pipeline processing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.Stop(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Daemon stopped")
				return nil
			})
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
