package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ladle/internal/ipc"
	"ladle/internal/recipe"
)

func newProgressCommand(ctx *commandContext) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "progress <id>",
		Short: "Show a recipe's progress log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid recipe id %q", args[0])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				printed := 0
				for {
					resp, err := client.Progress(id)
					if err != nil {
						return err
					}
					for _, entry := range resp.Entries[printed:] {
						fmt.Fprintf(cmd.OutOrStdout(), "%-22s %-10s %-12s %s\n",
							entry.CreatedAt, entry.Step, entry.Detail, entry.State)
					}
					printed = len(resp.Entries)
					if !follow || settled(resp.Entries) {
						return nil
					}
					time.Sleep(500 * time.Millisecond)
				}
			})
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Poll until the pipeline settles")
	return cmd
}

// settled reports whether the log shows the pipeline is done: either the
// terminal FINISHED marker or any failed stage.
func settled(entries []ipc.ProgressEntry) bool {
	for _, entry := range entries {
		if entry.Step == string(recipe.StepFinished) || entry.State == string(recipe.StateFailed) {
			return true
		}
	}
	return false
}
