package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ladle/internal/ipc"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <url>",
		Short: "Submit a cooking video URL for recipe creation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Submit(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recipe %d accepted (%s)\n", resp.RecipeID, resp.Status)
				fmt.Fprintf(cmd.OutOrStdout(), "Follow it with `ladle progress %d`\n", resp.RecipeID)
				return nil
			})
		},
	}
}
