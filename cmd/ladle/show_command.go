package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ladle/internal/ipc"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var withCaptions bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recipe with its generated content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid recipe id %q", args[0])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Describe(id)
				if err != nil {
					return err
				}
				if jsonOutput {
					encoded, err := json.MarshalIndent(resp.View, "", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
					return nil
				}
				renderRecipeView(cmd, &resp.View, withCaptions)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the raw recipe view as JSON")
	cmd.Flags().BoolVar(&withCaptions, "captions", false, "Include the caption transcript")
	return cmd
}

func renderRecipeView(cmd *cobra.Command, view *ipc.RecipeView, withCaptions bool) {
	out := cmd.OutOrStdout()

	title := view.Recipe.SourceURL
	if view.Meta != nil && view.Meta.Title != "" {
		title = view.Meta.Title
	}
	fmt.Fprintf(out, "Recipe %d: %s [%s]\n", view.Recipe.ID, title, view.Recipe.Status)
	if view.Meta != nil {
		fmt.Fprintf(out, "  Channel:  %s\n", view.Meta.ChannelID)
		fmt.Fprintf(out, "  Duration: %s\n", formatDuration(view.Meta.DurationSeconds))
	}
	fmt.Fprintf(out, "  Source:   %s\n", view.Recipe.SourceURL)
	fmt.Fprintf(out, "  Views:    %d\n", view.Recipe.ViewCount)

	if len(view.Briefing) > 0 {
		fmt.Fprintln(out, "\nBriefing:")
		for _, line := range view.Briefing {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}

	if view.Detail != nil {
		fmt.Fprintln(out, "\nDetail:")
		fmt.Fprintf(out, "  %s\n", view.Detail.Description)
		fmt.Fprintf(out, "  Servings: %d, cook time: %d min\n", view.Detail.Servings, view.Detail.CookTimeMinutes)
	}
	if len(view.Tags) > 0 {
		fmt.Fprintf(out, "  Tags: %s\n", strings.Join(view.Tags, ", "))
	}

	if len(view.Ingredients) > 0 {
		rows := make([][]string, 0, len(view.Ingredients))
		for _, ingredient := range view.Ingredients {
			rows = append(rows, []string{ingredient.Name, ingredient.Amount})
		}
		fmt.Fprintln(out, "\nIngredients:")
		fmt.Fprintln(out, renderTable([]column{{title: "Name"}, {title: "Amount"}}, rows))
	}

	if len(view.Steps) > 0 {
		fmt.Fprintln(out, "\nSteps:")
		for i, step := range view.Steps {
			fmt.Fprintf(out, "  %d. %s (at %s)\n", i+1, step.Subtitle, formatDuration(int64(step.StartSec)))
			for _, description := range step.Descriptions {
				fmt.Fprintf(out, "     %s\n", description)
			}
		}
	}

	if withCaptions && len(view.Captions) > 0 {
		fmt.Fprintln(out, "\nCaptions:")
		for _, caption := range view.Captions {
			fmt.Fprintf(out, "  [%s] %s\n", formatDuration(int64(caption.StartSec)), caption.Text)
		}
	}
}

func formatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := seconds / 60
	if minutes >= 60 {
		return fmt.Sprintf("%d:%02d:%02d", minutes/60, minutes%60, seconds%60)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds%60)
}
