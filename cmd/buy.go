package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/icon"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(buyCmd)

	buyCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var buyCmd = &cobra.Command{
	Use:   "buy <id or url>",
	Short: "Purchase a movie or series",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := interruptible()
		defer cancel()

		s := loadSession(ctx, newClient(), args[0])
		content := s.Content().MustGet()

		if !s.Controls().Buy {
			fmt.Printf("%s %s is already available\n", icon.Get(icon.Success), style.Bold(content.Title))
			return
		}

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			confirm := survey.Confirm{
				Message: fmt.Sprintf("Buy %s?", content.Title),
				Default: false,
			}
			var response bool
			handleErr(survey.AskOne(&confirm, &response))

			if !response {
				return
			}
		}

		handleErr(s.Buy(ctx))

		fmt.Printf(
			"%s purchased %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(content.Title),
		)
	},
}
