package cmd

import (
	"fmt"
	"strconv"

	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/icon"
	"github.com/kinoteka-cli/kinoteka/rating"
	"github.com/kinoteka-cli/kinoteka/session"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rateCmd)
}

var rateCmd = &cobra.Command{
	Use:   "rate <id or url> <1-5>",
	Short: "Rate a movie or series",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		value, err := strconv.Atoi(args[1])
		if err != nil || value < 1 || value > 5 {
			handleErr(fmt.Errorf("rating must be a whole number from 1 to 5, got %q", args[1]))
		}

		id, err := session.ResolveID(args[0])
		handleErr(err)

		ctx, cancel := interruptible()
		defer cancel()

		w := rating.New(id, newClient(), 0, consoleAlerter, nil)
		handleErr(w.Click(ctx, value*2))

		fmt.Printf(
			"%s rated %s, average is now %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Yellow)(fmt.Sprintf("%d", value)),
			style.Fg(color.Yellow)(w.Label()),
		)
	},
}
