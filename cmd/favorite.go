package cmd

import (
	"fmt"

	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/favorite"
	"github.com/kinoteka-cli/kinoteka/icon"
	"github.com/kinoteka-cli/kinoteka/session"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(favoriteCmd)

	favoriteCmd.Flags().Bool("status", false, "Only print whether the content is a favorite")
}

var favoriteCmd = &cobra.Command{
	Use:     "favorite <id or url>",
	Short:   "Toggle a movie or series in favorites",
	Aliases: []string{"fav"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := session.ResolveID(args[0])
		handleErr(err)

		ctx, cancel := interruptible()
		defer cancel()

		toggle := favorite.New(id, newClient(), consoleAlerter)
		toggle.Load(ctx)

		if !lo.Must(cmd.Flags().GetBool("status")) {
			handleErr(toggle.Click(ctx))
		}

		if toggle.Favorite() {
			fmt.Printf("%s in favorites\n", style.Fg(color.Red)(icon.Get(icon.Heart)))
		} else {
			fmt.Printf("%s not in favorites\n", style.Faint(icon.Get(icon.Heart)))
		}
	},
}
