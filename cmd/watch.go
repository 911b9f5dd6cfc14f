package cmd

import (
	"errors"

	"github.com/kinoteka-cli/kinoteka/api"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().IntP("season", "s", 0, "Season number of the episode to play")
	watchCmd.Flags().IntP("episode", "e", 0, "Episode number to play")
	watchCmd.MarkFlagsRequiredTogether("season", "episode")
}

var watchCmd = &cobra.Command{
	Use:   "watch <id or url>",
	Short: "Play a movie or a series episode",
	Example: `  kinoteka watch 0b1c2d3e-4f5a-6b7c-8d9e-0f1a2b3c4d5e
  kinoteka watch https://kino.example.com/content/0b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e/ -s 1 -e 2`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		ctx, cancel := interruptible()
		defer cancel()

		s := loadSession(ctx, newClient(), args[0])

		content := s.Content().MustGet()
		season := lo.Must(cmd.Flags().GetInt("season"))
		episode := lo.Must(cmd.Flags().GetInt("episode"))

		switch content.Type {
		case api.Series:
			if season == 0 {
				handleErr(errors.New("series need --season and --episode"))
			}
			handleErr(s.PlayEpisode(ctx, season, episode))
		default:
			handleErr(s.PlayMovie(ctx))
		}

		waitPlayback(ctx, s)
	},
}
