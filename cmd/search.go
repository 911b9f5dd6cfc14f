package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/icon"
	"github.com/kinoteka-cli/kinoteka/log"
	"github.com/kinoteka-cli/kinoteka/query"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("type", "t", "", "Restrict results to movie or series")
	searchCmd.Flags().BoolP("json", "j", false, "Print results as JSON")
	lo.Must0(searchCmd.RegisterFlagCompletionFunc("type", completionContentTypes))
	searchCmd.SetOut(os.Stdout)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies and series by title or description",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := parseContentType(lo.Must(cmd.Flags().GetString("type")))
		handleErr(err)

		ctx, cancel := interruptible()
		defer cancel()

		q := strings.Join(args, " ")
		results, err := newClient().Search(ctx, q, kind)
		handleErr(err)

		if err := query.Remember(q, 1); err != nil {
			log.Warnf("remember query: %s", err)
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(results))
			return
		}

		if len(results) == 0 {
			cmd.Printf("%s nothing found for %s\n", icon.Get(icon.Fail), style.Bold(q))
			return
		}

		for _, r := range results {
			cmd.Printf(
				"%s %s %s\n  %s\n",
				style.Fg(color.Purple)(r.Title),
				style.Faint(fmt.Sprintf("(%s, %d)", r.Type, r.ReleaseYear)),
				style.Fg(color.Yellow)(fmt.Sprintf("%s %.1f", icon.Get(icon.Star), r.AvgRating)),
				style.Faint(r.ID),
			)
		}
	},
}
