package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/history"
	"github.com/kinoteka-cli/kinoteka/icon"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolP("json", "j", false, "Print the history as JSON")
	historyCmd.Flags().IntP("limit", "n", 0, "Show at most this many entries")
	historyCmd.SetOut(os.Stdout)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the local watch history, most recent first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		records, err := history.List()
		handleErr(err)

		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && len(records) > limit {
			records = records[:limit]
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(records))
			return
		}

		if len(records) == 0 {
			cmd.Println(style.Faint("history is empty"))
			return
		}

		for _, r := range records {
			mark := style.Faint(icon.Get(icon.Play))
			if r.Completed {
				mark = style.Fg(color.Green)(icon.Get(icon.Success))
			}

			cmd.Printf("%s %s %s\n", mark, r.String(), style.Faint(fmt.Sprintf("%s  %s", r.UpdatedAt.Format("2006-01-02 15:04"), r.ContentID)))
		}
	},
}
