package cmd

import (
	"os"

	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/kinoteka-cli/kinoteka/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var whereTargets = []pathTarget{
	configTarget,
	logsTarget,
	historyTarget,
	queriesTarget,
	cacheTarget,
	responsesTarget,
	framesTarget,
	tempTarget,
}

func init() {
	rootCmd.AddCommand(whereCmd)

	bindPathFlags(whereCmd, whereTargets, func(t pathTarget) string {
		return "print the " + t.name + " path"
	})
	for _, t := range whereTargets {
		if t.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(t.flag))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(whereTargets, func(t pathTarget, _ int) string {
		return t.flag
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration, logs, history and caches are stored",
	Run: func(cmd *cobra.Command, args []string) {
		if selected := selectedPaths(cmd, whereTargets); len(selected) > 0 {
			cmd.Println(selected[0].location())
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Reject(whereTargets, func(t pathTarget, _ int) bool {
			return t.hidden
		})

		for i, t := range visible {
			cmd.Printf("%s %s\n", header(util.Capitalize(t.name)), style.Fg(color.Yellow)("--"+t.flag))
			cmd.Println(t.location())

			if i < len(visible)-1 {
				cmd.Println()
			}
		}
	},
}
