package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/icon"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/kinoteka-cli/kinoteka/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var clearTargets = []pathTarget{
	cacheTarget,
	responsesTarget,
	historyTarget,
	queriesTarget,
	framesTarget,
	tempTarget,
}

func init() {
	rootCmd.AddCommand(clearCmd)

	bindPathFlags(clearCmd, clearTargets, func(t pathTarget) string {
		return "remove the " + t.name
	})
	clearCmd.Flags().BoolP("all", "a", false, "remove everything except the config")
}

// clearPath removes a target. Missing paths count as cleared.
func clearPath(t pathTarget) error {
	erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), t.name))
	err := util.Delete(t.location())
	erase()

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear %s: %w", t.name, err)
	}
	return nil
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached responses, history, player pages and other local state",
	Run: func(cmd *cobra.Command, args []string) {
		targets := selectedPaths(cmd, clearTargets)
		if lo.Must(cmd.Flags().GetBool("all")) {
			targets = clearTargets
		}

		if len(targets) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, t := range targets {
			handleErr(clearPath(t))
			fmt.Printf("%s %s cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)), util.Capitalize(t.name))
		}
	},
}
