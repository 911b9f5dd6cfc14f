package cmd

import (
	"github.com/kinoteka-cli/kinoteka/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// pathTarget is an application path addressable by a flag of where or clear.
type pathTarget struct {
	name     string
	flag     string
	short    mo.Option[string]
	location func() string
	hidden   bool
}

var (
	configTarget    = pathTarget{"config directory", "config", mo.Some("c"), where.Config, false}
	logsTarget      = pathTarget{"logs", "logs", mo.Some("l"), where.Logs, false}
	historyTarget   = pathTarget{"history file", "history", mo.Some("s"), where.History, false}
	queriesTarget   = pathTarget{"search queries", "queries", mo.Some("q"), where.Queries, false}
	cacheTarget     = pathTarget{"cache directory", "cache", mo.None[string](), where.Cache, true}
	responsesTarget = pathTarget{"cached responses", "responses", mo.Some("r"), where.Responses, true}
	framesTarget    = pathTarget{"player pages", "frames", mo.Some("f"), where.Frames, true}
	tempTarget      = pathTarget{"temporary files", "temp", mo.Some("t"), where.Temp, true}
)

// bindPathFlags registers one bool flag per target.
func bindPathFlags(cmd *cobra.Command, targets []pathTarget, usage func(pathTarget) string) {
	for _, t := range targets {
		if short, ok := t.short.Get(); ok {
			cmd.Flags().BoolP(t.flag, short, false, usage(t))
		} else {
			cmd.Flags().Bool(t.flag, false, usage(t))
		}
	}
}

// selectedPaths returns the targets whose flag is set.
func selectedPaths(cmd *cobra.Command, targets []pathTarget) []pathTarget {
	return lo.Filter(targets, func(t pathTarget, _ int) bool {
		return lo.Must(cmd.Flags().GetBool(t.flag))
	})
}
