// Package main is the entry point for the kinoteka command line client.
package main

import (
	"github.com/kinoteka-cli/kinoteka/cmd"
	"github.com/kinoteka-cli/kinoteka/config"
	"github.com/kinoteka-cli/kinoteka/internal/cache"
	"github.com/kinoteka-cli/kinoteka/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
