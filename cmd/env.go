package cmd

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/config"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/kinoteka-cli/kinoteka/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type envVar struct {
	Name  string `json:"name"`
	Key   string `json:"key,omitempty"`
	Value string `json:"value,omitempty"`
	Set   bool   `json:"set"`
}

// envVars lists every variable the application reads, sorted by name.
func envVars() []envVar {
	vars := lo.Map(config.EnvExposed, func(k string, _ int) envVar {
		field := config.Default[k]
		return envVar{Name: field.Env(), Key: k}
	})
	vars = append(vars, envVar{Name: where.EnvConfigPath})

	for i := range vars {
		vars[i].Value, vars[i].Set = os.LookupEnv(vars[i].Name)
	}

	sort.Slice(vars, func(i, j int) bool {
		return vars[i].Name < vars[j].Name
	})

	return vars
}

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only show variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only show variables that are not set")
	envCmd.Flags().BoolP("json", "j", false, "Print variables as JSON")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the environment variables that override configuration",
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		vars := lo.Filter(envVars(), func(v envVar, _ int) bool {
			return !(setOnly && !v.Set) && !(unsetOnly && v.Set)
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(vars))
			return
		}

		for _, v := range vars {
			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(v.Name))
			cmd.Print("=")

			if v.Set {
				cmd.Println(style.Fg(color.Green)(v.Value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"))
			}
		}
	},
}
