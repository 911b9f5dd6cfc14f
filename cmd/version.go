package cmd

import (
	"context"
	"encoding/json"
	"os"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/constant"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/kinoteka-cli/kinoteka/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type buildInfo struct {
	App      string `json:"app"`
	Version  string `json:"version"`
	Latest   string `json:"latest,omitempty"`
	Revision string `json:"revision"`
	BuiltAt  string `json:"built_at"`
	BuiltBy  string `json:"built_by"`
	OS       string `json:"os"`
	Arch     string `json:"arch"`
}

var versionTemplate = template.Must(template.New("version").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"bold":   style.Bold,
	"purple": style.Fg(color.Purple),
	"green":  style.Fg(color.Green),
}).Parse(`{{ purple "▇▇▇" }} {{ purple .App }}

  {{ faint "Version" }}      {{ bold .Version }}{{ if .Latest }} {{ green (print "(latest " .Latest ")") }}{{ end }}
  {{ faint "Revision" }}     {{ bold .Revision }}
  {{ faint "Built at" }}     {{ bold .BuiltAt }}
  {{ faint "Built by" }}     {{ bold .BuiltBy }}
  {{ faint "Platform" }}     {{ bold .OS }}/{{ bold .Arch }}
`))

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version number")
	versionCmd.Flags().BoolP("json", "j", false, "Print build metadata as JSON")
	versionCmd.Flags().BoolP("check", "c", false, "Look up the latest release")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		info := buildInfo{
			App:      constant.Kinoteka,
			Version:  constant.Version,
			Revision: constant.Revision,
			BuiltAt:  strings.TrimSpace(constant.BuiltAt),
			BuiltBy:  constant.BuiltBy,
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
		}

		if lo.Must(cmd.Flags().GetBool("check")) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			latest, err := version.Latest(ctx)
			cancel()
			handleErr(err)
			info.Latest = latest
		} else {
			defer version.Notify()
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(info))
			return
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), info))
	},
}
