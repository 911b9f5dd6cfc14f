package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/kinoteka-cli/kinoteka/api"
	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/icon"
	"github.com/kinoteka-cli/kinoteka/session"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/kinoteka-cli/kinoteka/util"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// infoOutput is the --json shape of the info command.
type infoOutput struct {
	Content  api.ContentRef `json:"content"`
	Eligible bool           `json:"eligible"`
	Controls []string       `json:"controls" jsonschema:"enum=watch,enum=seasons,enum=buy,enum=trailer,enum=rating,enum=favorite"`
	Seasons  api.SeasonTree `json:"seasons,omitempty"`
}

func controlNames(c session.Controls) []string {
	names := []string{}
	for _, control := range []lo.Tuple2[string, bool]{
		{A: "watch", B: c.Watch},
		{A: "seasons", B: c.SeriesPanel},
		{A: "buy", B: c.Buy},
		{A: "trailer", B: c.Trailer},
		{A: "rating", B: c.Rating},
		{A: "favorite", B: c.Favorite},
	} {
		if control.B {
			names = append(names, control.A)
		}
	}
	return names
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolP("json", "j", false, "Print the card as JSON")
	infoCmd.Flags().Bool("schema", false, "Print the JSON schema of the --json output")
	infoCmd.SetOut(os.Stdout)
}

var infoCmd = &cobra.Command{
	Use:   "info <id or url>",
	Short: "Show a content card: metadata, eligibility and available controls",
	Args: func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			reflector := new(jsonschema.Reflector)
			reflector.Anonymous = true
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(reflector.Reflect(&infoOutput{})))
			return
		}

		ctx, cancel := interruptible()
		defer cancel()

		s := loadSession(ctx, newClient(), args[0])
		content := s.Content().MustGet()

		output := infoOutput{
			Content:  content,
			Eligible: s.Eligible(),
			Controls: controlNames(s.Controls()),
			Seasons:  s.Seasons(),
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(output))
			return
		}

		printCard(cmd, output)
	},
}

func printCard(cmd *cobra.Command, output infoOutput) {
	content := output.Content
	faint := style.Faint

	cmd.Println(style.Title(content.Title))
	cmd.Println()

	meta := []string{string(content.Type)}
	if content.ReleaseYear > 0 {
		meta = append(meta, fmt.Sprint(content.ReleaseYear))
	}
	meta = append(meta, style.Fg(color.Yellow)(fmt.Sprintf("%s %.1f", icon.Get(icon.Star), content.AvgRating)))
	if content.IsFree {
		meta = append(meta, style.Fg(color.Green)("free"))
	}
	cmd.Println(strings.Join(meta, " • "))

	if content.Description != "" {
		cmd.Println()
		cmd.Println(wordwrap.String(content.Description, 80))
	}

	cmd.Println()
	if output.Eligible {
		cmd.Printf("%s %s\n", icon.Get(icon.Success), "Available to watch")
	} else {
		cmd.Printf("%s %s\n", icon.Get(icon.Lock), session.MsgPurchaseRequired)
	}

	for _, season := range output.Seasons {
		cmd.Printf("  %s %s\n", style.Bold(season.Label), faint("("+util.Quantify(len(season.Episodes), "episode", "episodes")+")"))
	}

	if content.HasTrailer() {
		cmd.Printf("%s %s\n", faint("trailer"), content.TrailerURL)
	}

	cmd.Printf("%s %s\n", faint("controls"), strings.Join(output.Controls, ", "))
}
