// Package cmd implements the kinoteka command line.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/kinoteka-cli/kinoteka/api"
	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/constant"
	"github.com/kinoteka-cli/kinoteka/icon"
	"github.com/kinoteka-cli/kinoteka/key"
	"github.com/kinoteka-cli/kinoteka/log"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/kinoteka-cli/kinoteka/tui"
	"github.com/kinoteka-cli/kinoteka/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the icon variant (emoji, nerd, plain, kaomoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Mirror reported progress to the local watch history")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnWatch, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().StringP("server", "U", "", "Streaming service base URL")
	lo.Must0(viper.BindPFlag(key.ServerURL, rootCmd.PersistentFlags().Lookup("server")))

	rootCmd.Flags().BoolP("continue", "c", false, "Start from the watch history")
	rootCmd.Flags().StringP("type", "t", "", "Restrict search results to movie or series")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("type", completionContentTypes))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

var rootCmd = &cobra.Command{
	Use:   constant.Kinoteka + " [id or url]",
	Short: "Browse, watch and rate movies and series from the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Browse, watch and rate movies and series from the terminal"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		kind, err := parseContentType(lo.Must(cmd.Flags().GetString("type")))
		handleErr(err)

		options := tui.Options{
			Input:    strings.Join(args, ""),
			Continue: lo.Must(cmd.Flags().GetBool("continue")),
			Kind:     kind,
		}
		handleErr(tui.Run(&options))
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

func parseContentType(s string) (api.ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case string(api.Movie), "movies", "film":
		return api.Movie, nil
	case string(api.Series), "show", "tv":
		return api.Series, nil
	default:
		return "", fmt.Errorf("unknown content type %q, expected %s or %s", s, api.Movie, api.Series)
	}
}

func completionContentTypes(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{string(api.Movie), string(api.Series)}, cobra.ShellCompDirectiveNoFileComp
}
