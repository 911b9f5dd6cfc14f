package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/kinoteka-cli/kinoteka/auth"
	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/icon"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the service session cookies in the system keyring",
	Long: `Store the service session cookies in the system keyring.
Copy the sessionid and csrftoken cookies from a browser that is signed in to the service.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var s auth.Session

		handleErr(survey.AskOne(&survey.Password{
			Message: auth.SessionCookie + " cookie:",
		}, &s.ID, survey.WithValidator(survey.Required)))

		handleErr(survey.AskOne(&survey.Input{
			Message: auth.CSRFCookie + " cookie:",
			Help:    "Needed for purchases, ratings and favorites",
		}, &s.CSRF))

		handleErr(auth.SetSession(s))
		fmt.Printf("%s logged in\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session from the system keyring",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteSession())
		fmt.Printf("%s logged out\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
