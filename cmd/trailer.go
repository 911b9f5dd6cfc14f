package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(trailerCmd)
}

var trailerCmd = &cobra.Command{
	Use:   "trailer <id or url>",
	Short: "Play the trailer of a movie or series",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := interruptible()
		defer cancel()

		s := loadSession(ctx, newClient(), args[0])
		handleErr(s.PlayTrailer(ctx))

		element, ok := s.Trailer().Current().Get()
		if !ok {
			return
		}

		if element.Kind().Embeddable() {
			cmd.Printf("Opened %s trailer in the browser\n", element.Kind())
			return
		}

		select {
		case <-element.Done():
		case <-ctx.Done():
			_ = s.Close()
		}
	},
}
