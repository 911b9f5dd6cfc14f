package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kinoteka-cli/kinoteka/api"
	"github.com/kinoteka-cli/kinoteka/auth"
	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/icon"
	"github.com/kinoteka-cli/kinoteka/session"
	"github.com/kinoteka-cli/kinoteka/style"
)

// consoleAlerter prints alerts to stderr.
var consoleAlerter = session.AlerterFunc(func(message string) {
	_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.Fg(color.Yellow)(icon.Get(icon.Mark)), message)
})

// interruptible returns a context cancelled on SIGINT or SIGTERM.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newClient() *api.Client {
	client, err := api.NewFromConfig()
	handleErr(err)
	return client
}

func authenticated() bool {
	_, err := auth.GetSession()
	return err == nil
}

// loadSession resolves input and loads its card. Degraded cards are reported as errors.
func loadSession(ctx context.Context, client *api.Client, input string) *session.Session {
	s := session.New(client, input, session.Options{
		Alerter:       consoleAlerter,
		Origin:        client.Origin(),
		Authenticated: authenticated(),
	})

	handleErr(s.Run(ctx))
	return s
}

// waitPlayback blocks until the native player exits or the process is interrupted.
// Embedded players live in the browser and are left running.
func waitPlayback(ctx context.Context, s *session.Session) {
	element, ok := s.Player().Current().Get()
	if !ok {
		return
	}

	if element.Kind().Embeddable() {
		fmt.Printf("%s Opened %s player in the browser\n", icon.Get(icon.Link), element.Kind())

		reported := make(chan struct{})
		go func() {
			s.Wait()
			close(reported)
		}()

		select {
		case <-reported:
		case <-ctx.Done():
		}
		return
	}

	fmt.Printf("%s Playing, press ctrl+c to stop\n", icon.Get(icon.Play))

	select {
	case <-element.Done():
	case <-ctx.Done():
		_ = s.Close()
	}

	s.Wait()
}
