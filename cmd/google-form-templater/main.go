// Command google-form-templater authorizes a google account with the oauth2
// authorization code flow and prints the account's user profile.
//
// The client registration is read from an INI file, by default
// ~/.config/google-form-templater.conf:
//
//	[auth]
//	email = you@gmail.com
//	password = your password
//
//	[client]
//	id = <the id you get from Google>.apps.googleusercontent.com
//	secret = <the secret you get from Google>
//	redirect_uri = https://your.registered/callback
//
// The client credentials come from a web application client created in the
// Google Developers Console.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-sharp/formtemplater/cli"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.DefaultConfig())
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
