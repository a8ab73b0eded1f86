// Command ghusk-token stores and deletes the OAuth tokens the main program
// uses, via the system credential manager.
package main

import (
	"errors"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/ghusk/ghusk/github"
	"github.com/ghusk/ghusk/prompt"
	"github.com/ghusk/ghusk/token"
	"github.com/ghusk/ghusk/version"
)

type CLI struct {
	Username string `arg:"" help:"GitHub username."`
	Delete   bool   `short:"d" help:"Delete a previously stored OAuth token."`

	Version kong.VersionFlag `short:"V" help:"Print version and quit."`
}

func (c *CLI) Run() error {
	store := token.NewStore(github.DefaultAPIURL, c.Username)

	if c.Delete {
		err := store.Delete()
		if errors.Is(err, token.ErrNotFound) {
			fmt.Printf("Error deleting OAuth token: no token was found for %s@%s.\n", c.Username, store.Service())

			return nil
		} else if err != nil {
			return err
		}

		fmt.Printf("OAuth token for %s@%s deleted.\n", c.Username, store.Service())

		return nil
	}

	secret, err := prompt.New().Secret("Please enter GitHub OAuth token")
	if err != nil {
		return err
	}

	if err = store.Set(secret); err != nil {
		return err
	}

	fmt.Printf("OAuth token for %s@%s stored.\n", c.Username, store.Service())

	return nil
}

func main() {
	var cli CLI

	ctx := kong.Parse(
		&cli,
		kong.Name("ghusk-token"),
		kong.Description("Store and delete OAuth tokens using the system credential manager."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": "ghusk-token " + version.FromBuildInfo()},
	)

	err := cli.Run()
	ctx.FatalIfErrorf(err)
}
