// Command ghusk creates a new Python GitHub project: readme and template
// files, a pipenv virtual environment, VSCode settings, a local git
// repository and a public remote repository, optionally with GitHub Pages.
package main

import (
	"github.com/alecthomas/kong"

	"github.com/ghusk/ghusk/scaffold"
	"github.com/ghusk/ghusk/version"
)

func main() {
	var cli scaffold.Cmd

	ctx := kong.Parse(
		&cli,
		kong.Name(version.Program),
		kong.Description("Command-line program to create a new Python3 GitHub project in VSCode."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version.Program + " " + version.FromBuildInfo()},
	)

	err := cli.Run()
	ctx.FatalIfErrorf(err)
}
