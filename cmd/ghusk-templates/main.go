// Command ghusk-templates builds the local template tree the main program
// copies from: the Python gitignore template and the commonly used license
// files, all fetched from the GitHub API.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/ghusk/ghusk/config"
	"github.com/ghusk/ghusk/github"
	"github.com/ghusk/ghusk/version"
)

type CLI struct {
	Gitignore string `name:"gitignore" default:"Python" help:"Name of the gitignore template to fetch."`

	Version kong.VersionFlag `short:"V" help:"Print version and quit."`
}

func (c *CLI) Run() error {
	dirs, err := config.DefaultDirs()
	if err != nil {
		return err
	}

	if err = createProgramDirectories(dirs); err != nil {
		return err
	}

	ctx := context.Background()

	client := github.NewAnonymousClient(github.DefaultAPIURL, zap.NewNop())

	if err = writeGitignore(ctx, client, dirs, c.Gitignore); err != nil {
		return err
	}

	licenses, err := client.Licenses(ctx)
	if err != nil {
		return err
	}

	for _, license := range licenses {
		if err = writeLicense(ctx, client, dirs, license); err != nil {
			return err
		}
	}

	fmt.Println("\nTemplate files created.")
	fmt.Printf("Please remember to edit and move `config.json` to `%s`.\n", dirs.Program)

	return nil
}

func createProgramDirectories(dirs config.Dirs) error {
	for _, dir := range []string{dirs.DocsTemplates(), dirs.Licenses(), dirs.Logs} {
		if _, err := os.Stat(dir); err == nil {
			fmt.Printf("Directory `%s` already exists. Skipping step.\n", dir)

			continue
		}

		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}

		fmt.Printf("Directory `%s` created.\n", dir)
	}

	return nil
}

func writeGitignore(ctx context.Context, client *github.Client, dirs config.Dirs, name string) error {
	path := dirs.GitignoreTemplate()

	if _, err := os.Stat(path); err == nil {
		fmt.Println("\nA `.gitignore` file already exists. Skipping step.")

		return nil
	}

	contents, err := client.GitignoreTemplate(ctx, name)
	if err != nil {
		return err
	}

	if err = os.WriteFile(path, []byte(contents), 0644); err != nil {
		return fmt.Errorf("failed to write the gitignore template: %w", err)
	}

	fmt.Println("\n`.gitignore` file created.")

	return nil
}

func writeLicense(ctx context.Context, client *github.Client, dirs config.Dirs, license github.License) error {
	fileName := "LICENSE"
	if license.SPDXID == "Unlicense" || license.SPDXID == "UNLICENSE" {
		fileName = "UNLICENSE"
	}

	dir := filepath.Join(dirs.Licenses(), license.SPDXID)
	path := filepath.Join(dir, fileName)

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("`%s` license file already exists. Skipping step.\n", license.SPDXID)

		return nil
	}

	body, err := client.LicenseBody(ctx, license.URL)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	if err = os.WriteFile(path, []byte(body), 0644); err != nil {
		return fmt.Errorf("failed to write the %q license file: %w", license.SPDXID, err)
	}

	fmt.Printf("`%s` license file created.\n", license.SPDXID)

	return nil
}

func main() {
	var cli CLI

	ctx := kong.Parse(
		&cli,
		kong.Name("ghusk-templates"),
		kong.Description("Create the template files used by ghusk."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": "ghusk-templates " + version.FromBuildInfo()},
	)

	err := cli.Run()
	ctx.FatalIfErrorf(err)
}
