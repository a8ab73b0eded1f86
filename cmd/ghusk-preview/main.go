// Command ghusk-preview converts a project's readme.md to GitHub style HTML
// and displays it in the default browser.
package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/alecthomas/kong"
	"github.com/pkg/browser"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/ghusk/ghusk/version"
)

//go:embed github_style.html.tmplt
var pageTemplate string

type CLI struct {
	Folder string `arg:"" optional:"" help:"Project folder holding readme.md (current directory by default)."`

	Version kong.VersionFlag `short:"V" help:"Print version and quit."`
}

func (c *CLI) Run() (err error) {
	folder := c.Folder

	if folder == "" {
		if folder, err = os.Getwd(); err != nil {
			return fmt.Errorf("failed to get current working directory: %w", err)
		}
	}

	path := filepath.Clean(filepath.Join(folder, "readme.md"))

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", path, err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)

	var html bytes.Buffer

	if err = md.Convert(source, &html); err != nil {
		return fmt.Errorf("failed to convert readme.md to HTML: %w", err)
	}

	tmplt, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse page template: %w", err)
	}

	var page bytes.Buffer

	if err = tmplt.Execute(&page, html.String()); err != nil {
		return fmt.Errorf("failed to insert converted HTML into template: %w", err)
	}

	if err = browser.OpenReader(&page); err != nil {
		return fmt.Errorf("failed to open rendered HTML in default browser: %w", err)
	}

	return nil
}

func main() {
	var cli CLI

	ctx := kong.Parse(
		&cli,
		kong.Name("ghusk-preview"),
		kong.Description("Preview a project readme as GitHub style HTML in the default browser."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": "ghusk-preview " + version.FromBuildInfo()},
	)

	err := cli.Run()
	ctx.FatalIfErrorf(err)
}
