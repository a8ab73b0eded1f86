// Manual smoke test for the interactive prompts. Run it on a real terminal
// and eyeball the resolved request.
package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/ghusk/ghusk/project"
	"github.com/ghusk/ghusk/prompt"
)

func main() {
	licenses := []string{"GPL-3.0", "MIT", "UNLICENSE"}

	resolver := project.NewResolver(prompt.New(), licenses, zap.NewNop())

	req, err := resolver.Resolve(project.Flags{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	spew.Dump(req)

	approved, err := prompt.New().Confirm("Is this info correct?")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	spew.Dump(approved)
}
