// Package gitcmd drives the local repository through the git binary.
package gitcmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ghusk/ghusk/subproc"
)

type (
	Git struct {
		runner subproc.Runner
		logger *zap.Logger
		folder string
	}
)

func New(runner subproc.Runner, folder string, logger *zap.Logger) *Git {
	return &Git{runner: runner, folder: folder, logger: logger}
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	output, err := g.runner.Run(ctx, g.folder, "git", args...)
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}

	return output, nil
}

// Init initialises the local repository and returns git's own message.
func (g *Git) Init(ctx context.Context) (string, error) {
	output, err := g.run(ctx, "init")
	if err != nil {
		return "", err
	}

	message := strings.TrimSpace(output)

	g.logger.Info(message)

	return message, nil
}

// StageAll adds every file not excluded by .gitignore to the stage area.
func (g *Git) StageAll(ctx context.Context) error {
	if _, err := g.run(ctx, "add", "-A"); err != nil {
		return err
	}

	g.logger.Info("all not ignored files in project directory have been staged")

	return nil
}

// Commit records the staged files with a subject and body.
func (g *Git) Commit(ctx context.Context, subject, body string) error {
	output, err := g.run(ctx, "commit", "-m", subject, "-m", body)
	if err != nil {
		return err
	}

	g.logger.Info("local commit completed")
	g.logger.Debug("local commit output", zap.String("output", output))

	return nil
}

// AddOrigin points the origin remote at the given URL.
func (g *Git) AddOrigin(ctx context.Context, remoteURL string) error {
	if _, err := g.run(ctx, "remote", "add", "origin", remoteURL); err != nil {
		return err
	}

	g.logger.Info("remote repository added", zap.String("url", remoteURL))

	return nil
}

// Push uploads the local history to origin and sets the upstream branch.
func (g *Git) Push(ctx context.Context) error {
	output, err := g.run(ctx, "push", "-u", "origin", "master")
	if err != nil {
		return err
	}

	g.logger.Info("push to remote repository completed")
	g.logger.Debug("push output", zap.String("output", output))

	return nil
}
