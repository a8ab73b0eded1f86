// Package pipenv provisions the project's virtual environment by shelling out
// to the pipenv binary.
package pipenv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/ghusk/ghusk/subproc"
)

type (
	Tool struct {
		runner subproc.Runner
		logger *zap.Logger
	}

	// pipfile covers just the table the dev-package check needs.
	pipfile struct {
		DevPackages map[string]any `toml:"dev-packages"`
	}
)

func New(runner subproc.Runner, logger *zap.Logger) *Tool {
	return &Tool{runner: runner, logger: logger}
}

// CreateEnvironment builds a virtual environment pinned to the interpreter
// version. Any non-zero exit is fatal for the run.
func (t *Tool) CreateEnvironment(ctx context.Context, folder, pythonVersion string) error {
	output, err := t.runner.Run(ctx, folder, "pipenv", "--python", pythonVersion)
	if err != nil {
		return fmt.Errorf("failed to create the virtual environment: %w", err)
	}

	t.logger.Info("virtual environment created", zap.String("python_version", pythonVersion))
	t.logger.Debug("pipenv output", zap.String("output", output))

	return nil
}

// InstallLinter installs the configured linter as a dev package.
func (t *Tool) InstallLinter(ctx context.Context, folder, linter string) error {
	output, err := t.runner.Run(ctx, folder, "pipenv", "install", linter, "--dev")
	if err != nil {
		return fmt.Errorf("failed to install linter %q: %w", linter, err)
	}

	t.logger.Info("linter installed", zap.String("linter", linter))
	t.logger.Debug("pipenv output", zap.String("output", output))

	return nil
}

// InterpreterPath returns the interpreter's location inside the environment.
func (t *Tool) InterpreterPath(ctx context.Context, folder string) (string, error) {
	output, err := t.runner.Run(ctx, folder, "pipenv", "--py")
	if err != nil {
		return "", fmt.Errorf("failed to locate the virtual environment interpreter: %w", err)
	}

	interpreter := strings.TrimSpace(output)

	t.logger.Debug("interpreter path resolved", zap.String("interpreter", interpreter))

	return interpreter, nil
}

// VerifyDevPackage reports whether the Pipfile lists the package under
// [dev-packages]. Callers treat a miss as a warning, not a failure.
func (t *Tool) VerifyDevPackage(folder, name string) (bool, error) {
	contents, err := os.ReadFile(filepath.Clean(filepath.Join(folder, "Pipfile")))
	if err != nil {
		return false, fmt.Errorf("failed to read Pipfile: %w", err)
	}

	var pf pipfile

	if err = toml.Unmarshal(contents, &pf); err != nil {
		return false, fmt.Errorf("failed to parse Pipfile: %w", err)
	}

	_, found := pf.DevPackages[name]

	return found, nil
}
