package pipenv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ghusk/ghusk/subproc"
)

type fakeRunner struct {
	err    error
	output string
	calls  [][]string
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) (string, error) {
	call := append([]string{dir, name}, args...)

	f.calls = append(f.calls, call)

	return f.output, f.err
}

func TestCreateEnvironment(t *testing.T) {
	runner := &fakeRunner{}

	tool := New(runner, zap.NewNop())

	err := tool.CreateEnvironment(context.Background(), "/proj", "3.12")

	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"/proj", "pipenv", "--python", "3.12"}, runner.calls[0])
}

func TestCreateEnvironmentFailure(t *testing.T) {
	runner := &fakeRunner{err: &subproc.ExitError{Name: "pipenv", ExitCode: 1, Stderr: "no such interpreter"}}

	tool := New(runner, zap.NewNop())

	err := tool.CreateEnvironment(context.Background(), "/proj", "9.99")

	require.Error(t, err)

	var exitErr *subproc.ExitError

	assert.True(t, errors.As(err, &exitErr))
	assert.Contains(t, err.Error(), "no such interpreter")
}

func TestInstallLinter(t *testing.T) {
	runner := &fakeRunner{}

	tool := New(runner, zap.NewNop())

	err := tool.InstallLinter(context.Background(), "/proj", "pylint")

	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"/proj", "pipenv", "install", "pylint", "--dev"}, runner.calls[0])
}

func TestInterpreterPath(t *testing.T) {
	runner := &fakeRunner{output: "/home/u/.venvs/proj-x2/bin/python\n"}

	tool := New(runner, zap.NewNop())

	interpreter, err := tool.InterpreterPath(context.Background(), "/proj")

	require.NoError(t, err)
	assert.Equal(t, "/home/u/.venvs/proj-x2/bin/python", interpreter, "trailing newline must be trimmed")
	assert.Equal(t, []string{"/proj", "pipenv", "--py"}, runner.calls[0])
}

func TestVerifyDevPackage(t *testing.T) {
	folder := t.TempDir()

	pipfile := strings.Join([]string{
		`[[source]]`,
		`url = "https://pypi.org/simple"`,
		`name = "pypi"`,
		``,
		`[packages]`,
		``,
		`[dev-packages]`,
		`pylint = "*"`,
	}, "\n")

	err := os.WriteFile(filepath.Join(folder, "Pipfile"), []byte(pipfile), 0644)
	require.NoError(t, err)

	tool := New(&fakeRunner{}, zap.NewNop())

	found, err := tool.VerifyDevPackage(folder, "pylint")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = tool.VerifyDevPackage(folder, "flake8")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestVerifyDevPackageNoPipfile(t *testing.T) {
	tool := New(&fakeRunner{}, zap.NewNop())

	_, err := tool.VerifyDevPackage(t.TempDir(), "pylint")

	require.Error(t, err)
}
