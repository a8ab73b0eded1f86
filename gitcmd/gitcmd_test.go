package gitcmd

import (
	"context"
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

func TestInit(t *testing.T) {
	runner := &fakeRunner{output: "Initialised empty Git repository in /proj/.git/\n"}

	git := New(runner, "/proj", zap.NewNop())

	message, err := git.Init(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Initialised empty Git repository in /proj/.git/", message)
	assert.Equal(t, []string{"/proj", "git", "init"}, runner.calls[0])
}

func TestLocalCommitSequence(t *testing.T) {
	runner := &fakeRunner{}

	git := New(runner, "/proj", zap.NewNop())

	ctx := context.Background()

	_, err := git.Init(ctx)
	require.NoError(t, err)

	require.NoError(t, git.StageAll(ctx))
	require.NoError(t, git.Commit(ctx, "initial commit", "by `ghusk/0.1.0`"))
	require.NoError(t, git.AddOrigin(ctx, "https://github.com/octocat/deja-vu.git"))
	require.NoError(t, git.Push(ctx))

	expected := [][]string{
		{"/proj", "git", "init"},
		{"/proj", "git", "add", "-A"},
		{"/proj", "git", "commit", "-m", "initial commit", "-m", "by `ghusk/0.1.0`"},
		{"/proj", "git", "remote", "add", "origin", "https://github.com/octocat/deja-vu.git"},
		{"/proj", "git", "push", "-u", "origin", "master"},
	}

	assert.Equal(t, expected, runner.calls)
}

func TestCommitFailure(t *testing.T) {
	runner := &fakeRunner{err: &subproc.ExitError{Name: "git", ExitCode: 128, Stderr: "not a git repository"}}

	git := New(runner, "/proj", zap.NewNop())

	err := git.Commit(context.Background(), "initial commit", "body")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "git commit failed")
	assert.Contains(t, err.Error(), "not a git repository")
}
