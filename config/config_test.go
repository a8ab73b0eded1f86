package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `{
    "username": "octocat",
    "python_version": "3.12",
    "linter": "pylint",
    "readme_content": {
        "Requirements": "Python 3.12 or above.",
        "Instructions": "Clone and run.",
        "Acknowledgements": "Thanks everyone."
    },
    "enable_gh_pages": true,
    "jekyll_config": {
        "theme": "jekyll-theme-cayman",
        "title": "my projects"
    }
}`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")

	err := os.WriteFile(path, []byte(contents), 0644)
	require.NoError(t, err)

	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))

	require.NoError(t, err)
	assert.Equal(t, "octocat", cfg.Username)
	assert.Equal(t, "3.12", cfg.PythonVersion)
	assert.Equal(t, "pylint", cfg.Linter)
	assert.True(t, cfg.EnableGHPages)
	assert.Equal(t, []string{"Requirements", "Instructions", "Acknowledgements"}, cfg.ReadmeContent.Keys())
	assert.Equal(t, []string{"theme", "title"}, cfg.JekyllConfig.Keys())
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"username": "octocat"}`))

	require.NoError(t, err)
	assert.Equal(t, "3", cfg.PythonVersion)
	assert.Equal(t, "pylint", cfg.Linter)
	assert.False(t, cfg.EnableGHPages)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("GHUSK_LINTER", "flake8")

	cfg, err := Load(writeConfig(t, sampleConfig))

	require.NoError(t, err)
	assert.Equal(t, "flake8", cfg.Linter)
}

func TestLoadMissingUsername(t *testing.T) {
	_, err := Load(writeConfig(t, `{"python_version": "3.12"}`))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Contains(t, err.Error(), "username")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "config.json"))

	require.Error(t, err)
}

func TestSectionsPreserveOrder(t *testing.T) {
	// Deliberately not alphabetical: map iteration would scramble this.
	raw := `{"z": "last?", "a": "first?", "m": "middle?"}`

	var sections Sections

	err := json.Unmarshal([]byte(raw), &sections)

	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, sections.Keys())
	assert.Equal(t, "last?", sections[0].Value)
}

func TestSectionsRoundTrip(t *testing.T) {
	sections := Sections{{Key: "b", Value: "two"}, {Key: "a", Value: "one"}}

	contents, err := json.Marshal(sections)
	require.NoError(t, err)

	var got Sections

	err = json.Unmarshal(contents, &got)
	require.NoError(t, err)

	assert.Equal(t, sections, got)
}

func TestSectionsRejectNonStringValues(t *testing.T) {
	var sections Sections

	err := json.Unmarshal([]byte(`{"a": 1}`), &sections)

	require.Error(t, err)
}

func TestDirs(t *testing.T) {
	dirs := NewDirs("/home/octocat/.config/ghusk")

	assert.Equal(t, "/home/octocat/.config/ghusk/config.json", dirs.ConfigFile())
	assert.Equal(t, "/home/octocat/.config/ghusk/templates/licenses", dirs.Licenses())
	assert.Equal(t, "/home/octocat/.config/ghusk/templates/.gitignore", dirs.GitignoreTemplate())

	ts := time.Date(2019, 8, 21, 8, 35, 59, 0, time.UTC)

	assert.Equal(t, "/home/octocat/.config/ghusk/logs/2019_08_21_08_35_59.log", dirs.LogFile(ts))
}
