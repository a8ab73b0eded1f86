// Package config loads the persisted user defaults for a run.
// Values come from a JSON file in the program's config directory and can be
// overridden by GHUSK_* environment variables.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	// UserConfig holds the per-user defaults loaded once per run.
	// It is read-only after Load returns.
	UserConfig struct {
		Username      string   `json:"username" env:"GHUSK_USERNAME"`
		PythonVersion string   `json:"python_version" env:"GHUSK_PYTHON_VERSION" env-default:"3"`
		Linter        string   `json:"linter" env:"GHUSK_LINTER" env-default:"pylint"`
		ReadmeContent Sections `json:"readme_content"`
		EnableGHPages bool     `json:"enable_gh_pages" env:"GHUSK_ENABLE_GH_PAGES"`
		JekyllConfig  Sections `json:"jekyll_config"`
	}

	// Section is one titled block of generated file content.
	Section struct {
		Key   string
		Value string
	}

	// Sections is a JSON object whose member order is preserved.
	// The rendered readme and _config.yml must follow the config file's order,
	// which a plain map would lose.
	Sections []Section
)

var ErrMissingField = errors.New("missing configuration field")

func (s *Sections) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sections must be a JSON object, got %v", tok)
	}

	out := make(Sections, 0, 4)

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}

		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("section key is not a string: %v", tok)
		}

		var value string

		if err = dec.Decode(&value); err != nil {
			return fmt.Errorf("section %q does not hold a string value: %w", key, err)
		}

		out = append(out, Section{Key: key, Value: value})
	}

	if _, err = dec.Token(); err != nil {
		return err
	}

	*s = out

	return nil
}

func (s Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, section := range s {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(section.Key)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(section.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Keys returns the section titles in file order.
func (s Sections) Keys() []string {
	keys := make([]string, len(s))

	for i := range s {
		keys[i] = s[i].Key
	}

	return keys
}

// Load reads the user config file and applies environment overrides.
// A non-nil error wraps [ErrMissingField] when a required value is absent.
func Load(path string) (*UserConfig, error) {
	cfg := UserConfig{}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	if cfg.Username == "" {
		return nil, fmt.Errorf("%w: username", ErrMissingField)
	}

	if cfg.PythonVersion == "" {
		return nil, fmt.Errorf("%w: python_version", ErrMissingField)
	}

	if cfg.Linter == "" {
		return nil, fmt.Errorf("%w: linter", ErrMissingField)
	}

	return &cfg, nil
}
