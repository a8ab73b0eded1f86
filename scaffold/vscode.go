package scaffold

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteVSCodeSettings writes .vscode/settings.json pointing the editor at the
// environment's interpreter and the configured linter. Unlike the template
// outputs, an existing settings file is overwritten: the interpreter path can
// change between runs.
func (m *Materializer) WriteVSCodeSettings(folder, linter, interpreter string) error {
	dir := filepath.Join(folder, ".vscode")

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create the .vscode folder: %w", err)
	}

	settings := map[string]any{
		"python.linting.enabled": true,
		"python.pythonPath":      interpreter,

		fmt.Sprintf("python.linting.%sEnabled", linter): true,
	}

	contents, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to serialize VSCode settings: %w", err)
	}

	if err = os.WriteFile(filepath.Join(dir, "settings.json"), contents, 0644); err != nil {
		return fmt.Errorf("failed to write VSCode settings: %w", err)
	}

	m.report("A `settings.json` file was created in `/.vscode`.")

	return nil
}
