package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Log file names encode the run start time, one file per run.
const logFileLayout = "2006_01_02_15_04_05"

type (
	// Dirs locates everything the program keeps under the user's home.
	Dirs struct {
		Program   string
		Templates string
		Logs      string
	}
)

// DefaultDirs roots the program directory at ~/.config/ghusk.
func DefaultDirs() (Dirs, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Dirs{}, fmt.Errorf("failed to locate user home directory: %w", err)
	}

	return NewDirs(filepath.Join(home, ".config", "ghusk")), nil
}

func NewDirs(program string) Dirs {
	return Dirs{
		Program:   program,
		Templates: filepath.Join(program, "templates"),
		Logs:      filepath.Join(program, "logs"),
	}
}

func (d Dirs) ConfigFile() string {
	return filepath.Join(d.Program, "config.json")
}

func (d Dirs) Licenses() string {
	return filepath.Join(d.Templates, "licenses")
}

func (d Dirs) DocsTemplates() string {
	return filepath.Join(d.Templates, "docs")
}

func (d Dirs) GitignoreTemplate() string {
	return filepath.Join(d.Templates, ".gitignore")
}

func (d Dirs) LogFile(ts time.Time) string {
	return filepath.Join(d.Logs, ts.Format(logFileLayout)+".log")
}
