// Package scaffold creates the local project files and orchestrates the full
// run from templates to the published remote repository.
package scaffold

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"

	"github.com/ghusk/ghusk/config"
	"github.com/ghusk/ghusk/project"
	"github.com/ghusk/ghusk/version"
)

type (
	// Materializer writes project files from the template directory.
	// Existing files are never overwritten silently: a conflict is reported
	// on the console, logged, and the step is skipped.
	Materializer struct {
		console     io.Writer
		logger      *zap.Logger
		templateDir string
	}

	readmeData struct {
		Name        string
		Description string
		Sections    config.Sections
		Signature   string
	}
)

var (
	ErrNoLicenseFolder = errors.New("license folder is absent from the template directory")

	readmeTemplate = template.Must(template.New("readme").Funcs(template.FuncMap{
		"Anchor": project.ValidateName,
		"Upper":  strings.ToUpper,
	}).Parse(`<h2 align='center'>{{ Upper .Name }}</h2>

<p align='center'>
  <i>{{ .Description }}</i>
</p>

#### Table of contents:
{{ range .Sections }}- [{{ .Key }}](#{{ Anchor .Key }})
{{ end }}{{ range .Sections }}
---

### {{ .Key }}
{{ .Value }}
{{ end }}
###### This file was generated by ` + "`{{ .Signature }}`" + `
`))
)

func NewMaterializer(templateDir string, console io.Writer, logger *zap.Logger) *Materializer {
	return &Materializer{templateDir: templateDir, console: console, logger: logger}
}

// AvailableLicenses lists the per-license subfolders of the template
// directory, sorted by name.
func (m *Materializer) AvailableLicenses() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(m.templateDir, "licenses"))
	if err != nil {
		return nil, fmt.Errorf("failed to list license templates: %w", err)
	}

	licenses := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			licenses = append(licenses, entry.Name())
		}
	}

	sort.Strings(licenses)

	return licenses, nil
}

// licenseFileName maps the public-domain release to its own file name; every
// other identifier uses the generic one.
func licenseFileName(license string) string {
	if strings.EqualFold(license, "UNLICENSE") {
		return "UNLICENSE"
	}

	return "LICENSE"
}

func (m *Materializer) report(msg string) {
	m.logger.Info(msg)
	_, _ = fmt.Fprintln(m.console, msg)
}

func (m *Materializer) conflict(name string) {
	msg := fmt.Sprintf("A `%s` file was found. Skipping step.", name)

	m.logger.Warn(msg)
	_, _ = fmt.Fprintln(m.console, msg)
}

// writeNew creates the file only if it does not exist yet.
// It reports (false, nil) on a conflict.
func writeNew(path string, contents []byte) (created bool, err error) {
	fd, err := os.OpenFile(filepath.Clean(path), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to create %q: %w", path, err)
	}

	defer func() { _ = fd.Close() }()

	if _, err = fd.Write(contents); err != nil {
		return false, fmt.Errorf("failed to write to %q: %w", path, err)
	}

	return true, nil
}

// BuildReadme renders readme.md from the configured content sections.
func (m *Materializer) BuildReadme(folder string, req project.Request, content config.Sections) error {
	sections := make(config.Sections, 0, len(content)+1)
	sections = append(sections, content...)
	sections = append(sections, config.Section{
		Key:   "License",
		Value: fmt.Sprintf("This project is under the %s license.\n", req.License),
	})

	var b strings.Builder

	data := readmeData{
		Name:        req.Name,
		Description: req.Description,
		Sections:    sections,
		Signature:   version.Signature(),
	}

	if err := readmeTemplate.Execute(&b, &data); err != nil {
		return fmt.Errorf("failed to render readme template: %w", err)
	}

	created, err := writeNew(filepath.Join(folder, "readme.md"), []byte(b.String()))
	if err != nil {
		return err
	}

	if !created {
		m.conflict("readme.md")

		return nil
	}

	m.report(fmt.Sprintf("A `readme.md` file was created in `%s`.", folder))

	return nil
}

// CopyTemplates copies the ignore file, the chosen license file and, when the
// pages feature is on, the documentation template tree.
func (m *Materializer) CopyTemplates(folder, license string, pages bool) error {
	if pages {
		if err := m.copyDocsTree(folder); err != nil {
			return err
		}
	}

	contents, err := os.ReadFile(filepath.Join(m.templateDir, ".gitignore"))
	if err != nil {
		return fmt.Errorf("failed to read the gitignore template: %w", err)
	}

	created, err := writeNew(filepath.Join(folder, ".gitignore"), contents)
	if err != nil {
		return err
	}

	if created {
		m.logger.Debug("gitignore file copied", zap.String("folder", folder))
	} else {
		m.conflict(".gitignore")
	}

	if err = m.copyLicense(folder, license); err != nil {
		return err
	}

	m.report(fmt.Sprintf("Template files were copied to `%s`.", folder))

	return nil
}

func (m *Materializer) copyLicense(folder, license string) error {
	fileName := licenseFileName(license)

	src := filepath.Join(m.templateDir, "licenses", license, fileName)

	contents, err := os.ReadFile(filepath.Clean(src))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrNoLicenseFolder, license)
	} else if err != nil {
		return fmt.Errorf("failed to read the %q license template: %w", license, err)
	}

	created, err := writeNew(filepath.Join(folder, fileName), contents)
	if err != nil {
		return err
	}

	if created {
		m.logger.Debug("license file copied", zap.String("license", license), zap.String("folder", folder))
	} else {
		m.conflict(fileName)
	}

	return nil
}

func (m *Materializer) copyDocsTree(folder string) error {
	src := filepath.Join(m.templateDir, "docs")
	dest := filepath.Join(folder, "docs")

	if _, err := os.Stat(dest); err == nil {
		m.logger.Debug("a `/docs` folder was found, skipping step")

		return nil
	}

	err := filepath.WalkDir(src, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dest, rel)

		if entry.IsDir() {
			return os.MkdirAll(target, 0750)
		}

		contents, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return err
		}

		return os.WriteFile(target, contents, 0644)
	})
	if err != nil {
		return fmt.Errorf("failed to copy the docs template tree: %w", err)
	}

	m.logger.Debug("docs template tree copied", zap.String("folder", folder))

	return nil
}

// BuildPages creates docs/index.md from the readme and writes the site
// configuration with the project description appended.
func (m *Materializer) BuildPages(folder, description string, jekyll config.Sections) error {
	readme, err := os.ReadFile(filepath.Clean(filepath.Join(folder, "readme.md")))
	if err != nil {
		return fmt.Errorf("failed to read readme.md for the pages index: %w", err)
	}

	if err = os.MkdirAll(filepath.Join(folder, "docs"), 0750); err != nil {
		return fmt.Errorf("failed to create the docs folder: %w", err)
	}

	created, err := writeNew(filepath.Join(folder, "docs", "index.md"), readme)
	if err != nil {
		return err
	}

	if created {
		m.report("An `index.md` file was created in `/docs`.")
	} else {
		m.conflict("docs/index.md")
	}

	site := make(yaml.MapSlice, 0, len(jekyll)+1)

	for _, section := range jekyll {
		site = append(site, yaml.MapItem{Key: section.Key, Value: section.Value})
	}

	site = append(site, yaml.MapItem{Key: "description", Value: description})

	contents, err := yaml.Marshal(site)
	if err != nil {
		return fmt.Errorf("failed to render _config.yml: %w", err)
	}

	created, err = writeNew(filepath.Join(folder, "docs", "_config.yml"), contents)
	if err != nil {
		return err
	}

	if created {
		m.report("A `_config.yml` file was created in `/docs`.")
	} else {
		m.conflict("docs/_config.yml")
	}

	return nil
}
