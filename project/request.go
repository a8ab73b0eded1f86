// Package project resolves the per-run project identity: folder, repository
// name, description and license. CLI flags win; anything missing is asked
// interactively.
package project

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

type (
	// Request is the resolved project identity, immutable after Resolve.
	Request struct {
		Folder      string
		Name        string
		Description string
		License     string
	}

	// Flags carries the raw CLI values; empty means "not provided".
	Flags struct {
		Folder      string
		Name        string
		Description string
		License     string
	}

	// Asker prompts the user for a value. Implementations re-prompt until
	// validate accepts the input.
	Asker interface {
		Ask(label string, validate func(string) (string, error)) (string, error)
		Secret(label string) (string, error)
		Confirm(label string) (bool, error)
	}

	Resolver struct {
		asker    Asker
		logger   *zap.Logger
		licenses []string
	}
)

var (
	ErrEmptyName      = errors.New("repository name can't be empty")
	ErrUnknownLicense = errors.New("license is not available")
	ErrNoSuchFolder   = errors.New("project folder doesn't exist")
)

func NewResolver(asker Asker, licenses []string, logger *zap.Logger) *Resolver {
	return &Resolver{asker: asker, licenses: licenses, logger: logger}
}

// Resolve produces a fully populated Request or fails with a validation error
// naming the offending field.
func (r *Resolver) Resolve(flags Flags) (req Request, err error) {
	if req.Folder, err = r.folder(flags.Folder); err != nil {
		return req, err
	}

	if req.Name, err = r.name(flags.Name); err != nil {
		return req, err
	}

	if req.Description, err = r.description(flags.Description); err != nil {
		return req, err
	}

	if req.License, err = r.license(flags.License); err != nil {
		return req, err
	}

	return req, nil
}

// folder defaults to the current directory and must already exist.
func (r *Resolver) folder(flag string) (folder string, err error) {
	folder = flag

	if folder == "" {
		if folder, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("failed to get current working directory: %w", err)
		}
	}

	info, err := os.Stat(folder)
	if os.IsNotExist(err) || (err == nil && !info.IsDir()) {
		return "", fmt.Errorf("%w: %q", ErrNoSuchFolder, folder)
	} else if err != nil {
		return "", fmt.Errorf("failed to inspect project folder %q: %w", folder, err)
	}

	r.logger.Info("local project directory resolved", zap.String("folder", folder))

	return folder, nil
}

func (r *Resolver) name(flag string) (name string, err error) {
	if flag != "" {
		if name = ValidateName(flag); name == "" {
			return "", ErrEmptyName
		}
	} else {
		name, err = r.asker.Ask("Repository name (keep it short)", func(raw string) (string, error) {
			if valid := ValidateName(raw); valid != "" {
				return valid, nil
			}

			return "", ErrEmptyName
		})
		if err != nil {
			return "", err
		}
	}

	r.logger.Info("repository name resolved", zap.String("name", name))

	return name, nil
}

func (r *Resolver) description(flag string) (description string, err error) {
	description = flag

	if description == "" {
		// Descriptions are optional, any input passes.
		description, err = r.asker.Ask("Repository description (optional)", func(raw string) (string, error) {
			return raw, nil
		})
		if err != nil {
			return "", err
		}
	}

	r.logger.Info("repository description resolved", zap.String("description", description))

	return description, nil
}

func (r *Resolver) license(flag string) (license string, err error) {
	if flag != "" {
		if !r.available(flag) {
			return "", fmt.Errorf("%w: %q (available: %s)", ErrUnknownLicense, flag, joinLicenses(r.licenses))
		}

		license = flag
	} else {
		label := fmt.Sprintf("License for the project (available: %s)", joinLicenses(r.licenses))

		license, err = r.asker.Ask(label, func(raw string) (string, error) {
			if r.available(raw) {
				return raw, nil
			}

			return "", fmt.Errorf("%w: %q", ErrUnknownLicense, raw)
		})
		if err != nil {
			return "", err
		}
	}

	r.logger.Info("project license resolved", zap.String("license", license))

	return license, nil
}

func (r *Resolver) available(license string) bool {
	for _, name := range r.licenses {
		if name == license {
			return true
		}
	}

	return false
}

func joinLicenses(licenses []string) string {
	out := ""

	for i, name := range licenses {
		if i > 0 {
			out += ", "
		}

		out += name
	}

	return out
}

// EmptyFolder reports whether the folder has no entries at all.
func EmptyFolder(folder string) (bool, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return false, fmt.Errorf("failed to list project folder %q: %w", folder, err)
	}

	return len(entries) == 0, nil
}
