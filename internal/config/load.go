package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a component configuration file.
// The file is a mapping from component name to component definition.
// JSON is a subset of YAML, so both the traditional
// components_config.json and YAML configs parse with the same decoder.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var components map[string]Component
	if err := yaml.Unmarshal(data, &components); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg := &Config{Components: components}
	if cfg.Components == nil {
		cfg.Components = make(map[string]Component)
	}

	if errs := Validate(cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return cfg, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	for _, name := range cfg.Names() {
		comp := cfg.Components[name]
		prefix := fmt.Sprintf("component '%s'", name)

		if comp.SourceURL == "" {
			errs = append(errs, fmt.Sprintf("%s: 'source_url' is required", prefix))
		}
		if len(comp.Files) == 0 {
			errs = append(errs, fmt.Sprintf("%s: at least one file is required", prefix))
		}

		for i, f := range comp.Files {
			fprefix := fmt.Sprintf("%s file[%d]", prefix, i)
			if f.Source == "" {
				errs = append(errs, fmt.Sprintf("%s: 'source' is required", fprefix))
			}
			if f.Destination == "" {
				errs = append(errs, fmt.Sprintf("%s: 'destination' is required", fprefix))
				continue
			}
			if filepath.IsAbs(f.Destination) {
				errs = append(errs, fmt.Sprintf("%s: destination '%s' must be relative", fprefix, f.Destination))
			}
			if escapesComponentDir(f.Destination) {
				errs = append(errs, fmt.Sprintf("%s: destination '%s' escapes the component directory", fprefix, f.Destination))
			}
		}
	}

	return errs
}

// escapesComponentDir reports whether a cleaned destination path would
// resolve outside the component's own directory.
func escapesComponentDir(dest string) bool {
	clean := filepath.Clean(dest)
	return clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator))
}
