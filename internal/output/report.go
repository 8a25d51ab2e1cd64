package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/retirement-optimizer/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes report to dir in the named format and returns the
// written paths. "all" writes the console report and the detailed CSV.
func GenerateReport(report *domain.Report, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, name := range []string{"console", "detailed-csv"} {
			path, err := WriteFormatted(GetFormatterByName(name), report, dir, extensions[name])
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	path, err := WriteFormatted(f, report, dir, extensions[f.Name()])
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// SaveConfiguration writes config as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return os.WriteFile(filename, b, 0644)
}
