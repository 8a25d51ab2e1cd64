package output

import (
	"github.com/rpgo/retirement-optimizer/internal/calculation"
	"github.com/rpgo/retirement-optimizer/internal/domain"
)

// DefaultAssumptions lists the modelling rules rendered when a report carries none.
var DefaultAssumptions = calculation.ModelAssumptions(nil)

// GenerateAssumptions creates the assumptions list for a configuration
func GenerateAssumptions(config *domain.Configuration) []string {
	if config == nil {
		return DefaultAssumptions
	}
	lines := calculation.ModelAssumptions(&config.Assumptions)
	if config.Assumptions.DataPath != "" {
		lines = append(lines, "Rate files are read relative to "+config.Assumptions.DataPath)
	}
	return lines
}
