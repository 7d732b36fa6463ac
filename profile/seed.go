package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is one profile entry of a seed file.
type Seed struct {
	ReportRate uint16 `yaml:"report_rate"`
	DPI        uint16 `yaml:"dpi"`
}

type seedFile struct {
	Profiles []Seed `yaml:"profiles"`
}

// DefaultSeeds returns the built-in five-slot profile table.
func DefaultSeeds() []Seed {
	return []Seed{
		{ReportRate: 125, DPI: 800},
		{ReportRate: 250, DPI: 1600},
		{ReportRate: 500, DPI: 2400},
		{ReportRate: 1000, DPI: 3200},
		{ReportRate: 1000, DPI: 6000},
	}
}

// LoadSeeds reads a YAML seed file of the form:
//
//	profiles:
//	  - report_rate: 500
//	    dpi: 1600
func LoadSeeds(path string) ([]Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(f.Profiles) == 0 {
		return nil, fmt.Errorf("seed file %s: %w", path, ErrEmptyStore)
	}
	return f.Profiles, nil
}
