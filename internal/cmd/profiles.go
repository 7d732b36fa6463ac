package cmd

import (
	"log/slog"
	"os"

	toml "github.com/pelletier/go-toml"

	"github.com/g502-hero/g502d/profile"
)

// Profiles prints the resolved profile table as TOML, after running it
// through the same validation the daemon applies.
type Profiles struct {
	ProfileSeeds string `help:"Path to a YAML profile seed file" type:"path" env:"G502D_PROFILE_SEEDS"`
}

type profileTable struct {
	Profile []profileEntry `toml:"profile"`
}

type profileEntry struct {
	Index      int    `toml:"index"`
	ReportRate uint16 `toml:"report_rate"`
	DPI        uint16 `toml:"dpi"`
}

func (c *Profiles) Run(logger *slog.Logger) error {
	seeds := profile.DefaultSeeds()
	if c.ProfileSeeds != "" {
		var err error
		if seeds, err = profile.LoadSeeds(c.ProfileSeeds); err != nil {
			return err
		}
	}
	store, err := profile.NewStore(seeds)
	if err != nil {
		return err
	}

	var table profileTable
	for _, p := range store.Snapshot() {
		table.Profile = append(table.Profile, profileEntry{Index: p.Index, ReportRate: p.ReportRate, DPI: p.DPI})
	}
	out, err := toml.Marshal(table)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
