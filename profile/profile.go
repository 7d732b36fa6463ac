// Package profile maintains the ordered, circular set of configuration
// profiles for an attached device. The store itself is not synchronized;
// the owning device context serializes all access under its lock.
package profile

import (
	"errors"
	"fmt"

	"github.com/g502-hero/g502d/hidpp"
)

// ErrEmptyStore indicates the profile collection has zero members. The set
// is seeded at attach time and never shrinks, so observing this after
// construction is an invariant violation, not a runtime condition.
var ErrEmptyStore = errors.New("profile: empty store")

// Profile is one logical configuration slot on the device.
type Profile struct {
	Index      int
	ReportRate uint16 // Hz, one of 125/250/500/1000
	DPI        uint16
	RGB        uint32 // reserved, currently always zero
}

// Store holds the fixed circular profile set and the current pointer.
type Store struct {
	profiles []*Profile
	current  int
}

// NewStore builds a store from seeds, validating every entry against the
// wire mappings before any profile is created. Slot 0 starts current.
func NewStore(seeds []Seed) (*Store, error) {
	if len(seeds) == 0 {
		return nil, ErrEmptyStore
	}
	s := &Store{profiles: make([]*Profile, 0, len(seeds))}
	for i, seed := range seeds {
		if _, err := hidpp.RateToWire(seed.ReportRate); err != nil {
			return nil, fmt.Errorf("profile %d: report rate %d: %w", i, seed.ReportRate, err)
		}
		if err := hidpp.ValidateDPI(uint32(seed.DPI)); err != nil {
			return nil, fmt.Errorf("profile %d: dpi %d: %w", i, seed.DPI, err)
		}
		s.profiles = append(s.profiles, &Profile{
			Index:      i,
			ReportRate: seed.ReportRate,
			DPI:        seed.DPI,
		})
	}
	return s, nil
}

// Len returns the number of profiles.
func (s *Store) Len() int { return len(s.profiles) }

// Current returns the current profile.
func (s *Store) Current() *Profile { return s.profiles[s.current] }

// Next advances the current pointer in circular order, wrapping from the
// last slot back to the first, and returns the new current profile.
func (s *Store) Next() (*Profile, error) {
	if len(s.profiles) == 0 {
		return nil, ErrEmptyStore
	}
	s.current = (s.current + 1) % len(s.profiles)
	return s.profiles[s.current], nil
}

// Snapshot returns copies of all profiles in slot order.
func (s *Store) Snapshot() []Profile {
	out := make([]Profile, len(s.profiles))
	for i, p := range s.profiles {
		out[i] = *p
	}
	return out
}
