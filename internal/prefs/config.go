// Package prefs holds the persisted user intent for the prefix: which
// program versions are pinned and which programs are excluded.
package prefs

import (
	"slices"
	"sort"
)

// Config is the persisted record of version overrides and exclusions.
// It is loaded once per command invocation, mutated in memory, and
// saved back at the end of the invocation.
type Config struct {
	// Overrides maps a program name to its pinned version
	Overrides map[string]string `json:"overrides"`

	// Excluded lists program names removed from the prefix entirely
	Excluded []string `json:"excluded"`
}

// NewConfig creates an empty Config.
func NewConfig() *Config {
	return &Config{
		Overrides: make(map[string]string),
		Excluded:  []string{},
	}
}

// IsExcluded reports whether the named program is excluded.
func (c *Config) IsExcluded(name string) bool {
	return slices.Contains(c.Excluded, name)
}

// Exclude adds the named program to the exclusion set.
func (c *Config) Exclude(name string) {
	if !c.IsExcluded(name) {
		c.Excluded = append(c.Excluded, name)
	}
}

// Include removes the named program from the exclusion set.
func (c *Config) Include(name string) {
	c.Excluded = slices.DeleteFunc(c.Excluded, func(n string) bool {
		return n == name
	})
}

// Override returns the pinned version for a program name, if any.
func (c *Config) Override(name string) (string, bool) {
	version, ok := c.Overrides[name]
	return version, ok
}

// SetOverride pins the named program to a version.
func (c *Config) SetOverride(name, version string) {
	if c.Overrides == nil {
		c.Overrides = make(map[string]string)
	}
	c.Overrides[name] = version
}

// UnsetOverride removes any pin for the named program. It reports
// whether a pin was present.
func (c *Config) UnsetOverride(name string) bool {
	if _, ok := c.Overrides[name]; !ok {
		return false
	}
	delete(c.Overrides, name)
	return true
}

// normalize brings the record to its canonical in-memory shape: non-nil
// collections, sorted exclusions, no duplicates. Ordering of the
// excluded set carries no meaning on disk; sorting keeps saves stable.
func (c *Config) normalize() {
	if c.Overrides == nil {
		c.Overrides = make(map[string]string)
	}
	if c.Excluded == nil {
		c.Excluded = []string{}
	}
	sort.Strings(c.Excluded)
	c.Excluded = slices.Compact(c.Excluded)
}
