package targets

import (
	"sort"
	"time"

	"github.com/arthur-debert/targetenv/pkg/errors"
	"github.com/arthur-debert/targetenv/pkg/versions"
)

// MaintainedRelease says that from Since onwards the oldest maintained node
// release line is Version.
type MaintainedRelease struct {
	Since   time.Time
	Version string
}

// MaintainedTable is ordered by Since, oldest first.
type MaintainedTable []MaintainedRelease

// MaintainedEntry is the serialized form of a MaintainedRelease.
type MaintainedEntry struct {
	Since   string `koanf:"since" toml:"since" yaml:"since"`
	Version string `koanf:"version" toml:"version" yaml:"version"`
}

// DefaultMaintained follows the published end-of-life dates of node release
// lines. It goes stale; deployments should refresh it through configuration.
func DefaultMaintained() MaintainedTable {
	table, err := ParseMaintained([]MaintainedEntry{
		{Since: "2016-10-31", Version: "0.12"},
		{Since: "2017-01-01", Version: "4"},
		{Since: "2018-05-01", Version: "6"},
		{Since: "2019-05-01", Version: "8"},
		{Since: "2020-01-01", Version: "10"},
		{Since: "2021-05-01", Version: "12"},
		{Since: "2022-05-01", Version: "14"},
		{Since: "2023-05-01", Version: "16"},
		{Since: "2023-09-12", Version: "18"},
		{Since: "2025-05-01", Version: "20"},
		{Since: "2026-05-01", Version: "22"},
		{Since: "2027-05-01", Version: "24"},
	})
	if err != nil {
		panic(err)
	}
	return table
}

// ParseMaintained builds a table from serialized entries. Dates use the
// YYYY-MM-DD layout and are taken as UTC midnight.
func ParseMaintained(entries []MaintainedEntry) (MaintainedTable, error) {
	table := make(MaintainedTable, 0, len(entries))
	for _, e := range entries {
		since, err := time.Parse("2006-01-02", e.Since)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidSpecification, "invalid maintained date %q", e.Since)
		}
		v, err := versions.Semverify(e.Version)
		if err != nil {
			return nil, err
		}
		table = append(table, MaintainedRelease{Since: since, Version: v})
	}
	sort.SliceStable(table, func(i, j int) bool { return table[i].Since.Before(table[j].Since) })
	return table, nil
}

// Lookup returns the oldest maintained version as of now.
func (t MaintainedTable) Lookup(now time.Time) (string, error) {
	version := ""
	for _, r := range t {
		if r.Since.After(now) {
			break
		}
		version = r.Version
	}
	if version == "" {
		return "", errors.Newf(errors.ErrInvalidSpecification,
			"no maintained node release known for %s", now.Format("2006-01-02")).
			WithDetail("target", NodeKey)
	}
	return version, nil
}
