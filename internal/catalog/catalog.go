// Package catalog holds the read-only reference data the extractor matches
// utterances against: named entries, each with an ordered keyword set.
// Catalogs are loaded once at startup and never written afterwards.
package catalog

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
)

// Entry is one named entity with the keywords that identify it in free text.
type Entry struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Catalog is an ordered list of entries. Order matters: matching stops at the
// first entry whose first keyword appears in the utterance.
type Catalog struct {
	entries []Entry
}

// New creates a catalog from a fixed entry list.
func New(entries []Entry) *Catalog {
	return &Catalog{entries: entries}
}

// Entries returns the catalog's entries in order.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Match scans entries in catalog order, and each entry's keywords in keyword
// order, returning the canonical name of the first entry with a keyword that
// is a substring of the utterance. The utterance is expected to already be
// lowercased by the caller.
func (c *Catalog) Match(utterance string) (string, bool) {
	for _, entry := range c.entries {
		for _, keyword := range entry.Keywords {
			if strings.Contains(utterance, keyword) {
				return entry.Name, true
			}
		}
	}
	return "", false
}

// DefaultEvents is the built-in event catalog used when the external JSON
// document is missing or corrupt.
func DefaultEvents() *Catalog {
	return New([]Entry{
		{Name: "Wedding", Keywords: []string{"wedding", "marriage"}},
		{Name: "Birthday Party", Keywords: []string{"birthday"}},
		{Name: "Festival Celebration", Keywords: []string{"festival", "diwali", "holi"}},
	})
}

// DefaultLocations is the built-in location catalog used when the external
// JSON document is missing or corrupt.
func DefaultLocations() *Catalog {
	return New([]Entry{
		{Name: "Tiruchirappalli, Tamil Nadu", Keywords: []string{"tiruchirappalli", "trichy"}},
		{Name: "Delhi, NCR", Keywords: []string{"delhi", "ncr"}},
		{Name: "Mumbai, Maharashtra", Keywords: []string{"mumbai"}},
	})
}

// LoadFile reads a catalog document of the form {"<key>": [entries...]} from
// path. A missing or malformed document falls back to the provided default
// catalog rather than failing startup; the fallback is logged at warn level.
func LoadFile(path, key string, fallback *Catalog, logger *slog.Logger) *Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("catalog file unavailable, using built-in defaults",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fallback
	}

	var doc map[string][]Entry
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("catalog file malformed, using built-in defaults",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fallback
	}

	entries, ok := doc[key]
	if !ok || len(entries) == 0 {
		logger.Warn("catalog file has no entries, using built-in defaults",
			slog.String("path", path),
			slog.String("key", key))
		return fallback
	}

	return New(entries)
}
