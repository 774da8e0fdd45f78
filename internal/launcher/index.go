package launcher

import (
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
)

// Search modes.
const (
	SearchSubstring = "substring"
	SearchFuzzy     = "fuzzy"
)

// Index is the set of launchable entries under a root.
// Entries are sorted by name, case-insensitively.
type Index struct {
	Root      string    `json:"root"`
	Entries   []Entry   `json:"entries"`
	ScannedAt time.Time `json:"scanned_at"`
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.Entries)
}

// Names returns all entry names in index order.
func (idx *Index) Names() []string {
	if idx == nil {
		return nil
	}
	names := make([]string, len(idx.Entries))
	for i, e := range idx.Entries {
		names[i] = e.Name
	}
	return names
}

// Lookup returns the entry with the given name.
func (idx *Index) Lookup(name string) (Entry, bool) {
	if idx == nil {
		return Entry{}, false
	}
	for _, e := range idx.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Filter returns the entries whose name contains term, ignoring case.
// An empty term returns every entry.
func (idx *Index) Filter(term string) []Entry {
	if idx == nil {
		return nil
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return idx.Entries
	}

	var out []Entry
	for _, e := range idx.Entries {
		if strings.Contains(strings.ToLower(e.Name), term) {
			out = append(out, e)
		}
	}
	return out
}

// entrySource implements fuzzy.Source for entry fuzzy matching.
type entrySource []Entry

func (s entrySource) String(i int) string {
	return s[i].Name
}

func (s entrySource) Len() int {
	return len(s)
}

// Search returns the entries fuzzily matching term, best match first.
// An empty term returns every entry.
func (idx *Index) Search(term string) []Entry {
	if idx == nil {
		return nil
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return idx.Entries
	}

	matches := fuzzy.FindFrom(term, entrySource(idx.Entries))
	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, idx.Entries[m.Index])
	}
	return out
}

// Query dispatches to Filter or Search according to mode.
func (idx *Index) Query(mode, term string) []Entry {
	if mode == SearchFuzzy {
		return idx.Search(term)
	}
	return idx.Filter(term)
}
