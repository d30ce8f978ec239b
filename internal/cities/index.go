// Package cities provides birth-location autocomplete over a static list of
// world cities. The index is immutable after construction, so a single
// instance is safe for concurrent use. Matching ignores case and
// diacritics; ordering puts prefix matches first, then English collation.
package cities

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// City is one record of the source data set.
type City struct {
	Name    string `json:"name"`
	Lat     string `json:"lat"`
	Lng     string `json:"lng"`
	Country string `json:"country"`
	Admin1  string `json:"admin1"`
	Admin2  string `json:"admin2"`
}

// Defaults for Search.
const (
	MinQueryRunes = 2
	DefaultLimit  = 10
)

// Option configures an Index.
type Option func(*config)

type config struct {
	limit int
	tag   language.Tag
}

func defaultConfig() config {
	return config{limit: DefaultLimit, tag: language.English}
}

// WithLimit caps the number of results returned by Search.
func WithLimit(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithCollation changes the language used for alphabetical ordering.
func WithCollation(tag language.Tag) Option {
	return func(c *config) { c.tag = tag }
}

type entry struct {
	city   City
	folded string
	rank   int // position in collation order
}

// Index is a read-only city list prepared for substring search.
type Index struct {
	cfg     config
	entries []entry
}

// LoadFile reads a JSON array of City from path.
func LoadFile(path string, opts ...Option) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadReader(f, opts...)
}

// LoadReader decodes a JSON array of City from r.
func LoadReader(r io.Reader, opts ...Option) (*Index, error) {
	var list []City
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode cities: %w", err)
	}
	return New(list, opts...), nil
}

// New builds an Index from list. Entries with a blank name are dropped.
func New(list []City, opts ...Option) *Index {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	entries := make([]entry, 0, len(list))
	for _, c := range list {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			continue
		}
		entries = append(entries, entry{city: c, folded: Fold(c.Name)})
	}

	// Collators are not safe for concurrent use; rank once here instead of
	// comparing at query time.
	col := collate.New(cfg.tag, collate.IgnoreCase)
	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return col.CompareString(entries[order[a]].city.Name, entries[order[b]].city.Name) < 0
	})
	for rank, i := range order {
		entries[i].rank = rank
	}

	return &Index{cfg: cfg, entries: entries}
}

// Len returns the number of indexed cities.
func (ix *Index) Len() int { return len(ix.entries) }

// Search returns up to the configured limit of formatted city names
// matching q. Queries shorter than MinQueryRunes return an empty slice.
func (ix *Index) Search(q string) []string {
	needle := Fold(q)
	if len([]rune(needle)) < MinQueryRunes {
		return []string{}
	}

	type hit struct {
		e      *entry
		prefix bool
	}
	var hits []hit
	for i := range ix.entries {
		e := &ix.entries[i]
		if !strings.Contains(e.folded, needle) {
			continue
		}
		hits = append(hits, hit{e: e, prefix: strings.HasPrefix(e.folded, needle)})
	}
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].prefix != hits[b].prefix {
			return hits[a].prefix
		}
		return hits[a].e.rank < hits[b].e.rank
	})

	n := min(len(hits), ix.cfg.limit)
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = Format(hits[i].e.city)
	}
	return out
}

// Fold lowercases s, strips combining marks and trims it, so "São Paulo"
// and "sao paulo" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
