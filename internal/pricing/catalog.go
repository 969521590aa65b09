// Package pricing matches grocery lists against per-store unit prices and
// ranks stores by basket cost.
package pricing

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Record is one store's price for one catalog item.
type Record struct {
	ItemName       string
	NormalizedName string
	Category       string
	Store          string
	Price          float64
	Currency       string
	Unit           string
	Distance       string
}

type StorePrice struct {
	Store    string  `json:"store"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Unit     string  `json:"unit"`
	Distance string  `json:"distance,omitempty"`
}

// Entry groups every store price for one catalog item.
type Entry struct {
	ItemName       string       `json:"item_name"`
	NormalizedName string       `json:"normalized_name"`
	Category       string       `json:"category"`
	Prices         []StorePrice `json:"prices"`
}

// Best returns the lowest price. The first store listed wins a tie.
func (e Entry) Best() StorePrice {
	best := e.Prices[0]
	for _, p := range e.Prices[1:] {
		if p.Price < best.Price {
			best = p
		}
	}
	return best
}

func (e Entry) Average() float64 {
	var sum float64
	for _, p := range e.Prices {
		sum += p.Price
	}
	return sum / float64(len(e.Prices))
}

// PriceCatalog is the lookup capability the optimizer depends on.
type PriceCatalog interface {
	// Lookup returns the entry matching an item name, if any.
	Lookup(name string) (Entry, bool)
	Entries() []Entry
}

// StaticCatalog is an in-memory catalog. Lookups scan entries in load order.
type StaticCatalog struct {
	entries []Entry
}

// NewStaticCatalog groups records by normalized name, keeping the order in
// which each name first appears. Names are lowercased.
func NewStaticCatalog(records []Record) *StaticCatalog {
	c := &StaticCatalog{}
	index := make(map[string]int)
	for _, r := range records {
		key := strings.ToLower(strings.TrimSpace(r.NormalizedName))
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(c.entries)
			index[key] = i
			c.entries = append(c.entries, Entry{
				ItemName:       r.ItemName,
				NormalizedName: key,
				Category:       r.Category,
			})
		}
		c.entries[i].Prices = append(c.entries[i].Prices, StorePrice{
			Store:    r.Store,
			Price:    r.Price,
			Currency: r.Currency,
			Unit:     r.Unit,
			Distance: r.Distance,
		})
	}
	return c
}

// Lookup matches when the lowercased name contains an entry's normalized name
// or the normalized name contains it. The first matching entry wins even if a
// later entry would also match.
func (c *StaticCatalog) Lookup(name string) (Entry, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return Entry{}, false
	}
	for _, e := range c.entries {
		if strings.Contains(lower, e.NormalizedName) || strings.Contains(e.NormalizedName, lower) {
			return e, true
		}
	}
	return Entry{}, false
}

func (c *StaticCatalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *StaticCatalog) Records() []Record {
	var out []Record
	for _, e := range c.entries {
		for _, p := range e.Prices {
			out = append(out, Record{
				ItemName:       e.ItemName,
				NormalizedName: e.NormalizedName,
				Category:       e.Category,
				Store:          p.Store,
				Price:          p.Price,
				Currency:       p.Currency,
				Unit:           p.Unit,
				Distance:       p.Distance,
			})
		}
	}
	return out
}

type catalogFile struct {
	Currency string `yaml:"currency"`
	Items    []struct {
		Name       string `yaml:"name"`
		Normalized string `yaml:"normalized"`
		Category   string `yaml:"category"`
		Unit       string `yaml:"unit"`
		Prices     []struct {
			Store    string  `yaml:"store"`
			Price    float64 `yaml:"price"`
			Currency string  `yaml:"currency"`
			Unit     string  `yaml:"unit"`
			Distance string  `yaml:"distance"`
		} `yaml:"prices"`
	} `yaml:"items"`
}

// LoadCatalog parses a YAML catalog. Item-level unit and file-level currency
// apply to prices that do not set their own.
func LoadCatalog(r io.Reader) (*StaticCatalog, error) {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	var records []Record
	for _, item := range f.Items {
		normalized := item.Normalized
		if normalized == "" {
			normalized = item.Name
		}
		if strings.TrimSpace(normalized) == "" {
			return nil, fmt.Errorf("catalog item without a name")
		}
		if len(item.Prices) == 0 {
			return nil, fmt.Errorf("catalog item %q has no prices", item.Name)
		}
		for _, p := range item.Prices {
			if p.Store == "" {
				return nil, fmt.Errorf("catalog item %q has a price without a store", item.Name)
			}
			if p.Price < 0 {
				return nil, fmt.Errorf("catalog item %q has a negative price at %s", item.Name, p.Store)
			}
			currency, unit := p.Currency, p.Unit
			if currency == "" {
				currency = f.Currency
			}
			if unit == "" {
				unit = item.Unit
			}
			records = append(records, Record{
				ItemName:       item.Name,
				NormalizedName: normalized,
				Category:       item.Category,
				Store:          p.Store,
				Price:          p.Price,
				Currency:       currency,
				Unit:           unit,
				Distance:       p.Distance,
			})
		}
	}
	return NewStaticCatalog(records), nil
}

// LoadCatalogFile reads a catalog from path.
func LoadCatalogFile(path string) (*StaticCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadCatalog(f)
}

// DefaultCatalog returns the catalog embedded at build time.
func DefaultCatalog() (*StaticCatalog, error) {
	return LoadCatalog(bytes.NewReader(defaultCatalogYAML))
}
