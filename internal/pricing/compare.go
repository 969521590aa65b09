package pricing

import (
	"sort"

	"github.com/vbonduro/pantrychef/internal/domain"
)

// ItemPrice is the cheapest offer for one matched grocery item.
type ItemPrice struct {
	ItemID  string  `json:"item_id"`
	Name    string  `json:"name"`
	Store   string  `json:"store"`
	Price   float64 `json:"price"`
	Average float64 `json:"average"`
	Unit    string  `json:"unit"`
}

// StoreSummary is one store's basket across the matched items it prices.
type StoreSummary struct {
	Store        string  `json:"store"`
	AveragePrice float64 `json:"average_price"`
	ItemCount    int     `json:"item_count"`
	// Savings is the sum of (item average - this store's price). A negative
	// value means the store costs more than average.
	Savings float64 `json:"savings"`
}

// ExtraCost reports whether shopping here costs more than the average store.
func (s StoreSummary) ExtraCost() bool {
	return s.Savings < 0
}

type Comparison struct {
	Items        map[string]ItemPrice `json:"items"`
	Stores       []StoreSummary       `json:"stores"`
	BestStore    string               `json:"best_store"`
	ItemCount    int                  `json:"item_count"`
	TotalBest    float64              `json:"total_best"`
	TotalAverage float64              `json:"total_average"`
	TotalSavings float64              `json:"total_savings"`
}

// Store returns the summary for a store by name.
func (c *Comparison) Store(name string) (StoreSummary, bool) {
	for _, s := range c.Stores {
		if s.Store == name {
			return s, true
		}
	}
	return StoreSummary{}, false
}

type storeTally struct {
	sum     float64
	count   int
	savings float64
}

// Compare prices list against catalog. Items without a catalog match are left
// out of every total and count.
func Compare(list []domain.GroceryItem, catalog PriceCatalog) *Comparison {
	c := &Comparison{Items: make(map[string]ItemPrice)}

	tallies := make(map[string]*storeTally)
	var order []string

	for _, item := range list {
		entry, ok := catalog.Lookup(item.Name)
		if !ok || len(entry.Prices) == 0 {
			continue
		}

		best := entry.Best()
		average := entry.Average()
		// Float rounding can put the mean a hair below the minimum.
		if average < best.Price {
			average = best.Price
		}

		c.Items[item.ID] = ItemPrice{
			ItemID:  item.ID,
			Name:    item.Name,
			Store:   best.Store,
			Price:   best.Price,
			Average: average,
			Unit:    best.Unit,
		}
		c.ItemCount++
		c.TotalBest += best.Price
		c.TotalAverage += average

		for _, p := range entry.Prices {
			t, ok := tallies[p.Store]
			if !ok {
				t = &storeTally{}
				tallies[p.Store] = t
				order = append(order, p.Store)
			}
			t.sum += p.Price
			t.count++
			t.savings += average - p.Price
		}
	}

	c.TotalSavings = c.TotalAverage - c.TotalBest
	if c.TotalSavings < 0 {
		c.TotalSavings = 0
	}

	c.Stores = make([]StoreSummary, 0, len(order))
	for _, store := range order {
		t := tallies[store]
		c.Stores = append(c.Stores, StoreSummary{
			Store:        store,
			AveragePrice: t.sum / float64(t.count),
			ItemCount:    t.count,
			Savings:      t.savings,
		})
	}
	// Stable so equal averages keep the order stores were first seen in.
	sort.SliceStable(c.Stores, func(i, j int) bool {
		return c.Stores[i].AveragePrice < c.Stores[j].AveragePrice
	})
	if len(c.Stores) > 0 {
		c.BestStore = c.Stores[0].Store
	}
	return c
}
