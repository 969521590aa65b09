package pricing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/pantrychef/internal/domain"
)

func grocery(id, name string) domain.GroceryItem {
	return domain.GroceryItem{ID: id, Name: name, Amount: "1", Category: "Other"}
}

func testCatalog() *StaticCatalog {
	return NewStaticCatalog([]Record{
		{ItemName: "Chicken Breast", NormalizedName: "chicken breast", Store: "Lidl", Price: 4.99},
		{ItemName: "Chicken Breast", NormalizedName: "chicken breast", Store: "Jumbo", Price: 6.49},
		{ItemName: "Chicken Breast", NormalizedName: "chicken breast", Store: "Albert Heijn", Price: 7.99},
		{ItemName: "Broccoli", NormalizedName: "broccoli", Store: "Lidl", Price: 1.29},
		{ItemName: "Broccoli", NormalizedName: "broccoli", Store: "Jumbo", Price: 1.19},
		{ItemName: "Broccoli", NormalizedName: "broccoli", Store: "Albert Heijn", Price: 1.49},
	})
}

func TestCompare_ChickenAndBroccoli(t *testing.T) {
	list := []domain.GroceryItem{grocery("1", "Chicken Breast"), grocery("2", "Broccoli")}

	c := Compare(list, testCatalog())

	assert.Equal(t, "Lidl", c.BestStore)
	assert.Equal(t, 2, c.ItemCount)
	require.Len(t, c.Stores, 3)
	assert.Equal(t, "Lidl", c.Stores[0].Store)
	assert.Equal(t, "Jumbo", c.Stores[1].Store)
	assert.Equal(t, "Albert Heijn", c.Stores[2].Store)
	assert.InDelta(t, 3.14, c.Stores[0].AveragePrice, 0.001)
	assert.InDelta(t, 3.84, c.Stores[1].AveragePrice, 0.001)
	assert.InDelta(t, 4.74, c.Stores[2].AveragePrice, 0.001)

	chicken := c.Items["1"]
	assert.Equal(t, "Lidl", chicken.Store)
	assert.InDelta(t, 4.99, chicken.Price, 0.001)
	assert.InDelta(t, 6.49, chicken.Average, 0.001)

	broccoli := c.Items["2"]
	assert.Equal(t, "Jumbo", broccoli.Store)
	assert.InDelta(t, 1.19, broccoli.Price, 0.001)

	assert.InDelta(t, 6.18, c.TotalBest, 0.001)
	assert.InDelta(t, 7.8133, c.TotalAverage, 0.001)
	assert.InDelta(t, 1.6333, c.TotalSavings, 0.001)
}

func TestCompare_UnmatchedItemsAreExcluded(t *testing.T) {
	list := []domain.GroceryItem{grocery("1", "Chicken Breast"), grocery("2", "Dragon fruit")}

	c := Compare(list, testCatalog())

	assert.Equal(t, 1, c.ItemCount)
	assert.Len(t, c.Items, 1)
	_, ok := c.Items["2"]
	assert.False(t, ok)
	lidl, ok := c.Store("Lidl")
	require.True(t, ok)
	assert.Equal(t, 1, lidl.ItemCount)
	assert.InDelta(t, 4.99, lidl.AveragePrice, 0.001)
}

func TestCompare_NothingMatched(t *testing.T) {
	c := Compare([]domain.GroceryItem{grocery("1", "Dragon fruit")}, testCatalog())

	assert.Empty(t, c.BestStore)
	assert.Empty(t, c.Stores)
	assert.Zero(t, c.ItemCount)
	assert.Zero(t, c.TotalSavings)
}

func TestCompare_StoreAverageOnlyCoversItemsItCarries(t *testing.T) {
	catalog := NewStaticCatalog([]Record{
		{NormalizedName: "milk", Store: "A", Price: 1.00},
		{NormalizedName: "milk", Store: "B", Price: 1.50},
		{NormalizedName: "saffron", Store: "B", Price: 9.00},
	})
	list := []domain.GroceryItem{grocery("1", "milk"), grocery("2", "saffron")}

	c := Compare(list, catalog)

	a, ok := c.Store("A")
	require.True(t, ok)
	assert.Equal(t, 1, a.ItemCount)
	assert.InDelta(t, 1.00, a.AveragePrice, 0.001)

	b, ok := c.Store("B")
	require.True(t, ok)
	assert.Equal(t, 2, b.ItemCount)
	assert.InDelta(t, 5.25, b.AveragePrice, 0.001)
	assert.Equal(t, "A", c.BestStore)
}

func TestCompare_TiesKeepFirstSeenStoreOrder(t *testing.T) {
	catalog := NewStaticCatalog([]Record{
		{NormalizedName: "bread", Store: "Zeta", Price: 2.00},
		{NormalizedName: "bread", Store: "Alpha", Price: 2.00},
	})

	c := Compare([]domain.GroceryItem{grocery("1", "bread")}, catalog)

	assert.Equal(t, "Zeta", c.BestStore)
	assert.Equal(t, "Zeta", c.Items["1"].Store)
	assert.Zero(t, c.TotalSavings)
}

func TestCompare_StoreSavings(t *testing.T) {
	c := Compare([]domain.GroceryItem{grocery("1", "chicken breast")}, testCatalog())

	lidl, _ := c.Store("Lidl")
	assert.InDelta(t, 1.50, lidl.Savings, 0.001)
	assert.False(t, lidl.ExtraCost())

	ah, _ := c.Store("Albert Heijn")
	assert.InDelta(t, -1.50, ah.Savings, 0.001)
	assert.True(t, ah.ExtraCost())
}

func TestLookup(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name     string
		query    string
		expected string
		found    bool
	}{
		{"exact", "broccoli", "broccoli", true},
		{"case insensitive", "BROCCOLI", "broccoli", true},
		{"query contains entry", "organic chicken breast fillets", "chicken breast", true},
		{"entry contains query", "chicken", "chicken breast", true},
		{"no match", "tofu", "", false},
		{"blank", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := catalog.Lookup(tt.query)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, e.NormalizedName)
		})
	}
}

func TestLookup_FirstMatchWins(t *testing.T) {
	catalog := NewStaticCatalog([]Record{
		{NormalizedName: "milk", Store: "A", Price: 1},
		{NormalizedName: "almond milk", Store: "A", Price: 3},
	})

	e, ok := catalog.Lookup("almond milk")
	require.True(t, ok)
	assert.Equal(t, "milk", e.NormalizedName)
}

func TestEntry_Best(t *testing.T) {
	e := Entry{Prices: []StorePrice{{Store: "A", Price: 2}, {Store: "B", Price: 1}, {Store: "C", Price: 1}}}

	assert.Equal(t, "B", e.Best().Store)
	assert.InDelta(t, 4.0/3.0, e.Average(), 0.0001)
}

func TestLoadCatalog(t *testing.T) {
	src := `
currency: EUR
items:
  - name: Oats
    unit: per kg
    prices:
      - {store: Lidl, price: 1.5}
      - {store: Jumbo, price: 2, unit: per 500g, currency: USD}
`
	c, err := LoadCatalog(strings.NewReader(src))
	require.NoError(t, err)

	records := c.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "oats", records[0].NormalizedName)
	assert.Equal(t, "EUR", records[0].Currency)
	assert.Equal(t, "per kg", records[0].Unit)
	assert.Equal(t, "USD", records[1].Currency)
	assert.Equal(t, "per 500g", records[1].Unit)
}

func TestLoadCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad yaml", "items: [unterminated"},
		{"no name", "items:\n  - prices:\n      - {store: A, price: 1}\n"},
		{"no prices", "items:\n  - name: Oats\n"},
		{"no store", "items:\n  - name: Oats\n    prices:\n      - {price: 1}\n"},
		{"negative price", "items:\n  - name: Oats\n    prices:\n      - {store: A, price: -1}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	require.NotEmpty(t, c.Entries())

	e, ok := c.Lookup("Chicken Breast")
	require.True(t, ok)
	assert.Equal(t, "Lidl", e.Best().Store)
	assert.Len(t, e.Prices, 3)
	assert.Equal(t, "EUR", e.Prices[0].Currency)
}
