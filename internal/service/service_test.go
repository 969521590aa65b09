package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vbonduro/pantrychef/internal/db"
	"github.com/vbonduro/pantrychef/internal/logging"
	"github.com/vbonduro/pantrychef/internal/pricing"
	"github.com/vbonduro/pantrychef/internal/recipe"
	"github.com/vbonduro/pantrychef/internal/store"
)

var t0 = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

// clock is a settable time source for services under test.
type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type zeroSource struct{}

func (zeroSource) Intn(int) int { return 0 }

func newTestPantry(t *testing.T) (*PantryService, *clock) {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	svc := NewPantryService(
		store.NewLeftoverStore(d),
		recipe.NewSynthesizer(zeroSource{}),
		PantryOptions{ExpiringWindow: 24 * time.Hour, DefaultExpiryDays: 3},
		logging.Discard(),
	)
	c := &clock{now: t0}
	svc.now = c.Now
	return svc, c
}

func newTestGrocery(t *testing.T) (*GroceryService, *clock) {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	catalog, err := pricing.DefaultCatalog()
	require.NoError(t, err)

	svc := NewGroceryService(store.NewGroceryStore(d), catalog, logging.Discard())
	c := &clock{now: t0}
	svc.now = c.Now
	return svc, c
}
