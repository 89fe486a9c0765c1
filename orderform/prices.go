package orderform

import (
	"sync"

	"github.com/shopspring/decimal"
)

// PriceTable maps a supply identifier to its unit cost. Entries are only
// ever added or overwritten, never removed.
type PriceTable struct {
	mu     sync.RWMutex
	prices map[string]decimal.Decimal
}

// NewPriceTable returns a table seeded with a copy of initial.
func NewPriceTable(initial map[string]decimal.Decimal) *PriceTable {
	t := &PriceTable{prices: make(map[string]decimal.Decimal, len(initial))}
	for id, p := range initial {
		t.prices[id] = p
	}
	return t
}

// Set inserts or replaces the price for id. Negative prices are stored as zero.
func (t *PriceTable) Set(id string, price decimal.Decimal) {
	if price.IsNegative() {
		price = decimal.Zero
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.prices == nil {
		t.prices = make(map[string]decimal.Decimal)
	}
	t.prices[id] = price
}

// Lookup returns the price for id and whether an entry exists.
func (t *PriceTable) Lookup(id string) (decimal.Decimal, bool) {
	if t == nil || id == "" {
		return decimal.Zero, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.prices[id]
	return p, ok
}

// Len returns the number of entries.
func (t *PriceTable) Len() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.prices)
}

// Snapshot returns a copy of the table contents.
func (t *PriceTable) Snapshot() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	if t == nil {
		return out
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	for id, p := range t.prices {
		out[id] = p
	}
	return out
}
