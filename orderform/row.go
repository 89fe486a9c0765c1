package orderform

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Formset sub-field names of a detail row.
const (
	RowFieldID       = "id"
	RowFieldSupply   = "insumo"
	RowFieldQuantity = "cantidad"
	RowFieldPrice    = "precio_unitario"
	RowFieldSubtotal = "subtotal"
	RowFieldDelete   = "DELETE"
)

type fieldSet uint8

const (
	hasSupply fieldSet = 1 << iota
	hasQuantity
	hasPrice
	hasSubtotal

	allFields = hasSupply | hasQuantity | hasPrice | hasSubtotal
)

// Row is one purchase line. The string fields hold what the user sees and
// submits; numeric views are derived from them on demand.
type Row struct {
	Index    int
	ID       string // server id of a persisted detail, "" for client rows
	Supply   Select
	Quantity string
	Price    string
	Subtotal string

	// Persisted rows carry a server-tracked DELETE field and are only ever
	// soft-deleted.
	Persisted bool
	Deleted   bool
	Hidden    bool

	fields fieldSet
}

// NewRow returns a complete row at index whose supply select offers opts.
func NewRow(index int, opts []Option) *Row {
	return &Row{
		Index:  index,
		Supply: NewSelect(opts),
		fields: allFields,
	}
}

// WellFormed reports whether the row has every sub-field needed to compute a
// subtotal.
func (r *Row) WellFormed() bool {
	return r.fields&allFields == allFields
}

// missingField names the first sub-field the row was submitted without, or
// "" when it is well formed.
func (r *Row) missingField() string {
	switch {
	case r.fields&hasSupply == 0:
		return RowFieldSupply
	case r.fields&hasQuantity == 0:
		return RowFieldQuantity
	case r.fields&hasPrice == 0:
		return RowFieldPrice
	case r.fields&hasSubtotal == 0:
		return RowFieldSubtotal
	}
	return ""
}

// Active reports whether the row takes part in totals.
func (r *Row) Active() bool {
	return !r.Deleted && !r.Hidden
}

func (r *Row) QuantityValue() decimal.Decimal { return parseAmount(r.Quantity) }
func (r *Row) PriceValue() decimal.Decimal    { return parseAmount(r.Price) }
func (r *Row) SubtotalValue() decimal.Decimal { return parseAmount(r.Subtotal) }

// parseAmount reads a user-entered number. Anything unparseable is zero.
func parseAmount(s string) decimal.Decimal {
	d, ok := parseStrict(s)
	if !ok {
		return decimal.Zero
	}
	return d
}

func parseStrict(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatAmount renders d with two decimals, the way totals and prices are shown.
func FormatAmount(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}
