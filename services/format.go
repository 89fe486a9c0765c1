package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatARS formats an amount as Argentine pesos: a "$ " prefix, "." between
// thousands and "," before the two decimals (e.g. $ 1.234.567,89).
func FormatARS(amount decimal.Decimal) string {
	amount = amount.Round(2)
	negative := amount.IsNegative()

	raw := amount.Abs().StringFixed(2)
	parts := strings.SplitN(raw, ".", 2)

	result := "$ " + applyThousandsGrouping(parts[0]) + "," + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatQty renders a quantity without decimals when it is whole, otherwise
// with two decimals and a decimal comma.
func FormatQty(qty decimal.Decimal) string {
	if qty.IsInteger() {
		return applyThousandsGrouping(qty.Abs().String())
	}
	return strings.Replace(qty.StringFixed(2), ".", ",", 1)
}

// applyThousandsGrouping inserts a "." every three digits from the right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
