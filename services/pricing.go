// Package services provides pricing, catalog and export helpers for compras.
package services

import "github.com/shopspring/decimal"

// CalcDetalleSubtotal returns cantidad × precio rounded to cents.
func CalcDetalleSubtotal(cantidad, precio float64) decimal.Decimal {
	return decimal.NewFromFloat(cantidad).Mul(decimal.NewFromFloat(precio)).Round(2)
}

type DetalleAmount struct {
	Cantidad float64
	Precio   float64
}

type CompraTotals struct {
	Items         int
	TotalCantidad decimal.Decimal
	Total         decimal.Decimal
}

// CalcCompraTotals sums the rounded subtotals of every detail line, the same
// way the order form computes its total.
func CalcCompraTotals(items []DetalleAmount) CompraTotals {
	totals := CompraTotals{
		Items:         len(items),
		TotalCantidad: decimal.Zero,
		Total:         decimal.Zero,
	}
	for _, item := range items {
		totals.TotalCantidad = totals.TotalCantidad.Add(decimal.NewFromFloat(item.Cantidad))
		totals.Total = totals.Total.Add(CalcDetalleSubtotal(item.Cantidad, item.Precio))
	}
	totals.Total = totals.Total.Round(2)
	return totals
}
