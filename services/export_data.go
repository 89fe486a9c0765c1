package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/shopspring/decimal"
)

// ExportRow is one detail line of an exported compra.
type ExportRow struct {
	Index    int
	Insumo   string
	Unidad   string
	Cantidad decimal.Decimal
	Precio   decimal.Decimal
	Subtotal decimal.Decimal
}

// ExportData holds all data needed for export.
type ExportData struct {
	CompraID    string
	Proveedor   string
	CUIT        string
	FormaPago   string
	Empleado    string
	FechaCompra string
	Rows        []ExportRow
	Total       decimal.Decimal
	// StoredTotal is costo_total as saved; it differs from Total only when
	// detail rows were edited outside the order form.
	StoredTotal decimal.Decimal
}

// BuildExportData assembles a compra, its supplier and its detail lines.
func BuildExportData(app *pocketbase.PocketBase, compraID string) (*ExportData, error) {
	compra, err := app.FindRecordById("compras", compraID)
	if err != nil {
		return nil, fmt.Errorf("compra not found: %w", err)
	}

	data := &ExportData{
		CompraID:    compra.Id,
		FechaCompra: compra.GetString("fecha_compra"),
		StoredTotal: decimal.NewFromFloat(compra.GetFloat("costo_total")).Round(2),
	}
	if data.FechaCompra == "" {
		data.FechaCompra = compra.GetDateTime("created").Time().Format("2006-01-02")
	}

	if id := compra.GetString("proveedor"); id != "" {
		if p, err := app.FindRecordById("proveedores", id); err == nil {
			data.Proveedor = p.GetString("nombre")
			data.CUIT = p.GetString("cuit")
		} else {
			log.Printf("export_data: could not find proveedor %s: %v", id, err)
		}
	}
	if id := compra.GetString("forma_pago"); id != "" {
		if fp, err := app.FindRecordById("formas_pago", id); err == nil {
			data.FormaPago = fp.GetString("nombre_forma")
		} else {
			log.Printf("export_data: could not find forma_pago %s: %v", id, err)
		}
	}
	if id := compra.GetString("empleado"); id != "" {
		if emp, err := app.FindRecordById("empleados", id); err == nil {
			data.Empleado = strings.TrimSpace(emp.GetString("nombre") + " " + emp.GetString("apellido"))
		} else {
			log.Printf("export_data: could not find empleado %s: %v", id, err)
		}
	}

	detalles, err := app.FindRecordsByFilter(
		"detalles_compra",
		"compra = {:compraId}",
		"sort_order",
		0,
		0,
		map[string]any{"compraId": compraID},
	)
	if err != nil {
		log.Printf("export_data: could not fetch detalles for compra %s: %v", compraID, err)
		detalles = nil
	}

	amounts := make([]DetalleAmount, 0, len(detalles))
	for i, d := range detalles {
		cantidad := d.GetFloat("cantidad")
		precio := d.GetFloat("precio_unitario")
		amounts = append(amounts, DetalleAmount{Cantidad: cantidad, Precio: precio})

		row := ExportRow{
			Index:    i + 1,
			Cantidad: decimal.NewFromFloat(cantidad),
			Precio:   decimal.NewFromFloat(precio).Round(2),
			Subtotal: CalcDetalleSubtotal(cantidad, precio),
		}
		if ins, err := app.FindRecordById("insumos", d.GetString("insumo")); err == nil {
			row.Insumo = ins.GetString("nombre")
			row.Unidad = ins.GetString("unidad_medida")
		} else {
			log.Printf("export_data: could not find insumo %s: %v", d.GetString("insumo"), err)
		}
		data.Rows = append(data.Rows, row)
	}

	data.Total = CalcCompraTotals(amounts).Total
	return data, nil
}

// Title is the document heading used by both exports.
func (d *ExportData) Title() string {
	if d.Proveedor == "" {
		return "Orden de compra"
	}
	return "Orden de compra - " + d.Proveedor
}
