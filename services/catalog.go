package services

import (
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/shopspring/decimal"

	"comprasweb/orderform"
)

// Catalog holds the choices an order form offers, read from the database.
type Catalog struct {
	Suppliers      []orderform.Option
	PaymentMethods []orderform.Option
	Employees      []orderform.Option
	Supplies       []orderform.Option
	Prices         map[string]decimal.Decimal
}

// LoadCatalog reads suppliers, payment methods, employees and supplies, each
// sorted by name, together with the unit cost of every supply.
func LoadCatalog(app *pocketbase.PocketBase) (*Catalog, error) {
	c := &Catalog{Prices: make(map[string]decimal.Decimal)}

	proveedores, err := app.FindRecordsByFilter("proveedores", "1=1", "nombre", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("catalog: proveedores: %w", err)
	}
	for _, r := range proveedores {
		c.Suppliers = append(c.Suppliers, orderform.Option{Value: r.Id, Label: r.GetString("nombre")})
	}

	formas, err := app.FindRecordsByFilter("formas_pago", "1=1", "nombre_forma", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("catalog: formas_pago: %w", err)
	}
	for _, r := range formas {
		c.PaymentMethods = append(c.PaymentMethods, orderform.Option{Value: r.Id, Label: r.GetString("nombre_forma")})
	}

	empleados, err := app.FindRecordsByFilter("empleados", "1=1", "apellido,nombre", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("catalog: empleados: %w", err)
	}
	for _, r := range empleados {
		label := strings.TrimSpace(r.GetString("nombre") + " " + r.GetString("apellido"))
		c.Employees = append(c.Employees, orderform.Option{Value: r.Id, Label: label})
	}

	insumos, err := app.FindRecordsByFilter("insumos", "1=1", "nombre", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("catalog: insumos: %w", err)
	}
	for _, r := range insumos {
		c.Supplies = append(c.Supplies, orderform.Option{Value: r.Id, Label: r.GetString("nombre")})
		c.Prices[r.Id] = decimal.NewFromFloat(r.GetFloat("precio_costo_unitario"))
	}

	return c, nil
}

// FormOptions returns the options ParseForm needs. A fresh price table is
// built on every call; the row template is left for the caller.
func (c *Catalog) FormOptions(rules orderform.Rules) orderform.FormOptions {
	return orderform.FormOptions{
		Prefix:         orderform.DefaultPrefix,
		Suppliers:      c.Suppliers,
		PaymentMethods: c.PaymentMethods,
		Employees:      c.Employees,
		Supplies:       c.Supplies,
		Prices:         orderform.NewPriceTable(c.Prices),
		Rules:          rules,
	}
}
