package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"comprasweb/orderform"
	"comprasweb/services"
)

// FormBootstrap is what a client needs to build an order form on its own.
type FormBootstrap struct {
	Prefix         string             `json:"prefix"`
	Suppliers      []orderform.Option `json:"proveedores"`
	PaymentMethods []orderform.Option `json:"formas_pago"`
	Employees      []orderform.Option `json:"empleados"`
	Supplies       []orderform.Option `json:"insumos"`
	Prices         map[string]string  `json:"precios"`
	Rules          BootstrapRules     `json:"rules"`
	Endpoints      map[string]string  `json:"endpoints"`
}

// BootstrapRules mirrors orderform.Rules on the wire.
type BootstrapRules struct {
	RequireSupplier      bool `json:"require_proveedor"`
	RequirePaymentMethod bool `json:"require_forma_pago"`
	RequireEmployee      bool `json:"require_empleado"`
	RequireQuantity      bool `json:"require_cantidad"`
}

func newBootstrap(c *services.Catalog, rules orderform.Rules) FormBootstrap {
	b := FormBootstrap{
		Prefix:         orderform.DefaultPrefix,
		Suppliers:      nonNil(c.Suppliers),
		PaymentMethods: nonNil(c.PaymentMethods),
		Employees:      nonNil(c.Employees),
		Supplies:       nonNil(c.Supplies),
		Prices:         make(map[string]string, len(c.Prices)),
		Rules: BootstrapRules{
			RequireSupplier:      rules.RequireSupplier,
			RequirePaymentMethod: rules.RequirePaymentMethod,
			RequireEmployee:      rules.RequireEmployee,
			RequireQuantity:      rules.RequireQuantity,
		},
		Endpoints: map[string]string{
			"insumo":    "/insumos/quick",
			"proveedor": "/proveedores/quick",
			"compra":    "/compras",
		},
	}
	for id, p := range c.Prices {
		b.Prices[id] = orderform.FormatAmount(p)
	}
	return b
}

func nonNil(opts []orderform.Option) []orderform.Option {
	if opts == nil {
		return []orderform.Option{}
	}
	return opts
}

// HandleFormBootstrap serves the catalog as JSON for the terminal client.
func HandleFormBootstrap(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		catalog, err := services.LoadCatalog(app)
		if err != nil {
			log.Printf("compra_bootstrap: could not load catalog: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"message": "No se pudo cargar el catálogo"})
		}
		return e.JSON(http.StatusOK, newBootstrap(catalog, orderform.DefaultRules()))
	}
}
