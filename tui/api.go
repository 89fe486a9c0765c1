package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"comprasweb/orderform"
)

// Catalog is the server's order form bootstrap.
type Catalog struct {
	Prefix         string             `json:"prefix"`
	Suppliers      []orderform.Option `json:"proveedores"`
	PaymentMethods []orderform.Option `json:"formas_pago"`
	Employees      []orderform.Option `json:"empleados"`
	Supplies       []orderform.Option `json:"insumos"`
	Prices         map[string]string  `json:"precios"`
	Endpoints      map[string]string  `json:"endpoints"`
}

// Client talks to the compras server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for cfg.ServerURL whose requests are bounded by
// cfg.Timeout.
func NewClient(cfg *Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.ServerURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// HTTPClient is the client the quick-create bridge should share.
func (c *Client) HTTPClient() *http.Client { return c.http }

// URL resolves a server path.
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// LoadCatalog fetches the order form bootstrap.
func (c *Client) LoadCatalog(ctx context.Context) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL("/api/compras/form"), nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("catalog: status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var cat Catalog
	if err := json.NewDecoder(res.Body).Decode(&cat); err != nil {
		return nil, fmt.Errorf("catalog: decoding: %w", err)
	}
	return &cat, nil
}

// endpoint returns the server path for name, falling back to def.
func (cat *Catalog) endpoint(name, def string) string {
	if p, ok := cat.Endpoints[name]; ok && p != "" {
		return p
	}
	return def
}

// PriceTable builds the shared price table. Unreadable prices are skipped.
func (cat *Catalog) PriceTable() *orderform.PriceTable {
	initial := make(map[string]decimal.Decimal, len(cat.Prices))
	for id, raw := range cat.Prices {
		if p, err := decimal.NewFromString(raw); err == nil {
			initial[id] = p
		}
	}
	return orderform.NewPriceTable(initial)
}

// NewForm builds an empty order form from the catalog with one blank row.
func NewForm(cat *Catalog, cfg *Config) *orderform.Form {
	prefix := cfg.FormsetPrefix
	if prefix == "" {
		prefix = cat.Prefix
	}
	tmpl := &orderform.RowTemplate{
		Markup:        prefix + "-" + orderform.Placeholder,
		SupplyOptions: append([]orderform.Option(nil), cat.Supplies...),
	}

	f := orderform.New(cat.PriceTable(), tmpl, cfg.OrderRules())
	if prefix != "" {
		f.Prefix = prefix
	}
	f.Supplier = orderform.NewSelect(cat.Suppliers)
	f.PaymentMethod = orderform.NewSelect(cat.PaymentMethods)
	f.Employee = orderform.NewSelect(cat.Employees)
	f.Initialize()
	f.AddRow()
	return f
}
