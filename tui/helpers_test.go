package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"comprasweb/orderform"
)

func testCatalog() *Catalog {
	return &Catalog{
		Prefix: orderform.DefaultPrefix,
		Suppliers: []orderform.Option{
			{Value: "p1", Label: "Papelera del Sur"},
			{Value: "p2", Label: "Tintas Andinas"},
		},
		PaymentMethods: []orderform.Option{{Value: "fp1", Label: "Efectivo"}},
		Employees:      []orderform.Option{{Value: "e1", Label: "Lucía Fernández"}},
		Supplies: []orderform.Option{
			{Value: "i1", Label: "Resma A4"},
			{Value: "i2", Label: "Tinta negra"},
		},
		Prices: map[string]string{"i1": "4500.00", "i2": "1250.50"},
	}
}

func testConfig(serverURL string) *Config {
	return &Config{
		ServerURL:         serverURL,
		Timeout:           2 * time.Second,
		QuickCreateTarget: "row",
		FormsetPrefix:     orderform.DefaultPrefix,
		Rules: RulesConfig{
			RequireSupplier:      true,
			RequirePaymentMethod: true,
			RequireQuantity:      true,
		},
	}
}

// newTestModel returns a model with the test catalog already loaded.
func newTestModel(t *testing.T, cfg *Config) Model {
	t.Helper()
	m := NewModel(cfg, NewClient(cfg))
	return update(t, m, catalogLoadedMsg{testCatalog()})
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

// updateCmd applies one message and returns the command it produced.
func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func typed(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
