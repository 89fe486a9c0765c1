// Package tui is a terminal client for entering purchase orders against the
// compras server. Rows, totals and the submit gate run locally through
// orderform; supplies and suppliers are created in the background through
// quickcreate while the form stays on screen.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"comprasweb/orderform"
	"comprasweb/quickcreate"
)

type fieldKind int

const (
	fieldSupplier fieldKind = iota
	fieldPaymentMethod
	fieldEmployee
	fieldSupply
	fieldQuantity
	fieldPrice
)

// focusTarget is one focusable control. row is the formset index for row
// fields.
type focusTarget struct {
	kind fieldKind
	row  int
}

type modalKind int

const (
	modalSupply modalKind = iota
	modalSupplier
)

// modal is an open quick-create dialog.
type modal struct {
	kind    modalKind
	form    *quickcreate.ModalForm
	labels  []string
	names   []string
	inputs  []textinput.Model
	focus   int
	pending bool
}

// status is the one-line message area. It doubles as the bridge's notifier,
// so alerts raised while handling a response land on screen.
type status struct {
	text    string
	isError bool
}

func (s *status) Alert(message string) {
	s.text = message
	s.isError = true
}

func (s *status) info(message string) {
	s.text = message
	s.isError = false
}

// Messages
type catalogLoadedMsg struct {
	catalog *Catalog
}

type errorMsg struct {
	err error
}

type quickCreateDoneMsg struct {
	kind modalKind
	resp *quickcreate.Response
	err  error
}

type orderSubmittedMsg struct {
	resp *quickcreate.Response
	err  error
}

// Model is the order entry screen.
type Model struct {
	cfg    *Config
	client *Client
	bridge *quickcreate.Bridge
	target quickcreate.Target

	catalog *Catalog
	form    *orderform.Form
	loading bool
	saving  bool

	focus int
	cell  textinput.Model
	// cellFor is the field the cell editor currently mirrors.
	cellFor focusTarget
	editing bool

	modal  *modal
	status *status

	width  int
	height int
}

// NewModel returns a model that loads its catalog on Init.
func NewModel(cfg *Config, client *Client) Model {
	target, err := cfg.Target()
	if err != nil {
		log.Printf("tui: %v, using row target", err)
	}
	st := &status{}
	cell := textinput.New()
	cell.Prompt = ""
	cell.CharLimit = 16

	return Model{
		cfg:     cfg,
		client:  client,
		bridge:  quickcreate.NewBridge(client.HTTPClient(), st),
		target:  target,
		loading: true,
		cell:    cell,
		status:  st,
	}
}

// withCatalog installs a loaded catalog and starts a fresh order.
func (m Model) withCatalog(cat *Catalog) Model {
	m.catalog = cat
	m.form = NewForm(cat, m.cfg)
	m.loading = false
	m.focus = 0
	m.editing = false
	return m
}

func (m Model) Init() tea.Cmd {
	return m.loadCatalog()
}

func (m Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		cat, err := m.client.LoadCatalog(context.Background())
		if err != nil {
			return errorMsg{err}
		}
		return catalogLoadedMsg{cat}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case catalogLoadedMsg:
		first := m.catalog == nil
		m = m.withCatalog(msg.catalog)
		if first {
			m.status.info(fmt.Sprintf("%d insumos, %d proveedores", len(msg.catalog.Supplies), len(msg.catalog.Suppliers)))
		}
		return m, m.syncCell()

	case errorMsg:
		m.loading = false
		log.Printf("tui: %v", msg.err)
		m.status.Alert("Error: " + msg.err.Error())
		return m, nil

	case quickCreateDoneMsg:
		return m.handleQuickCreate(msg)

	case orderSubmittedMsg:
		return m.handleOrderSubmitted(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.form == nil {
			if msg.String() == "q" || msg.String() == "esc" {
				return m, tea.Quit
			}
			return m, nil
		}
		if m.modal != nil {
			return m.updateModal(msg)
		}
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.moveFocus(1)
		return m, m.syncCell()

	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, m.syncCell()

	case "left":
		if m.cycleFocused(-1) {
			return m, nil
		}
	case "right":
		if m.cycleFocused(1) {
			return m, nil
		}

	case "ctrl+n":
		row, markup, err := m.form.AddRow()
		if errors.Is(err, orderform.ErrNoTemplate) {
			m.status.Alert("No se pueden agregar filas")
			return m, nil
		}
		if err != nil {
			m.status.Alert(err.Error())
			return m, nil
		}
		log.Printf("tui: row added: %s", markup)
		m.focusRow(row.Index, fieldSupply)
		return m, m.syncCell()

	case "ctrl+d":
		t, ok := m.focused()
		if !ok || t.kind < fieldSupply {
			m.status.Alert("Seleccione una fila para eliminar")
			return m, nil
		}
		if err := m.form.DeleteRow(t.row); err != nil {
			m.status.Alert(err.Error())
			return m, nil
		}
		m.moveFocus(0)
		return m, m.syncCell()

	case "ctrl+t":
		m.openModal(modalSupply)
		return m, m.modalFocus()

	case "ctrl+p":
		m.openModal(modalSupplier)
		return m, m.modalFocus()

	case "ctrl+s":
		if m.saving {
			return m, nil
		}
		if !m.form.Validate() {
			m.status.Alert("No se puede registrar: " + m.form.Issues()[0].String())
			return m, nil
		}
		m.saving = true
		m.status.info("Registrando compra...")
		return m, m.submitOrder()
	}

	if m.editing {
		var cmd tea.Cmd
		m.cell, cmd = m.cell.Update(msg)
		m.applyCell()
		return m, cmd
	}
	return m, nil
}

// targets lists the focusable controls in screen order. Hidden rows are
// skipped.
func (m *Model) targets() []focusTarget {
	out := []focusTarget{{kind: fieldSupplier}, {kind: fieldPaymentMethod}, {kind: fieldEmployee}}
	for _, r := range m.form.Rows {
		if r.Hidden {
			continue
		}
		out = append(out,
			focusTarget{kind: fieldSupply, row: r.Index},
			focusTarget{kind: fieldQuantity, row: r.Index},
			focusTarget{kind: fieldPrice, row: r.Index},
		)
	}
	return out
}

func (m *Model) focused() (focusTarget, bool) {
	ts := m.targets()
	if m.focus < 0 || m.focus >= len(ts) {
		return focusTarget{}, false
	}
	return ts[m.focus], true
}

// moveFocus moves by delta, wrapping; a delta of 0 only clamps.
func (m *Model) moveFocus(delta int) {
	n := len(m.targets())
	if n == 0 {
		m.focus = 0
		return
	}
	if delta == 0 {
		if m.focus >= n {
			m.focus = n - 1
		}
		return
	}
	m.focus = ((m.focus+delta)%n + n) % n
}

func (m *Model) focusRow(index int, kind fieldKind) {
	for i, t := range m.targets() {
		if t.row == index && t.kind == kind {
			m.focus = i
			return
		}
	}
}

// cycleFocused moves the selection of a focused select and reports whether
// one was focused.
func (m *Model) cycleFocused(delta int) bool {
	t, ok := m.focused()
	if !ok {
		return false
	}
	switch t.kind {
	case fieldSupplier:
		m.form.Supplier.Cycle(delta)
	case fieldPaymentMethod:
		m.form.PaymentMethod.Cycle(delta)
	case fieldEmployee:
		m.form.Employee.Cycle(delta)
	case fieldSupply:
		r := m.form.RowByIndex(t.row)
		if r == nil {
			return false
		}
		r.Supply.Cycle(delta)
		m.form.RecomputeRow(r)
		return true
	default:
		return false
	}
	m.form.Validate()
	return true
}

// syncCell points the cell editor at the focused quantity or price, or
// releases it when a select is focused.
func (m *Model) syncCell() tea.Cmd {
	t, ok := m.focused()
	if !ok || (t.kind != fieldQuantity && t.kind != fieldPrice) {
		m.editing = false
		m.cell.Blur()
		return nil
	}
	r := m.form.RowByIndex(t.row)
	if r == nil {
		m.editing = false
		return nil
	}
	m.cellFor = t
	m.editing = true
	if t.kind == fieldQuantity {
		m.cell.SetValue(r.Quantity)
	} else {
		m.cell.SetValue(r.Price)
	}
	m.cell.CursorEnd()
	return m.cell.Focus()
}

// applyCell writes the editor's text into its row and recomputes. The
// editor keeps what was typed; the row holds the normalised value.
func (m *Model) applyCell() {
	r := m.form.RowByIndex(m.cellFor.row)
	if r == nil {
		return
	}
	switch m.cellFor.kind {
	case fieldQuantity:
		r.Quantity = m.cell.Value()
	case fieldPrice:
		r.Price = m.cell.Value()
	default:
		return
	}
	m.form.RecomputeRow(r)
}

func (m Model) submitOrder() tea.Cmd {
	bridge := m.bridge
	action := m.client.URL(m.catalog.endpoint("compra", "/compras"))
	fields := m.form.Values()
	return func() tea.Msg {
		resp, err := bridge.Post(context.Background(), action, fields)
		return orderSubmittedMsg{resp: resp, err: err}
	}
}

func (m Model) handleOrderSubmitted(msg orderSubmittedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		log.Printf("tui: submit order: %v", msg.err)
		m.status.Alert(quickcreate.GenericFailure)
		return m, nil
	}
	if !msg.resp.Success {
		m.status.Alert("Error: " + msg.resp.ErrorText())
		return m, nil
	}

	// Start over from a fresh catalog so supplies created meanwhile are
	// offered with their prices.
	m.status.info(fmt.Sprintf("Compra %s registrada", msg.resp.ID))
	m.loading = true
	m.form = nil
	return m, m.loadCatalog()
}
