package tui

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"comprasweb/quickcreate"
)

type modalField struct {
	name  string
	label string
}

var supplyFields = []modalField{
	{"nombre", "Nombre"},
	{"precio_costo_unitario", "Precio de costo"},
	{"unidad_medida", "Unidad de medida"},
	{"descripcion", "Descripción"},
}

var supplierFields = []modalField{
	{"nombre", "Nombre"},
	{"cuit", "CUIT"},
	{"telefono", "Teléfono"},
	{"email", "Email"},
	{"ciudad", "Ciudad"},
}

func (k modalKind) title() string {
	if k == modalSupplier {
		return "Nuevo proveedor"
	}
	return "Nuevo insumo"
}

func (m *Model) openModal(kind modalKind) {
	fields, id, action := supplyFields, "insumo-modal", m.catalog.endpoint("insumo", "/insumos/quick")
	if kind == modalSupplier {
		fields, id, action = supplierFields, "proveedor-modal", m.catalog.endpoint("proveedor", "/proveedores/quick")
	}

	md := &modal{
		kind: kind,
		form: quickcreate.NewModalForm(id, m.client.URL(action)),
	}
	for _, f := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 120
		md.names = append(md.names, f.name)
		md.labels = append(md.labels, f.label)
		md.inputs = append(md.inputs, in)
	}
	if kind == modalSupply {
		quickcreate.PrefillSupplier(md.form, m.form, "proveedor")
	}
	md.form.Open()

	m.editing = false
	m.cell.Blur()
	m.modal = md
}

// modalFocus focuses the modal's current input and blurs the rest.
func (m *Model) modalFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.modal.inputs {
		if i == m.modal.focus {
			cmd = m.modal.inputs[i].Focus()
		} else {
			m.modal.inputs[i].Blur()
		}
	}
	return cmd
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	md := m.modal
	pressed := msg.String()
	if md.pending && pressed != "esc" {
		return m, nil
	}

	switch pressed {
	case "esc":
		// A response still in flight is dropped when it arrives.
		if md.pending {
			m.status.info("")
		}
		md.form.Close()
		m.modal = nil
		return m, m.syncCell()

	case "tab", "down":
		md.focus = (md.focus + 1) % len(md.inputs)
		return m, m.modalFocus()

	case "shift+tab", "up":
		md.focus = (md.focus - 1 + len(md.inputs)) % len(md.inputs)
		return m, m.modalFocus()

	case "enter":
		for i, in := range md.inputs {
			md.form.Set(md.names[i], in.Value())
		}
		md.pending = true
		m.status.info("Guardando...")
		return m, m.submitModal(md)
	}

	var cmd tea.Cmd
	md.inputs[md.focus], cmd = md.inputs[md.focus].Update(msg)
	return m, cmd
}

// submitModal posts a snapshot of the modal's fields off the update loop.
func (m Model) submitModal(md *modal) tea.Cmd {
	bridge := m.bridge
	kind := md.kind
	action := md.form.Action
	fields := make(map[string][]string, len(md.form.Fields))
	for k, v := range md.form.Fields {
		fields[k] = append([]string(nil), v...)
	}
	return func() tea.Msg {
		resp, err := bridge.Post(context.Background(), action, fields)
		return quickCreateDoneMsg{kind: kind, resp: resp, err: err}
	}
}

// handleQuickCreate applies a create acknowledgement on the update loop. A
// failure leaves the modal open with its values for correction.
func (m Model) handleQuickCreate(msg quickCreateDoneMsg) (tea.Model, tea.Cmd) {
	md := m.modal
	if md == nil || md.kind != msg.kind {
		log.Printf("tui: create response for a closed modal ignored")
		return m, nil
	}
	md.pending = false

	var onSuccess quickcreate.SuccessHandler
	what := "Insumo"
	if msg.kind == modalSupplier {
		onSuccess = quickcreate.SupplierCreated(m.form)
		what = "Proveedor"
	} else {
		onSuccess = quickcreate.SupplyCreated(m.form, m.target)
	}

	if !m.bridge.Handle(msg.resp, msg.err, md.form, onSuccess) {
		return m, m.modalFocus()
	}

	m.modal = nil
	m.status.info(fmt.Sprintf("%s %s creado", what, msg.resp.Nombre))
	if msg.kind == modalSupply {
		if r := m.form.LastRow(); r != nil {
			m.focusRow(r.Index, fieldQuantity)
		}
	}
	return m, m.syncCell()
}
