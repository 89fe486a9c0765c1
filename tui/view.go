package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"comprasweb/orderform"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(16)

	focusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	deletedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Strikethrough(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4444")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	totalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFDF5"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(1, 2)

	cellStyle = lipgloss.NewStyle().Width(14)
	nameStyle = lipgloss.NewStyle().Width(28)
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Registrar compra"))
	b.WriteString("\n\n")

	if m.form == nil {
		if m.loading {
			b.WriteString("Cargando catálogo...\n")
		}
		b.WriteString("\n" + m.renderStatus() + "\n")
		b.WriteString(helpStyle.Render("q: salir"))
		return b.String()
	}

	if m.modal != nil {
		b.WriteString(m.renderModal())
		b.WriteString("\n" + m.renderStatus() + "\n")
		b.WriteString(helpStyle.Render("tab: siguiente campo • enter: guardar • esc: cancelar"))
		return b.String()
	}

	cur, _ := m.focused()
	b.WriteString(m.renderSelect("Proveedor", m.form.Supplier, cur.kind == fieldSupplier))
	b.WriteString(m.renderSelect("Forma de pago", m.form.PaymentMethod, cur.kind == fieldPaymentMethod))
	b.WriteString(m.renderSelect("Empleado", m.form.Employee, cur.kind == fieldEmployee))
	b.WriteString("\n")

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		nameStyle.Render("Insumo"), cellStyle.Render("Cantidad"), cellStyle.Render("Precio"), cellStyle.Render("Subtotal"))
	b.WriteString(helpStyle.Render(header) + "\n")
	for _, r := range m.form.Rows {
		b.WriteString(m.renderRow(r, cur) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(totalStyle.Render("Total: $ "+orderform.FormatAmount(m.form.Total)) + "\n")
	b.WriteString(m.renderSubmit() + "\n")
	b.WriteString(m.renderStatus() + "\n")
	b.WriteString(helpStyle.Render("tab/shift+tab: mover • ←/→: elegir • ctrl+n: fila • ctrl+d: borrar fila • ctrl+t: nuevo insumo • ctrl+p: nuevo proveedor • ctrl+s: registrar • ctrl+c: salir"))
	return b.String()
}

func (m Model) renderSelect(label string, s orderform.Select, focused bool) string {
	value := s.Label(s.Value)
	if value == "" {
		value = "---------"
	}
	value = "‹ " + value + " ›"
	if focused {
		value = focusStyle.Render(value)
	}
	return labelStyle.Render(label) + value + "\n"
}

func (m Model) renderRow(r *orderform.Row, cur focusTarget) string {
	if r.Hidden {
		label := r.Supply.Label(r.Supply.Value)
		return deletedStyle.Render(fmt.Sprintf("%s (eliminada)", label))
	}

	supply := r.Supply.Label(r.Supply.Value)
	if supply == "" {
		supply = "---------"
	}
	if cur.row == r.Index && cur.kind == fieldSupply {
		supply = focusStyle.Render("‹ " + supply + " ›")
	}

	cell := func(kind fieldKind, value string) string {
		if m.editing && cur.row == r.Index && cur.kind == kind {
			return focusStyle.Render(m.cell.View())
		}
		return value
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		nameStyle.Render(supply),
		cellStyle.Render(cell(fieldQuantity, r.Quantity)),
		cellStyle.Render(cell(fieldPrice, r.Price)),
		cellStyle.Render(r.Subtotal),
	)
}

func (m Model) renderSubmit() string {
	if m.saving {
		return helpStyle.Render("Registrando...")
	}
	if m.form.SubmitEnabled {
		return successStyle.Render("[ctrl+s] Registrar compra")
	}
	issues := m.form.Issues()
	if len(issues) == 0 {
		return helpStyle.Render("[ctrl+s] Registrar compra")
	}
	return helpStyle.Render("Registrar compra (deshabilitado: " + issues[0].String() + ")")
}

func (m Model) renderStatus() string {
	if m.status.text == "" {
		return ""
	}
	if m.status.isError {
		return errorStyle.Render(m.status.text)
	}
	return successStyle.Render(m.status.text)
}

func (m Model) renderModal() string {
	md := m.modal
	var b strings.Builder
	b.WriteString(focusStyle.Render(md.kind.title()) + "\n\n")
	for i, in := range md.inputs {
		label := labelStyle.Render(md.labels[i])
		if i == md.focus {
			label = focusStyle.Width(16).Render(md.labels[i])
		}
		b.WriteString(label + in.View() + "\n")
	}
	if md.kind == modalSupply {
		if p := md.form.Get("proveedor"); p != "" {
			b.WriteString("\n" + helpStyle.Render("Proveedor: "+m.form.Supplier.Label(p)))
		}
	}
	if md.pending {
		b.WriteString("\n" + helpStyle.Render("Guardando..."))
	}
	return boxStyle.Render(b.String())
}
