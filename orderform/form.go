// Package orderform models the purchase-order entry form: its detail rows,
// the derived subtotals and order total, and the submit gate.
//
// A Form is not safe for concurrent use. Callers drive it from a single
// event loop (an HTTP request, or the terminal client's Update).
package orderform

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNoTemplate  = errors.New("orderform: row template not available")
	ErrRowNotFound = errors.New("orderform: row not found")
)

var one = decimal.NewFromInt(1)

// Rules selects which fields gate submission. Rows always need a supply and a
// positive unit price.
type Rules struct {
	RequireSupplier      bool
	RequirePaymentMethod bool
	RequireEmployee      bool
	RequireQuantity      bool
}

// DefaultRules requires supplier, payment method and a positive quantity.
func DefaultRules() Rules {
	return Rules{
		RequireSupplier:      true,
		RequirePaymentMethod: true,
		RequireQuantity:      true,
	}
}

// Issue is one reason the form cannot be submitted. Row is -1 for header
// fields.
type Issue struct {
	Row     int
	Field   string
	Message string
}

func (i Issue) String() string {
	if i.Row < 0 {
		return i.Message
	}
	return fmt.Sprintf("fila %d: %s", i.Row+1, i.Message)
}

// Form is the order being entered.
type Form struct {
	Prefix        string
	Supplier      Select
	PaymentMethod Select
	Employee      Select

	Rows []*Row

	// TotalForms mirrors the formset TOTAL_FORMS counter. It only grows.
	TotalForms   int
	InitialForms int

	Total         decimal.Decimal
	SubmitEnabled bool

	Prices   *PriceTable
	Template *RowTemplate
	Rules    Rules
}

// New returns an empty form. prices and tmpl may be nil; without a template
// AddRow is disabled.
func New(prices *PriceTable, tmpl *RowTemplate, rules Rules) *Form {
	if prices == nil {
		prices = NewPriceTable(nil)
	}
	return &Form{
		Prefix:   DefaultPrefix,
		Prices:   prices,
		Template: tmpl,
		Rules:    rules,
	}
}

// Initialize prepares rows that came with the form: blank quantities default
// to 1 and every subtotal is computed, then the total.
func (f *Form) Initialize() {
	for _, r := range f.Rows {
		f.wireRow(r)
	}
	f.RecomputeTotal()
}

// AddRow appends a new row at the current TotalForms index and advances the
// counter. It returns the row and its markup.
func (f *Form) AddRow() (*Row, string, error) {
	if f.Template == nil {
		return nil, "", ErrNoTemplate
	}
	i := f.TotalForms
	row, markup := f.Template.CreateRowAt(i)
	f.Rows = append(f.Rows, row)
	f.wireRow(row)
	f.TotalForms = i + 1
	f.RecomputeTotal()
	return row, markup, nil
}

func (f *Form) wireRow(r *Row) {
	if r.fields&hasQuantity != 0 && r.Quantity == "" {
		r.Quantity = "1"
	}
	f.recomputeRow(r)
}

// RecomputeRow normalises the row's quantity, fills a missing price from the
// price table, recomputes its subtotal and then the order total.
func (f *Form) RecomputeRow(r *Row) {
	f.recomputeRow(r)
	f.RecomputeTotal()
}

func (f *Form) recomputeRow(r *Row) {
	if r == nil || !r.WellFormed() {
		return
	}

	qty := r.QuantityValue()
	if !qty.IsPositive() {
		qty = one
		r.Quantity = "1"
	}

	price := r.PriceValue()
	if !price.IsPositive() {
		if p, ok := f.Prices.Lookup(r.Supply.Value); ok && p.IsPositive() {
			price = p
			r.Price = FormatAmount(p)
		}
	}
	if price.IsNegative() {
		price = decimal.Zero
	}

	r.Subtotal = FormatAmount(qty.Mul(price))
}

// RecomputeTotal sums the subtotals of active rows and re-evaluates the
// submit gate.
func (f *Form) RecomputeTotal() {
	sum := decimal.Zero
	for _, r := range f.Rows {
		if !r.Active() {
			continue
		}
		sum = sum.Add(r.SubtotalValue())
	}
	f.Total = sum.Round(2)
	f.Validate()
}

// DeleteRow removes the row with the given formset index. Persisted rows are
// flagged and hidden so the deletion reaches the server; client rows are
// dropped outright.
func (f *Form) DeleteRow(index int) error {
	pos := f.position(index)
	if pos < 0 {
		return fmt.Errorf("delete row %d: %w", index, ErrRowNotFound)
	}
	r := f.Rows[pos]
	if r.Persisted {
		r.Deleted = true
		r.Hidden = true
	} else {
		f.Rows = append(f.Rows[:pos], f.Rows[pos+1:]...)
	}
	f.RecomputeTotal()
	return nil
}

// Validate updates SubmitEnabled and returns it.
func (f *Form) Validate() bool {
	f.SubmitEnabled = len(f.Issues()) == 0
	return f.SubmitEnabled
}

// Issues lists every reason the form cannot be submitted, header first. A
// row missing any sub-field is reported once as incomplete.
func (f *Form) Issues() []Issue {
	var issues []Issue
	if f.Rules.RequireSupplier && !f.Supplier.Selected() {
		issues = append(issues, Issue{Row: -1, Field: FieldSupplier, Message: "Seleccione un proveedor"})
	}
	if f.Rules.RequirePaymentMethod && !f.PaymentMethod.Selected() {
		issues = append(issues, Issue{Row: -1, Field: FieldPaymentMethod, Message: "Seleccione una forma de pago"})
	}
	if f.Rules.RequireEmployee && !f.Employee.Selected() {
		issues = append(issues, Issue{Row: -1, Field: FieldEmployee, Message: "Seleccione un empleado"})
	}

	for n, r := range f.Rows {
		if r.Deleted {
			continue
		}
		// Totals skip incomplete rows, so they cannot be submitted either.
		if missing := r.missingField(); missing != "" {
			issues = append(issues, Issue{Row: n, Field: missing, Message: "la fila está incompleta"})
			continue
		}
		if r.Supply.Value == "" {
			issues = append(issues, Issue{Row: n, Field: RowFieldSupply, Message: "seleccione un insumo"})
		}
		if f.Rules.RequireQuantity {
			if q, ok := parseStrict(r.Quantity); !ok || !q.IsPositive() {
				issues = append(issues, Issue{Row: n, Field: RowFieldQuantity, Message: "la cantidad debe ser mayor a cero"})
			}
		}
		if p, ok := parseStrict(r.Price); !ok || !p.IsPositive() {
			issues = append(issues, Issue{Row: n, Field: RowFieldPrice, Message: "el precio debe ser mayor a cero"})
		}
	}
	return issues
}

// RowByIndex returns the row with the given formset index, or nil.
func (f *Form) RowByIndex(index int) *Row {
	if pos := f.position(index); pos >= 0 {
		return f.Rows[pos]
	}
	return nil
}

// LastRow returns the last row still shown, or nil.
func (f *Form) LastRow() *Row {
	for i := len(f.Rows) - 1; i >= 0; i-- {
		if !f.Rows[i].Hidden {
			return f.Rows[i]
		}
	}
	return nil
}

// ActiveRows returns the rows that count towards the total.
func (f *Form) ActiveRows() []*Row {
	var out []*Row
	for _, r := range f.Rows {
		if r.Active() {
			out = append(out, r)
		}
	}
	return out
}

func (f *Form) position(index int) int {
	for i, r := range f.Rows {
		if r.Index == index {
			return i
		}
	}
	return -1
}
