package orderform

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// DefaultPrefix is the formset prefix of the order detail rows.
const DefaultPrefix = "detallescompra_set"

// Header field names.
const (
	FieldSupplier      = "proveedor"
	FieldPaymentMethod = "forma_pago"
	FieldEmployee      = "empleado"
)

// FormOptions carries what a posted form cannot: the choices behind each
// select, the shared price table, the row template and the submit rules.
type FormOptions struct {
	Prefix         string
	Suppliers      []Option
	PaymentMethods []Option
	Employees      []Option
	Supplies       []Option
	Prices         *PriceTable
	Template       *RowTemplate
	Rules          Rules
}

// ParseForm reads an order form from submitted values. Rows are ordered by
// formset index. TotalForms is never below the highest index seen plus one.
// Nothing is recomputed; call Initialize for that.
func ParseForm(values url.Values, opts FormOptions) *Form {
	f := New(opts.Prices, opts.Template, opts.Rules)
	if opts.Prefix != "" {
		f.Prefix = opts.Prefix
	}

	f.Supplier = NewSelect(opts.Suppliers)
	f.Supplier.Value = strings.TrimSpace(values.Get(FieldSupplier))
	f.PaymentMethod = NewSelect(opts.PaymentMethods)
	f.PaymentMethod.Value = strings.TrimSpace(values.Get(FieldPaymentMethod))
	f.Employee = NewSelect(opts.Employees)
	f.Employee.Value = strings.TrimSpace(values.Get(FieldEmployee))

	f.TotalForms = atoiOrZero(values.Get(f.managementKey("TOTAL_FORMS")))
	f.InitialForms = atoiOrZero(values.Get(f.managementKey("INITIAL_FORMS")))

	for _, idx := range rowIndices(values, f.Prefix) {
		r := &Row{Index: idx, Supply: NewSelect(opts.Supplies)}
		get := func(field string, bit fieldSet) (string, bool) {
			v, ok := values[f.FieldName(idx, field)]
			if !ok {
				return "", false
			}
			r.fields |= bit
			if len(v) == 0 {
				return "", true
			}
			return strings.TrimSpace(v[0]), true
		}

		r.Supply.Value, _ = get(RowFieldSupply, hasSupply)
		r.Quantity, _ = get(RowFieldQuantity, hasQuantity)
		r.Price, _ = get(RowFieldPrice, hasPrice)
		r.Subtotal, _ = get(RowFieldSubtotal, hasSubtotal)
		r.ID, _ = get(RowFieldID, 0)

		del, hasDelete := get(RowFieldDelete, 0)
		r.Persisted = r.ID != "" || hasDelete
		r.Deleted = r.Persisted && truthy(del)
		r.Hidden = r.Deleted

		f.Rows = append(f.Rows, r)
		if idx+1 > f.TotalForms {
			f.TotalForms = idx + 1
		}
	}

	return f
}

// Values writes the form back in the same shape ParseForm reads.
func (f *Form) Values() url.Values {
	v := url.Values{}
	v.Set(FieldSupplier, f.Supplier.Value)
	v.Set(FieldPaymentMethod, f.PaymentMethod.Value)
	if f.Employee.Value != "" {
		v.Set(FieldEmployee, f.Employee.Value)
	}
	v.Set(f.managementKey("TOTAL_FORMS"), strconv.Itoa(f.TotalForms))
	v.Set(f.managementKey("INITIAL_FORMS"), strconv.Itoa(f.InitialForms))

	for _, r := range f.Rows {
		if r.ID != "" {
			v.Set(f.FieldName(r.Index, RowFieldID), r.ID)
		}
		if r.fields&hasSupply != 0 {
			v.Set(f.FieldName(r.Index, RowFieldSupply), r.Supply.Value)
		}
		if r.fields&hasQuantity != 0 {
			v.Set(f.FieldName(r.Index, RowFieldQuantity), r.Quantity)
		}
		if r.fields&hasPrice != 0 {
			v.Set(f.FieldName(r.Index, RowFieldPrice), r.Price)
		}
		if r.fields&hasSubtotal != 0 {
			v.Set(f.FieldName(r.Index, RowFieldSubtotal), r.Subtotal)
		}
		if r.Persisted && r.Deleted {
			v.Set(f.FieldName(r.Index, RowFieldDelete), "on")
		}
	}
	return v
}

// FieldName returns the formset name of a row sub-field, e.g.
// "detallescompra_set-3-cantidad".
func (f *Form) FieldName(index int, field string) string {
	return fmt.Sprintf("%s-%d-%s", f.Prefix, index, field)
}

// TemplateFieldName is FieldName with the template placeholder as index.
func (f *Form) TemplateFieldName(field string) string {
	return f.Prefix + "-" + Placeholder + "-" + field
}

// TotalFormsName is the name of the TOTAL_FORMS management field.
func (f *Form) TotalFormsName() string {
	return f.managementKey("TOTAL_FORMS")
}

// InitialFormsName is the name of the INITIAL_FORMS management field.
func (f *Form) InitialFormsName() string {
	return f.managementKey("INITIAL_FORMS")
}

func (f *Form) managementKey(name string) string {
	return f.Prefix + "-" + name
}

// rowIndices returns the sorted distinct row indices present in values.
func rowIndices(values url.Values, prefix string) []int {
	seen := make(map[int]bool)
	head := prefix + "-"
	for key := range values {
		if !strings.HasPrefix(key, head) {
			continue
		}
		rest := key[len(head):]
		dash := strings.IndexByte(rest, '-')
		if dash <= 0 {
			continue
		}
		idx, err := strconv.Atoi(rest[:dash])
		if err != nil || idx < 0 {
			continue
		}
		seen[idx] = true
	}

	out := make([]int, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
