package quickcreate

import (
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"comprasweb/orderform"
)

// Target selects which supply selectors receive a newly created supply.
type Target int

const (
	// TargetRow adds the supply to the last visible row only.
	TargetRow Target = iota
	// TargetAllRows adds it to every row and to the row template, selecting
	// it in the last visible row.
	TargetAllRows
)

// ParseTarget reads "row" or "all".
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "row":
		return TargetRow, nil
	case "all":
		return TargetAllRows, nil
	}
	return TargetRow, fmt.Errorf("quickcreate: unknown target %q", s)
}

func (t Target) String() string {
	if t == TargetAllRows {
		return "all"
	}
	return "row"
}

// SupplyCreated records the new supply's price, offers it as an option and
// recomputes the affected row so its price and subtotal fill in.
func SupplyCreated(form *orderform.Form, target Target) SuccessHandler {
	return func(resp *Response) {
		id := strings.TrimSpace(resp.ID.String())
		if id == "" {
			log.Printf("quickcreate: SupplyCreated: acknowledgement without id")
			return
		}

		price, err := decimal.NewFromString(strings.TrimSpace(resp.PrecioCostoUnitario.String()))
		if err != nil {
			log.Printf("quickcreate: SupplyCreated: unreadable price %q for %s: %v", resp.PrecioCostoUnitario, id, err)
		} else {
			form.Prices.Set(id, price)
		}

		opt := orderform.Option{Value: id, Label: resp.Nombre}
		row := form.LastRow()

		if target == TargetAllRows {
			for _, r := range form.Rows {
				if r != row {
					r.Supply.Append(opt, false)
				}
			}
			if form.Template != nil {
				form.Template.AddSupplyOption(opt)
			}
		}

		if row == nil {
			return
		}
		row.Supply.Append(opt, true)
		form.RecomputeRow(row)
	}
}

// SupplierCreated offers the new supplier in the order's supplier select and
// selects it.
func SupplierCreated(form *orderform.Form) SuccessHandler {
	return func(resp *Response) {
		id := strings.TrimSpace(resp.ID.String())
		if id == "" {
			log.Printf("quickcreate: SupplierCreated: acknowledgement without id")
			return
		}
		form.Supplier.Append(orderform.Option{Value: id, Label: resp.Nombre}, true)
		form.Validate()
	}
}

// PrefillSupplier copies the order's selected supplier into the modal's
// field, if there is one.
func PrefillSupplier(m *ModalForm, form *orderform.Form, field string) {
	if m == nil || form == nil || field == "" {
		return
	}
	if form.Supplier.Value == "" {
		return
	}
	m.Set(field, form.Supplier.Value)
}
