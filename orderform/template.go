package orderform

import (
	"strconv"
	"strings"
)

// Placeholder is the token a row template uses wherever the row index goes.
const Placeholder = "__prefix__"

// RowTemplate produces new rows. Markup is the rendered markup of an empty
// row with Placeholder in every field name and id.
type RowTemplate struct {
	Markup        string
	SupplyOptions []Option
}

// CreateRowAt instantiates the template for index, returning the structured
// row and its markup with every Placeholder replaced by the index.
func (t *RowTemplate) CreateRowAt(index int) (*Row, string) {
	markup := strings.ReplaceAll(t.Markup, Placeholder, strconv.Itoa(index))
	return NewRow(index, t.SupplyOptions), markup
}

// AddSupplyOption makes opt available to rows created from now on.
func (t *RowTemplate) AddSupplyOption(opt Option) {
	for _, o := range t.SupplyOptions {
		if o.Value == opt.Value {
			return
		}
	}
	t.SupplyOptions = append(t.SupplyOptions, opt)
}
