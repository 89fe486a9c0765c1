package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders one compra as an A4 portrait PDF.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	addTableHeader(m)
	for i, r := range data.Rows {
		addTableRow(m, r, i%2 == 1)
	}
	addTotal(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title(), props.Text{
					Size:  15,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	grey := &props.Color{Red: 80, Green: 80, Blue: 80}
	left := props.Text{Size: 9, Align: align.Left, Color: grey}
	right := props.Text{Size: 9, Align: align.Right, Color: grey}

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("Proveedor: "+data.Proveedor, left)),
			col.New(6).Add(text.New("Fecha: "+data.FechaCompra, right)),
		),
		row.New(6).Add(
			col.New(6).Add(text.New("CUIT: "+data.CUIT, left)),
			col.New(6).Add(text.New("Forma de pago: "+data.FormaPago, right)),
		),
	)
	if data.Empleado != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(text.New("Registrada por: "+data.Empleado, left)),
			),
		)
	}

	m.AddRows(row.New(4))
}

func addTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Insumo", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Cantidad", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Precio unitario", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Subtotal", headerText)).WithStyle(&headerCell),
		),
	)
}

// addTableRow adds one detail line; striped rows get a light background.
func addTableRow(m core.Maroto, r ExportRow, striped bool) {
	base := props.Text{Size: 8, Align: align.Center}
	leftText := base
	leftText.Align = align.Left
	rightText := base
	rightText.Align = align.Right

	insumo := r.Insumo
	if r.Unidad != "" {
		insumo += " (" + r.Unidad + ")"
	}

	cols := []core.Col{
		col.New(1).Add(text.New(fmt.Sprintf("%d", r.Index), base)),
		col.New(5).Add(text.New(insumo, leftText)),
		col.New(2).Add(text.New(FormatQty(r.Cantidad), rightText)),
		col.New(2).Add(text.New(FormatARS(r.Precio), rightText)),
		col.New(2).Add(text.New(FormatARS(r.Subtotal), rightText)),
	}
	if striped {
		cell := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
		for i := range cols {
			cols[i] = cols[i].WithStyle(cell)
		}
	}

	m.AddRows(row.New(7).Add(cols...))
}

func addTotal(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	cell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	bold := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}

	m.AddRows(
		row.New(9).Add(
			col.New(8).Add(text.New("Total", bold)).WithStyle(cell),
			col.New(4).Add(text.New(FormatARS(data.Total), bold)).WithStyle(cell),
		),
	)
}
