package export

import (
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/kilianp07/evsizer/core/model"
)

// WritePDF writes an A4 summary of res.
func WritePDF(w io.Writer, res model.SizingResult) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
		}).
		Build()

	m := maroto.New(cfg)
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("EV charger station sizing (%s)", res.Authority), props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(4),
	)
	addItemHeader(m)
	for i, it := range BOQ(res) {
		addItemRow(m, it, i%2 == 1)
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	_, err = w.Write(doc.GetBytes())
	return err
}

func addItemHeader(m core.Maroto) {
	headerText := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}
	m.AddRows(
		row.New(8).Add(
			col.New(4).Add(text.New("Item", headerText)).WithStyle(&headerCell),
			col.New(8).Add(text.New("Specification", headerText)).WithStyle(&headerCell),
		),
	)
}

func addItemRow(m core.Maroto, it Item, shaded bool) {
	body := props.Text{Size: 8}
	label := col.New(4).Add(text.New(it.Item, props.Text{Size: 8, Style: fontstyle.Bold}))
	spec := col.New(8).Add(text.New(it.Specification, body))
	if shaded {
		cell := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
		label = label.WithStyle(cell)
		spec = spec.WithStyle(cell)
	}
	m.AddRows(row.New(7).Add(label, spec))
}
