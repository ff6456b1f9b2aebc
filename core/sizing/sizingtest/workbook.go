package sizingtest

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook stores the fixture rows as an xlsx file at path. Row n of the
// fixture lands on sheet row n+1 so a zero row offset reads it back as row n.
func WriteWorkbook(path string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for n, row := range Rows() {
		for col, v := range row {
			cell := col + strconv.Itoa(n+1)
			var err error
			if v.IsText() {
				err = f.SetCellStr(sheet, cell, v.String())
			} else {
				fv, _ := v.Float()
				err = f.SetCellFloat(sheet, cell, fv, -1, 64)
			}
			if err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}
