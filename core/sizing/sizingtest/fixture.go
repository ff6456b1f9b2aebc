// Package sizingtest provides a small reference table shaped like the
// authority workbooks for use in tests.
package sizingtest

import "github.com/kilianp07/evsizer/core/reftable"

// Row numbers populated by Table.
const (
	MEA80kW        = 9
	MEATransformer = 33

	PEA80kW         = 57
	PEA120kW        = 58
	PEA160kW        = 59
	PEATransformer  = 79
	PEASmallerTrafo = 78
)

// Rows returns a fresh copy of the fixture rows.
func Rows() map[int]reftable.Row {
	n := reftable.Number
	s := reftable.Text
	return map[int]reftable.Row{
		MEA80kW: {
			"C":  n(115.5),
			"AD": s("160AT/250AF"),
			"AH": s("4x(1x50)"), "AI": s("sq.mm."),
			"AY": n(1.5),
			"BF": s("4x(1x70)"), "BW": n(50),
		},
		MEATransformer: {
			"A": s("300 kVA"),
			"L": s("500AT"), "O": s("630AF"),
			"P": s("2x(4x1C 240)"), "Q": s("sq.mm."),
			"AG": n(4),
		},
		PEA80kW: {
			"C":  n(115.5),
			"AB": s("160AT/250AF"),
			"AF": s("4x(1x50)"), "AG": s("sq.mm."),
			"AW": n(1.5),
			"BD": s("4x(1x70)"), "BU": n(50),
		},
		PEA120kW: {
			"C":  n(173.2),
			"AB": s("250AT/250AF"),
			"AF": s("4x(1x95)"), "AG": s("sq.mm."),
			"AW": n(2),
			"BD": s("4x(1x120)"), "BU": n(65),
		},
		PEA160kW: {
			"C":  n(230.9),
			"AB": s("315AT/400AF"),
			"AF": s("4 X (1 × 50)"), "AG": s("SQ.MM."),
			"AW": n(2),
			"BD": s("4x(1x70)"), "BU": n(65),
		},
		PEASmallerTrafo: {
			"A": n(200),
			"L": s("315AT"), "O": s("400AF"),
			"P": s("4x1C 185"), "Q": s("sq.mm."),
			"AG": n(3),
		},
		PEATransformer: {
			"A": n(250),
			"L": s(""), "N": s("400AT"), "O": s("630AF"),
			"P": s("2x(4x1C 240)"), "Q": s("sq.mm."), "R": n(0),
			"AG": n(4),
			"AK": s("2x(4x1C 300)"), "BB": n(150),
			"BF": s("4x1C 240"), "BW": n(30),
			"CA": s("4x1C 185"), "CR": n(20),
		},
	}
}

// Table returns the fixture as an immutable reftable.Table.
func Table() *reftable.Table { return reftable.NewTable(Rows()) }
