package pdfdoc

import "time"

// Color is an RGB triple.
type Color struct {
	R, G, B int
}

// Layout holds every measurement used by the canvas, in millimetres.
type Layout struct {
	PageSize   string
	PageWidth  float64
	PageHeight float64

	MarginLeft  float64
	MarginRight float64
	MarginTop   float64

	// BreakAt is the cursor position after which a new page is started.
	BreakAt float64

	LineHeight       float64
	RowHeight        float64
	CellPadding      float64
	LetterheadHeight float64
	LabelHeight      float64
	KeyColumnWidth   float64

	FontFamily string
	FontSize   float64

	Brand     Color
	BrandText Color
	Text      Color
	Muted     Color
	Fill      Color
	Highlight Color
	Correct   Color

	CompanyName  string
	CompanyLines []string

	// Created is stamped into the PDF metadata. A fixed value keeps output
	// reproducible.
	Created time.Time
}

// DefaultLayout returns the A4 portrait layout shared by all generators.
func DefaultLayout() Layout {
	return Layout{
		PageSize:   "A4",
		PageWidth:  210,
		PageHeight: 297,

		MarginLeft:  15,
		MarginRight: 15,
		MarginTop:   12,

		BreakAt: 265,

		LineHeight:       6,
		RowHeight:        8,
		CellPadding:      2,
		LetterheadHeight: 30,
		LabelHeight:      10,
		KeyColumnWidth:   55,

		FontFamily: "Helvetica",
		FontSize:   10,

		Brand:     Color{R: 22, G: 58, B: 112},
		BrandText: Color{R: 255, G: 255, B: 255},
		Text:      Color{R: 33, G: 37, B: 41},
		Muted:     Color{R: 108, G: 117, B: 125},
		Fill:      Color{R: 241, G: 244, B: 249},
		Highlight: Color{R: 255, G: 243, B: 205},
		Correct:   Color{R: 25, G: 135, B: 84},

		CompanyName: "ExamDesk Examination Services",
		CompanyLines: []string{
			"2nd Floor, Shanti Towers, MG Road, Bengaluru 560001",
			"support@examdesk.in | +91-80-4000-1234",
		},
	}
}

// ContentWidth is the printable width between margins.
func (l Layout) ContentWidth() float64 {
	return l.PageWidth - l.MarginLeft - l.MarginRight
}
