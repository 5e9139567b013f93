package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/jung-kurt/gofpdf"
)

// ErrUnsupportedImage is returned for image bytes that are neither PNG nor JPEG.
var ErrUnsupportedImage = errors.New("unsupported image format")

// Canvas wraps a gofpdf document and tracks the vertical cursor.
type Canvas struct {
	pdf    *gofpdf.Fpdf
	layout Layout
	tr     func(string) string

	y     float64
	label string
	logo  []byte

	headers int
	images  map[string]bool
}

// NewCanvas starts a document with one page carrying the letterhead and label.
// logo may be nil.
func NewCanvas(layout Layout, label string, logo []byte) *Canvas {
	pdf := gofpdf.New("P", "mm", layout.PageSize, "")
	pdf.SetMargins(layout.MarginLeft, layout.MarginTop, layout.MarginRight)
	pdf.SetAutoPageBreak(false, 0)
	if !layout.Created.IsZero() {
		pdf.SetCreationDate(layout.Created)
	}
	pdf.SetTitle(label, true)
	pdf.SetCreator(layout.CompanyName, true)

	c := &Canvas{
		pdf:    pdf,
		layout: layout,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		label:  label,
		logo:   logo,
		images: make(map[string]bool),
	}
	c.newPage()
	return c
}

// Y is the current cursor position.
func (c *Canvas) Y() float64 { return c.y }

// Pages returns the number of pages started so far.
func (c *Canvas) Pages() int { return c.pdf.PageCount() }

// Layout returns the layout the canvas was created with.
func (c *Canvas) Layout() Layout { return c.layout }

// Measure reports the width of s in the current font.
func (c *Canvas) Measure(s string) float64 {
	return c.pdf.GetStringWidth(c.tr(s))
}

// Gap moves the cursor down by h without drawing.
func (c *Canvas) Gap(h float64) {
	c.y += h
}

// EnsureSpace starts a new page when h more millimetres would pass BreakAt.
// It reports whether a page break happened.
func (c *Canvas) EnsureSpace(h float64) bool {
	if c.y+h <= c.layout.BreakAt {
		return false
	}
	c.newPage()
	return true
}

func (c *Canvas) newPage() {
	c.pdf.AddPage()
	c.y = c.layout.MarginTop
	c.Letterhead()
	if c.label != "" {
		c.Label(c.label)
	}
	c.headers++
}

// Letterhead draws the colored band with the optional logo and company text.
func (c *Canvas) Letterhead() {
	l := c.layout
	c.setFill(l.Brand)
	c.pdf.Rect(0, 0, l.PageWidth, l.LetterheadHeight, "F")

	textX := l.MarginLeft
	if len(c.logo) > 0 {
		size := l.LetterheadHeight - 8
		if err := c.Image("letterhead-logo", c.logo, l.MarginLeft, 4, size, size); err == nil {
			textX += size + 4
		}
	}

	c.setText(l.BrandText)
	c.pdf.SetFont(l.FontFamily, "B", 16)
	c.pdf.Text(textX, 12, c.tr(l.CompanyName))
	c.pdf.SetFont(l.FontFamily, "", 8)
	for i, line := range l.CompanyLines {
		c.pdf.Text(textX, 18+float64(i)*4.5, c.tr(line))
	}

	c.y = l.LetterheadHeight + 4
	c.resetFont()
}

// Label prints text centered in a rounded box.
func (c *Canvas) Label(text string) {
	l := c.layout
	c.pdf.SetFont(l.FontFamily, "B", 13)
	w := c.Measure(text) + 16
	x := (l.PageWidth - w) / 2

	c.setFill(l.Fill)
	c.setDraw(l.Brand)
	c.pdf.RoundedRect(x, c.y, w, l.LabelHeight, 2, "1234", "FD")
	c.setText(l.Brand)
	c.pdf.SetXY(x, c.y)
	c.pdf.CellFormat(w, l.LabelHeight, c.tr(text), "", 0, "CM", false, 0, "")

	c.y += l.LabelHeight + 6
	c.resetFont()
}

// Row is one key/value line of a details grid.
type Row struct {
	Key   string
	Value string
}

// Details prints a key/value grid. The page-break check runs before every row.
func (c *Canvas) Details(rows []Row) {
	c.DetailsBeside(rows, 0)
}

// DetailsBeside is Details with the value column narrowed by reserve, leaving
// room on the right for a photo.
func (c *Canvas) DetailsBeside(rows []Row, reserve float64) {
	l := c.layout
	valueX := l.MarginLeft + l.KeyColumnWidth
	valueW := l.ContentWidth() - l.KeyColumnWidth - reserve

	for _, r := range rows {
		lines := WrapText(c.Measure, r.Value, valueW)
		c.EnsureSpace(float64(len(lines)) * l.LineHeight)

		c.pdf.SetFont(l.FontFamily, "B", l.FontSize)
		c.setText(l.Muted)
		c.pdf.SetXY(l.MarginLeft, c.y)
		c.pdf.CellFormat(l.KeyColumnWidth, l.LineHeight, c.tr(r.Key), "", 0, "LM", false, 0, "")

		c.resetFont()
		for i, line := range lines {
			c.pdf.SetXY(valueX, c.y+float64(i)*l.LineHeight)
			c.pdf.CellFormat(valueW, l.LineHeight, c.tr(line), "", 0, "LM", false, 0, "")
		}
		c.y += float64(len(lines)) * l.LineHeight
	}
}

// Column describes one table column.
type Column struct {
	Title string
	Width float64
	Align string // "L", "C" or "R"
}

// TableHeader prints the column titles in a brand-colored row.
func (c *Canvas) TableHeader(cols []Column) {
	l := c.layout
	c.EnsureSpace(l.RowHeight)
	c.pdf.SetFont(l.FontFamily, "B", l.FontSize)
	c.setFill(l.Brand)
	c.setText(l.BrandText)

	x := l.MarginLeft
	for _, col := range cols {
		c.pdf.SetXY(x, c.y)
		c.pdf.CellFormat(col.Width, l.RowHeight, c.tr(col.Title), "1", 0, alignOf(col)+"M", true, 0, "")
		x += col.Width
	}
	c.y += l.RowHeight
	c.resetFont()
}

// Table prints one bordered, filled row. Cell text wraps at word boundaries
// and the row grows to the tallest cell.
func (c *Canvas) Table(cols []Column, cells []string) {
	l := c.layout
	pad := l.CellPadding

	wrapped := make([][]string, len(cols))
	maxLines := 1
	for i, col := range cols {
		var text string
		if i < len(cells) {
			text = cells[i]
		}
		wrapped[i] = WrapText(c.Measure, text, col.Width-2*pad)
		if n := len(wrapped[i]); n > maxLines {
			maxLines = n
		}
	}
	h := float64(maxLines)*l.LineHeight + pad
	if h < l.RowHeight {
		h = l.RowHeight
	}
	if c.EnsureSpace(h) {
		c.TableHeader(cols)
	}

	total := 0.0
	for _, col := range cols {
		total += col.Width
	}
	c.setFill(l.Fill)
	c.setDraw(l.Muted)
	c.pdf.Rect(l.MarginLeft, c.y, total, h, "FD")

	x := l.MarginLeft
	for i, col := range cols {
		if i > 0 {
			c.pdf.Line(x, c.y, x, c.y+h)
		}
		for j, line := range wrapped[i] {
			c.pdf.SetXY(x+pad, c.y+pad/2+float64(j)*l.LineHeight)
			c.pdf.CellFormat(col.Width-2*pad, l.LineHeight, c.tr(line), "", 0, alignOf(col)+"M", false, 0, "")
		}
		x += col.Width
	}
	c.y += h
}

// TotalBox prints a highlighted label/amount box aligned to the right margin.
func (c *Canvas) TotalBox(label, amount string) {
	l := c.layout
	h := l.RowHeight + 2
	c.EnsureSpace(h + 4)
	c.y += 4

	w := l.ContentWidth() / 2
	x := l.PageWidth - l.MarginRight - w
	c.setFill(l.Highlight)
	c.setDraw(l.Brand)
	c.pdf.Rect(x, c.y, w, h, "FD")

	c.pdf.SetFont(l.FontFamily, "B", l.FontSize+2)
	c.setText(l.Brand)
	c.pdf.SetXY(x+l.CellPadding, c.y)
	c.pdf.CellFormat(w/2, h, c.tr(label), "", 0, "LM", false, 0, "")
	c.pdf.SetXY(x+w/2, c.y)
	c.pdf.CellFormat(w/2-l.CellPadding, h, c.tr(amount), "", 0, "RM", false, 0, "")

	c.y += h
	c.resetFont()
}

// Image draws PNG or JPEG bytes into the given rectangle. The same name is
// registered once.
func (c *Canvas) Image(name string, data []byte, x, y, w, h float64) error {
	typ, err := imageType(data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	opts := gofpdf.ImageOptions{ImageType: typ}
	if !c.images[name] {
		c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		if c.pdf.Err() {
			return c.pdf.Error()
		}
		c.images[name] = true
	}
	c.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return c.pdf.Error()
}

// NumberedList prints a bold title followed by "1. ..." items. Continuation
// lines are indented under the item text.
func (c *Canvas) NumberedList(title string, items []string) {
	l := c.layout
	if title != "" {
		c.EnsureSpace(l.LineHeight * 2)
		c.pdf.SetFont(l.FontFamily, "B", l.FontSize+1)
		c.setText(l.Brand)
		c.pdf.SetXY(l.MarginLeft, c.y)
		c.pdf.CellFormat(l.ContentWidth(), l.LineHeight, c.tr(title), "", 0, "LM", false, 0, "")
		c.y += l.LineHeight + 1
		c.resetFont()
	}

	indent := 8.0
	for i, item := range items {
		lines := WrapText(c.Measure, item, l.ContentWidth()-indent)
		c.EnsureSpace(float64(len(lines)) * l.LineHeight)
		c.pdf.SetXY(l.MarginLeft, c.y)
		c.pdf.CellFormat(indent, l.LineHeight, fmt.Sprintf("%d.", i+1), "", 0, "LM", false, 0, "")
		for j, line := range lines {
			c.pdf.SetXY(l.MarginLeft+indent, c.y+float64(j)*l.LineHeight)
			c.pdf.CellFormat(l.ContentWidth()-indent, l.LineHeight, c.tr(line), "", 0, "LM", false, 0, "")
		}
		c.y += float64(len(lines)) * l.LineHeight
	}
}

// Style controls Paragraph rendering. Zero values use the layout defaults.
type Style struct {
	Bold   bool
	Size   float64
	Color  *Color
	Indent float64
}

// Paragraph prints wrapped text.
func (c *Canvas) Paragraph(text string, st Style) {
	l := c.layout
	size := st.Size
	if size == 0 {
		size = l.FontSize
	}
	fontStyle := ""
	if st.Bold {
		fontStyle = "B"
	}
	c.pdf.SetFont(l.FontFamily, fontStyle, size)
	if st.Color != nil {
		c.setText(*st.Color)
	} else {
		c.setText(l.Text)
	}

	w := l.ContentWidth() - st.Indent
	for _, line := range WrapText(c.Measure, text, w) {
		c.EnsureSpace(l.LineHeight)
		// a page break resets the font through the header
		c.pdf.SetFont(l.FontFamily, fontStyle, size)
		if st.Color != nil {
			c.setText(*st.Color)
		}
		c.pdf.SetXY(l.MarginLeft+st.Indent, c.y)
		c.pdf.CellFormat(w, l.LineHeight, c.tr(line), "", 0, "LM", false, 0, "")
		c.y += l.LineHeight
	}
	c.resetFont()
}

// Bytes serializes the document.
func (c *Canvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Canvas) resetFont() {
	c.pdf.SetFont(c.layout.FontFamily, "", c.layout.FontSize)
	c.setText(c.layout.Text)
}

func (c *Canvas) setFill(col Color) { c.pdf.SetFillColor(col.R, col.G, col.B) }
func (c *Canvas) setDraw(col Color) { c.pdf.SetDrawColor(col.R, col.G, col.B) }
func (c *Canvas) setText(col Color) { c.pdf.SetTextColor(col.R, col.G, col.B) }

func alignOf(col Column) string {
	if col.Align == "" {
		return "L"
	}
	return col.Align
}

func imageType(data []byte) (string, error) {
	switch http.DetectContentType(data) {
	case "image/png":
		return "PNG", nil
	case "image/jpeg":
		return "JPG", nil
	default:
		return "", ErrUnsupportedImage
	}
}
