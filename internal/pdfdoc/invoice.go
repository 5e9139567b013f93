package pdfdoc

import (
	"errors"
	"strconv"
	"time"
)

// LineItem is one billed row.
type LineItem struct {
	Description string
	Quantity    int
	UnitPrice   int64 // paise
}

// InvoiceData is the flat record an invoice is rendered from.
type InvoiceData struct {
	InvoiceNo string
	IssuedAt  time.Time
	BilledTo  string
	Email     string
	Phone     string
	OrderID   string
	PaymentID string
	Items     []LineItem
	// Note is printed under the total, e.g. the bypass reason.
	Note string
}

// Total sums quantity times unit price over all items.
func (d InvoiceData) Total() int64 {
	var t int64
	for _, it := range d.Items {
		t += int64(it.Quantity) * it.UnitPrice
	}
	return t
}

var invoiceColumns = []Column{
	{Title: "#", Width: 12, Align: "C"},
	{Title: "Description", Width: 98},
	{Title: "Qty", Width: 20, Align: "C"},
	{Title: "Amount", Width: 50, Align: "R"},
}

// Invoice renders an invoice named Invoice_<billed-to>_<invoice-no>.pdf.
func (g *Generator) Invoice(d InvoiceData) (*Document, error) {
	if len(d.Items) == 0 {
		return nil, errors.New("invoice has no items")
	}

	c := g.canvas("INVOICE")
	c.Details([]Row{
		{Key: "Invoice No", Value: d.InvoiceNo},
		{Key: "Date", Value: d.IssuedAt.Format("02 Jan 2006")},
		{Key: "Billed To", Value: d.BilledTo},
		{Key: "Email", Value: d.Email},
		{Key: "Phone", Value: d.Phone},
		{Key: "Order ID", Value: orDash(d.OrderID)},
		{Key: "Payment ID", Value: orDash(d.PaymentID)},
	})
	c.Gap(6)

	c.TableHeader(invoiceColumns)
	for i, it := range d.Items {
		c.Table(invoiceColumns, []string{
			strconv.Itoa(i + 1),
			it.Description,
			strconv.Itoa(it.Quantity),
			FormatAmount(int64(it.Quantity) * it.UnitPrice),
		})
	}
	c.TotalBox("TOTAL", FormatAmount(d.Total()))

	if d.Note != "" {
		c.Gap(4)
		muted := c.Layout().Muted
		c.Paragraph(d.Note, Style{Size: 9, Color: &muted})
	}

	return g.finish(c, KindInvoice, Filename(KindInvoice, d.BilledTo, d.InvoiceNo))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
