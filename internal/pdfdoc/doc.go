// Package pdfdoc composes paginated A4 documents (invoices, hall tickets,
// question papers) on top of gofpdf.
//
// A Canvas owns the vertical cursor. Every block asks EnsureSpace for the
// height it needs; when the cursor would pass Layout.BreakAt a new page is
// started and the running header (letterhead and document label) is printed
// again before the block continues.
package pdfdoc
