package pdfdoc

import (
	"strconv"
	"time"
)

// HallTicketData is the flat record a hall ticket is rendered from.
type HallTicketData struct {
	ApplicationNo string
	CandidateName string
	FatherName    string
	DateOfBirth   time.Time
	Email         string
	Phone         string

	ExamCode        string
	ExamName        string
	ExamDate        time.Time
	StartAt         time.Time
	DurationMinutes int
	Venue           string

	// PaymentStatus is shown verbatim, e.g. "PAID" or "FREE EXAM".
	PaymentStatus string

	Photo        []byte
	Instructions []string
}

const (
	photoWidth  = 35
	photoHeight = 45
)

// HallTicket renders a hall ticket named HallTicket_<candidate>_<application-no>.pdf.
// The photo, when present, sits at a fixed rectangle on the right of the
// details block.
func (g *Generator) HallTicket(d HallTicketData) (*Document, error) {
	c := g.canvas("HALL TICKET")
	l := c.Layout()

	reserve := 0.0
	if len(d.Photo) > 0 {
		x := l.PageWidth - l.MarginRight - photoWidth
		if err := c.Image("candidate-photo", d.Photo, x, c.Y(), photoWidth, photoHeight); err != nil {
			return nil, err
		}
		reserve = photoWidth + 4
	}

	top := c.Y()
	rows := []Row{
		{Key: "Application No", Value: d.ApplicationNo},
		{Key: "Candidate Name", Value: d.CandidateName},
		{Key: "Father's Name", Value: orDash(d.FatherName)},
		{Key: "Date of Birth", Value: dateOrDash(d.DateOfBirth)},
		{Key: "Email", Value: orDash(d.Email)},
		{Key: "Phone", Value: orDash(d.Phone)},
		{Key: "Exam", Value: d.ExamName + " (" + d.ExamCode + ")"},
		{Key: "Exam Date", Value: dateOrDash(d.ExamDate)},
		{Key: "Reporting Time", Value: clockOrDash(d.StartAt)},
		{Key: "Duration", Value: strconv.Itoa(d.DurationMinutes) + " minutes"},
		{Key: "Venue", Value: orDash(d.Venue)},
		{Key: "Payment", Value: orDash(d.PaymentStatus)},
	}
	c.DetailsBeside(rows, reserve)
	if reserve > 0 && c.Y() < top+photoHeight {
		c.Gap(top + photoHeight - c.Y())
	}

	if len(d.Instructions) > 0 {
		c.Gap(8)
		c.NumberedList("Instructions to the candidate", d.Instructions)
	}

	return g.finish(c, KindHallTicket, Filename(KindHallTicket, d.CandidateName, d.ApplicationNo))
}

func dateOrDash(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

func clockOrDash(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("03:04 PM")
}
