package pdfdoc

import (
	"strings"
	"time"
)

// Kind is the document type. It prefixes generated file names.
type Kind string

const (
	KindInvoice       Kind = "Invoice"
	KindHallTicket    Kind = "HallTicket"
	KindQuestionPaper Kind = "QuestionPaper"
)

// Document is a rendered PDF.
type Document struct {
	Kind     Kind
	Filename string
	Content  []byte
}

// Filename builds "<Kind>_<name>_<suffix>.pdf". Both parts are sanitized:
// spaces become underscores and only letters, digits, '_' and '-' are kept.
// Empty parts are replaced with "unnamed".
func Filename(kind Kind, name, suffix string) string {
	return string(kind) + "_" + sanitize(name) + "_" + sanitize(suffix) + ".pdf"
}

// DateSuffix formats t for use as a filename suffix.
func DateSuffix(t time.Time) string {
	return t.Format("20060102")
}

// ShortID returns the first n characters of id without dashes.
func ShortID(id string, n int) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > n {
		return id[:n]
	}
	return id
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "unnamed"
	}
	return b.String()
}
