package pdfdoc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "Invoice_Asha_Rao_INV-0042.pdf", Filename(KindInvoice, "Asha Rao", "INV-0042"))
	assert.Equal(t, "HallTicket_OBrien_APP-1A2B3C4D.pdf", Filename(KindHallTicket, " O'Brien ", "APP-1A2B3C4D"))
	assert.Equal(t, "QuestionPaper_unnamed_20261019.pdf", Filename(KindQuestionPaper, "", "20261019"))
}

func TestFilename_Deterministic(t *testing.T) {
	at := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	a := Filename(KindQuestionPaper, "NEET Mock 1", DateSuffix(at))
	b := Filename(KindQuestionPaper, "NEET Mock 1", DateSuffix(at))
	assert.Equal(t, a, b)
	assert.Equal(t, "QuestionPaper_NEET_Mock_1_20261019.pdf", a)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f2a9c1b", ShortID("3f2a9c1b-77aa-4c1e-9d2b-0a0b0c0d0e0f", 8))
	assert.Equal(t, "ab", ShortID("a-b", 8))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "FREE", FormatAmount(0))
	assert.Equal(t, "Rs. 5.05", FormatAmount(505))
	assert.Equal(t, "Rs. 999.00", FormatAmount(99900))
	assert.Equal(t, "Rs. 1,500.00", FormatAmount(150000))
	assert.Equal(t, "Rs. 1,23,456.00", FormatAmount(12345600))
	assert.Equal(t, "-Rs. 12,34,567.89", FormatAmount(-123456789))
}
