package pdfdoc

import (
	"fmt"
	"strconv"
	"time"
)

// QuestionItem is one question with its options. Correct is an index into
// Options.
type QuestionItem struct {
	Text     string
	ImageURL string
	Options  []string
	Correct  int
}

// QuestionPaperData is the flat record a question paper is rendered from.
type QuestionPaperData struct {
	ExamCode        string
	ExamName        string
	ExamDate        time.Time
	DurationMinutes int
	Instructions    []string
	Questions       []QuestionItem
	ShowAnswers     bool
}

const questionImageHeight = 40

// QuestionPaper renders a question paper named
// QuestionPaper_<exam-code>_<yyyymmdd>.pdf. images holds prefetched bytes
// keyed by ImageURL; a question whose image is missing is an error.
func (g *Generator) QuestionPaper(d QuestionPaperData, images map[string][]byte) (*Document, error) {
	label := "QUESTION PAPER"
	if d.ShowAnswers {
		label = "ANSWER KEY"
	}
	c := g.canvas(label)
	l := c.Layout()

	c.Details([]Row{
		{Key: "Exam", Value: d.ExamName + " (" + d.ExamCode + ")"},
		{Key: "Date", Value: dateOrDash(d.ExamDate)},
		{Key: "Duration", Value: strconv.Itoa(d.DurationMinutes) + " minutes"},
		{Key: "Questions", Value: strconv.Itoa(len(d.Questions))},
	})
	if len(d.Instructions) > 0 {
		c.Gap(4)
		c.NumberedList("Instructions", d.Instructions)
	}
	c.Gap(6)

	correct := l.Correct
	for i, q := range d.Questions {
		c.EnsureSpace(l.LineHeight * 2)
		c.Paragraph(fmt.Sprintf("Q%d. %s", i+1, q.Text), Style{Bold: true})

		if q.ImageURL != "" {
			data, ok := images[q.ImageURL]
			if !ok {
				return nil, fmt.Errorf("question %d: image %s was not fetched", i+1, q.ImageURL)
			}
			c.EnsureSpace(questionImageHeight + 2)
			if err := c.Image(q.ImageURL, data, l.MarginLeft+6, c.Y()+1, 0, questionImageHeight); err != nil {
				return nil, fmt.Errorf("question %d: %w", i+1, err)
			}
			c.Gap(questionImageHeight + 2)
		}

		for j, opt := range q.Options {
			text := fmt.Sprintf("(%c) %s", 'A'+j, opt)
			st := Style{Indent: 6}
			if d.ShowAnswers && j == q.Correct {
				st.Bold = true
				st.Color = &correct
			}
			c.Paragraph(text, st)
		}
		c.Gap(3)
	}

	return g.finish(c, KindQuestionPaper, Filename(KindQuestionPaper, d.ExamCode, DateSuffix(d.ExamDate)))
}
