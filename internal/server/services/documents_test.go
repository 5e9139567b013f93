package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/logging"
	"github.com/dmitrijs2005/examdesk/internal/netx"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func seedQuestions(env *testEnv) {
	env.mem.qs["exam-free"] = []*models.Question{
		{ID: "q1", ExamID: "exam-free", Ordinal: 1, Text: "2 + 2 = ?", Options: []string{"3", "4"}, CorrectOption: 1},
		{ID: "q2", ExamID: "exam-free", Ordinal: 2, Text: "Which shape?", ImageURL: "https://img.test/a.png", Options: []string{"circle", "square"}},
		{ID: "q3", ExamID: "exam-free", Ordinal: 3, Text: "Same picture again", ImageURL: "https://img.test/a.png", Options: []string{"yes", "no"}},
	}
}

func TestQuestionPaper_PrefetchesImagesOnce(t *testing.T) {
	env := newTestEnv(t)
	seedQuestions(env)
	pic := pngBytes(t)

	var calls int32
	env.docs.fetch = func(ctx context.Context, url string) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return pic, nil
	}

	doc, err := env.docs.QuestionPaper(context.Background(), "exam-free", true)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, strings.HasPrefix(doc.Filename, "QuestionPaper_"), doc.Filename)
	assert.Equal(t, models.DocumentQuestionPaper, doc.Kind)
	assert.Len(t, env.mem.docs, 1)
	assert.Equal(t, "exam-free", env.mem.docs[doc.ID].OwnerRef)
}

func TestQuestionPaper_FetchFailureAborts(t *testing.T) {
	env := newTestEnv(t)
	seedQuestions(env)
	env.docs.fetch = func(ctx context.Context, url string) ([]byte, error) {
		return nil, errors.New("404")
	}

	_, err := env.docs.QuestionPaper(context.Background(), "exam-free", false)
	require.ErrorIs(t, err, common.ErrDocumentGeneration)
	assert.Empty(t, env.st.objects)
	assert.Empty(t, env.mem.docs)
}

func TestQuestionPaper_NoQuestions(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.docs.QuestionPaper(context.Background(), "exam-paid", false)
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = env.docs.QuestionPaper(context.Background(), "missing", false)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDocumentOpen(t *testing.T) {
	env := newTestEnv(t)
	seedQuestions(env)
	env.mem.qs["exam-free"] = env.mem.qs["exam-free"][:1]

	issued, err := env.docs.QuestionPaper(context.Background(), "exam-free", false)
	require.NoError(t, err)

	d, b, err := env.docs.Open(context.Background(), issued.ID)
	require.NoError(t, err)
	assert.Equal(t, issued.Filename, d.Filename)
	assert.Equal(t, issued.Content, b)

	_, _, err = env.docs.Open(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestHallTicket_WithPhoto(t *testing.T) {
	env := newTestEnv(t)
	env.st.objects["photos/2026/10/19/p1"] = pngBytes(t)
	env.mem.cand["cand-1"] = &models.Candidate{ID: "cand-1", Identifier: "9876543210", Name: "Ravi", PhotoKey: "photos/2026/10/19/p1"}
	env.mem.apps["app-1"] = &models.Application{ID: "app-1", ApplicationNo: "APP1", CandidateID: "cand-1", ExamID: "exam-paid"}

	doc, err := env.docs.HallTicket(context.Background(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, "HallTicket_Ravi_APP1.pdf", doc.Filename)

	env.mem.cand["cand-1"].PhotoKey = "photos/missing"
	_, err = env.docs.HallTicket(context.Background(), "app-1")
	require.ErrorIs(t, err, common.ErrDocumentGeneration)
}

func TestPaymentLabel(t *testing.T) {
	assert.Equal(t, "FREE EXAM", paymentLabel(&models.Payment{BypassReason: models.BypassFree, Status: models.PaymentPaid}))
	assert.Equal(t, "SUPER USER", paymentLabel(&models.Payment{BypassReason: models.BypassSuperUser, Status: models.PaymentPaid}))
	assert.Equal(t, "PAID", paymentLabel(&models.Payment{Status: models.PaymentPaid}))
	assert.Equal(t, "CREATED", paymentLabel(&models.Payment{Status: models.PaymentCreated}))
}

func TestDocumentService_DefaultFetcherRejectsNonHTTP(t *testing.T) {
	env := newTestEnv(t)
	d := NewDocumentService(env.db, env.rm, env.st, nil, logging.Nop{})
	_, err := d.fetch(context.Background(), "file:///etc/passwd")
	require.ErrorIs(t, err, netx.ErrUnsupportedURL)
}
