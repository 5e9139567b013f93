package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/logging"
	"github.com/dmitrijs2005/examdesk/internal/netx"
	"github.com/dmitrijs2005/examdesk/internal/pdfdoc"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/examdesk/internal/server/storage"
	"github.com/dmitrijs2005/examdesk/internal/timex"
)

const (
	maxQuestionImage  = 5 << 20
	imageFetchTimeout = 10 * time.Second
	prefetchLimit     = 4
)

// IssuedDocument is a stored PDF handed back to the caller.
type IssuedDocument struct {
	ID       string
	Kind     string
	Filename string
	Content  []byte
	URL      string
}

// DocumentService renders PDFs, stores them in object storage and records
// them in the documents table.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	storage     storage.Storage
	generator   *pdfdoc.Generator
	fetch       ImageFetcher
	log         logging.Logger
	now         timex.Clock
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, st storage.Storage,
	gen *pdfdoc.Generator, log logging.Logger) *DocumentService {
	images := &http.Client{Timeout: imageFetchTimeout}
	return &DocumentService{
		db:          db,
		repomanager: m,
		storage:     st,
		generator:   gen,
		fetch: func(ctx context.Context, url string) ([]byte, error) {
			return netx.FetchBytes(ctx, images, url, maxQuestionImage)
		},
		log: log.With("module", "documents"),
		now: timex.UTC,
	}
}

// HallTicket renders and stores the hall ticket for an application.
func (s *DocumentService) HallTicket(ctx context.Context, applicationID string) (*IssuedDocument, error) {
	app, err := s.repomanager.Applications(s.db).Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	cand, err := s.repomanager.Candidates(s.db).Get(ctx, app.CandidateID)
	if err != nil {
		return nil, err
	}
	exam, err := s.repomanager.Exams(s.db).Get(ctx, app.ExamID)
	if err != nil {
		return nil, err
	}

	status := "PAID"
	if app.PaymentID != "" {
		p, err := s.repomanager.Payments(s.db).Get(ctx, app.PaymentID)
		if err != nil {
			return nil, err
		}
		status = paymentLabel(p)
	}

	var photo []byte
	if cand.PhotoKey != "" {
		photo, err = s.storage.Get(ctx, cand.PhotoKey)
		if err != nil {
			return nil, s.failed(ctx, "hall ticket photo", err, "application_id", applicationID)
		}
	}

	doc, err := s.generator.HallTicket(pdfdoc.HallTicketData{
		ApplicationNo:   app.ApplicationNo,
		CandidateName:   cand.Name,
		FatherName:      cand.FatherName,
		DateOfBirth:     cand.DateOfBirth,
		Email:           cand.Email,
		Phone:           cand.Phone,
		ExamCode:        exam.Code,
		ExamName:        exam.Name,
		ExamDate:        exam.ExamDate,
		StartAt:         exam.StartAt,
		DurationMinutes: exam.DurationMinutes,
		Venue:           exam.Venue,
		PaymentStatus:   status,
		Photo:           photo,
		Instructions:    exam.Instructions,
	})
	if err != nil {
		return nil, s.failed(ctx, "hall ticket", err, "application_id", applicationID)
	}
	return s.store(ctx, models.DocumentHallTicket, app.ID, doc)
}

// Invoice renders and stores the invoice for a purchase.
func (s *DocumentService) Invoice(ctx context.Context, purchaseID string) (*IssuedDocument, error) {
	p, err := s.repomanager.Purchases(s.db).Get(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	cand, err := s.repomanager.Candidates(s.db).Get(ctx, p.CandidateID)
	if err != nil {
		return nil, err
	}
	item, err := s.repomanager.Catalog(s.db).Get(ctx, p.ItemID)
	if err != nil {
		return nil, err
	}

	data := pdfdoc.InvoiceData{
		InvoiceNo: fmt.Sprintf("INV-%s-%s", pdfdoc.DateSuffix(p.PurchasedAt), strings.ToUpper(pdfdoc.ShortID(p.ID, 8))),
		IssuedAt:  s.now(),
		BilledTo:  cand.Name,
		Email:     cand.Email,
		Phone:     cand.Phone,
		Items: []pdfdoc.LineItem{{
			Description: fmt.Sprintf("%s (valid until %s)", item.Title, p.ExpiresAt.Format("02 Jan 2006")),
			Quantity:    1,
			UnitPrice:   p.Amount,
		}},
	}
	if p.PaymentID != "" {
		pay, err := s.repomanager.Payments(s.db).Get(ctx, p.PaymentID)
		if err != nil {
			return nil, err
		}
		data.OrderID = pay.OrderID
		data.PaymentID = pay.PaymentID
		switch pay.BypassReason {
		case models.BypassFree:
			data.Note = "Free item, no payment collected."
		case models.BypassSuperUser:
			data.Note = "Issued under a super user subscription."
		}
	}

	doc, err := s.generator.Invoice(data)
	if err != nil {
		return nil, s.failed(ctx, "invoice", err, "purchase_id", purchaseID)
	}
	return s.store(ctx, models.DocumentInvoice, p.ID, doc)
}

// QuestionPaper renders the stored questions of an exam. All question
// images are downloaded before layout starts; one failed download aborts
// the document.
func (s *DocumentService) QuestionPaper(ctx context.Context, examID string, showAnswers bool) (*IssuedDocument, error) {
	exam, err := s.repomanager.Exams(s.db).Get(ctx, examID)
	if err != nil {
		return nil, err
	}
	qs, err := s.repomanager.Questions(s.db).ListByExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("%w: exam has no questions", common.ErrorNotFound)
	}

	items := make([]pdfdoc.QuestionItem, 0, len(qs))
	for _, q := range qs {
		items = append(items, pdfdoc.QuestionItem{
			Text:     q.Text,
			ImageURL: q.ImageURL,
			Options:  q.Options,
			Correct:  q.CorrectOption,
		})
	}

	images, err := s.prefetch(ctx, items)
	if err != nil {
		return nil, s.failed(ctx, "question images", err, "exam_id", examID)
	}

	doc, err := s.generator.QuestionPaper(pdfdoc.QuestionPaperData{
		ExamCode:        exam.Code,
		ExamName:        exam.Name,
		ExamDate:        exam.ExamDate,
		DurationMinutes: exam.DurationMinutes,
		Instructions:    exam.Instructions,
		Questions:       items,
		ShowAnswers:     showAnswers,
	}, images)
	if err != nil {
		return nil, s.failed(ctx, "question paper", err, "exam_id", examID)
	}
	return s.store(ctx, models.DocumentQuestionPaper, exam.ID, doc)
}

// Open returns a stored document and its bytes.
func (s *DocumentService) Open(ctx context.Context, id string) (*models.Document, []byte, error) {
	d, err := s.repomanager.Documents(s.db).Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.storage.Get(ctx, d.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return d, b, nil
}

// Reissue loads a previously issued document with a fresh link.
func (s *DocumentService) Reissue(ctx context.Context, id string) (*IssuedDocument, error) {
	d, b, err := s.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := s.storage.PresignGet(ctx, d.StorageKey)
	if err != nil {
		return nil, err
	}
	return &IssuedDocument{ID: d.ID, Kind: d.Kind, Filename: d.Filename, Content: b, URL: url}, nil
}

func (s *DocumentService) prefetch(ctx context.Context, items []pdfdoc.QuestionItem) (map[string][]byte, error) {
	urls := make([]string, 0)
	seen := map[string]bool{}
	for _, it := range items {
		if it.ImageURL != "" && !seen[it.ImageURL] {
			seen[it.ImageURL] = true
			urls = append(urls, it.ImageURL)
		}
	}

	results := make([][]byte, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchLimit)
	for i, u := range urls {
		g.Go(func() error {
			b, err := s.fetch(gctx, u)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", u, err)
			}
			results[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	images := make(map[string][]byte, len(urls))
	for i, u := range urls {
		images[u] = results[i]
	}
	return images, nil
}

func (s *DocumentService) store(ctx context.Context, kind, ownerRef string, doc *pdfdoc.Document) (*IssuedDocument, error) {
	key := storage.NewKey(storage.PrefixDocuments, s.now())
	if err := s.storage.Put(ctx, key, doc.Content, "application/pdf"); err != nil {
		return nil, s.failed(ctx, "store document", err, "kind", kind, "owner", ownerRef)
	}

	rec, err := s.repomanager.Documents(s.db).Create(ctx, &models.Document{
		Kind:       kind,
		OwnerRef:   ownerRef,
		Filename:   doc.Filename,
		StorageKey: key,
	})
	if err != nil {
		return nil, s.failed(ctx, "record document", err, "kind", kind, "owner", ownerRef)
	}

	url, err := s.storage.PresignGet(ctx, key)
	if err != nil {
		// the bytes are returned anyway; the link is optional
		s.log.Warn(ctx, "presign document failed", "document_id", rec.ID, "error", err)
	}

	s.log.Info(ctx, "document issued", "document_id", rec.ID, "kind", kind, "filename", doc.Filename)
	return &IssuedDocument{ID: rec.ID, Kind: kind, Filename: doc.Filename, Content: doc.Content, URL: url}, nil
}

func (s *DocumentService) failed(ctx context.Context, what string, err error, args ...any) error {
	s.log.Error(ctx, what+" failed", append(args, "error", err)...)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return common.ErrDocumentGeneration
}

func paymentLabel(p *models.Payment) string {
	switch {
	case p.BypassReason == models.BypassFree:
		return "FREE EXAM"
	case p.BypassReason == models.BypassSuperUser:
		return "SUPER USER"
	case p.Status == models.PaymentPaid:
		return "PAID"
	}
	return strings.ToUpper(string(p.Status))
}

