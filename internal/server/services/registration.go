package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/dbx"
	"github.com/dmitrijs2005/examdesk/internal/logging"
	"github.com/dmitrijs2005/examdesk/internal/server/config"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/examdesk/internal/server/storage"
	"github.com/dmitrijs2005/examdesk/internal/timex"
	"github.com/dmitrijs2005/examdesk/internal/validation"
	"github.com/dmitrijs2005/examdesk/internal/wizard"
)

// Confirmation is the outcome of ConfirmPurchase. Bypassed confirmations
// need no checkout; otherwise the client opens the hosted checkout with
// OrderID, Amount and KeyID.
type Confirmation struct {
	Session      *wizard.Session
	Bypassed     bool
	BypassReason string
	OrderID      string
	Amount       int64
	Currency     string
	KeyID        string
}

// RegistrationService drives the registration and purchase wizard.
type RegistrationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
	sessions    SessionStore
	limiter     RateLimiter
	gateway     PaymentGateway
	storage     storage.Storage
	documents   *DocumentService
	machine     *wizard.Machine
	log         logging.Logger
	now         timex.Clock
	newID       func() string
}

func NewRegistrationService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config,
	sessions SessionStore, limiter RateLimiter, gw PaymentGateway, st storage.Storage,
	docs *DocumentService, log logging.Logger) *RegistrationService {
	return &RegistrationService{
		db:          db,
		repomanager: m,
		config:      cfg,
		sessions:    sessions,
		limiter:     limiter,
		gateway:     gw,
		storage:     st,
		documents:   docs,
		machine:     wizard.New(),
		log:         log.With("module", "registration"),
		now:         timex.UTC,
		newID:       func() string { return uuid.NewString() },
	}
}

// CheckIdentity opens a wizard session for itemID. A known identifier
// pre-fills the draft from the stored candidate.
func (s *RegistrationService) CheckIdentity(ctx context.Context, flow wizard.Flow, itemID, identifier string) (*wizard.Session, error) {
	identifier = common.CleanString(identifier, validation.IsEmail(strings.TrimSpace(identifier)))
	if !validation.IsPhone(identifier) && !validation.IsEmail(identifier) {
		return nil, validation.Fieldf("identifier", "identifier must be a mobile number or an email address")
	}

	item, err := s.resolveItem(ctx, flow, itemID)
	if err != nil {
		return nil, err
	}

	sess := wizard.NewSession(s.newID(), flow, identifier, s.now())
	sess.Item = item

	cand, err := s.repomanager.Candidates(s.db).GetByIdentifier(ctx, identifier)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		if _, err := s.machine.Fire(sess, wizard.IdentityNotFound); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if flow == wizard.FlowExamRegistration {
			_, err := s.repomanager.Applications(s.db).GetByCandidateExam(ctx, cand.ID, item.ID)
			if err == nil {
				return nil, fmt.Errorf("%w: already registered for this exam", common.ErrorAlreadyExists)
			}
			if !errors.Is(err, common.ErrorNotFound) {
				return nil, err
			}
		}
		sess.CandidateID = cand.ID
		sess.Draft = draftFromCandidate(cand)
		if _, err := s.machine.Fire(sess, wizard.IdentityFound); err != nil {
			return nil, err
		}
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "wizard started", "session_id", sess.ID, "flow", flow, "state", sess.State)
	return sess, nil
}

// SubmitForm validates the draft and stores the candidate. An invalid form
// leaves the session in FormEntry and nothing is written to the database.
func (s *RegistrationService) SubmitForm(ctx context.Context, sessionID string, d wizard.Draft) (*wizard.Session, error) {
	sess, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.machine.Fire(sess, wizard.FormSubmitted); err != nil {
		return nil, err
	}

	d.Identifier = sess.Draft.Identifier
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	sess.Draft = d

	verr := validation.Struct(d)
	if verr == nil && d.PhotoKey != "" && !strings.HasPrefix(d.PhotoKey, storage.PrefixPhotos+"/") {
		verr = validation.Fieldf("photo_key", "photo_key must come from a photo upload")
	}
	if verr != nil {
		if err := s.sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		return nil, verr
	}

	dob, err := time.Parse(time.DateOnly, d.DateOfBirth)
	if err != nil {
		return nil, validation.Fieldf("date_of_birth", "date_of_birth must be YYYY-MM-DD")
	}

	cand := &models.Candidate{
		ID:          sess.CandidateID,
		Identifier:  d.Identifier,
		Name:        d.Name,
		FatherName:  d.FatherName,
		DateOfBirth: dob,
		Email:       d.Email,
		Phone:       d.Phone,
		Address:     d.Address,
		PhotoKey:    d.PhotoKey,
	}
	repo := s.repomanager.Candidates(s.db)
	if cand.ID == "" {
		created, err := repo.Create(ctx, cand)
		if err != nil {
			return nil, err
		}
		sess.CandidateID = created.ID
	} else if err := repo.Update(ctx, cand); err != nil {
		return nil, err
	}

	if _, err := s.machine.Fire(sess, wizard.FormValid); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ConfirmPurchase settles free and super user sessions directly and opens a
// gateway order for everything else.
func (s *RegistrationService) ConfirmPurchase(ctx context.Context, sessionID, superUserID string) (*Confirmation, error) {
	sess, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.machine.Can(sess.State, wizard.OrderCreated) {
		return nil, fmt.Errorf("%w: confirm in %s", common.ErrInvalidTransition, sess.State)
	}

	if sess.IsFree() {
		return s.bypass(ctx, sess, models.BypassFree)
	}

	if superUserID = strings.TrimSpace(superUserID); superUserID != "" {
		if err := s.checkSuperUser(ctx, sess, superUserID); err != nil {
			return nil, err
		}
		return s.bypass(ctx, sess, models.BypassSuperUser)
	}

	ok, err := s.limiter.Allow(ctx, sess.CandidateID)
	if err != nil {
		s.log.Warn(ctx, "rate limiter unavailable", "error", err)
	} else if !ok {
		return nil, common.ErrRateLimited
	}

	order, err := s.gateway.CreateOrder(ctx, sess.Item.Price, s.config.Currency, sess.ID)
	if err != nil {
		s.log.Error(ctx, "create order failed", "session_id", sess.ID, "error", err)
		return nil, common.ErrPaymentInitiation
	}

	pay, err := s.repomanager.Payments(s.db).Create(ctx, &models.Payment{
		OrderID:     order.ID,
		Amount:      sess.Item.Price,
		Currency:    s.config.Currency,
		Status:      models.PaymentCreated,
		SessionID:   sess.ID,
		CandidateID: sess.CandidateID,
		ItemID:      sess.Item.ID,
		Flow:        string(sess.Flow),
	})
	if err != nil {
		return nil, err
	}

	sess.OrderID = order.ID
	sess.PaymentID = pay.ID
	if _, err := s.machine.Fire(sess, wizard.OrderCreated); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "order created", "session_id", sess.ID, "order_id", order.ID, "amount", sess.Item.Price)
	return &Confirmation{
		Session:  sess,
		OrderID:  order.ID,
		Amount:   sess.Item.Price,
		Currency: s.config.Currency,
		KeyID:    s.gateway.KeyID(),
	}, nil
}

// CompletePayment moves a pending session to PaymentCompleted only when
// the checkout signature verifies.
func (s *RegistrationService) CompletePayment(ctx context.Context, sessionID, orderID, paymentID, signature string) (*wizard.Session, error) {
	sess, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.machine.Can(sess.State, wizard.PaymentVerified) {
		return nil, fmt.Errorf("%w: complete payment in %s", common.ErrInvalidTransition, sess.State)
	}

	verr := s.gateway.VerifySignature(orderID, paymentID, signature)
	if verr == nil && orderID != sess.OrderID {
		verr = errors.New("order id does not belong to session")
	}
	if verr != nil {
		s.log.Warn(ctx, "payment verification failed", "session_id", sess.ID, "order_id", orderID, "error", verr)
		if err := s.repomanager.Payments(s.db).MarkFailed(ctx, sess.OrderID, paymentID); err != nil {
			s.log.Error(ctx, "mark payment failed", "order_id", sess.OrderID, "error", err)
		}
		if _, err := s.machine.Fire(sess, wizard.PaymentFailed); err != nil {
			return nil, err
		}
		if err := s.sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		return nil, common.ErrPaymentVerification
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		pay, err := s.repomanager.Payments(tx).MarkPaid(ctx, orderID, paymentID, signature)
		if err != nil {
			return err
		}
		return s.finalize(ctx, tx, sess, pay)
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.machine.Fire(sess, wizard.PaymentVerified); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "payment completed", "session_id", sess.ID, "order_id", orderID)
	return sess, nil
}

// CancelPayment handles a dismissed checkout; the candidate may retry.
func (s *RegistrationService) CancelPayment(ctx context.Context, sessionID string) (*wizard.Session, error) {
	sess, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.machine.Fire(sess, wizard.PaymentDismissed); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// IssueDocument delivers the hall ticket or invoice for a completed
// session. Issuing again returns the stored document.
func (s *RegistrationService) IssueDocument(ctx context.Context, sessionID string) (*IssuedDocument, error) {
	sess, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.machine.Can(sess.State, wizard.DocumentIssued) {
		return nil, fmt.Errorf("%w: issue document in %s", common.ErrInvalidTransition, sess.State)
	}

	var doc *IssuedDocument
	switch {
	case sess.DocumentID != "":
		doc, err = s.documents.Reissue(ctx, sess.DocumentID)
	case sess.Flow == wizard.FlowExamRegistration:
		doc, err = s.documents.HallTicket(ctx, sess.ApplicationID)
	default:
		doc, err = s.documents.Invoice(ctx, sess.PurchaseID)
	}
	if err != nil {
		return nil, err
	}

	sess.DocumentID = doc.ID
	if _, err := s.machine.Fire(sess, wizard.DocumentIssued); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return doc, nil
}

// PresignPhotoUpload returns a storage key and a presigned PUT URL for the
// candidate photo. The key goes into the draft on SubmitForm.
func (s *RegistrationService) PresignPhotoUpload(ctx context.Context, sessionID, contentType string) (string, string, error) {
	sess, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return "", "", err
	}
	if wizard.Terminal(sess.State) {
		return "", "", fmt.Errorf("%w: photo upload in %s", common.ErrInvalidTransition, sess.State)
	}
	if contentType != "image/jpeg" && contentType != "image/png" {
		return "", "", validation.Fieldf("content_type", "content_type must be image/jpeg or image/png")
	}

	key := storage.NewKey(storage.PrefixPhotos, s.now())
	url, err := s.storage.PresignPut(ctx, key, contentType)
	if err != nil {
		return "", "", err
	}
	return key, url, nil
}

// Session returns the current state of a wizard session.
func (s *RegistrationService) Session(ctx context.Context, sessionID string) (*wizard.Session, error) {
	return s.sessions.Load(ctx, sessionID)
}

func (s *RegistrationService) resolveItem(ctx context.Context, flow wizard.Flow, itemID string) (wizard.Item, error) {
	switch flow {
	case wizard.FlowExamRegistration:
		e, err := s.repomanager.Exams(s.db).Get(ctx, itemID)
		if err != nil {
			return wizard.Item{}, err
		}
		return wizard.Item{ID: e.ID, Kind: models.KindExamRegistration, Title: e.Name, Price: e.Price}, nil
	case wizard.FlowPurchase:
		it, err := s.repomanager.Catalog(s.db).Get(ctx, itemID)
		if err != nil {
			return wizard.Item{}, err
		}
		return wizard.Item{ID: it.ID, Kind: it.Kind, Title: it.Title, Price: it.Price}, nil
	}
	return wizard.Item{}, validation.Fieldf("flow", "flow must be exam_registration or purchase")
}

func (s *RegistrationService) checkSuperUser(ctx context.Context, sess *wizard.Session, superUserID string) error {
	if !s.config.SuperUserAllowed(sess.Item.Kind) {
		return common.ErrSuperUserNotAllowed
	}
	sub, err := s.repomanager.Subscriptions(s.db).Get(ctx, superUserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: unknown super user id", common.ErrorUnauthorized)
		}
		return err
	}
	if !sub.Valid(s.now()) {
		return common.ErrSuperUserExpired
	}
	return nil
}

// bypass records a zero amount payment and completes the session without
// the gateway. A retried bypass reuses the payment of the first attempt.
func (s *RegistrationService) bypass(ctx context.Context, sess *wizard.Session, reason string) (*Confirmation, error) {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Payments(tx)
		pay, err := repo.GetBypass(ctx, sess.ID)
		if errors.Is(err, common.ErrorNotFound) {
			pay, err = repo.Create(ctx, &models.Payment{
				Amount:       0,
				Currency:     s.config.Currency,
				Status:       models.PaymentPaid,
				BypassReason: reason,
				SessionID:    sess.ID,
				CandidateID:  sess.CandidateID,
				ItemID:       sess.Item.ID,
				Flow:         string(sess.Flow),
			})
		}
		if err != nil {
			return err
		}
		sess.PaymentID = pay.ID
		return s.finalize(ctx, tx, sess, pay)
	})
	if err != nil {
		return nil, err
	}

	sess.BypassReason = reason
	if _, err := s.machine.Fire(sess, wizard.BypassGranted); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "payment bypassed", "session_id", sess.ID, "reason", reason)
	return &Confirmation{Session: sess, Bypassed: true, BypassReason: reason, Currency: s.config.Currency}, nil
}

// finalize settles pay and records the result on the session. Payments
// written before settlement fields existed take them from the session.
func (s *RegistrationService) finalize(ctx context.Context, tx dbx.DBTX, sess *wizard.Session, pay *models.Payment) error {
	if pay.Flow == "" {
		pay.Flow, pay.CandidateID, pay.ItemID = string(sess.Flow), sess.CandidateID, sess.Item.ID
	}
	res, err := settler{repomanager: s.repomanager, now: s.now}.settle(ctx, tx, pay)
	if err != nil {
		return err
	}
	sess.ApplicationID, sess.PurchaseID = res.ApplicationID, res.PurchaseID
	return nil
}

func draftFromCandidate(c *models.Candidate) wizard.Draft {
	d := wizard.Draft{
		Identifier: c.Identifier,
		Name:       c.Name,
		FatherName: c.FatherName,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		PhotoKey:   c.PhotoKey,
	}
	if !c.DateOfBirth.IsZero() {
		d.DateOfBirth = c.DateOfBirth.Format(time.DateOnly)
	}
	return d
}
