package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/examdesk/internal/client/client"
	"github.com/dmitrijs2005/examdesk/internal/client/history"
	"github.com/dmitrijs2005/examdesk/internal/pdfdoc"
	"github.com/dmitrijs2005/examdesk/internal/rpc"
)

const (
	flowExamRegistration = "exam_registration"
	flowPurchase         = "purchase"

	stateEditOrProceed = "edit_or_proceed"
	statePaymentDone   = "payment_completed"
)

// maxFormAttempts bounds how often an invalid form is re-prompted.
const maxFormAttempts = 3

// errAbandoned ends a wizard the user chose not to finish.
var errAbandoned = errors.New("registration abandoned")

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	return a.runWizard(ctx, flowExamRegistration, args[0])
}

func (a *App) buy(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	return a.runWizard(ctx, flowPurchase, args[0])
}

// runWizard walks a session from identity check to a saved document.
func (a *App) runWizard(ctx context.Context, flow, itemID string) error {
	last, err := a.history.Get(ctx, history.KeyIdentifier)
	if err != nil {
		a.warn("%v", err)
	}
	identifier, err := GetWithDefault(a.reader, "Mobile number or email", last, a.out)
	if err != nil {
		return err
	}
	sess, err := a.client.CheckIdentity(ctx, flow, itemID, identifier)
	if err != nil {
		return err
	}
	if err := a.history.Set(ctx, history.KeyIdentifier, identifier); err != nil {
		a.warn("%v", err)
	}

	a.info("%s: %s", sess.ItemTitle, pdfdoc.FormatAmount(sess.Price))
	if sess.State == stateEditOrProceed {
		a.info("Welcome back, %s. Press Enter to keep a saved value.", sess.Draft.Name)
	}

	if sess, err = a.fillForm(ctx, sess); err != nil {
		return err
	}
	if err = a.pay(ctx, sess); err != nil {
		return err
	}
	return a.deliver(ctx, sess.ID)
}

func (a *App) fillForm(ctx context.Context, sess *rpc.Session) (*rpc.Session, error) {
	d := sess.Draft
	for try := 1; ; try++ {
		if err := a.promptDraft(ctx, sess.ID, &d); err != nil {
			return nil, err
		}
		next, err := a.client.SubmitForm(ctx, sess.ID, d)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, client.ErrInvalidInput) || try == maxFormAttempts {
			return nil, err
		}
		a.warn("%v", err)
		ok, cerr := Confirm(a.reader, "Correct the form?", a.out)
		if cerr != nil {
			return nil, cerr
		}
		if !ok {
			return nil, errAbandoned
		}
	}
}

func (a *App) promptDraft(ctx context.Context, sessionID string, d *rpc.Draft) error {
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Full name", &d.Name},
		{"Father's name", &d.FatherName},
		{"Date of birth (YYYY-MM-DD)", &d.DateOfBirth},
		{"Email", &d.Email},
		{"Phone", &d.Phone},
	}
	for _, f := range fields {
		v, err := GetWithDefault(a.reader, f.prompt, *f.dst, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if d.Address != "" {
		a.info("Address: %s", d.Address)
	}
	addr, err := GetMultiline(a.reader, "Address (leave empty to keep)", a.out)
	if err != nil {
		return err
	}
	if addr != "" {
		d.Address = addr
	}

	path, err := GetSimpleText(a.reader, "Photo file (optional)", a.out)
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	key, err := a.uploadPhoto(ctx, sessionID, path)
	if err != nil {
		return err
	}
	d.PhotoKey = key
	return nil
}

func (a *App) uploadPhoto(ctx context.Context, sessionID, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	ct := http.DetectContentType(data)
	p, err := a.client.PresignPhotoUpload(ctx, sessionID, ct)
	if err != nil {
		return "", err
	}
	if err := a.upload(ctx, p.URL, ct, data); err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	a.success("Photo uploaded.")
	return p.Key, nil
}

// pay confirms the purchase and, unless it is free or waived, collects the
// gateway result. A failed or dismissed payment may be retried.
func (a *App) pay(ctx context.Context, sess *rpc.Session) error {
	superUser, err := GetSimpleText(a.reader, "Super user id (optional)", a.out)
	if err != nil {
		return err
	}

	for {
		conf, err := a.client.ConfirmPurchase(ctx, sess.ID, superUser)
		if err != nil {
			return err
		}
		if conf.Bypassed {
			a.success("%s", conf.Notice)
			return nil
		}

		a.info("%s for %s", conf.Notice, sess.ItemTitle)
		a.info("Order: %s  Key: %s", conf.OrderID, conf.KeyID)
		a.info("Complete the payment in the checkout, then enter its result. Leave the payment id empty to cancel.")

		done, err := a.collectPayment(ctx, sess.ID, conf.OrderID)
		if err != nil {
			return err
		}
		if done {
			a.success("Payment received.")
			return nil
		}

		retry, err := Confirm(a.reader, "Try the payment again?", a.out)
		if err != nil {
			return err
		}
		if !retry {
			return errAbandoned
		}
	}
}

func (a *App) collectPayment(ctx context.Context, sessionID, orderID string) (bool, error) {
	paymentID, err := GetSimpleText(a.reader, "Payment id", a.out)
	if err != nil {
		return false, err
	}
	if paymentID == "" {
		if _, err := a.client.CancelPayment(ctx, sessionID); err != nil {
			return false, err
		}
		a.warn("Payment cancelled.")
		return false, nil
	}
	sig, err := GetSimpleText(a.reader, "Payment signature", a.out)
	if err != nil {
		return false, err
	}

	sess, err := a.client.CompletePayment(ctx, &rpc.CompletePaymentRequest{
		SessionID: sessionID,
		OrderID:   orderID,
		PaymentID: paymentID,
		Signature: sig,
	})
	if errors.Is(err, client.ErrPaymentVerification) {
		a.warn("%v", err)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return sess.State == statePaymentDone, nil
}

func (a *App) deliver(ctx context.Context, sessionID string) error {
	doc, err := a.client.IssueDocument(ctx, sessionID)
	if err != nil {
		return err
	}
	a.info("Preparing your %s...", doc.Kind)
	a.sleep(a.config.DeliveryDelay)

	path, err := a.saveDocument(ctx, doc.ID, doc.Kind, doc.Filename, doc.Content)
	if err != nil {
		return err
	}
	a.success("Saved %s (document id %s)", path, doc.ID)
	return nil
}

// saveDocument writes the file and remembers it in the local history.
func (a *App) saveDocument(ctx context.Context, id, kind, name string, data []byte) (string, error) {
	path, err := a.saveFile(name, data)
	if err != nil {
		return "", err
	}
	if id != "" {
		err = a.history.RecordDocument(ctx, history.Document{ID: id, Kind: kind, Filename: filepath.Base(name), Path: path, SavedAt: a.now()})
		if err != nil {
			a.warn("%v", err)
		}
	}
	return path, nil
}

func (a *App) saveFile(name string, data []byte) (string, error) {
	if err := os.MkdirAll(a.config.DownloadDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(a.config.DownloadDir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
