package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/dbx"
	"github.com/dmitrijs2005/examdesk/internal/logging"
	"github.com/dmitrijs2005/examdesk/internal/server/gateway"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/examdesk/internal/timex"
)

// PaymentService reconciles payment rows from gateway webhooks, including
// payments whose wizard session is gone.
type PaymentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	gateway     PaymentGateway
	log         logging.Logger
	now         timex.Clock
}

func NewPaymentService(db *sql.DB, m repomanager.RepositoryManager, gw PaymentGateway, log logging.Logger) *PaymentService {
	return &PaymentService{db: db, repomanager: m, gateway: gw, log: log.With("module", "payments"), now: timex.UTC}
}

// HandleWebhook verifies and applies one webhook delivery. A captured
// payment is settled into its application or purchase unless that already
// happened. Unknown orders and events are acknowledged and ignored.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if err := s.gateway.VerifyWebhook(body, signature); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}
	ev, err := gateway.ParseWebhook(body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	switch ev.Event {
	case gateway.EventPaymentCaptured:
		err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			pay, err := s.repomanager.Payments(tx).MarkPaid(ctx, ev.OrderID, ev.PaymentID, "")
			if err != nil {
				return err
			}
			if pay.Flow == "" {
				s.log.Warn(ctx, "captured payment has no settlement target", "order_id", ev.OrderID)
				return nil
			}
			res, err := settler{repomanager: s.repomanager, now: s.now}.settle(ctx, tx, pay)
			if err != nil {
				return err
			}
			s.log.Info(ctx, "payment settled", "order_id", ev.OrderID,
				"application_id", res.ApplicationID, "purchase_id", res.PurchaseID)
			return nil
		})
	case gateway.EventPaymentFailed:
		err = s.repomanager.Payments(s.db).MarkFailed(ctx, ev.OrderID, ev.PaymentID)
	default:
		s.log.Debug(ctx, "webhook ignored", "event", ev.Event)
		return nil
	}

	if errors.Is(err, common.ErrorNotFound) {
		s.log.Warn(ctx, "webhook for unknown order", "event", ev.Event, "order_id", ev.OrderID)
		return nil
	}
	if err != nil {
		return err
	}
	s.log.Info(ctx, "payment reconciled", "event", ev.Event, "order_id", ev.OrderID, "payment_id", ev.PaymentID)
	return nil
}
