package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/dbx"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/examdesk/internal/timex"
)

// Settlement is what a paid payment turned into. Exactly one field is set.
type Settlement struct {
	ApplicationID string
	PurchaseID    string
}

// settler creates the application or purchase for a paid payment. It is
// shared by the wizard and the webhook, so whichever runs second finds the
// row the first one wrote.
type settler struct {
	repomanager repomanager.RepositoryManager
	now         timex.Clock
}

// settle must run inside the transaction that marked pay as paid.
func (s settler) settle(ctx context.Context, tx dbx.DBTX, pay *models.Payment) (Settlement, error) {
	switch pay.Flow {
	case models.FlowExamRegistration:
		return s.settleApplication(ctx, tx, pay)
	case models.FlowPurchase:
		return s.settlePurchase(ctx, tx, pay)
	}
	return Settlement{}, fmt.Errorf("payment %s has no settlement flow", pay.ID)
}

func (s settler) settleApplication(ctx context.Context, tx dbx.DBTX, pay *models.Payment) (Settlement, error) {
	repo := s.repomanager.Applications(tx)
	app, err := repo.GetByPaymentID(ctx, pay.ID)
	if err == nil {
		return Settlement{ApplicationID: app.ID}, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return Settlement{}, err
	}

	no, err := applicationNo()
	if err != nil {
		return Settlement{}, err
	}
	app, err = repo.Create(ctx, &models.Application{
		ApplicationNo: no,
		CandidateID:   pay.CandidateID,
		ExamID:        pay.ItemID,
		Status:        models.ApplicationPending,
		PaymentID:     pay.ID,
	})
	if err != nil {
		return Settlement{}, err
	}
	return Settlement{ApplicationID: app.ID}, nil
}

func (s settler) settlePurchase(ctx context.Context, tx dbx.DBTX, pay *models.Payment) (Settlement, error) {
	repo := s.repomanager.Purchases(tx)
	p, err := repo.GetByPaymentID(ctx, pay.ID)
	if err == nil {
		return Settlement{PurchaseID: p.ID}, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return Settlement{}, err
	}

	item, err := s.repomanager.Catalog(tx).Get(ctx, pay.ItemID)
	if err != nil {
		return Settlement{}, err
	}
	now := s.now()
	p, err = repo.Create(ctx, &models.Purchase{
		CandidateID: pay.CandidateID,
		ItemID:      item.ID,
		PaymentID:   pay.ID,
		Amount:      pay.Amount,
		PurchasedAt: now,
		ExpiresAt:   timex.AddDays(now, item.DurationDays),
	})
	if err != nil {
		return Settlement{}, err
	}
	return Settlement{PurchaseID: p.ID}, nil
}

// applicationNo returns APP- followed by eight uppercase hex digits.
func applicationNo() (string, error) {
	suffix, err := common.MakeRandHexString(4)
	if err != nil {
		return "", err
	}
	return "APP-" + strings.ToUpper(suffix), nil
}
