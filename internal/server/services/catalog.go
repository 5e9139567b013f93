package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/examdesk/internal/server/models"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/examdesk/internal/timex"
)

// PurchaseView is a purchase with its activity at the time of listing.
type PurchaseView struct {
	*models.PurchaseRow
	Active bool
}

type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         timex.Clock
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager) *CatalogService {
	return &CatalogService{db: db, repomanager: m, now: timex.UTC}
}

// ListCatalog returns items of kind, or all items when kind is empty.
func (s *CatalogService) ListCatalog(ctx context.Context, kind string) ([]*models.CatalogItem, error) {
	return s.repomanager.Catalog(s.db).List(ctx, strings.TrimSpace(kind))
}

// ListPurchases returns the purchases of the candidate with identifier.
func (s *CatalogService) ListPurchases(ctx context.Context, identifier string) ([]PurchaseView, error) {
	cand, err := s.repomanager.Candidates(s.db).GetByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		return nil, err
	}
	rows, err := s.repomanager.Purchases(s.db).ListByCandidate(ctx, cand.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]PurchaseView, 0, len(rows))
	for _, r := range rows {
		out = append(out, PurchaseView{PurchaseRow: r, Active: r.Active(now)})
	}
	return out, nil
}
