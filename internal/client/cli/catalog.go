package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/examdesk/internal/pdfdoc"
)

func (a *App) listCatalog(ctx context.Context, args []string) error {
	kind := ""
	switch len(args) {
	case 0:
	case 1:
		kind = args[0]
	default:
		return errUsage
	}

	items, err := a.client.ListCatalog(ctx, kind)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		validity := "-"
		if it.DurationDays > 0 {
			validity = strconv.Itoa(it.DurationDays) + " days"
		}
		rows = append(rows, []string{it.ID, it.Kind, it.Title, pdfdoc.FormatAmount(it.Price), validity})
	}
	a.table([]string{"ID", "Kind", "Title", "Price", "Validity"}, rows)
	return nil
}

func (a *App) listPurchases(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	ps, err := a.client.ListPurchases(ctx, args[0])
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		st := red.Sprint("expired")
		if p.Active {
			st = green.Sprint("active")
		}
		expires := "-"
		if !p.ExpiresAt.IsZero() {
			expires = p.ExpiresAt.Local().Format("2006-01-02")
		}
		rows = append(rows, []string{
			p.ItemTitle, p.ItemKind, pdfdoc.FormatAmount(p.Amount),
			p.PurchasedAt.Local().Format("2006-01-02"), expires, st,
		})
	}
	a.table([]string{"Item", "Kind", "Amount", "Purchased", "Expires", "Status"}, rows)
	return nil
}
