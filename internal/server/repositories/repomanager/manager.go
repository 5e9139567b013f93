package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/examdesk/internal/dbx"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/admins"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/applications"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/attendance"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/candidates"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/catalog"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/categories"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/documents"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/exams"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/payments"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/purchases"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/questions"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/subscriptions"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Exams(db dbx.DBTX) exams.Repository
	Candidates(db dbx.DBTX) candidates.Repository
	Applications(db dbx.DBTX) applications.Repository
	Payments(db dbx.DBTX) payments.Repository
	Catalog(db dbx.DBTX) catalog.Repository
	Purchases(db dbx.DBTX) purchases.Repository
	Subscriptions(db dbx.DBTX) subscriptions.Repository
	Categories(db dbx.DBTX) categories.Repository
	Attendance(db dbx.DBTX) attendance.Repository
	Admins(db dbx.DBTX) admins.Repository
	Questions(db dbx.DBTX) questions.Repository
	Documents(db dbx.DBTX) documents.Repository
}
