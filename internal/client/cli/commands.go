package cli

import (
	"context"
	"net/url"
	"strings"
)

func (a *App) commands() []command {
	return []command{
		{name: "exams", args: "[today]", help: "list upcoming exams", run: a.listExams},
		{name: "watch", args: "[today]", help: "follow exam list updates", run: a.watchExams},
		{name: "unwatch", help: "stop following updates", run: a.unwatch},
		{name: "register", args: "<exam_id>", help: "register for an exam", run: a.register},
		{name: "catalog", args: "[kind]", help: "list items for sale", run: a.listCatalog},
		{name: "buy", args: "<item_id>", help: "buy a catalog item", run: a.buy},
		{name: "purchases", args: "<identifier>", help: "show purchase history", run: a.listPurchases},
		{name: "attempt", args: "<exam_id> <candidate_id>", help: "take an exam in progress", run: a.attemptExam},
		{name: "docs", help: "documents saved on this machine", run: a.listDocuments},
		{name: "doc", args: "<document_id> [file]", help: "download an issued document", run: a.downloadDocument},
		{name: "login", args: "[user]", help: "admin login", run: a.login},

		{name: "logout", help: "admin logout", admin: true, run: a.logout},
		{name: "apps", args: "[status] [search]", help: "list applications", admin: true, run: a.listApplications},
		{name: "setstatus", args: "<app_id> <PENDING|SELECTED|REJECTED>", help: "change application status", admin: true, run: a.setApplicationStatus},
		{name: "delapp", args: "<app_id>", help: "delete an application", admin: true, run: a.deleteApplication},
		{name: "cats", help: "list categories", admin: true, run: a.listCategories},
		{name: "addcat", args: "<name>", help: "create a category", admin: true, run: a.createCategory},
		{name: "rencat", args: "<id> <name>", help: "rename a category", admin: true, run: a.renameCategory},
		{name: "delcat", args: "<id>", help: "delete a category", admin: true, run: a.deleteCategory},
		{name: "attendance", args: "<exam_id>", help: "mark attendance", admin: true, run: a.attendance},
		{name: "questions", args: "<exam_id> <file.json>", help: "upload a question set", admin: true, run: a.uploadQuestions},
		{name: "paper", args: "<exam_id> [answers]", help: "download the question paper", admin: true, run: a.questionPaper},
	}
}

func (a *App) listDocuments(ctx context.Context, _ []string) error {
	docs, err := a.history.Documents(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{d.ID, d.Kind, d.Path, d.SavedAt.Local().Format("2006-01-02 15:04")})
	}
	a.table([]string{"ID", "Kind", "File", "Saved"}, rows)
	return nil
}

// downloadDocument fetches a previously issued document over the HTTP edge.
// Without a file name it reuses the name from the history, if any.
func (a *App) downloadDocument(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	id := args[0]
	name, kind := id+".pdf", ""
	if prev, err := a.history.Document(ctx, id); err == nil && prev != nil {
		name, kind = prev.Filename, prev.Kind
	}
	if len(args) == 2 {
		name = args[1]
	}

	u := strings.TrimRight(a.config.HTTPBaseURL, "/") + "/documents/" + url.PathEscape(id)
	data, err := a.fetch(ctx, u)
	if err != nil {
		return err
	}
	path, err := a.saveDocument(ctx, id, kind, name, data)
	if err != nil {
		return err
	}
	a.success("Saved %s", path)
	return nil
}
