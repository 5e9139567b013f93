package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/rpc"
)

var applicationStatuses = map[string]bool{"PENDING": true, "SELECTED": true, "REJECTED": true}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	user := ""
	if len(args) == 1 {
		user = args[0]
	} else {
		var err error
		if user, err = GetSimpleText(a.reader, "Admin user name", a.out); err != nil {
			return err
		}
	}
	pw, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	if err := a.client.AdminLogin(ctx, user, string(pw)); err != nil {
		return err
	}
	a.success("Logged in as %s.", user)
	return nil
}

func (a *App) logout(_ context.Context, _ []string) error {
	a.client.AdminLogout()
	a.info("Logged out.")
	return nil
}

// listApplications takes an optional status followed by free search text.
func (a *App) listApplications(ctx context.Context, args []string) error {
	status := ""
	if len(args) > 0 && applicationStatuses[strings.ToUpper(args[0])] {
		status, args = strings.ToUpper(args[0]), args[1:]
	}
	apps, err := a.client.ListApplications(ctx, strings.Join(args, " "), status)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(apps))
	for _, ap := range apps {
		rows = append(rows, []string{
			ap.ID, ap.ApplicationNo, ap.CandidateName, ap.ExamCode, colorStatus(ap.Status),
			ap.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	a.table([]string{"ID", "Application", "Candidate", "Exam", "Status", "Created"}, rows)
	return nil
}

func colorStatus(s string) string {
	switch s {
	case "SELECTED":
		return green.Sprint(s)
	case "REJECTED":
		return red.Sprint(s)
	default:
		return yellow.Sprint(s)
	}
}

func (a *App) setApplicationStatus(ctx context.Context, args []string) error {
	if len(args) != 2 || !applicationStatuses[strings.ToUpper(args[1])] {
		return errUsage
	}
	ap, err := a.client.SetApplicationStatus(ctx, args[0], strings.ToUpper(args[1]))
	if err != nil {
		return err
	}
	a.success("Application %s is now %s.", ap.ApplicationNo, ap.Status)
	return nil
}

func (a *App) deleteApplication(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete application %s?", args[0]), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.client.DeleteApplication(ctx, args[0]); err != nil {
		return err
	}
	a.success("Deleted.")
	return nil
}

func (a *App) listCategories(ctx context.Context, _ []string) error {
	cats, err := a.client.ListCategories(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{c.ID, c.Name, c.CreatedAt.Local().Format("2006-01-02")})
	}
	a.table([]string{"ID", "Name", "Created"}, rows)
	return nil
}

func (a *App) createCategory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	c, err := a.client.CreateCategory(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.success("Created category %s (%s).", c.Name, c.ID)
	return nil
}

func (a *App) renameCategory(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	c, err := a.client.RenameCategory(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	a.success("Renamed to %s.", c.Name)
	return nil
}

func (a *App) deleteCategory(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := a.client.DeleteCategory(ctx, args[0]); err != nil {
		return err
	}
	a.success("Deleted.")
	return nil
}

// attendance shows the roster and marks every row: the candidates listed
// present, everyone else absent.
func (a *App) attendance(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	roster, err := a.client.Roster(ctx, args[0])
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		a.info("No selected candidates for this exam.")
		return nil
	}

	var present []string
	rows := make([][]string, 0, len(roster))
	for _, r := range roster {
		rows = append(rows, []string{r.CandidateID, r.ApplicationNo, r.CandidateName, r.Status})
		if r.Status == "present" {
			present = append(present, r.CandidateID)
		}
	}
	a.table([]string{"Candidate", "Application", "Name", "Marked"}, rows)

	in, err := GetWithDefault(a.reader, "Present candidate ids, comma separated (- for none)", strings.Join(present, ","), a.out)
	if err != nil {
		return err
	}
	marked := map[string]bool{}
	for _, id := range strings.Split(in, ",") {
		if id = strings.TrimSpace(id); id != "" && id != "-" {
			marked[id] = true
		}
	}

	marks := attendanceMarks(roster, marked)
	saved, err := a.client.SaveAttendance(ctx, args[0], marks)
	if err != nil {
		return err
	}
	n := 0
	for _, m := range saved {
		if m.Status == "present" {
			n++
		}
	}
	a.success("Attendance saved: %d present, %d absent.", n, len(saved)-n)
	return nil
}

func attendanceMarks(roster []rpc.RosterEntry, present map[string]bool) []rpc.AttendanceMark {
	marks := make([]rpc.AttendanceMark, 0, len(roster))
	for _, r := range roster {
		st := "absent"
		if present[r.CandidateID] {
			st = "present"
		}
		marks = append(marks, rpc.AttendanceMark{CandidateID: r.CandidateID, Status: st})
	}
	return marks
}

// uploadQuestions reads a JSON array of questions and replaces the exam's set.
func (a *App) uploadQuestions(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	var qs []rpc.Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return fmt.Errorf("parse %s: %w", args[1], err)
	}
	if err := a.client.UpsertQuestions(ctx, args[0], qs); err != nil {
		return err
	}
	a.success("Uploaded %d questions.", len(qs))
	return nil
}

func (a *App) questionPaper(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 || (len(args) == 2 && args[1] != "answers") {
		return errUsage
	}
	doc, err := a.client.QuestionPaper(ctx, args[0], len(args) == 2)
	if err != nil {
		return err
	}
	path, err := a.saveDocument(ctx, doc.ID, doc.Kind, doc.Filename, doc.Content)
	if err != nil {
		return err
	}
	a.success("Saved %s", path)
	return nil
}
