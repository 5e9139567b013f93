package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/logging"
	"github.com/dmitrijs2005/examdesk/internal/server/auth"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

func newAdminService(env *testEnv) *AdminService {
	return NewAdminService(env.db, env.rm, env.cfg, env.docs, logging.Nop{})
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)
	s := newAdminService(env)
	ctx := context.Background()

	require.NoError(t, s.EnsureAdmin(ctx, " root ", "s3cret"))

	tok, err := s.Login(ctx, "root", "s3cret")
	require.NoError(t, err)
	claims, err := auth.ParseToken(tok, []byte(env.cfg.SecretKey))
	require.NoError(t, err)
	assert.Equal(t, "root", claims.UserName)

	_, err = s.Login(ctx, "root", "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	_, err = s.Login(ctx, "nobody", "s3cret")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	// reset keeps the same admin
	id := env.mem.adm["root"].ID
	require.NoError(t, s.EnsureAdmin(ctx, "root", "other"))
	assert.Equal(t, id, env.mem.adm["root"].ID)
	_, err = s.Login(ctx, "root", "other")
	require.NoError(t, err)

	require.ErrorIs(t, s.EnsureAdmin(ctx, "", "x"), common.ErrValidation)
}

func TestListApplications_Search(t *testing.T) {
	env := newTestEnv(t)
	s := newAdminService(env)
	env.mem.cand["c1"] = &models.Candidate{ID: "c1", Name: "John Smith"}
	env.mem.cand["c2"] = &models.Candidate{ID: "c2", Name: "Priya"}
	env.mem.cand["c3"] = &models.Candidate{ID: "c3", Name: "Maria Johnson"}
	env.mem.apps["a1"] = &models.Application{ID: "a1", ApplicationNo: "APP001", CandidateID: "c1", ExamID: "exam-paid", Status: models.ApplicationPending}
	env.mem.apps["a2"] = &models.Application{ID: "a2", ApplicationNo: "JOHN-42", CandidateID: "c2", ExamID: "exam-paid", Status: models.ApplicationSelected}
	env.mem.apps["a3"] = &models.Application{ID: "a3", ApplicationNo: "APP003", CandidateID: "c3", ExamID: "exam-free", Status: models.ApplicationPending}
	env.mem.apps["a4"] = &models.Application{ID: "a4", ApplicationNo: "APP004", CandidateID: "c2", ExamID: "exam-free", Status: models.ApplicationPending}

	rows, err := s.ListApplications(context.Background(), "john", "")
	require.NoError(t, err)
	var nos []string
	for _, r := range rows {
		nos = append(nos, r.ApplicationNo)
	}
	assert.Equal(t, []string{"APP001", "APP003", "JOHN-42"}, nos)

	rows, err = s.ListApplications(context.Background(), " JOHN ", models.ApplicationPending)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = s.ListApplications(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	_, err = s.ListApplications(context.Background(), "", "maybe")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestApplicationStatusAndDelete(t *testing.T) {
	env := newTestEnv(t)
	s := newAdminService(env)
	ctx := context.Background()
	env.mem.apps["a1"] = &models.Application{ID: "a1", Status: models.ApplicationPending}

	a, err := s.SetApplicationStatus(ctx, "a1", models.ApplicationSelected)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationSelected, a.Status)

	_, err = s.SetApplicationStatus(ctx, "a1", "selected")
	require.ErrorIs(t, err, common.ErrValidation)

	require.NoError(t, s.DeleteApplication(ctx, "a1"))
	require.ErrorIs(t, s.DeleteApplication(ctx, "a1"), common.ErrorNotFound)
}

func TestCategories_RenameTrimsAndReturnsRow(t *testing.T) {
	env := newTestEnv(t)
	s := newAdminService(env)
	ctx := context.Background()

	c, err := s.CreateCategory(ctx, "  Medical ")
	require.NoError(t, err)
	assert.Equal(t, "Medical", c.Name)

	renamed, err := s.RenameCategory(ctx, c.ID, "  Medical Entrance  ")
	require.NoError(t, err)
	assert.Equal(t, "Medical Entrance", renamed.Name)
	assert.Equal(t, []string{"Medical Entrance"}, env.mem.renames)

	list, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Medical Entrance", list[0].Name)

	_, err = s.RenameCategory(ctx, c.ID, "   ")
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Len(t, env.mem.renames, 1)

	require.NoError(t, s.DeleteCategory(ctx, c.ID))
	list, err = s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSaveAttendance_DefaultsToAbsent(t *testing.T) {
	env := newTestEnv(t)
	s := newAdminService(env)
	ctx := context.Background()
	env.mem.roster["exam-free"] = []models.RosterEntry{
		{CandidateID: "c1", CandidateName: "A", Status: models.Absent},
		{CandidateID: "c2", CandidateName: "B", Status: models.Absent},
		{CandidateID: "c3", CandidateName: "C", Status: models.Absent},
	}

	saved, err := s.SaveAttendance(ctx, "exam-free", []models.AttendanceMark{{CandidateID: "c2", Status: models.Present}})
	require.NoError(t, err)
	want := []models.AttendanceMark{
		{CandidateID: "c1", Status: models.Absent},
		{CandidateID: "c2", Status: models.Present},
		{CandidateID: "c3", Status: models.Absent},
	}
	assert.Equal(t, want, saved)
	assert.Equal(t, want, env.mem.attSaved["exam-free"])

	_, err = s.SaveAttendance(ctx, "exam-free", []models.AttendanceMark{{CandidateID: "c9", Status: models.Present}})
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = s.SaveAttendance(ctx, "exam-free", []models.AttendanceMark{{CandidateID: "c1", Status: "late"}})
	require.ErrorIs(t, err, common.ErrValidation)

	roster, err := s.Roster(ctx, "exam-free")
	require.NoError(t, err)
	assert.Len(t, roster, 3)
}

func TestSaveAttendance_ReportsEveryUnknownCandidate(t *testing.T) {
	env := newTestEnv(t)
	s := newAdminService(env)
	env.mem.roster["exam-free"] = []models.RosterEntry{{CandidateID: "c1", Status: models.Absent}}

	marks := []models.AttendanceMark{
		{CandidateID: "c9", Status: models.Present},
		{CandidateID: "c1", Status: models.Present},
		{CandidateID: "c4", Status: models.Absent},
		{CandidateID: "c7", Status: models.Present},
	}
	for i := 0; i < 5; i++ {
		_, err := s.SaveAttendance(context.Background(), "exam-free", marks)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "c4, c7, c9")
	}
	assert.Empty(t, env.mem.attSaved)
}

func TestUpsertQuestions(t *testing.T) {
	env := newTestEnv(t)
	s := newAdminService(env)
	ctx := context.Background()

	qs := []*models.Question{
		{Text: " First ", Options: []string{"a", "b"}, CorrectOption: 0},
		{Text: "Second", Options: []string{"a", "b", "c"}, CorrectOption: 2},
	}
	require.NoError(t, s.UpsertQuestions(ctx, "exam-paid", qs))
	stored := env.mem.qs["exam-paid"]
	require.Len(t, stored, 2)
	assert.Equal(t, "First", stored[0].Text)
	assert.Equal(t, 2, stored[1].Ordinal)

	bad := [][]*models.Question{
		{{Text: "", Options: []string{"a", "b"}}},
		{{Text: "x", Options: []string{"a"}}},
		{{Text: "x", Options: []string{"a", "b"}, CorrectOption: 2}},
		{{Text: "x", Options: []string{"a", "b"}, ImageURL: "file:///etc/passwd"}},
		{{Text: "x", Options: []string{"a", "b"}, ImageURL: "cdn.example.com/q.png"}},
	}
	for _, b := range bad {
		require.ErrorIs(t, s.UpsertQuestions(ctx, "exam-paid", b), common.ErrValidation)
	}
	require.ErrorIs(t, s.UpsertQuestions(ctx, "missing", qs), common.ErrorNotFound)

	doc, err := s.QuestionPaper(ctx, "exam-paid", true)
	require.NoError(t, err)
	assert.Equal(t, "QuestionPaper_NEET26_20261026.pdf", doc.Filename)
}
