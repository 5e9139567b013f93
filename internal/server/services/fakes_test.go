package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/dbx"
	"github.com/dmitrijs2005/examdesk/internal/logging"
	"github.com/dmitrijs2005/examdesk/internal/pdfdoc"
	"github.com/dmitrijs2005/examdesk/internal/server/config"
	"github.com/dmitrijs2005/examdesk/internal/server/gateway"
	"github.com/dmitrijs2005/examdesk/internal/server/kv"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
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
	"github.com/dmitrijs2005/examdesk/internal/wizard"
)

var errSessionWrite = errors.New("session store unavailable")

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// memDB backs every fake repository.
type memDB struct {
	mu   sync.Mutex
	seq  int
	exam map[string]*models.Exam
	cand map[string]*models.Candidate
	apps map[string]*models.Application
	pays map[string]*models.Payment
	cat  map[string]*models.CatalogItem
	pur  map[string]*models.Purchase
	subs map[string]*models.Subscription
	cats map[string]*models.Category
	adm  map[string]*models.Admin
	qs   map[string][]*models.Question
	docs map[string]*models.Document

	roster   map[string][]models.RosterEntry
	attSaved map[string][]models.AttendanceMark

	renames        []string
	candidateWrite int
}

func newMemDB() *memDB {
	return &memDB{
		exam:     map[string]*models.Exam{},
		cand:     map[string]*models.Candidate{},
		apps:     map[string]*models.Application{},
		pays:     map[string]*models.Payment{},
		cat:      map[string]*models.CatalogItem{},
		pur:      map[string]*models.Purchase{},
		subs:     map[string]*models.Subscription{},
		cats:     map[string]*models.Category{},
		adm:      map[string]*models.Admin{},
		qs:       map[string][]*models.Question{},
		docs:     map[string]*models.Document{},
		roster:   map[string][]models.RosterEntry{},
		attSaved: map[string][]models.AttendanceMark{},
	}
}

func (m *memDB) id(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

type fakeRepoManager struct{ m *memDB }

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeRepoManager) Exams(dbx.DBTX) exams.Repository              { return &fakeExams{f.m} }
func (f *fakeRepoManager) Candidates(dbx.DBTX) candidates.Repository    { return &fakeCandidates{f.m} }
func (f *fakeRepoManager) Applications(dbx.DBTX) applications.Repository {
	return &fakeApplications{f.m}
}
func (f *fakeRepoManager) Payments(dbx.DBTX) payments.Repository   { return &fakePayments{f.m} }
func (f *fakeRepoManager) Catalog(dbx.DBTX) catalog.Repository     { return &fakeCatalog{f.m} }
func (f *fakeRepoManager) Purchases(dbx.DBTX) purchases.Repository { return &fakePurchases{f.m} }
func (f *fakeRepoManager) Subscriptions(dbx.DBTX) subscriptions.Repository {
	return &fakeSubscriptions{f.m}
}
func (f *fakeRepoManager) Categories(dbx.DBTX) categories.Repository { return &fakeCategories{f.m} }
func (f *fakeRepoManager) Attendance(dbx.DBTX) attendance.Repository { return &fakeAttendance{f.m} }
func (f *fakeRepoManager) Admins(dbx.DBTX) admins.Repository         { return &fakeAdmins{f.m} }
func (f *fakeRepoManager) Questions(dbx.DBTX) questions.Repository   { return &fakeQuestions{f.m} }
func (f *fakeRepoManager) Documents(dbx.DBTX) documents.Repository   { return &fakeDocuments{f.m} }

type fakeExams struct{ m *memDB }

func (r *fakeExams) List(context.Context) ([]*models.Exam, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*models.Exam, 0, len(r.m.exam))
	for _, e := range r.m.exam {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (r *fakeExams) ListByDate(ctx context.Context, day time.Time) ([]*models.Exam, error) {
	all, _ := r.List(ctx)
	var out []*models.Exam
	for _, e := range all {
		if e.ExamDate.Format(time.DateOnly) == day.Format(time.DateOnly) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExams) Get(_ context.Context, id string) (*models.Exam, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	e, ok := r.m.exam[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return e, nil
}

func (r *fakeExams) GetByCode(_ context.Context, code string) (*models.Exam, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, e := range r.m.exam {
		if e.Code == code {
			return e, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeCandidates struct{ m *memDB }

func (r *fakeCandidates) Get(_ context.Context, id string) (*models.Candidate, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.cand[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCandidates) GetByIdentifier(_ context.Context, identifier string) (*models.Candidate, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.cand {
		if c.Identifier == identifier {
			cp := *c
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeCandidates) Create(_ context.Context, c *models.Candidate) (*models.Candidate, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.candidateWrite++
	c.ID = r.m.id("cand")
	cp := *c
	r.m.cand[c.ID] = &cp
	return c, nil
}

func (r *fakeCandidates) Update(_ context.Context, c *models.Candidate) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.candidateWrite++
	if _, ok := r.m.cand[c.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *c
	r.m.cand[c.ID] = &cp
	return nil
}

type fakeApplications struct{ m *memDB }

func (r *fakeApplications) Create(_ context.Context, a *models.Application) (*models.Application, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, x := range r.m.apps {
		if x.CandidateID == a.CandidateID && x.ExamID == a.ExamID {
			return nil, common.ErrorAlreadyExists
		}
	}
	a.ID = r.m.id("app")
	a.CreatedAt, a.UpdatedAt = testNow, testNow
	cp := *a
	r.m.apps[a.ID] = &cp
	return a, nil
}

func (r *fakeApplications) Get(_ context.Context, id string) (*models.Application, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.apps[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func (r *fakeApplications) GetByPaymentID(_ context.Context, paymentID string) (*models.Application, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, a := range r.m.apps {
		if a.PaymentID == paymentID && paymentID != "" {
			return a, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeApplications) GetByCandidateExam(_ context.Context, candidateID, examID string) (*models.Application, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, a := range r.m.apps {
		if a.CandidateID == candidateID && a.ExamID == examID {
			return a, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeApplications) List(_ context.Context, status models.ApplicationStatus) ([]*models.ApplicationRow, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.ApplicationRow
	for _, a := range r.m.apps {
		if status != "" && a.Status != status {
			continue
		}
		row := &models.ApplicationRow{Application: *a}
		if c, ok := r.m.cand[a.CandidateID]; ok {
			row.CandidateName = c.Name
		}
		if e, ok := r.m.exam[a.ExamID]; ok {
			row.ExamCode, row.ExamName = e.Code, e.Name
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ApplicationNo < out[j].ApplicationNo })
	return out, nil
}

func (r *fakeApplications) SetStatus(_ context.Context, id string, status models.ApplicationStatus) (*models.Application, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.apps[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	a.Status = status
	return a, nil
}

func (r *fakeApplications) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.apps[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.apps, id)
	return nil
}

type fakePayments struct{ m *memDB }

func (r *fakePayments) Create(_ context.Context, p *models.Payment) (*models.Payment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p.ID = r.m.id("pay")
	cp := *p
	r.m.pays[p.ID] = &cp
	return p, nil
}

func (r *fakePayments) Get(_ context.Context, id string) (*models.Payment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.pays[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePayments) GetBypass(_ context.Context, sessionID string) (*models.Payment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.pays {
		if p.SessionID == sessionID && p.BypassReason != "" {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakePayments) byOrder(orderID string) *models.Payment {
	for _, p := range r.m.pays {
		if p.OrderID == orderID && orderID != "" {
			return p
		}
	}
	return nil
}

func (r *fakePayments) GetByOrderID(_ context.Context, orderID string) (*models.Payment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if p := r.byOrder(orderID); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (r *fakePayments) MarkPaid(_ context.Context, orderID, paymentID, signature string) (*models.Payment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p := r.byOrder(orderID)
	if p == nil {
		return nil, common.ErrorNotFound
	}
	if p.Status != models.PaymentPaid {
		p.Status, p.PaymentID, p.Signature = models.PaymentPaid, paymentID, signature
	}
	cp := *p
	return &cp, nil
}

func (r *fakePayments) MarkFailed(_ context.Context, orderID, paymentID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if p := r.byOrder(orderID); p != nil && p.Status == models.PaymentCreated {
		p.Status, p.PaymentID = models.PaymentFailed, paymentID
	}
	return nil
}

type fakeCatalog struct{ m *memDB }

func (r *fakeCatalog) List(_ context.Context, kind string) ([]*models.CatalogItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.CatalogItem
	for _, it := range r.m.cat {
		if kind == "" || it.Kind == kind {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *fakeCatalog) Get(_ context.Context, id string) (*models.CatalogItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	it, ok := r.m.cat[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return it, nil
}

type fakePurchases struct{ m *memDB }

func (r *fakePurchases) Create(_ context.Context, p *models.Purchase) (*models.Purchase, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p.ID = r.m.id("pur")
	cp := *p
	r.m.pur[p.ID] = &cp
	return p, nil
}

func (r *fakePurchases) Get(_ context.Context, id string) (*models.Purchase, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.pur[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (r *fakePurchases) GetByPaymentID(_ context.Context, paymentID string) (*models.Purchase, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.pur {
		if p.PaymentID == paymentID && paymentID != "" {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakePurchases) ListByCandidate(_ context.Context, candidateID string) ([]*models.PurchaseRow, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.PurchaseRow
	for _, p := range r.m.pur {
		if p.CandidateID != candidateID {
			continue
		}
		row := &models.PurchaseRow{Purchase: *p}
		if it, ok := r.m.cat[p.ItemID]; ok {
			row.ItemKind, row.ItemTitle = it.Kind, it.Title
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeSubscriptions struct{ m *memDB }

func (r *fakeSubscriptions) Get(_ context.Context, id string) (*models.Subscription, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.subs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return s, nil
}

type fakeCategories struct{ m *memDB }

func (r *fakeCategories) List(context.Context) ([]*models.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Category
	for _, c := range r.m.cats {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategories) Create(_ context.Context, name string) (*models.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c := &models.Category{ID: r.m.id("cat"), Name: name, CreatedAt: testNow}
	r.m.cats[c.ID] = c
	cp := *c
	return &cp, nil
}

func (r *fakeCategories) Rename(_ context.Context, id, name string) (*models.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.renames = append(r.m.renames, name)
	c, ok := r.m.cats[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c.Name = name
	cp := *c
	return &cp, nil
}

func (r *fakeCategories) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.cats[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.cats, id)
	return nil
}

type fakeAttendance struct{ m *memDB }

func (r *fakeAttendance) Roster(_ context.Context, examID string) ([]models.RosterEntry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.roster[examID], nil
}

func (r *fakeAttendance) Save(_ context.Context, examID string, marks []models.AttendanceMark) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.attSaved[examID] = marks
	return nil
}

type fakeAdmins struct{ m *memDB }

func (r *fakeAdmins) GetByUserName(_ context.Context, userName string) (*models.Admin, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.adm[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func (r *fakeAdmins) Upsert(_ context.Context, a *models.Admin) (*models.Admin, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if old, ok := r.m.adm[a.UserName]; ok {
		a.ID = old.ID
	} else {
		a.ID = r.m.id("adm")
	}
	r.m.adm[a.UserName] = a
	return a, nil
}

type fakeQuestions struct{ m *memDB }

func (r *fakeQuestions) ListByExam(_ context.Context, examID string) ([]*models.Question, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.qs[examID], nil
}

func (r *fakeQuestions) ReplaceForExam(_ context.Context, examID string, qs []*models.Question) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, q := range qs {
		q.ExamID = examID
		q.Ordinal = i + 1
	}
	r.m.qs[examID] = qs
	return nil
}

type fakeDocuments struct{ m *memDB }

func (r *fakeDocuments) Create(_ context.Context, d *models.Document) (*models.Document, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d.ID = r.m.id("doc")
	d.CreatedAt = testNow
	cp := *d
	r.m.docs[d.ID] = &cp
	return d, nil
}

func (r *fakeDocuments) Get(_ context.Context, id string) (*models.Document, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.docs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return d, nil
}

// memSessions stores JSON copies like the Redis store does.
// A non-empty failOnce makes the next Save in that state fail.
type memSessions struct {
	mu       sync.Mutex
	data     map[string][]byte
	failOnce wizard.State
}

func newMemSessions() *memSessions { return &memSessions{data: map[string][]byte{}} }

func (s *memSessions) Save(_ context.Context, sess *wizard.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOnce != "" && sess.State == s.failOnce {
		s.failOnce = ""
		return errSessionWrite
	}
	s.data[sess.ID] = b
	return nil
}

func (s *memSessions) Load(_ context.Context, id string) (*wizard.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data[id]
	if !ok {
		return nil, common.ErrSessionExpired
	}
	out := &wizard.Session{}
	return out, json.Unmarshal(b, out)
}

func (s *memSessions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

type memProgress struct {
	mu   sync.Mutex
	data map[string]kv.Progress
	ttl  map[string]time.Duration
}

func newMemProgress() *memProgress {
	return &memProgress{data: map[string]kv.Progress{}, ttl: map[string]time.Duration{}}
}

func (p *memProgress) Save(_ context.Context, examName, candidateID string, pr kv.Progress, ttl time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	k, _ := kv.ProgressKeys(examName, candidateID)
	p.data[k] = pr
	p.ttl[k] = ttl
	return nil
}

func (p *memProgress) Load(_ context.Context, examName, candidateID string) (kv.Progress, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	k, _ := kv.ProgressKeys(examName, candidateID)
	pr, ok := p.data[k]
	if !ok {
		return kv.Progress{Answers: map[int]int{}, Skipped: []int{}}, nil
	}
	return pr, nil
}

func (p *memProgress) Clear(_ context.Context, examName, candidateID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	k, _ := kv.ProgressKeys(examName, candidateID)
	delete(p.data, k)
	return nil
}

type fakeLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (l *fakeLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

// fakeGateway signs like the real client but never leaves the process.
type fakeGateway struct {
	*gateway.Client
	orders   int
	orderErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{Client: gateway.NewClient("http://gateway.invalid", "rzp_key", "rzp_secret", "wh_secret", time.Second)}
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*gateway.Order, error) {
	if g.orderErr != nil {
		return nil, g.orderErr
	}
	g.orders++
	return &gateway.Order{ID: fmt.Sprintf("order_%d", g.orders), Amount: amount, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMemStorage() *memStorage { return &memStorage{objects: map[string][]byte{}} }

func (s *memStorage) Put(_ context.Context, key string, data []byte, _ string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *memStorage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return b, nil
}

func (s *memStorage) PresignGet(_ context.Context, key string) (string, error) {
	return "https://s3.test/" + key + "?sig=get", nil
}

func (s *memStorage) PresignPut(_ context.Context, key, _ string) (string, error) {
	return "https://s3.test/" + key + "?sig=put", nil
}

type testEnv struct {
	db       *sql.DB
	mock     sqlmock.Sqlmock
	mem      *memDB
	rm       *fakeRepoManager
	cfg      *config.Config
	sessions *memSessions
	limiter  *fakeLimiter
	gw       *fakeGateway
	st       *memStorage
	docs     *DocumentService
	reg      *RegistrationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, mock := newSQLMockDB(t)
	mem := newMemDB()
	seed(mem)

	env := &testEnv{
		db:       db,
		mock:     mock,
		mem:      mem,
		rm:       &fakeRepoManager{m: mem},
		sessions: newMemSessions(),
		limiter:  &fakeLimiter{allow: true},
		gw:       newFakeGateway(),
		st:       newMemStorage(),
		cfg: &config.Config{
			SecretKey:                   "k",
			AccessTokenValidityDuration: time.Hour,
			Currency:                    "INR",
			SuperUserKinds:              []string{models.KindExamRegistration, models.KindPracticeTest},
			ProgressGrace:               15 * time.Minute,
			ExamRefreshInterval:         10 * time.Millisecond,
		},
	}

	env.docs = NewDocumentService(db, env.rm, env.st, pdfdoc.NewGenerator(pdfdoc.DefaultLayout(), nil), logging.Nop{})
	env.docs.now = fixedClock

	env.reg = NewRegistrationService(db, env.rm, env.cfg, env.sessions, env.limiter, env.gw, env.st, env.docs, logging.Nop{})
	env.reg.now = fixedClock
	n := 0
	env.reg.newID = func() string {
		n++
		return fmt.Sprintf("sess-%d", n)
	}
	return env
}

func seed(m *memDB) {
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	m.exam["exam-free"] = &models.Exam{
		ID: "exam-free", Code: "MOCK1", Name: "Mock Test", Price: 0,
		ExamDate: day, StartAt: day.Add(10 * time.Hour), EndAt: day.Add(12 * time.Hour),
		Venue: "Hall A", DurationMinutes: 120, Instructions: []string{"Bring an ID"},
	}
	m.exam["exam-paid"] = &models.Exam{
		ID: "exam-paid", Code: "NEET26", Name: "NEET Prelims", Price: 50000,
		ExamDate: day.AddDate(0, 0, 7), StartAt: day.AddDate(0, 0, 7).Add(9 * time.Hour),
		EndAt: day.AddDate(0, 0, 7).Add(12 * time.Hour), Venue: "Centre 12", DurationMinutes: 180,
	}
	m.cat["item-pt"] = &models.CatalogItem{ID: "item-pt", Kind: models.KindPracticeTest, Title: "Practice Pack", Price: 19900, DurationDays: 30}
	m.cat["item-pdf"] = &models.CatalogItem{ID: "item-pdf", Kind: models.KindSyllabusPDF, Title: "Syllabus PDF", Price: 9900, DurationDays: 365}
	m.cat["item-free"] = &models.CatalogItem{ID: "item-free", Kind: models.KindSyllabusPDF, Title: "Sample Syllabus", Price: 0, DurationDays: 7}
	m.subs["SU-1"] = &models.Subscription{SubscriberID: "SU-1", Name: "Coach", ExpiresAt: testNow.Add(24 * time.Hour)}
	m.subs["SU-OLD"] = &models.Subscription{SubscriberID: "SU-OLD", Name: "Lapsed", ExpiresAt: testNow.Add(-time.Hour)}
}

func validDraft() wizard.Draft {
	return wizard.Draft{
		Name:        "Asha Rao",
		FatherName:  "Ravi Rao",
		DateOfBirth: "2004-05-17",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		Address:     "12 MG Road",
	}
}
