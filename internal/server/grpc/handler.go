package grpc

import (
	"context"

	"github.com/dmitrijs2005/examdesk/internal/pdfdoc"
	"github.com/dmitrijs2005/examdesk/internal/rpc"
	"github.com/dmitrijs2005/examdesk/internal/server/kv"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
	"github.com/dmitrijs2005/examdesk/internal/server/services"
	"github.com/dmitrijs2005/examdesk/internal/wizard"
)

var pdfAmount = pdfdoc.FormatAmount

func (s *GRPCServer) Ping(ctx context.Context, _ *rpc.Empty) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "ok"}, nil
}

func (s *GRPCServer) ListExams(ctx context.Context, req *rpc.ListExamsRequest) (*rpc.ListExamsResponse, error) {
	list, err := s.svc.Exams.List(ctx, req.Today)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.ListExamsResponse{Exams: toExams(list)}, nil
}

func (s *GRPCServer) WatchExams(req *rpc.ListExamsRequest, stream rpc.WatchExamsServer) error {
	err := s.svc.Exams.Watch(stream.Context(), req.Today, func(list []services.ExamView) error {
		return stream.Send(&rpc.ListExamsResponse{Exams: toExams(list)})
	})
	return toStatus(err)
}

func (s *GRPCServer) CheckIdentity(ctx context.Context, req *rpc.CheckIdentityRequest) (*rpc.SessionResponse, error) {
	sess, err := s.svc.Registration.CheckIdentity(ctx, wizard.Flow(req.Flow), req.ItemID, req.Identifier)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.SessionResponse{Session: toSession(sess)}, nil
}

func (s *GRPCServer) SubmitForm(ctx context.Context, req *rpc.SubmitFormRequest) (*rpc.SessionResponse, error) {
	sess, err := s.svc.Registration.SubmitForm(ctx, req.SessionID, wizard.Draft(req.Draft))
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.SessionResponse{Session: toSession(sess)}, nil
}

func (s *GRPCServer) ConfirmPurchase(ctx context.Context, req *rpc.ConfirmPurchaseRequest) (*rpc.ConfirmPurchaseResponse, error) {
	c, err := s.svc.Registration.ConfirmPurchase(ctx, req.SessionID, req.SuperUserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.ConfirmPurchaseResponse{
		Session:      toSession(c.Session),
		Bypassed:     c.Bypassed,
		BypassReason: c.BypassReason,
		Notice:       notice(c),
		OrderID:      c.OrderID,
		Amount:       c.Amount,
		Currency:     c.Currency,
		KeyID:        c.KeyID,
	}, nil
}

func (s *GRPCServer) CompletePayment(ctx context.Context, req *rpc.CompletePaymentRequest) (*rpc.SessionResponse, error) {
	sess, err := s.svc.Registration.CompletePayment(ctx, req.SessionID, req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.SessionResponse{Session: toSession(sess)}, nil
}

func (s *GRPCServer) CancelPayment(ctx context.Context, req *rpc.SessionRequest) (*rpc.SessionResponse, error) {
	sess, err := s.svc.Registration.CancelPayment(ctx, req.SessionID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.SessionResponse{Session: toSession(sess)}, nil
}

func (s *GRPCServer) IssueDocument(ctx context.Context, req *rpc.SessionRequest) (*rpc.DocumentResponse, error) {
	doc, err := s.svc.Registration.IssueDocument(ctx, req.SessionID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toDocument(doc), nil
}

func (s *GRPCServer) PresignPhotoUpload(ctx context.Context, req *rpc.PresignPhotoUploadRequest) (*rpc.PresignPhotoUploadResponse, error) {
	key, url, err := s.svc.Registration.PresignPhotoUpload(ctx, req.SessionID, req.ContentType)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.PresignPhotoUploadResponse{Key: key, URL: url}, nil
}

func (s *GRPCServer) ListCatalog(ctx context.Context, req *rpc.ListCatalogRequest) (*rpc.ListCatalogResponse, error) {
	items, err := s.svc.Catalog.ListCatalog(ctx, req.Kind)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &rpc.ListCatalogResponse{Items: make([]rpc.CatalogItem, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, rpc.CatalogItem{
			ID:           it.ID,
			Kind:         it.Kind,
			Title:        it.Title,
			Price:        it.Price,
			DurationDays: it.DurationDays,
		})
	}
	return resp, nil
}

func (s *GRPCServer) ListPurchases(ctx context.Context, req *rpc.ListPurchasesRequest) (*rpc.ListPurchasesResponse, error) {
	list, err := s.svc.Catalog.ListPurchases(ctx, req.Identifier)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &rpc.ListPurchasesResponse{Purchases: make([]rpc.Purchase, 0, len(list))}
	for _, p := range list {
		resp.Purchases = append(resp.Purchases, rpc.Purchase{
			ID:          p.ID,
			ItemID:      p.ItemID,
			ItemKind:    p.ItemKind,
			ItemTitle:   p.ItemTitle,
			Amount:      p.Amount,
			PurchasedAt: p.PurchasedAt,
			ExpiresAt:   p.ExpiresAt,
			Active:      p.Active,
		})
	}
	return resp, nil
}

func (s *GRPCServer) SaveProgress(ctx context.Context, req *rpc.ProgressRequest) (*rpc.Empty, error) {
	p := kv.Progress{Answers: req.Answers, Skipped: req.Skipped}
	if err := s.svc.Progress.Save(ctx, req.ExamID, req.CandidateID, p); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) LoadProgress(ctx context.Context, req *rpc.ProgressRequest) (*rpc.ProgressResponse, error) {
	p, err := s.svc.Progress.Load(ctx, req.ExamID, req.CandidateID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.ProgressResponse{Answers: p.Answers, Skipped: p.Skipped}, nil
}

func (s *GRPCServer) SubmitExam(ctx context.Context, req *rpc.ProgressRequest) (*rpc.SubmitExamResponse, error) {
	p := kv.Progress{Answers: req.Answers, Skipped: req.Skipped}
	r, err := s.svc.Progress.Submit(ctx, req.ExamID, req.CandidateID, p)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.SubmitExamResponse{Total: r.Total, Answered: r.Answered, Correct: r.Correct, Skipped: r.Skipped}, nil
}

func (s *GRPCServer) AdminLogin(ctx context.Context, req *rpc.AdminLoginRequest) (*rpc.AdminLoginResponse, error) {
	token, err := s.svc.Admin.Login(ctx, req.UserName, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.AdminLoginResponse{AccessToken: token}, nil
}

func (s *GRPCServer) ListApplications(ctx context.Context, req *rpc.ListApplicationsRequest) (*rpc.ListApplicationsResponse, error) {
	rows, err := s.svc.Admin.ListApplications(ctx, req.Search, models.ApplicationStatus(req.Status))
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &rpc.ListApplicationsResponse{Applications: make([]rpc.Application, 0, len(rows))}
	for _, r := range rows {
		a := toApplication(&r.Application)
		a.CandidateName = r.CandidateName
		a.ExamCode = r.ExamCode
		a.ExamName = r.ExamName
		resp.Applications = append(resp.Applications, a)
	}
	return resp, nil
}

func (s *GRPCServer) SetApplicationStatus(ctx context.Context, req *rpc.SetApplicationStatusRequest) (*rpc.ApplicationResponse, error) {
	a, err := s.svc.Admin.SetApplicationStatus(ctx, req.ID, models.ApplicationStatus(req.Status))
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.ApplicationResponse{Application: toApplication(a)}, nil
}

func (s *GRPCServer) DeleteApplication(ctx context.Context, req *rpc.IDRequest) (*rpc.Empty, error) {
	if err := s.svc.Admin.DeleteApplication(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) ListCategories(ctx context.Context, _ *rpc.Empty) (*rpc.ListCategoriesResponse, error) {
	list, err := s.svc.Admin.ListCategories(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &rpc.ListCategoriesResponse{Categories: make([]rpc.Category, 0, len(list))}
	for _, c := range list {
		resp.Categories = append(resp.Categories, toCategory(c))
	}
	return resp, nil
}

func (s *GRPCServer) CreateCategory(ctx context.Context, req *rpc.CreateCategoryRequest) (*rpc.CategoryResponse, error) {
	c, err := s.svc.Admin.CreateCategory(ctx, req.Name)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.CategoryResponse{Category: toCategory(c)}, nil
}

func (s *GRPCServer) RenameCategory(ctx context.Context, req *rpc.RenameCategoryRequest) (*rpc.CategoryResponse, error) {
	c, err := s.svc.Admin.RenameCategory(ctx, req.ID, req.Name)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.CategoryResponse{Category: toCategory(c)}, nil
}

func (s *GRPCServer) DeleteCategory(ctx context.Context, req *rpc.IDRequest) (*rpc.Empty, error) {
	if err := s.svc.Admin.DeleteCategory(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) Roster(ctx context.Context, req *rpc.RosterRequest) (*rpc.RosterResponse, error) {
	entries, err := s.svc.Admin.Roster(ctx, req.ExamID)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &rpc.RosterResponse{Entries: make([]rpc.RosterEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, rpc.RosterEntry{
			CandidateID:   e.CandidateID,
			CandidateName: e.CandidateName,
			ApplicationNo: e.ApplicationNo,
			Status:        string(e.Status),
		})
	}
	return resp, nil
}

func (s *GRPCServer) SaveAttendance(ctx context.Context, req *rpc.SaveAttendanceRequest) (*rpc.SaveAttendanceResponse, error) {
	marks := make([]models.AttendanceMark, 0, len(req.Marks))
	for _, m := range req.Marks {
		marks = append(marks, models.AttendanceMark{CandidateID: m.CandidateID, Status: models.AttendanceStatus(m.Status)})
	}
	saved, err := s.svc.Admin.SaveAttendance(ctx, req.ExamID, marks)
	if err != nil {
		return nil, toStatus(err)
	}
	if id, ok := AdminID(ctx); ok {
		s.logger.Info(ctx, "attendance saved", "exam_id", req.ExamID, "admin_id", id, "count", len(saved))
	}
	return &rpc.SaveAttendanceResponse{Marks: toMarks(saved)}, nil
}

func (s *GRPCServer) UpsertQuestions(ctx context.Context, req *rpc.UpsertQuestionsRequest) (*rpc.Empty, error) {
	qs := make([]*models.Question, 0, len(req.Questions))
	for i, q := range req.Questions {
		qs = append(qs, &models.Question{
			ExamID:        req.ExamID,
			Ordinal:       i + 1,
			Text:          q.Text,
			ImageURL:      q.ImageURL,
			Options:       q.Options,
			CorrectOption: q.Correct,
		})
	}
	if err := s.svc.Admin.UpsertQuestions(ctx, req.ExamID, qs); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) QuestionPaper(ctx context.Context, req *rpc.QuestionPaperRequest) (*rpc.DocumentResponse, error) {
	doc, err := s.svc.Admin.QuestionPaper(ctx, req.ExamID, req.ShowAnswers)
	if err != nil {
		return nil, toStatus(err)
	}
	return toDocument(doc), nil
}
