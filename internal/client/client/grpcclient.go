package client

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/rpc"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      *rpc.ExamDeskClient
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" && rpc.IsAdminMethod(method) {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewExamDeskClient dials endpointURL. timeout bounds every unary call;
// zero disables it.
func NewExamDeskClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = rpc.NewExamDeskClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// call runs one unary RPC with the call timeout and maps its error.
func call[Req, Resp any](ctx context.Context, s *GRPCClient,
	fn func(context.Context, *Req, ...grpc.CallOption) (*Resp, error), in *Req) (*Resp, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	resp, err := fn(ctx, in)
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := call(ctx, s, s.client.Ping, &rpc.Empty{})
	if err != nil {
		return err
	}
	if resp.Status != "ok" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) ListExams(ctx context.Context, today bool) ([]rpc.Exam, error) {
	resp, err := call(ctx, s, s.client.ListExams, &rpc.ListExamsRequest{Today: today})
	if err != nil {
		return nil, err
	}
	return resp.Exams, nil
}

func (s *GRPCClient) CheckIdentity(ctx context.Context, flow, itemID, identifier string) (*rpc.Session, error) {
	resp, err := call(ctx, s, s.client.CheckIdentity, &rpc.CheckIdentityRequest{Flow: flow, ItemID: itemID, Identifier: identifier})
	if err != nil {
		return nil, err
	}
	return &resp.Session, nil
}

func (s *GRPCClient) SubmitForm(ctx context.Context, sessionID string, d rpc.Draft) (*rpc.Session, error) {
	resp, err := call(ctx, s, s.client.SubmitForm, &rpc.SubmitFormRequest{SessionID: sessionID, Draft: d})
	if err != nil {
		return nil, err
	}
	return &resp.Session, nil
}

func (s *GRPCClient) ConfirmPurchase(ctx context.Context, sessionID, superUserID string) (*rpc.ConfirmPurchaseResponse, error) {
	return call(ctx, s, s.client.ConfirmPurchase, &rpc.ConfirmPurchaseRequest{SessionID: sessionID, SuperUserID: superUserID})
}

func (s *GRPCClient) CompletePayment(ctx context.Context, in *rpc.CompletePaymentRequest) (*rpc.Session, error) {
	resp, err := call(ctx, s, s.client.CompletePayment, in)
	if err != nil {
		return nil, err
	}
	return &resp.Session, nil
}

func (s *GRPCClient) CancelPayment(ctx context.Context, sessionID string) (*rpc.Session, error) {
	resp, err := call(ctx, s, s.client.CancelPayment, &rpc.SessionRequest{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	return &resp.Session, nil
}

func (s *GRPCClient) IssueDocument(ctx context.Context, sessionID string) (*rpc.DocumentResponse, error) {
	return call(ctx, s, s.client.IssueDocument, &rpc.SessionRequest{SessionID: sessionID})
}

func (s *GRPCClient) PresignPhotoUpload(ctx context.Context, sessionID, contentType string) (*rpc.PresignPhotoUploadResponse, error) {
	return call(ctx, s, s.client.PresignPhotoUpload, &rpc.PresignPhotoUploadRequest{SessionID: sessionID, ContentType: contentType})
}

func (s *GRPCClient) ListCatalog(ctx context.Context, kind string) ([]rpc.CatalogItem, error) {
	resp, err := call(ctx, s, s.client.ListCatalog, &rpc.ListCatalogRequest{Kind: kind})
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (s *GRPCClient) ListPurchases(ctx context.Context, identifier string) ([]rpc.Purchase, error) {
	resp, err := call(ctx, s, s.client.ListPurchases, &rpc.ListPurchasesRequest{Identifier: identifier})
	if err != nil {
		return nil, err
	}
	return resp.Purchases, nil
}

func (s *GRPCClient) SaveProgress(ctx context.Context, in *rpc.ProgressRequest) error {
	_, err := call(ctx, s, s.client.SaveProgress, in)
	return err
}

func (s *GRPCClient) LoadProgress(ctx context.Context, examID, candidateID string) (*rpc.ProgressResponse, error) {
	return call(ctx, s, s.client.LoadProgress, &rpc.ProgressRequest{ExamID: examID, CandidateID: candidateID})
}

func (s *GRPCClient) SubmitExam(ctx context.Context, in *rpc.ProgressRequest) (*rpc.SubmitExamResponse, error) {
	return call(ctx, s, s.client.SubmitExam, in)
}

// AdminLogin authenticates and keeps the access token for admin calls.
func (s *GRPCClient) AdminLogin(ctx context.Context, userName, password string) error {
	resp, err := call(ctx, s, s.client.AdminLogin, &rpc.AdminLoginRequest{UserName: userName, Password: password})
	if err != nil {
		return err
	}
	s.accessToken = resp.AccessToken
	return nil
}

func (s *GRPCClient) AdminLogout() {
	s.accessToken = ""
}

func (s *GRPCClient) IsAdmin() bool {
	return s.accessToken != ""
}

func (s *GRPCClient) ListApplications(ctx context.Context, search, status string) ([]rpc.Application, error) {
	resp, err := call(ctx, s, s.client.ListApplications, &rpc.ListApplicationsRequest{Search: search, Status: status})
	if err != nil {
		return nil, err
	}
	return resp.Applications, nil
}

func (s *GRPCClient) SetApplicationStatus(ctx context.Context, id, status string) (*rpc.Application, error) {
	resp, err := call(ctx, s, s.client.SetApplicationStatus, &rpc.SetApplicationStatusRequest{ID: id, Status: status})
	if err != nil {
		return nil, err
	}
	return &resp.Application, nil
}

func (s *GRPCClient) DeleteApplication(ctx context.Context, id string) error {
	_, err := call(ctx, s, s.client.DeleteApplication, &rpc.IDRequest{ID: id})
	return err
}

func (s *GRPCClient) ListCategories(ctx context.Context) ([]rpc.Category, error) {
	resp, err := call(ctx, s, s.client.ListCategories, &rpc.Empty{})
	if err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (s *GRPCClient) CreateCategory(ctx context.Context, name string) (*rpc.Category, error) {
	resp, err := call(ctx, s, s.client.CreateCategory, &rpc.CreateCategoryRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return &resp.Category, nil
}

func (s *GRPCClient) RenameCategory(ctx context.Context, id, name string) (*rpc.Category, error) {
	resp, err := call(ctx, s, s.client.RenameCategory, &rpc.RenameCategoryRequest{ID: id, Name: name})
	if err != nil {
		return nil, err
	}
	return &resp.Category, nil
}

func (s *GRPCClient) DeleteCategory(ctx context.Context, id string) error {
	_, err := call(ctx, s, s.client.DeleteCategory, &rpc.IDRequest{ID: id})
	return err
}

func (s *GRPCClient) Roster(ctx context.Context, examID string) ([]rpc.RosterEntry, error) {
	resp, err := call(ctx, s, s.client.Roster, &rpc.RosterRequest{ExamID: examID})
	if err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (s *GRPCClient) SaveAttendance(ctx context.Context, examID string, marks []rpc.AttendanceMark) ([]rpc.AttendanceMark, error) {
	resp, err := call(ctx, s, s.client.SaveAttendance, &rpc.SaveAttendanceRequest{ExamID: examID, Marks: marks})
	if err != nil {
		return nil, err
	}
	return resp.Marks, nil
}

func (s *GRPCClient) UpsertQuestions(ctx context.Context, examID string, qs []rpc.Question) error {
	_, err := call(ctx, s, s.client.UpsertQuestions, &rpc.UpsertQuestionsRequest{ExamID: examID, Questions: qs})
	return err
}

func (s *GRPCClient) QuestionPaper(ctx context.Context, examID string, showAnswers bool) (*rpc.DocumentResponse, error) {
	return call(ctx, s, s.client.QuestionPaper, &rpc.QuestionPaperRequest{ExamID: examID, ShowAnswers: showAnswers})
}
