package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// ExamDeskClient calls the service with the JSON codec.
type ExamDeskClient struct {
	cc grpc.ClientConnInterface
}

func NewExamDeskClient(cc grpc.ClientConnInterface) *ExamDeskClient {
	return &ExamDeskClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(Codec)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ExamDeskClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, "Ping", in, opts)
}

func (c *ExamDeskClient) ListExams(ctx context.Context, in *ListExamsRequest, opts ...grpc.CallOption) (*ListExamsResponse, error) {
	return invoke[ListExamsResponse](ctx, c.cc, "ListExams", in, opts)
}

func (c *ExamDeskClient) CheckIdentity(ctx context.Context, in *CheckIdentityRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, "CheckIdentity", in, opts)
}

func (c *ExamDeskClient) SubmitForm(ctx context.Context, in *SubmitFormRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, "SubmitForm", in, opts)
}

func (c *ExamDeskClient) ConfirmPurchase(ctx context.Context, in *ConfirmPurchaseRequest, opts ...grpc.CallOption) (*ConfirmPurchaseResponse, error) {
	return invoke[ConfirmPurchaseResponse](ctx, c.cc, "ConfirmPurchase", in, opts)
}

func (c *ExamDeskClient) CompletePayment(ctx context.Context, in *CompletePaymentRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, "CompletePayment", in, opts)
}

func (c *ExamDeskClient) CancelPayment(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, "CancelPayment", in, opts)
}

func (c *ExamDeskClient) IssueDocument(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*DocumentResponse, error) {
	return invoke[DocumentResponse](ctx, c.cc, "IssueDocument", in, opts)
}

func (c *ExamDeskClient) PresignPhotoUpload(ctx context.Context, in *PresignPhotoUploadRequest, opts ...grpc.CallOption) (*PresignPhotoUploadResponse, error) {
	return invoke[PresignPhotoUploadResponse](ctx, c.cc, "PresignPhotoUpload", in, opts)
}

func (c *ExamDeskClient) ListCatalog(ctx context.Context, in *ListCatalogRequest, opts ...grpc.CallOption) (*ListCatalogResponse, error) {
	return invoke[ListCatalogResponse](ctx, c.cc, "ListCatalog", in, opts)
}

func (c *ExamDeskClient) ListPurchases(ctx context.Context, in *ListPurchasesRequest, opts ...grpc.CallOption) (*ListPurchasesResponse, error) {
	return invoke[ListPurchasesResponse](ctx, c.cc, "ListPurchases", in, opts)
}

func (c *ExamDeskClient) SaveProgress(ctx context.Context, in *ProgressRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "SaveProgress", in, opts)
}

func (c *ExamDeskClient) LoadProgress(ctx context.Context, in *ProgressRequest, opts ...grpc.CallOption) (*ProgressResponse, error) {
	return invoke[ProgressResponse](ctx, c.cc, "LoadProgress", in, opts)
}

func (c *ExamDeskClient) SubmitExam(ctx context.Context, in *ProgressRequest, opts ...grpc.CallOption) (*SubmitExamResponse, error) {
	return invoke[SubmitExamResponse](ctx, c.cc, "SubmitExam", in, opts)
}

func (c *ExamDeskClient) AdminLogin(ctx context.Context, in *AdminLoginRequest, opts ...grpc.CallOption) (*AdminLoginResponse, error) {
	return invoke[AdminLoginResponse](ctx, c.cc, "AdminLogin", in, opts)
}

func (c *ExamDeskClient) ListApplications(ctx context.Context, in *ListApplicationsRequest, opts ...grpc.CallOption) (*ListApplicationsResponse, error) {
	return invoke[ListApplicationsResponse](ctx, c.cc, "ListApplications", in, opts)
}

func (c *ExamDeskClient) SetApplicationStatus(ctx context.Context, in *SetApplicationStatusRequest, opts ...grpc.CallOption) (*ApplicationResponse, error) {
	return invoke[ApplicationResponse](ctx, c.cc, "SetApplicationStatus", in, opts)
}

func (c *ExamDeskClient) DeleteApplication(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteApplication", in, opts)
}

func (c *ExamDeskClient) ListCategories(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListCategoriesResponse, error) {
	return invoke[ListCategoriesResponse](ctx, c.cc, "ListCategories", in, opts)
}

func (c *ExamDeskClient) CreateCategory(ctx context.Context, in *CreateCategoryRequest, opts ...grpc.CallOption) (*CategoryResponse, error) {
	return invoke[CategoryResponse](ctx, c.cc, "CreateCategory", in, opts)
}

func (c *ExamDeskClient) RenameCategory(ctx context.Context, in *RenameCategoryRequest, opts ...grpc.CallOption) (*CategoryResponse, error) {
	return invoke[CategoryResponse](ctx, c.cc, "RenameCategory", in, opts)
}

func (c *ExamDeskClient) DeleteCategory(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteCategory", in, opts)
}

func (c *ExamDeskClient) Roster(ctx context.Context, in *RosterRequest, opts ...grpc.CallOption) (*RosterResponse, error) {
	return invoke[RosterResponse](ctx, c.cc, "Roster", in, opts)
}

func (c *ExamDeskClient) SaveAttendance(ctx context.Context, in *SaveAttendanceRequest, opts ...grpc.CallOption) (*SaveAttendanceResponse, error) {
	return invoke[SaveAttendanceResponse](ctx, c.cc, "SaveAttendance", in, opts)
}

func (c *ExamDeskClient) UpsertQuestions(ctx context.Context, in *UpsertQuestionsRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "UpsertQuestions", in, opts)
}

func (c *ExamDeskClient) QuestionPaper(ctx context.Context, in *QuestionPaperRequest, opts ...grpc.CallOption) (*DocumentResponse, error) {
	return invoke[DocumentResponse](ctx, c.cc, "QuestionPaper", in, opts)
}

// WatchExamsClient receives exam lists until the stream ends.
type WatchExamsClient interface {
	Recv() (*ListExamsResponse, error)
	grpc.ClientStream
}

func (c *ExamDeskClient) WatchExams(ctx context.Context, in *ListExamsRequest, opts ...grpc.CallOption) (WatchExamsClient, error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(Codec)}, opts...)
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], FullMethod("WatchExams"), opts...)
	if err != nil {
		return nil, err
	}
	x := &watchExamsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type watchExamsClient struct {
	grpc.ClientStream
}

func (x *watchExamsClient) Recv() (*ListExamsResponse, error) {
	m := new(ListExamsResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
