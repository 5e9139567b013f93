package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "examdesk.ExamDesk"

// ExamDeskServer is implemented by the server transport.
type ExamDeskServer interface {
	Ping(context.Context, *Empty) (*PingResponse, error)
	ListExams(context.Context, *ListExamsRequest) (*ListExamsResponse, error)
	WatchExams(*ListExamsRequest, WatchExamsServer) error
	CheckIdentity(context.Context, *CheckIdentityRequest) (*SessionResponse, error)
	SubmitForm(context.Context, *SubmitFormRequest) (*SessionResponse, error)
	ConfirmPurchase(context.Context, *ConfirmPurchaseRequest) (*ConfirmPurchaseResponse, error)
	CompletePayment(context.Context, *CompletePaymentRequest) (*SessionResponse, error)
	CancelPayment(context.Context, *SessionRequest) (*SessionResponse, error)
	IssueDocument(context.Context, *SessionRequest) (*DocumentResponse, error)
	PresignPhotoUpload(context.Context, *PresignPhotoUploadRequest) (*PresignPhotoUploadResponse, error)
	ListCatalog(context.Context, *ListCatalogRequest) (*ListCatalogResponse, error)
	ListPurchases(context.Context, *ListPurchasesRequest) (*ListPurchasesResponse, error)
	SaveProgress(context.Context, *ProgressRequest) (*Empty, error)
	LoadProgress(context.Context, *ProgressRequest) (*ProgressResponse, error)
	SubmitExam(context.Context, *ProgressRequest) (*SubmitExamResponse, error)
	AdminLogin(context.Context, *AdminLoginRequest) (*AdminLoginResponse, error)
	ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error)
	SetApplicationStatus(context.Context, *SetApplicationStatusRequest) (*ApplicationResponse, error)
	DeleteApplication(context.Context, *IDRequest) (*Empty, error)
	ListCategories(context.Context, *Empty) (*ListCategoriesResponse, error)
	CreateCategory(context.Context, *CreateCategoryRequest) (*CategoryResponse, error)
	RenameCategory(context.Context, *RenameCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(context.Context, *IDRequest) (*Empty, error)
	Roster(context.Context, *RosterRequest) (*RosterResponse, error)
	SaveAttendance(context.Context, *SaveAttendanceRequest) (*SaveAttendanceResponse, error)
	UpsertQuestions(context.Context, *UpsertQuestionsRequest) (*Empty, error)
	QuestionPaper(context.Context, *QuestionPaperRequest) (*DocumentResponse, error)
}

// WatchExamsServer pushes exam lists to one subscriber.
type WatchExamsServer interface {
	Send(*ListExamsResponse) error
	grpc.ServerStream
}

// UnimplementedExamDeskServer answers Unimplemented for every method.
type UnimplementedExamDeskServer struct{}

func (UnimplementedExamDeskServer) Ping(context.Context, *Empty) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedExamDeskServer) ListExams(context.Context, *ListExamsRequest) (*ListExamsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListExams not implemented")
}

func (UnimplementedExamDeskServer) CheckIdentity(context.Context, *CheckIdentityRequest) (*SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckIdentity not implemented")
}

func (UnimplementedExamDeskServer) SubmitForm(context.Context, *SubmitFormRequest) (*SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitForm not implemented")
}

func (UnimplementedExamDeskServer) ConfirmPurchase(context.Context, *ConfirmPurchaseRequest) (*ConfirmPurchaseResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ConfirmPurchase not implemented")
}

func (UnimplementedExamDeskServer) CompletePayment(context.Context, *CompletePaymentRequest) (*SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CompletePayment not implemented")
}

func (UnimplementedExamDeskServer) CancelPayment(context.Context, *SessionRequest) (*SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CancelPayment not implemented")
}

func (UnimplementedExamDeskServer) IssueDocument(context.Context, *SessionRequest) (*DocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method IssueDocument not implemented")
}

func (UnimplementedExamDeskServer) PresignPhotoUpload(context.Context, *PresignPhotoUploadRequest) (*PresignPhotoUploadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PresignPhotoUpload not implemented")
}

func (UnimplementedExamDeskServer) ListCatalog(context.Context, *ListCatalogRequest) (*ListCatalogResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCatalog not implemented")
}

func (UnimplementedExamDeskServer) ListPurchases(context.Context, *ListPurchasesRequest) (*ListPurchasesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListPurchases not implemented")
}

func (UnimplementedExamDeskServer) SaveProgress(context.Context, *ProgressRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method SaveProgress not implemented")
}

func (UnimplementedExamDeskServer) LoadProgress(context.Context, *ProgressRequest) (*ProgressResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method LoadProgress not implemented")
}

func (UnimplementedExamDeskServer) SubmitExam(context.Context, *ProgressRequest) (*SubmitExamResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitExam not implemented")
}

func (UnimplementedExamDeskServer) AdminLogin(context.Context, *AdminLoginRequest) (*AdminLoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AdminLogin not implemented")
}

func (UnimplementedExamDeskServer) ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListApplications not implemented")
}

func (UnimplementedExamDeskServer) SetApplicationStatus(context.Context, *SetApplicationStatusRequest) (*ApplicationResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetApplicationStatus not implemented")
}

func (UnimplementedExamDeskServer) DeleteApplication(context.Context, *IDRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteApplication not implemented")
}

func (UnimplementedExamDeskServer) ListCategories(context.Context, *Empty) (*ListCategoriesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCategories not implemented")
}

func (UnimplementedExamDeskServer) CreateCategory(context.Context, *CreateCategoryRequest) (*CategoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateCategory not implemented")
}

func (UnimplementedExamDeskServer) RenameCategory(context.Context, *RenameCategoryRequest) (*CategoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RenameCategory not implemented")
}

func (UnimplementedExamDeskServer) DeleteCategory(context.Context, *IDRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteCategory not implemented")
}

func (UnimplementedExamDeskServer) Roster(context.Context, *RosterRequest) (*RosterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Roster not implemented")
}

func (UnimplementedExamDeskServer) SaveAttendance(context.Context, *SaveAttendanceRequest) (*SaveAttendanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SaveAttendance not implemented")
}

func (UnimplementedExamDeskServer) UpsertQuestions(context.Context, *UpsertQuestionsRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method UpsertQuestions not implemented")
}

func (UnimplementedExamDeskServer) QuestionPaper(context.Context, *QuestionPaperRequest) (*DocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method QuestionPaper not implemented")
}

func (UnimplementedExamDeskServer) WatchExams(*ListExamsRequest, WatchExamsServer) error {
	return status.Error(codes.Unimplemented, "method WatchExams not implemented")
}

var adminMethods = map[string]bool{
	"/" + ServiceName + "/ListApplications": true,
	"/" + ServiceName + "/SetApplicationStatus": true,
	"/" + ServiceName + "/DeleteApplication": true,
	"/" + ServiceName + "/ListCategories": true,
	"/" + ServiceName + "/CreateCategory": true,
	"/" + ServiceName + "/RenameCategory": true,
	"/" + ServiceName + "/DeleteCategory": true,
	"/" + ServiceName + "/Roster": true,
	"/" + ServiceName + "/SaveAttendance": true,
	"/" + ServiceName + "/UpsertQuestions": true,
	"/" + ServiceName + "/QuestionPaper": true,
}

// IsAdminMethod reports whether fullMethod requires an admin access token.
func IsAdminMethod(fullMethod string) bool {
	return adminMethods[fullMethod]
}

// FullMethod returns the wire name of a method.
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// ServiceDesc describes the service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ExamDeskServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", ExamDeskServer.Ping),
		unary("ListExams", ExamDeskServer.ListExams),
		unary("CheckIdentity", ExamDeskServer.CheckIdentity),
		unary("SubmitForm", ExamDeskServer.SubmitForm),
		unary("ConfirmPurchase", ExamDeskServer.ConfirmPurchase),
		unary("CompletePayment", ExamDeskServer.CompletePayment),
		unary("CancelPayment", ExamDeskServer.CancelPayment),
		unary("IssueDocument", ExamDeskServer.IssueDocument),
		unary("PresignPhotoUpload", ExamDeskServer.PresignPhotoUpload),
		unary("ListCatalog", ExamDeskServer.ListCatalog),
		unary("ListPurchases", ExamDeskServer.ListPurchases),
		unary("SaveProgress", ExamDeskServer.SaveProgress),
		unary("LoadProgress", ExamDeskServer.LoadProgress),
		unary("SubmitExam", ExamDeskServer.SubmitExam),
		unary("AdminLogin", ExamDeskServer.AdminLogin),
		unary("ListApplications", ExamDeskServer.ListApplications),
		unary("SetApplicationStatus", ExamDeskServer.SetApplicationStatus),
		unary("DeleteApplication", ExamDeskServer.DeleteApplication),
		unary("ListCategories", ExamDeskServer.ListCategories),
		unary("CreateCategory", ExamDeskServer.CreateCategory),
		unary("RenameCategory", ExamDeskServer.RenameCategory),
		unary("DeleteCategory", ExamDeskServer.DeleteCategory),
		unary("Roster", ExamDeskServer.Roster),
		unary("SaveAttendance", ExamDeskServer.SaveAttendance),
		unary("UpsertQuestions", ExamDeskServer.UpsertQuestions),
		unary("QuestionPaper", ExamDeskServer.QuestionPaper),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchExams",
			Handler:       watchExamsHandler,
			ServerStreams: true,
		},
	},
	Metadata: "examdesk.json",
}

func RegisterExamDeskServer(s grpc.ServiceRegistrar, srv ExamDeskServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary[Req, Resp any](name string, call func(ExamDeskServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	full := FullMethod(name)
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ExamDeskServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(ExamDeskServer), ctx, req.(*Req))
			})
		},
	}
}

func watchExamsHandler(srv any, stream grpc.ServerStream) error {
	in := new(ListExamsRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(ExamDeskServer).WatchExams(in, &watchExamsServer{stream})
}

type watchExamsServer struct {
	grpc.ServerStream
}

func (x *watchExamsServer) Send(m *ListExamsResponse) error {
	return x.ServerStream.SendMsg(m)
}
