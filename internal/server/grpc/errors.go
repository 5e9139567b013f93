package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/examdesk/internal/common"
)

// toStatus maps service errors to gRPC status errors. The message of a
// known sentinel is passed through for the client to show.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var code codes.Code
	switch {
	case errors.Is(err, common.ErrValidation):
		code = codes.InvalidArgument
	case errors.Is(err, common.ErrorNotFound):
		code = codes.NotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		code = codes.AlreadyExists
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		code = codes.Unauthenticated
	case errors.Is(err, common.ErrInvalidTransition),
		errors.Is(err, common.ErrSessionExpired),
		errors.Is(err, common.ErrSuperUserExpired),
		errors.Is(err, common.ErrSuperUserNotAllowed):
		code = codes.FailedPrecondition
	case errors.Is(err, common.ErrRateLimited):
		code = codes.ResourceExhausted
	case errors.Is(err, common.ErrPaymentInitiation):
		code = codes.Unavailable
	case errors.Is(err, common.ErrPaymentVerification):
		code = codes.Aborted
	case errors.Is(err, common.ErrDocumentGeneration):
		return status.Error(codes.Internal, err.Error()+". "+common.SupportHelpline)
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
	return status.Error(code, err.Error())
}
