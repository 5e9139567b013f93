package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable         = errors.New("server unavailable")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotAllowed          = errors.New("not allowed")
	ErrRateLimited         = errors.New("too many attempts")
	ErrPaymentInitiation   = errors.New("payment could not be initiated")
	ErrPaymentVerification = errors.New("payment verification failed")
	ErrServer              = errors.New("server error")
)

var codeErrors = map[codes.Code]error{
	codes.Unauthenticated:    ErrUnauthorized,
	codes.PermissionDenied:   ErrUnauthorized,
	codes.NotFound:           ErrNotFound,
	codes.AlreadyExists:      ErrAlreadyExists,
	codes.InvalidArgument:    ErrInvalidInput,
	codes.FailedPrecondition: ErrNotAllowed,
	codes.ResourceExhausted:  ErrRateLimited,
	codes.Unavailable:        ErrPaymentInitiation,
	codes.Aborted:            ErrPaymentVerification,
	codes.Internal:           ErrServer,
	codes.DeadlineExceeded:   ErrUnavailable,
	codes.Canceled:           ErrUnavailable,
}

// StatusError is a server failure classified by Kind. Message is what the
// server reported and is meant for the user.
type StatusError struct {
	Kind    error
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *StatusError) Unwrap() error { return e.Kind }

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &StatusError{Kind: ErrUnavailable, Message: err.Error()}
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	kind, ok := codeErrors[st.Code()]
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	// transport failures are Unavailable too; only the gateway message
	// means the order was not created
	if st.Code() == codes.Unavailable && !strings.HasPrefix(st.Message(), ErrPaymentInitiation.Error()) {
		kind = ErrUnavailable
	}
	return &StatusError{Kind: kind, Message: st.Message()}
}
