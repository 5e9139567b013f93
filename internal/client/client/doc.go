// Package client talks to the ExamDesk server for the CLI.
//
// # Overview
//
//  1. Client is the contract the CLI depends on.
//  2. GRPCClient implements it over gRPC with the JSON codec. Every unary
//     call goes through one helper that applies the call timeout and maps
//     status codes to sentinel errors. After AdminLogin the access token is
//     attached to admin methods by an interceptor.
//  3. ExamWatcher keeps a single live exam list stream and replaces it in
//     place on reconnect.
//
// # Error Handling
//
// Errors wrap one of ErrUnavailable, ErrUnauthorized, ErrNotFound,
// ErrAlreadyExists, ErrInvalidInput, ErrNotAllowed, ErrRateLimited,
// ErrPaymentInitiation, ErrPaymentVerification or ErrServer, followed by the
// server message. Match them with errors.Is.
package client
