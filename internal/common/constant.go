// Package common contains shared constants and sentinel errors used across
// ExamDesk components.
package common

// AccessTokenHeaderName is the gRPC/HTTP metadata key used to carry the
// admin access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// SupportHelpline is shown to candidates when a step fails after a payment
// has already been captured.
const SupportHelpline = "If the amount was debited, contact support at +91-80-4000-1234 with your order id."
