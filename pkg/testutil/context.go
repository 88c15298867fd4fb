package testutil

import (
	"net/http"
	"time"

	"aegis/pkg/requestcontext"
)

// WithRequestID stamps a request ID on the request context, simulating the
// request ID middleware.
func WithRequestID(req *http.Request, id string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), id))
}

// WithRequestTime pins the request-scoped clock, simulating the request
// time middleware with a fixed instant.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// WithAdminSubject marks the request as an authenticated admin, simulating
// what the admin auth middleware does after token validation.
func WithAdminSubject(req *http.Request, subject string) *http.Request {
	return req.WithContext(requestcontext.WithAdminSubject(req.Context(), subject))
}
