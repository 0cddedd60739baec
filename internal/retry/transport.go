package retry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"
)

// Policy decides whether a response or transport error warrants a retry.
type Policy struct {
	ServerErrors   bool
	ConnectFailure bool
	StatusCodes    []int
}

// NewDefaultPolicy retries on 5xx responses and connection failures.
func NewDefaultPolicy() *Policy {
	return &Policy{
		ServerErrors:   true,
		ConnectFailure: true,
	}
}

func (p *Policy) checkResponse(response *http.Response) bool {
	if p.ServerErrors && response.StatusCode >= 500 && response.StatusCode < 600 {
		return true
	}
	for _, code := range p.StatusCodes {
		if code == response.StatusCode {
			return true
		}
	}
	return false
}

func (p *Policy) checkError(err error) bool {
	if !p.ConnectFailure {
		return false
	}
	type temporary interface{ Temporary() bool }
	var terr temporary
	return (errors.As(err, &terr) && terr.Temporary()) || errors.Is(err, io.EOF)
}

// Transport retries requests according to Policy, sleeping per Backoff
// between attempts. The attempt counter travels through the request context.
type Transport struct {
	Base    http.RoundTripper
	Backoff Backoff
	Policy  *Policy
}

type contextKey string

const attemptContextKey contextKey = "retryAttempt"

func attemptFrom(ctx context.Context) uint {
	attempt, ok := ctx.Value(attemptContextKey).(uint)
	if !ok {
		return 0
	}
	return attempt
}

func withAttempt(ctx context.Context, attempt uint) context.Context {
	return context.WithValue(ctx, attemptContextKey, attempt)
}

func (t *Transport) RoundTrip(request *http.Request) (*http.Response, error) {
	attempt := attemptFrom(request.Context())
	sleep, exhausted := t.backoff().Next(attempt)

	response, err := t.base().RoundTrip(request)
	if err != nil {
		if !exhausted && t.Policy != nil && t.Policy.checkError(err) {
			return t.retry(request, attempt, sleep)
		}
		return nil, err
	}
	if !exhausted && t.Policy != nil && t.Policy.checkResponse(response) {
		return t.retry(request, attempt, sleep)
	}
	return response, nil
}

func (t *Transport) retry(request *http.Request, attempt uint, sleep time.Duration) (*http.Response, error) {
	timer := time.NewTimer(sleep)
	select {
	case <-request.Context().Done():
		timer.Stop()
		return nil, request.Context().Err()
	case <-timer.C:
	}
	return t.RoundTrip(request.WithContext(withAttempt(request.Context(), attempt+1)))
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) backoff() Backoff {
	if t.Backoff != nil {
		return t.Backoff
	}
	return NewNone()
}
