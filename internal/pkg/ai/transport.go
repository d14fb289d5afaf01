package ai

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Attribution headers sent to OpenRouter.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderReferer   = "HTTP-Referer"
	HeaderTitle     = "X-Title"

	appReferer = "https://github.com/aicommit/aicommit"
	appTitle   = "aicommit"
)

// maxErrorBody bounds how much of a failed response is kept.
const maxErrorBody = 16 << 10

type requestIDKey struct{}

type errorBodyKey struct{}

// errorBody receives the body of a non-2xx response.
type errorBody struct {
	data []byte
}

// withErrorBody asks the transport to keep the body of a failed response.
func withErrorBody(ctx context.Context) (context.Context, *errorBody) {
	eb := &errorBody{}
	return context.WithValue(ctx, errorBodyKey{}, eb), eb
}

func (e *errorBody) String() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(string(e.data))
}

// withRequestID stores the request ID used for the outgoing call.
func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// requestIDFrom returns the stored request ID or a fresh one.
func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// headerTransport adds correlation and attribution headers to every request.
type headerTransport struct {
	base http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	r := req.Clone(req.Context())
	r.Header.Set(HeaderRequestID, requestIDFrom(req.Context()))
	r.Header.Set(HeaderReferer, appReferer)
	r.Header.Set(HeaderTitle, appTitle)

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(r)
	if err != nil || resp.StatusCode < http.StatusBadRequest {
		return resp, err
	}

	eb, ok := req.Context().Value(errorBodyKey{}).(*errorBody)
	if !ok {
		return resp, nil
	}

	// The client still decodes the body, so hand it back unchanged
	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}
	eb.data = data
	resp.Body = io.NopCloser(bytes.NewReader(data))
	return resp, nil
}
