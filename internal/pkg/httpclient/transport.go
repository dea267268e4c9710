package httpclient

import (
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type authTransport struct {
	scheme    string
	token     string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())
	if t.token != "" {
		reqCopy.Header.Set("Authorization", t.scheme+" "+t.token)
	}
	return t.transport.RoundTrip(reqCopy)
}

// WithAuthToken sets "Authorization: Bearer <token>" on every request. An
// empty token leaves requests untouched.
func WithAuthToken(token string) Option {
	return WithAuth("Bearer", token)
}

// WithAuth is WithAuthToken with a custom scheme, e.g. GitHub's "token".
func WithAuth(scheme, token string) Option {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{scheme: scheme, token: token, transport: rt}
	})
}

type logTransport struct {
	transport http.RoundTripper
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		ctxzap.Debug(ctx, "HTTP outbound request failed",
			zap.String("method", req.Method),
			zap.String("host", req.URL.Host),
			zap.String("path", req.URL.Path),
			zap.Error(err),
		)
		return nil, err
	}
	ctxzap.Debug(ctx, "HTTP outbound request",
		zap.String("method", req.Method),
		zap.String("host", req.URL.Host),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
	)
	return resp, nil
}

// WithRequestLogging logs method, host, path and status of outbound calls at
// debug level on the request-scoped logger. Query strings are not logged.
func WithRequestLogging() Option {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &logTransport{transport: rt}
	})
}
