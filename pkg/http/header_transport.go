package http

import "net/http"

// headerTransport fills in headers the request did not set itself
type headerTransport struct {
	headers   http.Header
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	for key, values := range t.headers {
		if reqCopy.Header.Get(key) == "" {
			reqCopy.Header[key] = values
		}
	}

	return t.transport.RoundTrip(reqCopy)
}

func withHeader(key, value string) HttpOpts {
	headers := http.Header{}
	headers.Set(key, value)

	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerTransport{
			headers:   headers,
			transport: rt,
		}
	})
}

// WithAuthToken sends a bearer token. An empty token leaves requests unauthenticated.
func WithAuthToken(token string) HttpOpts {
	if token == "" {
		return func(*httpConfig) {}
	}
	return withHeader("Authorization", "Bearer "+token)
}

func WithUserAgent(userAgent string) HttpOpts {
	return withHeader("User-Agent", userAgent)
}
