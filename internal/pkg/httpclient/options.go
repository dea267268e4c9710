package httpclient

import "time"

type Option func(*clientConfig)

func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		if timeout > 0 {
			c.requestTimeout = timeout
		}
	}
}

// WithoutRequestTimeout removes the overall deadline, which also covers reading
// the body. Streaming callers rely on the request context instead.
func WithoutRequestTimeout() Option {
	return func(c *clientConfig) {
		c.requestTimeout = 0
	}
}

func WithResponseHeaderTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.responseHeaderTimeout = timeout
	}
}

func WithTransport(transport TransportFunc) Option {
	return func(c *clientConfig) {
		c.transports = append(c.transports, transport)
	}
}
