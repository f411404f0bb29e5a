package cgrates

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const DefaultTimeout = 60 * time.Second

// Config неизменяемые настройки клиента, можно разделять между горутинами.
type Config struct {
	endpoint string
	timeout  time.Duration
}

func (c Config) Endpoint() string {
	return c.endpoint
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

// NewConfig endpoint обязателен, timeout <= 0 заменяется на DefaultTimeout.
func NewConfig(endpoint string, timeout time.Duration) (Config, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return Config{}, &ConfigurationError{Reason: "URL is required"}
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return Config{}, &ConfigurationError{Reason: "invalid URL", Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return Config{}, &ConfigurationError{Reason: fmt.Sprintf("invalid URL %q: scheme and host are required", endpoint)}
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return Config{
		endpoint: endpoint,
		timeout:  timeout,
	}, nil
}

// NewConfigMs то же самое, но таймаут в миллисекундах.
func NewConfigMs(endpoint string, timeoutMs int) (Config, error) {
	return NewConfig(endpoint, time.Duration(timeoutMs)*time.Millisecond)
}
