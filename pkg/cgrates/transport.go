package cgrates

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/volodya-nrg/cgrates/pkg/funcs"
	tlsconf "github.com/volodya-nrg/cgrates/pkg/tls"
)

// Transport отправляет тело запроса и возвращает статус и тело ответа.
// Ответ не интерпретируется.
type Transport interface {
	Send(ctx context.Context, endpoint string, body []byte) (int, []byte, error)
}

type HTTPTransport struct {
	client *http.Client
}

func (t *HTTPTransport) Send(ctx context.Context, endpoint string, body []byte) (int, []byte, error) {
	statusCode, bodyBytes, err := funcs.HTTPRequest(ctx, t.client, http.MethodPost, endpoint, body, t.headers())
	if err != nil {
		return 0, nil, fmt.Errorf("failed to http-request: %w", err)
	}

	return statusCode, bodyBytes, nil
}

func (t *HTTPTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

func (t *HTTPTransport) headers() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}

// NewHTTPTransport transport может быть nil, тогда берется http.DefaultTransport.
func NewHTTPTransport(timeout time.Duration, transport *http.Transport) *HTTPTransport {
	client := &http.Client{
		Timeout: timeout,
	}

	if transport != nil {
		client.Transport = transport
	}

	return &HTTPTransport{
		client: client,
	}
}

// NewTLSTransport http.Transport с клиентскими сертификатами.
func NewTLSTransport(caCertFilepath, certFilepath, keyFilepath string) (*http.Transport, error) {
	tlsConfig, err := tlsconf.NewTLSConfigClient(true, caCertFilepath, certFilepath, keyFilepath)
	if err != nil {
		return nil, fmt.Errorf("failed to create tls config: %w", err)
	}

	return &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: tlsConfig,
	}, nil
}
