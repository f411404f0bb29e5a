package helpers

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// RPCRequest то, что пришло на фейковый сервер.
type RPCRequest struct {
	Method string           `json:"method"`
	Params []map[string]any `json:"params"`
	ID     any              `json:"id"`
	Header http.Header      `json:"-"`
	Raw    []byte           `json:"-"`
}

// HandlerFunc отвечает на один метод: статус и тело как есть.
type HandlerFunc func(req RPCRequest) (int, string)

// FakeCGRates httptest-сервер с JSON-RPC эндпоинтом /jsonrpc.
// Неизвестные методы получают ошибку в стиле CGRateS.
type FakeCGRates struct {
	server   *httptest.Server
	mu       sync.Mutex
	requests []RPCRequest
	handlers map[string]HandlerFunc
}

func (f *FakeCGRates) URL() string {
	return f.server.URL + "/jsonrpc"
}

func (f *FakeCGRates) Close() {
	f.server.Close()
}

func (f *FakeCGRates) Handle(method string, fn HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.handlers[method] = fn
}

func (f *FakeCGRates) Requests() []RPCRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]RPCRequest, len(f.requests))
	copy(result, f.requests)

	return result
}

func (f *FakeCGRates) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/jsonrpc" {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := RPCRequest{}
	if err = json.Unmarshal(raw, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req.Header = r.Header.Clone()
	req.Raw = raw

	f.mu.Lock()
	f.requests = append(f.requests, req)
	fn, ok := f.handlers[req.Method]
	f.mu.Unlock()

	status, body := http.StatusOK, fmt.Sprintf(`{"id":null,"result":null,"error":"SERVER_ERROR: rpc: can't find method %s"}`, req.Method)
	if ok {
		status, body = fn(req)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// NewFakeCGRates tlsConfig может быть nil, тогда сервер по http.
func NewFakeCGRates(tlsConfig *tls.Config) *FakeCGRates {
	f := &FakeCGRates{
		handlers: make(map[string]HandlerFunc),
	}

	f.server = httptest.NewUnstartedServer(http.HandlerFunc(f.serveHTTP))

	if tlsConfig != nil {
		f.server.TLS = tlsConfig
		f.server.StartTLS()
	} else {
		f.server.Start()
	}

	return f
}
