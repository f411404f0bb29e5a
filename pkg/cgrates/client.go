// Package cgrates is a JSON-RPC client for the CGRateS billing engine.
//
// Every operation goes through the same pipeline: the registry row for the
// operation supplies defaults and required-field rules, the params are wrapped
// into {"method", "params": [params], "id"} and POSTed to the endpoint, and the
// response is classified into a result or one of TransportError, ProtocolError
// and RPCError.
//
//	cfg, err := cgrates.NewConfig("http://127.0.0.1:2080/jsonrpc", 0)
//	if err != nil {
//		return err
//	}
//
//	cl := cgrates.NewClient(cfg, nil)
//
//	call, err := cl.GetAccount(ctx, cgrates.Params{"Tenant": "cgrates.org", "Account": "1001"})
//	if err != nil {
//		return err // *ValidationError, nothing was sent
//	}
//
//	<-call.Done
//	if call.Error != nil {
//		return call.Error
//	}
package cgrates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Call состояние одного вызова. Done получает сам Call, когда ответ разобран.
type Call struct {
	Operation string
	Method    string
	Params    Params // параметры после подстановки значений по умолчанию
	ID        any

	Result any
	Raw    json.RawMessage // result как есть
	Error  error

	Done chan *Call
}

// Client безопасен для конкурентного использования, состояния между вызовами нет.
type Client struct {
	cfg       Config
	transport Transport
}

func (c *Client) Config() Config {
	return c.cfg
}

func (c *Client) Close() error {
	if closer, ok := c.transport.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close transport: %w", err)
		}
	}
	return nil
}

// Go validates params synchronously and sends the call in the background.
// A non-nil error means nothing was sent: *ValidationError,
// ErrUnknownOperation or ErrNotImplemented.
func (c *Client) Go(ctx context.Context, name string, params Params, id any) (*Call, error) {
	op, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownOperation)
	}

	return c.GoOperation(ctx, op, params, id)
}

// GoOperation как Go, но с произвольным описанием операции.
func (c *Client) GoOperation(ctx context.Context, op Operation, params Params, id any) (*Call, error) {
	p, err := op.prepare(params)
	if err != nil {
		return nil, err
	}

	env := newEnvelope(op, p, id)

	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request (%s): %w", op.Method, err)
	}

	call := &Call{
		Operation: op.Name,
		Method:    op.Method,
		Params:    p,
		ID:        env.ID,
		Done:      make(chan *Call, 1),
	}

	go c.send(ctx, call, body)

	return call, nil
}

// Call синхронный вариант Go.
func (c *Client) Call(ctx context.Context, name string, params Params, id any) (any, error) {
	call, err := c.Go(ctx, name, params, id)
	if err != nil {
		return nil, err
	}

	call = <-call.Done

	return call.Result, call.Error
}

func (c *Client) send(ctx context.Context, call *Call, body []byte) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	statusCode, respBody, err := c.transport.Send(ctx, c.cfg.Endpoint(), body)
	call.Result, call.Raw, call.Error = classify(statusCode, respBody, err)

	call.Done <- call
}

// NewClient transport может быть nil, тогда используется HTTPTransport
// с таймаутом из cfg.
func NewClient(cfg Config, transport Transport) *Client {
	if cfg.timeout <= 0 {
		cfg.timeout = DefaultTimeout
	}

	if transport == nil {
		transport = NewHTTPTransport(cfg.Timeout(), nil)
	}

	return &Client{
		cfg:       cfg,
		transport: transport,
	}
}
