package cgrates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentRequest struct {
	Endpoint string
	Body     []byte
	Deadline time.Time
}

type stubTransport struct {
	mu       sync.Mutex
	requests []sentRequest

	statusCode int
	body       string
	err        error
	block      bool // ждать отмены контекста
}

func (s *stubTransport) Send(ctx context.Context, endpoint string, body []byte) (int, []byte, error) {
	deadline, _ := ctx.Deadline()

	s.mu.Lock()
	s.requests = append(s.requests, sentRequest{Endpoint: endpoint, Body: body, Deadline: deadline})
	s.mu.Unlock()

	if s.block {
		<-ctx.Done()
		return 0, nil, fmt.Errorf("failed to execute request: %w", ctx.Err())
	}

	return s.statusCode, []byte(s.body), s.err
}

func (s *stubTransport) sent() []sentRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]sentRequest, len(s.requests))
	copy(result, s.requests)

	return result
}

type sentEnvelope struct {
	Method string           `json:"method"`
	Params []map[string]any `json:"params"`
	ID     any              `json:"id"`
}

func decodeEnvelope(t *testing.T, body []byte) (sentEnvelope, map[string]json.RawMessage) {
	t.Helper()

	env := sentEnvelope{}
	require.NoError(t, json.Unmarshal(body, &env))

	fields := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(body, &fields))

	return env, fields
}

func newTestClient(t *testing.T, tr Transport, timeout time.Duration) *Client {
	t.Helper()

	cfg, err := NewConfig("http://test.com/jsonrpc", timeout)
	require.NoError(t, err)

	return NewClient(cfg, tr)
}

func waitCall(t *testing.T, call *Call) *Call {
	t.Helper()

	select {
	case done := <-call.Done:
		return done
	case <-time.After(5 * time.Second):
		t.Fatal("call was not resolved")
		return nil
	}
}

func TestClient_ValidationFailsBeforeSend(t *testing.T) {
	t.Parallel()

	tr := &stubTransport{statusCode: http.StatusOK, body: `{"result":"OK"}`}
	cl := newTestClient(t, tr, 0)

	tests := []struct {
		name   string
		fn     func() (*Call, error)
		errMsg string
	}{
		{
			name:   "getAccounts tenant",
			fn:     func() (*Call, error) { return cl.GetAccounts(t.Context(), Params{}) },
			errMsg: "Tenant is required",
		},
		{
			name:   "getAccount account",
			fn:     func() (*Call, error) { return cl.GetAccount(t.Context(), Params{"Tenant": "123"}) },
			errMsg: "Account is required",
		},
		{
			name:   "setAccount tenant",
			fn:     func() (*Call, error) { return cl.SetAccount(t.Context(), Params{}) },
			errMsg: "Tenant is required",
		},
		{
			name:   "removeAccount account",
			fn:     func() (*Call, error) { return cl.RemoveAccount(t.Context(), Params{"Tenant": "123"}) },
			errMsg: "Account is required",
		},
		{
			name:   "debitBalance balance ref",
			fn:     func() (*Call, error) { return cl.DebitBalance(t.Context(), Params{"Tenant": "123", "Account": "123"}) },
			errMsg: "BalanceId or BalanceUUID is required.",
		},
		{
			name:   "getMaxUsage usage",
			fn:     func() (*Call, error) { return cl.GetMaxUsage(t.Context(), Params{"Tenant": "t", "Account": "a", "Destination": "d"}) },
			errMsg: "Usage is required",
		},
		{
			name:   "setTPDestination prefixes",
			fn:     func() (*Call, error) { return cl.SetTPDestination(t.Context(), Params{"TPid": "tp", "ID": "DST_1002"}) },
			errMsg: "Prefixes is required",
		},
		{
			name:   "loadRatingPlan plan id",
			fn:     func() (*Call, error) { return cl.LoadRatingPlan(t.Context(), Params{"TPid": "tp"}) },
			errMsg: "RatingPlanId is required",
		},
		{
			name: "setSupplierProfile suppliers",
			fn:   func() (*Call, error) {
				return cl.SetSupplierProfile(t.Context(), Params{
					"Tenant": "t", "ID": "SPP_1", "ActivationInterval": map[string]any{}, "Sorting": "*least_cost",
				})
			},
			errMsg: "Suppliers is required",
		},
	}

	for _, tt := range tests {
		call, err := tt.fn()
		require.Nil(t, call, tt.name)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, tt.name)
		require.EqualError(t, err, tt.errMsg, tt.name)
	}

	require.Empty(t, tr.sent())
}

func TestClient_UnknownAndUnimplemented(t *testing.T) {
	t.Parallel()

	tr := &stubTransport{statusCode: http.StatusOK, body: `{"result":"OK"}`}
	cl := newTestClient(t, tr, 0)

	_, err := cl.Go(t.Context(), "getEverything", Params{"Tenant": "t"}, nil)
	require.ErrorIs(t, err, ErrUnknownOperation)

	_, err = cl.GetCdrs(t.Context(), Params{"Tenant": "t"})
	require.ErrorIs(t, err, ErrNotImplemented)

	_, err = cl.DeleteCdrs(t.Context(), Params{"Tenant": "t"})
	require.ErrorIs(t, err, ErrNotImplemented)

	require.Empty(t, tr.sent())
}

func TestClient_Outcomes(t *testing.T) {
	t.Parallel()

	params := Params{"Tenant": "t", "Account": "a"}

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()

		netErr := errors.New("dial tcp: lookup test.com: no such host")
		cl := newTestClient(t, &stubTransport{err: netErr}, 0)

		call, err := cl.GetAccount(t.Context(), params)
		require.NoError(t, err)

		call = waitCall(t, call)

		var trErr *TransportError
		require.ErrorAs(t, call.Error, &trErr)
		require.ErrorIs(t, call.Error, netErr)
		require.Nil(t, call.Result)
	})

	t.Run("status 500", func(t *testing.T) {
		t.Parallel()

		cl := newTestClient(t, &stubTransport{statusCode: http.StatusInternalServerError, body: "internal"}, 0)

		call, err := cl.GetAccount(t.Context(), params)
		require.NoError(t, err)

		call = waitCall(t, call)

		var pErr *ProtocolError
		require.ErrorAs(t, call.Error, &pErr)
		require.Equal(t, "internal", string(pErr.Body))
	})

	t.Run("rpc error", func(t *testing.T) {
		t.Parallel()

		cl := newTestClient(t, &stubTransport{statusCode: http.StatusOK, body: `{"error":"boom"}`}, 0)

		call, err := cl.GetAccount(t.Context(), params)
		require.NoError(t, err)

		call = waitCall(t, call)

		var rpcErr *RPCError
		require.ErrorAs(t, call.Error, &rpcErr)
		require.Equal(t, "boom", rpcErr.Message)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		cl := newTestClient(t, &stubTransport{statusCode: http.StatusOK, body: `{"result":{"id":1}}`}, 0)

		call, err := cl.GetAccount(t.Context(), params)
		require.NoError(t, err)

		call = waitCall(t, call)

		require.NoError(t, call.Error)
		require.Equal(t, map[string]any{"id": float64(1)}, call.Result)
		require.JSONEq(t, `{"id":1}`, string(call.Raw))
		require.Equal(t, OpGetAccount, call.Operation)
		require.Equal(t, "ApierV2.GetAccount", call.Method)
	})

	t.Run("sync call", func(t *testing.T) {
		t.Parallel()

		cl := newTestClient(t, &stubTransport{statusCode: http.StatusOK, body: `{"result":[{"id":1},{"id":2}]}`}, 0)

		result, err := cl.Call(t.Context(), OpGetAccounts, Params{"Tenant": "test"}, nil)
		require.NoError(t, err)

		accounts, ok := result.([]any)
		require.True(t, ok)
		require.Len(t, accounts, 2)
		require.Equal(t, map[string]any{"id": float64(1)}, accounts[0])

		_, err = cl.Call(t.Context(), OpGetAccounts, Params{}, nil)
		require.EqualError(t, err, "Tenant is required")
	})
}

func TestClient_Envelope(t *testing.T) {
	t.Parallel()

	tr := &stubTransport{statusCode: http.StatusOK, body: `{"result":"OK"}`}
	cl := newTestClient(t, tr, 3*time.Second)
	params := Params{"Tenant": "t", "Account": "a", "ActionPlanIDs": []string{"PACKAGE_10"}}

	call, err := cl.SetAccount(t.Context(), params, 3)
	require.NoError(t, err)
	waitCall(t, call)

	call, err = cl.SetAccount(t.Context(), params)
	require.NoError(t, err)
	waitCall(t, call)

	call, err = cl.SetAccount(t.Context(), params, "")
	require.NoError(t, err)
	waitCall(t, call)

	sent := tr.sent()
	require.Len(t, sent, 3)

	env, fields := decodeEnvelope(t, sent[0].Body)
	require.Equal(t, "http://test.com/jsonrpc", sent[0].Endpoint)
	require.Equal(t, "ApierV2.SetAccount", env.Method)
	require.Len(t, env.Params, 1)
	require.Equal(t, "t", env.Params[0]["Tenant"])
	require.Equal(t, []any{"PACKAGE_10"}, env.Params[0]["ActionPlanIDs"])
	require.JSONEq(t, `3`, string(fields["id"]))

	for _, req := range sent[1:] {
		_, fields = decodeEnvelope(t, req.Body)
		require.NotContains(t, fields, "id")
	}

	// дедлайн не дальше таймаута конфигурации
	require.False(t, sent[0].Deadline.IsZero())
	require.WithinDuration(t, time.Now().Add(3*time.Second), sent[0].Deadline, 3*time.Second)
}

func TestClient_GetMaxUsageDefaults(t *testing.T) {
	t.Parallel()

	tr := &stubTransport{statusCode: http.StatusOK, body: `{"result":5000000000}`}
	cl := newTestClient(t, tr, 0)

	call, err := cl.GetMaxUsage(t.Context(), Params{"Tenant": "t", "Account": "a", "Destination": "d", "Usage": "5"})
	require.NoError(t, err)
	require.Equal(t, "call", call.Params["Category"])

	call = waitCall(t, call)
	require.NoError(t, call.Error)
	require.InDelta(t, 5e9, call.Result, 0)

	env, _ := decodeEnvelope(t, tr.sent()[0].Body)
	require.Equal(t, "ApierV1.GetMaxUsage", env.Method)
	require.Equal(t, "call", env.Params[0]["Category"])
	require.Equal(t, "*sms", env.Params[0]["ToR"])
	require.NotEmpty(t, env.Params[0]["SetupTime"])
}

func TestClient_CreateCdrOriginID(t *testing.T) {
	t.Parallel()

	tr := &stubTransport{statusCode: http.StatusOK, body: `{"result":"OK"}`}
	cl := newTestClient(t, tr, 0)

	for range 2 {
		call, err := cl.CreateCdr(t.Context(), Params{"Tenant": "t", "Account": "a"})
		require.NoError(t, err)
		waitCall(t, call)
	}

	sent := tr.sent()
	require.Len(t, sent, 2)

	env1, _ := decodeEnvelope(t, sent[0].Body)
	env2, _ := decodeEnvelope(t, sent[1].Body)

	require.NotEmpty(t, env1.Params[0]["OriginID"])
	require.NotEmpty(t, env2.Params[0]["OriginID"])
	require.NotEqual(t, env1.Params[0]["OriginID"], env2.Params[0]["OriginID"])
}

func TestClient_CacheClearIdempotent(t *testing.T) {
	t.Parallel()

	tr := &stubTransport{statusCode: http.StatusOK, body: `{"result":"OK"}`}
	cl := newTestClient(t, tr, 0)

	for range 2 {
		call, err := cl.CacheClear(t.Context())
		require.NoError(t, err)
		require.NoError(t, waitCall(t, call).Error)
	}

	// параметры вызывающего игнорируются
	call, err := cl.Go(t.Context(), OpCacheClear, Params{"FlushAll": false, "CacheIDs": []string{"x"}}, nil)
	require.NoError(t, err)
	waitCall(t, call)

	sent := tr.sent()
	require.Len(t, sent, 3)

	for _, req := range sent {
		require.JSONEq(t, `{"method":"ApierV1.FlushCache","params":[{"FlushAll":true}]}`, string(req.Body))
	}
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	tr := &stubTransport{block: true}
	cl := newTestClient(t, tr, 50*time.Millisecond)

	start := time.Now()

	call, err := cl.GetAccount(t.Context(), Params{"Tenant": "t", "Account": "a"})
	require.NoError(t, err)

	call = waitCall(t, call)

	var trErr *TransportError
	require.ErrorAs(t, call.Error, &trErr)
	require.ErrorIs(t, call.Error, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestClient_Concurrent(t *testing.T) {
	t.Parallel()

	const n = 50

	tr := &stubTransport{statusCode: http.StatusOK, body: `{"result":{"id":1}}`}
	cl := newTestClient(t, tr, 0)
	wg := sync.WaitGroup{}

	for i := range n {
		wg.Add(1)

		go func() {
			defer wg.Done()

			result, err := cl.Call(t.Context(), OpGetAccount, Params{"Tenant": "t", "Account": fmt.Sprint(i)}, i+1)
			assert.NoError(t, err)
			assert.Equal(t, map[string]any{"id": float64(1)}, result)
		}()
	}

	wg.Wait()

	sent := tr.sent()
	require.Len(t, sent, n)

	seen := make(map[string]struct{}, n)
	for _, req := range sent {
		env, _ := decodeEnvelope(t, req.Body)
		seen[env.Params[0]["Account"].(string)] = struct{}{}
	}
	require.Len(t, seen, n)
}

func TestClient_DefaultTransport(t *testing.T) {
	t.Parallel()

	cl := NewClient(Config{endpoint: "http://test.com"}, nil)

	require.Equal(t, DefaultTimeout, cl.Config().Timeout())
	require.IsType(t, &HTTPTransport{}, cl.transport)
	require.NoError(t, cl.Close())
}
