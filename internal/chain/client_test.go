package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// newRPCServer answers a fixed set of JSON-RPC methods and fails the first
// `flaky` requests with 503.
func newRPCServer(t *testing.T, flaky int32, results map[string]string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		if n <= flaky {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		result, ok := results[req.Method]
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"error":{"code":-32601,"message":"method not found"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":` + result + `}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestNewClientRetriesTransientErrors(t *testing.T) {
	srv, hits := newRPCServer(t, 1, map[string]string{
		"eth_chainId":    `"0x144"`,
		"eth_getBalance": `"0xde0b6b3a7640000"`,
	})

	key, err := ParsePrivateKey(devKey)
	if err != nil {
		t.Fatalf("parse key: %v", err)
	}

	ctx := context.Background()
	client, err := NewClient(ctx, srv.URL, key, Options{MaxRetries: 2, RequestsPerSecond: 100, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	if client.ChainID().Int64() != 324 {
		t.Fatalf("chain id mismatch: %s", client.ChainID())
	}
	if atomic.LoadInt32(hits) != 2 {
		t.Fatalf("expected one retry, got %d requests", atomic.LoadInt32(hits))
	}

	balance, err := client.Balance(ctx)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.String() != "1000000000000000000" {
		t.Fatalf("balance mismatch: %s", balance)
	}
	if client.Address().Hex() != "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266" {
		t.Fatalf("address mismatch: %s", client.Address().Hex())
	}
}

func TestNewClientFailsWithoutChainID(t *testing.T) {
	srv, _ := newRPCServer(t, 0, map[string]string{})

	key, err := ParsePrivateKey(devKey)
	if err != nil {
		t.Fatalf("parse key: %v", err)
	}
	if _, err := NewClient(context.Background(), srv.URL, key, Options{}); err == nil {
		t.Fatalf("expected chain id error")
	}
}
