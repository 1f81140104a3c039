package starknet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorFromName(t *testing.T) {
	// Well-known Starknet selector vector.
	assert.Equal(t,
		"0x83afd3f4caedc6eebf44246fe54e38c95e3179a5ec9ea81740eca5b482d12e",
		SelectorFromName("transfer"))

	// Selectors are deterministic, 0x-prefixed and fit in a felt (250 bits).
	sel := SelectorFromName("get_chipi_balance")
	assert.Equal(t, sel, SelectorFromName("get_chipi_balance"))
	assert.True(t, strings.HasPrefix(sel, "0x"))
	assert.LessOrEqual(t, len(sel)-2, 63)
}

func TestClientCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "starknet_call", req.Method)

		params, _ := json.Marshal(req.Params)
		var p callParams
		require.NoError(t, json.Unmarshal(params, &p))
		assert.Equal(t, "0xvault", p.Request.ContractAddress)
		assert.Equal(t, SelectorFromName("get_chipi_balance"), p.Request.EntryPointSelector)
		assert.Equal(t, []string{"0xuser"}, p.Request.Calldata)
		assert.Equal(t, "latest", p.BlockID)

		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":["0xde0b6b3a7640000","0x0"]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	got, err := c.Call(context.Background(), Call{
		ContractAddress: "0xvault",
		EntryPoint:      "get_chipi_balance",
		Calldata:        []string{"0xuser"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"0xde0b6b3a7640000", "0x0"}, got)
}

func TestClientCallRPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":20,"message":"Contract not found"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Call(context.Background(), Call{ContractAddress: "0xmissing", EntryPoint: "balanceOf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Contract not found")
}

func TestClientInvoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req invokeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "withdraw_by_hot", req.EntryPoint)
		assert.Equal(t, []string{"0xto", "0xde0b6b3a7640000", "0x0"}, req.Calldata)

		_, _ = w.Write([]byte(`{"transaction_hash":"0xdeadbeef"}`))
	}))
	defer srv.Close()

	c := NewClient("", srv.URL)
	hash, err := c.Invoke(context.Background(), Call{
		ContractAddress: "0xvault",
		EntryPoint:      "withdraw_by_hot",
		Calldata:        []string{"0xto", "0xde0b6b3a7640000", "0x0"},
	})
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", hash)
}

func TestClientInvokeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"execution reverted"}`))
	}))
	defer srv.Close()

	c := NewClient("", srv.URL)
	_, err := c.Invoke(context.Background(), Call{ContractAddress: "0xvault", EntryPoint: "withdraw_by_hot"})
	assert.Error(t, err)

	noRelayer := NewClient("", "")
	_, err = noRelayer.Invoke(context.Background(), Call{})
	assert.Error(t, err)
}
