package transfer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
)

func TestHTTPAgentTransfer(t *testing.T) {
	var received transferRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/transfers", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	agent, err := NewHTTPAgent(common.MustParseEndpoint(server.URL), nil)
	require.NoError(t, err)

	require.NoError(t, agent.Transfer("GSOMEADDRESS", common.Amount(500)))
	require.Equal(t, "GSOMEADDRESS", received.To)
	require.Equal(t, common.Amount(500), received.Amount)
}

func TestHTTPAgentTransferRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	agent, err := NewHTTPAgent(common.MustParseEndpoint(server.URL), nil)
	require.NoError(t, err)

	require.Error(t, agent.Transfer("GSOMEADDRESS", common.Amount(500)))
}

func TestHTTPAgentHeldBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "GET", r.Method)
		require.Equal(t, "/balance", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"balance": "12345"}`))
	}))
	defer server.Close()

	agent, err := NewHTTPAgent(common.MustParseEndpoint(server.URL), nil)
	require.NoError(t, err)

	held, err := agent.HeldBalance()
	require.NoError(t, err)
	require.Equal(t, common.Amount(12345), held)
}

func TestHTTPAgentHeldBalanceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	agent, err := NewHTTPAgent(common.MustParseEndpoint(server.URL), nil)
	require.NoError(t, err)

	_, err = agent.HeldBalance()
	require.Equal(t, errors.TransferAgentQueryFailed, err)
}

func TestTestAgent(t *testing.T) {
	agent := NewTestAgent(common.Amount(1000))

	require.NoError(t, agent.Transfer("GADDR", common.Amount(300)))

	held, err := agent.HeldBalance()
	require.NoError(t, err)
	require.Equal(t, common.Amount(700), held)

	transfers := agent.Transfers()
	require.Len(t, transfers, 1)
	require.Equal(t, common.Amount(300), transfers[0].Amount)

	agent.FailWith = errors.TransferFailed
	require.Error(t, agent.Transfer("GADDR", common.Amount(1)))
	require.Len(t, agent.Transfers(), 1)
}
