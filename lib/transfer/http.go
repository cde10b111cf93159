package transfer

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
	"stakegate.io/stakegate/lib/metrics"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultIdleTimeout = 10 * time.Second
)

// HTTPAgent drives a custodial wallet service over its HTTP API:
// `POST {endpoint}/transfers` with a JSON body moves value out,
// `GET {endpoint}/balance` reports the held total. Requests retry
// through the persistent client's backoff.
type HTTPAgent struct {
	endpoint *common.Endpoint
	client   common.HttpDoer
}

type transferRequest struct {
	To     string        `json:"to"`
	Amount common.Amount `json:"amount"`
}

type balanceResponse struct {
	Balance common.Amount `json:"balance"`
}

func NewHTTPAgent(endpoint *common.Endpoint, retrySetting *common.RetrySetting) (*HTTPAgent, error) {
	client, err := common.NewPersistentHTTP2Client(
		defaultTimeout,
		defaultIdleTimeout,
		true,
		retrySetting,
	)
	if err != nil {
		return nil, err
	}

	return &HTTPAgent{
		endpoint: endpoint,
		client:   client,
	}, nil
}

func (a *HTTPAgent) url(path string) string {
	return strings.TrimRight(a.endpoint.String(), "/") + path
}

func (a *HTTPAgent) Transfer(to string, amount common.Amount) error {
	begin := time.Now()
	metrics.Transfer.AddSend()
	defer metrics.Transfer.ObserveDurationSeconds(begin, metrics.TransferSend)

	body, err := json.Marshal(transferRequest{To: to, Amount: amount})
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", a.url("/transfers"), strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := a.client.Do(req)
	if err != nil {
		metrics.Transfer.AddSendError()
		log.Error("transfer request failed", "to", to, "amount", amount, "error", err)
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		metrics.Transfer.AddSendError()
		log.Error("transfer rejected", "to", to, "amount", amount, "status", response.StatusCode)
		return fmt.Errorf("transfer rejected with status %d", response.StatusCode)
	}

	return nil
}

func (a *HTTPAgent) HeldBalance() (common.Amount, error) {
	begin := time.Now()
	metrics.Transfer.AddBalance()
	defer metrics.Transfer.ObserveDurationSeconds(begin, metrics.TransferBalance)

	req, err := http.NewRequest("GET", a.url("/balance"), nil)
	if err != nil {
		return common.Amount(0), err
	}

	response, err := a.client.Do(req)
	if err != nil {
		metrics.Transfer.AddBalanceError()
		log.Error("balance request failed", "error", err)
		return common.Amount(0), errors.TransferAgentQueryFailed
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		metrics.Transfer.AddBalanceError()
		return common.Amount(0), errors.TransferAgentQueryFailed
	}

	encoded, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return common.Amount(0), err
	}

	var parsed balanceResponse
	if err := json.Unmarshal(encoded, &parsed); err != nil {
		return common.Amount(0), err
	}

	return parsed.Balance, nil
}
