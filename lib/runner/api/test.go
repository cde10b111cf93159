package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"

	"stakegate.io/stakegate/lib/common/keypair"
	"stakegate.io/stakegate/lib/ledger"
	"stakegate.io/stakegate/lib/operation"
	"stakegate.io/stakegate/lib/storage"
)

var networkID []byte = []byte("stakegate-unittest")

const (
	QueryPattern = "cursor={cursor}&limit={limit}&reverse={reverse}"
)

func prepareAPIServer() (*httptest.Server, *storage.LevelDBBackend) {
	st := storage.NewTestStorage()
	apiHandler := NetworkHandlerAPI{storage: st}

	router := mux.NewRouter()
	router.HandleFunc(GetAccountReceiptsHandlerPattern, apiHandler.GetReceiptsByAccountHandler).Methods("GET")
	router.HandleFunc(GetAccountMembershipHandlerPattern, apiHandler.GetAccountMembershipHandler).Methods("GET")
	router.HandleFunc(GetAccountRequirementHandlerPattern, apiHandler.GetAccountRequirementHandler).Methods("GET")
	router.HandleFunc(GetAccountHandlerPattern, apiHandler.GetAccountHandler).Methods("GET")
	router.HandleFunc(GetAccountsHandlerPattern, apiHandler.GetAccountsByCreatedHandler).Methods("GET")
	router.HandleFunc(GetAccountsHandlerPattern, apiHandler.GetAccountsHandler).Methods("POST")
	router.HandleFunc(GetReceiptsHandlerPattern, apiHandler.GetReceiptsHandler).Methods("GET")
	router.HandleFunc(GetReceiptByHashHandlerPattern, apiHandler.GetReceiptByHashHandler).Methods("GET")
	router.HandleFunc(GetRegistryHandlerPattern, apiHandler.GetRegistryHandler).Methods("GET")
	router.HandleFunc(PostSubscribePattern, apiHandler.PostSubscribeHandler).Methods("POST")
	ts := httptest.NewServer(router)
	return ts, st
}

// prepareReceipts saves `count` single operation receipts from one
// source, in sequence order.
func prepareReceipts(st *storage.LevelDBBackend, count int) (*keypair.Full, []ledger.Receipt) {
	kp := keypair.Random()

	var receipts []ledger.Receipt
	for i := 0; i < count; i++ {
		ev := operation.TestMakeEnvelopeWithKeypair(networkID, kp, uint64(i), operation.TestMakeStake(100))
		rc := ledger.NewReceiptFromOperation(ev.B.Operations[0], ev)
		if err := rc.Save(st); err != nil {
			panic(err)
		}
		receipts = append(receipts, rc)
	}

	return kp, receipts
}

type testSubmitter struct {
	executeFunc func(operation.Envelope) ([]ledger.Receipt, error)
}

func (s testSubmitter) Execute(ev operation.Envelope) ([]ledger.Receipt, error) {
	return s.executeFunc(ev)
}

func request(ts *httptest.Server, url string, streaming bool, post ...[]byte) io.ReadCloser {
	url = ts.URL + url

	var req *http.Request
	var err error
	if len(post) > 0 {
		req, err = http.NewRequest("POST", url, bytes.NewReader(post[0]))
	} else {
		req, err = http.NewRequest("GET", url, nil)
	}
	if err != nil {
		panic(err)
	}
	if streaming {
		req.Header.Set("Accept", "text/event-stream")
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		panic(err)
	}
	return resp.Body
}
