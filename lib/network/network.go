package network

import (
	"net/http"

	"github.com/gorilla/mux"

	"stakegate.io/stakegate/lib/common"
)

type Network interface {
	Endpoint() *common.Endpoint
	AddHandler(string, http.HandlerFunc) *mux.Route
	AddMiddleware(string, ...mux.MiddlewareFunc) error

	// Starts network handling
	// Blocks until finished, either because of an error
	// or because `Stop` was called
	Start() error
	Stop()
	Ready() error
	IsReady() bool
}
