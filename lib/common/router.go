package common

import (
	"net/http"

	"github.com/gorilla/mux"
)

// PostAndJSONMatcher requires `application/json` on POST bodies and
// lets every other method through untouched, so preflight OPTIONS
// still reaches the CORS middleware.
func PostAndJSONMatcher(r *http.Request, rm *mux.RouteMatch) bool {
	if r.Method == "POST" {
		if r.Header.Get("Content-Type") != "application/json" {
			return false
		}
	}

	return true
}
