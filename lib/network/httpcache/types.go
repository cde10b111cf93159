package httpcache

import (
	"net/http"
	"time"
)

type Adapter interface {
	Get(key string) (*Response, bool)
	Set(key string, response *Response, expiration time.Time)
	Remove(key string)
}

// Wrapper is the handle the runner keeps: a caching Client, or the
// NopClient when caching is turned off.
type Wrapper interface {
	WrapHandlerFunc(handlerFunc http.HandlerFunc) http.HandlerFunc
}

// Response is one cached page. A zero Expiration never expires.
type Response struct {
	Value      []byte
	StatusCode int
	Header     http.Header
	Expiration time.Time
}
