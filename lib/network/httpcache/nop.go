package httpcache

import "net/http"

// NopClient stands in when caching is disabled, so the runner can wrap
// its read handlers unconditionally.
type NopClient struct {
}

func (NopClient) WrapHandlerFunc(handlerFunc http.HandlerFunc) http.HandlerFunc {
	return handlerFunc
}

func NewNopClient() *NopClient {
	return &NopClient{}
}
