package httputils

import (
	"net/http"

	"stakegate.io/stakegate/lib/errors"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	if r.Header.Get("Accept") == "text/event-stream" {
		return true

	}
	return false
}

var (
	ErrorsToStatus = map[uint]int{
		100: 409,
		101: 404,
		102: 400,
		103: 400,
		104: 400,
		105: 400,
		106: 400,
		107: 400,
		108: 409,
		109: 400,
		110: 403,
		111: 409,
		112: 500,
		113: 400,
		114: 400,
		115: 400,
		120: 400,
		121: 400,
		122: 400,
		123: 400,
		124: 400,
		125: 400,
		126: 400,
		127: 400,
		128: 400,
		129: 409,
		130: 404,
		131: 409,
		132: 500,
		133: 500,
		134: 404,
		135: 500,
		136: 409,
		137: 409,
		140: 400,
		141: 400,
		142: 400,
		143: 404,
		144: 400,
		145: 429,
		146: 400,
		150: 503,
		151: 503,
		152: 500,
		153: 500,
		154: 501,
	}
)

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, found := ErrorsToStatus[e.Code]; found {
			return status
		}
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
