package httputils

import (
	"fmt"
	"net/http"

	"stakegate.io/stakegate/lib/errors"
)

const DefaultProblemType = "about:blank"

// Problem carries machine readable details of an error in a response,
// following RFC 7807.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func NewProblem(problemType, title string) Problem {
	return Problem{Type: problemType, Title: title}
}

// NewStatusProblem makes a problem out of a bare http status code.
func NewStatusProblem(status int) Problem {
	return Problem{
		Type:   DefaultProblemType,
		Title:  http.StatusText(status),
		Status: status,
	}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

// NewErrorProblem makes a problem out of an error. For `errors.Error`
// the problem type points to the error code.
func NewErrorProblem(err error, status int) Problem {
	p := Problem{Type: DefaultProblemType, Status: status}
	if e, ok := err.(*errors.Error); ok {
		p.Type = fmt.Sprintf("https://stakegate.io/problems/%d", e.Code)
		p.Title = e.Message
	} else {
		p.Title = err.Error()
	}

	return p
}

func (p Problem) SetDetail(detail string) Problem {
	p.Detail = detail
	return p
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}
