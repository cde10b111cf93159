package observer

import (
	"strings"

	observable "github.com/GianlucaGuarini/go-observable"
)

// AccountObserver fires whenever an account record is written.
var AccountObserver = observable.New()

// ReceiptObserver fires whenever an applied operation leaves a receipt.
var ReceiptObserver = observable.New()

// NotificationObserver fires the ledger notifications, after the
// storage transaction that produced them has committed.
var NotificationObserver = observable.New()

// ResourceObserver carries the composite keys the event stream
// endpoint listens on.
var ResourceObserver = observable.New()

const (
	ResourceAccount      = "ac"
	ResourceReceipt      = "rc"
	ResourceNotification = "nt"
	ConditionAll         = "*"
	ConditionSource      = "source"
	ConditionTarget      = "target"
	ConditionType        = "type"
	ConditionAddress     = "address"
	ConditionEvent       = "event"
)

type Event struct {
	Resource  string `json:"resource"`
	Condition string `json:"condition"`
	Id        string `json:"id"`
}

func NewEvent(resource, condition, id string) Event {
	return Event{
		Resource:  resource,
		Condition: condition,
		Id:        id,
	}
}

func (e Event) String() string {
	if e.Condition == ConditionAll {
		return e.Resource + "-" + e.Condition
	}
	return e.Resource + "-" + e.Condition + "=" + e.Id
}

type Subscribe struct {
	Events []Event `json:"events"`
}

func NewSubscribe(events ...Event) Subscribe {
	s := Subscribe{}
	s.Events = append(s.Events, events...)
	return s
}

func (s Subscribe) String() string {
	parts := make([]string, 0, len(s.Events))
	for _, e := range s.Events {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "&")
}
