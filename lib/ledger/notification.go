package ledger

import (
	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/observer"
)

// Notifications mirror the membership and stake events of the ledger.
// The executor collects them while applying an envelope and fires
// them only after the storage transaction has committed, so
// subscribers never observe a state change that was later discarded.

const (
	EventStaked               string = "staked"
	EventUnstaked             string = "unstaked"
	EventJoined               string = "joined"
	EventLeft                 string = "left"
	EventRequirementSet       string = "requirement-set"
	EventGlobalRequirementSet string = "global-requirement-set"
	EventAdminTransferred     string = "administration-transferred"
	EventExcessWithdrawn      string = "excess-withdrawn"
)

type Notification struct {
	Event       string        `json:"event"`
	Account     string        `json:"account,omitempty"`
	Amount      common.Amount `json:"amount,omitempty"`
	Total       common.Amount `json:"total,omitempty"`
	Requirement common.Amount `json:"requirement,omitempty"`
	From        string        `json:"from,omitempty"`
	To          string        `json:"to,omitempty"`
	OccurredAt  string        `json:"occurred_at"`
}

func newNotification(event string) Notification {
	return Notification{
		Event:      event,
		OccurredAt: common.NowISO8601(),
	}
}

// NewStakedNotification carries the credited amount and the stake
// total after it.
func NewStakedNotification(account string, amount, total common.Amount) Notification {
	n := newNotification(EventStaked)
	n.Account = account
	n.Amount = amount
	n.Total = total
	return n
}

// NewUnstakedNotification carries the debited amount and the stake
// remaining after it.
func NewUnstakedNotification(account string, amount, remaining common.Amount) Notification {
	n := newNotification(EventUnstaked)
	n.Account = account
	n.Amount = amount
	n.Total = remaining
	return n
}

// NewJoinedNotification snapshots the requirement that was in force
// when the account became a member.
func NewJoinedNotification(account string, requirement common.Amount) Notification {
	n := newNotification(EventJoined)
	n.Account = account
	n.Requirement = requirement
	return n
}

func NewLeftNotification(account string) Notification {
	n := newNotification(EventLeft)
	n.Account = account
	return n
}

func NewRequirementSetNotification(account string, requirement common.Amount) Notification {
	n := newNotification(EventRequirementSet)
	n.Account = account
	n.Requirement = requirement
	return n
}

func NewGlobalRequirementSetNotification(requirement common.Amount) Notification {
	n := newNotification(EventGlobalRequirementSet)
	n.Requirement = requirement
	return n
}

func NewAdminTransferredNotification(from, to string) Notification {
	n := newNotification(EventAdminTransferred)
	n.From = from
	n.To = to
	return n
}

func NewExcessWithdrawnNotification(target string, amount common.Amount) Notification {
	n := newNotification(EventExcessWithdrawn)
	n.Account = target
	n.Amount = amount
	return n
}

// Trigger fires the notification on every composite key a subscriber
// could be listening on.
func (n Notification) Trigger() {
	events := []string{
		observer.NewEvent(observer.ResourceNotification, observer.ConditionAll, "").String(),
		observer.NewEvent(observer.ResourceNotification, observer.ConditionEvent, n.Event).String(),
	}
	if len(n.Account) > 0 {
		events = append(
			events,
			observer.NewEvent(observer.ResourceNotification, observer.ConditionAddress, n.Account).String(),
		)
	}

	for _, event := range events {
		observer.NotificationObserver.Trigger(event, n)
		observer.ResourceObserver.Trigger(event, n)
	}
}
