package ledger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/keypair"
	"stakegate.io/stakegate/lib/common/observer"
)

func TestNotificationConstructors(t *testing.T) {
	address := keypair.Random().Address()

	{
		n := NewStakedNotification(address, common.Amount(100), common.Amount(300))
		require.Equal(t, EventStaked, n.Event)
		require.Equal(t, address, n.Account)
		require.Equal(t, common.Amount(100), n.Amount)
		require.Equal(t, common.Amount(300), n.Total)
		require.NotEmpty(t, n.OccurredAt)
	}

	{
		n := NewJoinedNotification(address, common.Amount(1000))
		require.Equal(t, EventJoined, n.Event)
		require.Equal(t, common.Amount(1000), n.Requirement)
	}

	{
		from := keypair.Random().Address()
		n := NewAdminTransferredNotification(from, address)
		require.Equal(t, EventAdminTransferred, n.Event)
		require.Equal(t, from, n.From)
		require.Equal(t, address, n.To)
		require.Empty(t, n.Account)
	}
}

func TestNotificationTrigger(t *testing.T) {
	address := keypair.Random().Address()

	var wg sync.WaitGroup
	wg.Add(3)

	var mutex sync.Mutex
	var seen []string
	observerFunc := func(args ...interface{}) {
		n := args[0].(Notification)

		mutex.Lock()
		seen = append(seen, n.Event)
		mutex.Unlock()
		wg.Done()
	}

	all := observer.NewEvent(observer.ResourceNotification, observer.ConditionAll, "").String()
	byEvent := observer.NewEvent(observer.ResourceNotification, observer.ConditionEvent, EventLeft).String()
	byAddress := observer.NewEvent(observer.ResourceNotification, observer.ConditionAddress, address).String()

	observer.NotificationObserver.On(all, observerFunc)
	observer.NotificationObserver.On(byEvent, observerFunc)
	observer.NotificationObserver.On(byAddress, observerFunc)
	defer func() {
		observer.NotificationObserver.Off(all, observerFunc)
		observer.NotificationObserver.Off(byEvent, observerFunc)
		observer.NotificationObserver.Off(byAddress, observerFunc)
	}()

	NewLeftNotification(address).Trigger()

	wg.Wait()

	require.Equal(t, []string{EventLeft, EventLeft, EventLeft}, seen)
}

// a notification without an account only fires the catch-all and
// per-event keys
func TestNotificationTriggerWithoutAccount(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	var triggered Notification
	observerFunc := func(args ...interface{}) {
		triggered = args[0].(Notification)
		wg.Done()
	}

	byEvent := observer.NewEvent(observer.ResourceNotification, observer.ConditionEvent, EventGlobalRequirementSet).String()
	observer.NotificationObserver.On(byEvent, observerFunc)
	defer observer.NotificationObserver.Off(byEvent, observerFunc)

	NewGlobalRequirementSetNotification(common.Amount(700)).Trigger()

	wg.Wait()

	require.Equal(t, common.Amount(700), triggered.Requirement)
}
