package ledger

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/keypair"
	"stakegate.io/stakegate/lib/common/observer"
	"stakegate.io/stakegate/lib/errors"
	"stakegate.io/stakegate/lib/operation"
	"stakegate.io/stakegate/lib/storage"
)

func TestNewReceiptFromOperation(t *testing.T) {
	target := keypair.Random().Address()
	kp, ev := operation.TestMakeEnvelope(networkID, operation.TestMakeSync(target))

	r := NewReceiptFromOperation(ev.B.Operations[0], ev)
	require.Equal(t, operation.TypeSync, r.Type)
	require.Equal(t, kp.Address(), r.Source)
	require.Equal(t, target, r.Target)
	require.Equal(t, ev.GetHash(), r.EnvelopeHash)
	require.NotEmpty(t, r.Confirmed)
}

func TestSaveReceipt(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, ev := operation.TestMakeEnvelope(networkID, operation.TestMakeStake(500))

	r := NewReceiptFromOperation(ev.B.Operations[0], ev)
	r.Requirement = common.Amount(1000)
	r.RecordEvent(EventStaked)
	require.NoError(t, r.Save(st))

	exists, err := ExistsReceipt(st, r.Hash)
	require.NoError(t, err)
	require.True(t, exists)

	fetched, err := GetReceipt(st, r.Hash)
	require.NoError(t, err)
	require.Equal(t, r.Hash, fetched.Hash)
	require.Equal(t, operation.TypeStake, fetched.Type)
	require.Equal(t, common.Amount(500), fetched.Amount)
	require.Equal(t, common.Amount(1000), fetched.Requirement)
	require.Equal(t, []string{EventStaked}, fetched.Events)

	// saving the same receipt again must fail
	require.Equal(t, errors.AlreadySaved, r.Save(st))

	// and a fetched copy still refuses
	require.Equal(t, errors.AlreadySaved, fetched.Save(st))
}

func TestGetMissingReceipt(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := GetReceipt(st, "no-such-hash")
	require.Equal(t, errors.ReceiptDoesNotExist, err)
}

func TestGetReceiptsBySource(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	kp := keypair.Random()

	var createdOrder []string
	for i := uint64(0); i < 10; i++ {
		ev := operation.TestMakeEnvelopeWithKeypair(networkID, kp, i, operation.TestMakeStake(100))

		r := NewReceiptFromOperation(ev.B.Operations[0], ev)
		require.NoError(t, r.Save(st))
		createdOrder = append(createdOrder, r.Hash)
	}

	var fetched []string
	options := storage.NewDefaultListOptions(false, nil, uint64(len(createdOrder)))
	iterFunc, closeFunc := GetReceiptsBySource(st, kp.Address(), options)
	for {
		r, hasNext, _ := iterFunc()
		if !hasNext {
			break
		}

		fetched = append(fetched, r.Hash)
	}
	closeFunc()

	require.Equal(t, createdOrder, fetched)

	// other sources see nothing
	iterFunc, closeFunc = GetReceiptsBySource(st, keypair.Random().Address(), options)
	_, hasNext, _ := iterFunc()
	closeFunc()
	require.False(t, hasNext)
}

func TestGetReceiptsByTarget(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	target := keypair.Random().Address()

	var createdOrder []string
	for i := 0; i < 5; i++ {
		_, ev := operation.TestMakeEnvelope(networkID, operation.TestMakeSync(target))

		r := NewReceiptFromOperation(ev.B.Operations[0], ev)
		require.NoError(t, r.Save(st))
		createdOrder = append(createdOrder, r.Hash)
	}

	// untargeted receipts must not pollute the target index
	_, ev := operation.TestMakeEnvelope(networkID, operation.TestMakeStake(100))
	r := NewReceiptFromOperation(ev.B.Operations[0], ev)
	require.NoError(t, r.Save(st))

	var fetched []string
	options := storage.NewDefaultListOptions(false, nil, uint64(10))
	iterFunc, closeFunc := GetReceiptsByTarget(st, target, options)
	for {
		r, hasNext, _ := iterFunc()
		if !hasNext {
			break
		}

		fetched = append(fetched, r.Hash)
	}
	closeFunc()

	require.Equal(t, createdOrder, fetched)
}

func TestGetReceiptsByCreated(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	var createdOrder []string
	for i := 0; i < 10; i++ {
		_, ev := operation.TestMakeEnvelope(networkID, operation.TestMakeStake(100))

		r := NewReceiptFromOperation(ev.B.Operations[0], ev)
		require.NoError(t, r.Save(st))
		createdOrder = append(createdOrder, r.Hash)
	}

	var fetched []string
	options := storage.NewDefaultListOptions(false, nil, uint64(len(createdOrder)))
	iterFunc, closeFunc := GetReceiptsByCreated(st, options)
	for {
		r, hasNext, _ := iterFunc()
		if !hasNext {
			break
		}

		fetched = append(fetched, r.Hash)
	}
	closeFunc()

	require.Equal(t, createdOrder, fetched)

	// reverse order walks the newest first
	var reversed []string
	options = storage.NewDefaultListOptions(true, nil, uint64(len(createdOrder)))
	iterFunc, closeFunc = GetReceiptsByCreated(st, options)
	for {
		r, hasNext, _ := iterFunc()
		if !hasNext {
			break
		}

		reversed = append(reversed, r.Hash)
	}
	closeFunc()

	require.Equal(t, len(createdOrder), len(reversed))
	require.Equal(t, createdOrder[len(createdOrder)-1], reversed[0])
}

func TestReceiptObserver(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	_, ev := operation.TestMakeEnvelope(networkID, operation.TestMakeStake(100))
	r := NewReceiptFromOperation(ev.B.Operations[0], ev)

	var triggered *Receipt
	observerFunc := func(args ...interface{}) {
		triggered = args[0].(*Receipt)
		wg.Done()
	}
	observer.ReceiptObserver.On(fmt.Sprintf("source-%s", r.Source), observerFunc)
	defer observer.ReceiptObserver.Off(fmt.Sprintf("source-%s", r.Source), observerFunc)

	st := storage.NewTestStorage()
	defer st.Close()

	require.NoError(t, r.Save(st))

	wg.Wait()

	require.Equal(t, r.Hash, triggered.Hash)
	require.Equal(t, r.Source, triggered.Source)
}

func TestEnvelopeAppliedMarker(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, ev := operation.TestMakeEnvelope(networkID, operation.TestMakeStake(100))

	exists, err := ExistsEnvelopeApplied(st, ev.GetHash())
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, MarkEnvelopeApplied(st, ev.GetHash()))

	exists, err = ExistsEnvelopeApplied(st, ev.GetHash())
	require.NoError(t, err)
	require.True(t, exists)

	// marking twice means the executor failed to check first
	require.Error(t, MarkEnvelopeApplied(st, ev.GetHash()))
}
