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
	"stakegate.io/stakegate/lib/storage"
)

func TestSaveNewAccount(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	ac := TestMakeAccount(st, common.Amount(100))

	exists, err := ExistsAccount(st, ac.Address)
	require.NoError(t, err)
	require.True(t, exists)

	fetched, err := GetAccount(st, ac.Address)
	require.NoError(t, err)
	require.Equal(t, ac.Address, fetched.Address)
	require.Equal(t, common.Amount(100), fetched.Staked)
	require.False(t, fetched.IsMember)
	require.False(t, fetched.EverJoined)
}

func TestSaveExistingAccount(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	ac := TestMakeAccount(st, common.Amount(100))

	require.NoError(t, ac.Credit(common.Amount(50)))
	require.NoError(t, ac.Save(st))

	fetched, err := GetAccount(st, ac.Address)
	require.NoError(t, err)
	require.Equal(t, common.Amount(150), fetched.GetBalance())
}

func TestGetMissingAccount(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := GetAccount(st, keypair.Random().Address())
	require.Equal(t, errors.AccountDoesNotExist, err)
}

// every address conceptually holds a zero stake account
func TestGetOrNewAccount(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	address := keypair.Random().Address()

	ac, err := GetOrNewAccount(st, address)
	require.NoError(t, err)
	require.Equal(t, common.Amount(0), ac.Staked)
	require.False(t, ac.IsMember)

	// until saved, nothing is persisted
	exists, err := ExistsAccount(st, address)
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, ac.Save(st))

	fetched, err := GetOrNewAccount(st, address)
	require.NoError(t, err)
	require.Equal(t, ac.Address, fetched.Address)
}

func TestAccountCreditAndDebit(t *testing.T) {
	ac := NewAccount(keypair.Random().Address())

	require.NoError(t, ac.Credit(common.Amount(1000)))
	require.Equal(t, common.Amount(1000), ac.Staked)

	require.NoError(t, ac.Debit(common.Amount(400)))
	require.Equal(t, common.Amount(600), ac.Staked)

	{ // debit over the stake leaves the account untouched
		err := ac.Debit(common.Amount(601))
		require.Equal(t, errors.InsufficientBalance, err)
		require.Equal(t, common.Amount(600), ac.Staked)
	}

	{ // draining to exactly zero is fine
		require.NoError(t, ac.Debit(common.Amount(600)))
		require.Equal(t, common.Amount(0), ac.Staked)
	}
}

func TestAccountCreditOverflow(t *testing.T) {
	ac := NewAccount(keypair.Random().Address())
	ac.Staked = common.MaximumBalance

	err := ac.Credit(common.Amount(1))
	require.Equal(t, errors.MaximumBalanceReached, err)
	require.Equal(t, common.MaximumBalance, ac.Staked)
}

func TestSortMultipleAccounts(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	var createdOrder []string
	for i := 0; i < 50; i++ {
		ac := TestMakeAccount(st, common.Amount(10))
		createdOrder = append(createdOrder, ac.Address)
	}

	var saved []string
	options := storage.NewDefaultListOptions(false, nil, uint64(len(createdOrder)))
	iterFunc, closeFunc := GetAccountAddressesByCreated(st, options)
	for {
		address, hasNext, _ := iterFunc()
		if !hasNext {
			break
		}

		saved = append(saved, address)
	}
	closeFunc()

	require.Equal(t, createdOrder, saved)
}

func TestGetSortedAccounts(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	var createdOrder []string
	for i := 0; i < 10; i++ {
		ac := TestMakeAccount(st, common.Amount(10))
		createdOrder = append(createdOrder, ac.Address)
	}

	var saved []string
	options := storage.NewDefaultListOptions(false, nil, uint64(len(createdOrder)))
	iterFunc, closeFunc := GetAccountsByCreated(st, options)
	for {
		ac, hasNext, _ := iterFunc()
		if !hasNext {
			break
		}

		saved = append(saved, ac.Address)
	}
	closeFunc()

	require.Equal(t, createdOrder, saved)
}

func TestAccountObserver(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	ac := NewAccount(keypair.Random().Address())
	ac.Staked = common.Amount(77)

	var triggered *Account
	observerFunc := func(args ...interface{}) {
		triggered = args[0].(*Account)
		wg.Done()
	}
	observer.AccountObserver.On(fmt.Sprintf("address-%s", ac.Address), observerFunc)
	defer observer.AccountObserver.Off(fmt.Sprintf("address-%s", ac.Address), observerFunc)

	st := storage.NewTestStorage()
	defer st.Close()

	require.NoError(t, ac.Save(st))

	wg.Wait()

	require.Equal(t, ac.Address, triggered.Address)
	require.Equal(t, ac.GetBalance(), triggered.GetBalance())
}
