package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/keypair"
	"stakegate.io/stakegate/lib/errors"
	"stakegate.io/stakegate/lib/storage"
)

func TestMakeGenesis(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	admin := keypair.Random()

	s, err := MakeGenesis(st, admin.Address(), common.Amount(1000))
	require.NoError(t, err)
	require.Equal(t, admin.Address(), s.Administrator)
	require.Equal(t, common.Amount(1000), s.GlobalRequired)

	fetched, err := GetState(st)
	require.NoError(t, err)
	require.Equal(t, s.Administrator, fetched.Administrator)
	require.Equal(t, s.GlobalRequired, fetched.GlobalRequired)
}

func TestMakeGenesisTwice(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := MakeGenesis(st, keypair.Random().Address(), common.Amount(1000))
	require.NoError(t, err)

	_, err = MakeGenesis(st, keypair.Random().Address(), common.Amount(2000))
	require.Equal(t, errors.AlreadyInitialized, err)
}

func TestGetStateBeforeGenesis(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := GetState(st)
	require.Equal(t, errors.StateDoesNotExist, err)
}

func TestStateIsAdministrator(t *testing.T) {
	admin := keypair.Random()
	s := NewState(admin.Address(), common.Amount(10))

	require.True(t, s.IsAdministrator(admin.Address()))
	require.False(t, s.IsAdministrator(keypair.Random().Address()))

	// an empty administrator matches nobody
	s.Administrator = ""
	require.False(t, s.IsAdministrator(""))
}

func TestStateUpdate(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, s := TestMakeState(st, common.Amount(1000))

	next := keypair.Random().Address()
	s.Administrator = next
	s.GlobalRequired = common.Amount(500)
	require.NoError(t, s.Save(st))

	fetched, err := GetState(st)
	require.NoError(t, err)
	require.Equal(t, next, fetched.Administrator)
	require.Equal(t, common.Amount(500), fetched.GlobalRequired)
}
