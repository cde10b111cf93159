package ledger

import (
	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/keypair"
	"stakegate.io/stakegate/lib/storage"
)

var networkID []byte = []byte("stakegate-unittest")

// TestMakeState initializes genesis with a fresh administrator
// keypair and the given ledger wide requirement.
func TestMakeState(st *storage.LevelDBBackend, globalRequired common.Amount) (*keypair.Full, *State) {
	kp := keypair.Random()

	s, err := MakeGenesis(st, kp.Address(), globalRequired)
	if err != nil {
		panic(err)
	}

	return kp, s
}

// TestMakeAccount saves an account holding the given stake.
func TestMakeAccount(st *storage.LevelDBBackend, staked common.Amount) *Account {
	ac := NewAccount(keypair.Random().Address())
	ac.Staked = staked

	if err := ac.Save(st); err != nil {
		panic(err)
	}

	return ac
}

// TestMakeMemberAccount saves an account that already joined with the
// given stake.
func TestMakeMemberAccount(st *storage.LevelDBBackend, staked common.Amount) *Account {
	ac := NewAccount(keypair.Random().Address())
	ac.Staked = staked
	ac.Promote()

	if err := ac.Save(st); err != nil {
		panic(err)
	}

	return ac
}
