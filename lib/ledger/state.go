package ledger

import (
	"encoding/json"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
	"stakegate.io/stakegate/lib/storage"
)

// StateKey holds the singleton registry record: who administers the
// ledger and the ledger wide stake requirement.
const StateKey string = "st-registry"

type State struct {
	Administrator  string
	GlobalRequired common.Amount
}

func NewState(administrator string, globalRequired common.Amount) *State {
	return &State{
		Administrator:  administrator,
		GlobalRequired: globalRequired,
	}
}

func (s *State) String() string {
	return string(common.MustMarshalJSON(s))
}

func (s *State) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(s)
	return
}

func (s *State) IsAdministrator(address string) bool {
	return len(s.Administrator) > 0 && s.Administrator == address
}

func (s *State) Save(st *storage.LevelDBBackend) (err error) {
	var exists bool
	if exists, err = st.Has(StateKey); err != nil {
		return
	}

	if exists {
		return st.Set(StateKey, s)
	}
	return st.New(StateKey, s)
}

func ExistsState(st *storage.LevelDBBackend) (bool, error) {
	return st.Has(StateKey)
}

func GetState(st *storage.LevelDBBackend) (s *State, err error) {
	if err = st.Get(StateKey, &s); err != nil {
		if e, ok := err.(*errors.Error); ok && e.Code == errors.StorageRecordDoesNotExist.Code {
			err = errors.StateDoesNotExist
		}
		return
	}

	return
}

// MakeGenesis writes the initial registry record. It refuses to run
// twice; the administrator can only change afterwards through a
// transfer-administration operation.
func MakeGenesis(st *storage.LevelDBBackend, administrator string, globalRequired common.Amount) (s *State, err error) {
	var exists bool
	if exists, err = ExistsState(st); err != nil {
		return
	}
	if exists {
		err = errors.AlreadyInitialized
		return
	}

	s = NewState(administrator, globalRequired)
	err = s.Save(st)

	return
}
