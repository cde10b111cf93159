package ledger

import (
	"encoding/json"
	"fmt"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/observer"
	"stakegate.io/stakegate/lib/errors"
	"stakegate.io/stakegate/lib/storage"
)

// Account is the per-address ledger record. the storage should support,
//  * find by `Address`
//  * get list by created order
//
// models
//  * 'address'
// 	- 'ac-address-<Account.Address>': `Account`
//  * 'created'
// 	- 'ac-created-<sequential uuid1>': `Account.Address`

const AccountPrefixAddress string = "ac-address-"
const AccountPrefixCreated string = "ac-created-"

type Account struct {
	Address          string
	Staked           common.Amount
	RequiredOverride common.Amount
	IsMember         bool
	EverJoined       bool
	SequenceID       uint64
}

func NewAccount(address string) *Account {
	return &Account{
		Address:    address,
		Staked:     common.Amount(0),
		SequenceID: 0,
	}
}

func (ac *Account) String() string {
	return string(common.MustMarshalJSON(ac))
}

func (ac *Account) Save(st *storage.LevelDBBackend) (err error) {
	key := GetAccountKey(ac.Address)

	var exists bool
	exists, err = st.Has(key)
	if err != nil {
		return
	}

	if exists {
		err = st.Set(key, ac)
	} else {
		if err = st.New(key, ac); err != nil {
			return
		}
		createdKey := GetAccountCreatedKey(common.GetUniqueIDFromUUID())
		err = st.New(createdKey, ac.Address)
	}
	if err == nil && !st.InTransaction() {
		TriggerAccountSaved(ac)
	}

	return
}

// TriggerAccountSaved fires the per address account observer. Save
// calls it for direct writes; writes made inside a storage
// transaction are announced by the committer once they are durable.
func TriggerAccountSaved(ac *Account) {
	event := "saved"
	event += " " + fmt.Sprintf("address-%s", ac.Address)
	observer.AccountObserver.Trigger(event, ac)

	for _, key := range []string{
		observer.NewEvent(observer.ResourceAccount, observer.ConditionAll, "").String(),
		observer.NewEvent(observer.ResourceAccount, observer.ConditionAddress, ac.Address).String(),
	} {
		observer.ResourceObserver.Trigger(key, ac)
	}
}

func (ac *Account) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(ac)
	return
}

func (ac *Account) Deserialize(encoded []byte) (err error) {
	return json.Unmarshal(encoded, ac)
}

func GetAccountKey(address string) string {
	return fmt.Sprintf("%s%s", AccountPrefixAddress, address)
}

func GetAccountCreatedKey(created string) string {
	return fmt.Sprintf("%s%s", AccountPrefixCreated, created)
}

func ExistsAccount(st *storage.LevelDBBackend, address string) (bool, error) {
	return st.Has(GetAccountKey(address))
}

func GetAccount(st *storage.LevelDBBackend, address string) (ac *Account, err error) {
	if err = st.Get(GetAccountKey(address), &ac); err != nil {
		if e, ok := err.(*errors.Error); ok && e.Code == errors.StorageRecordDoesNotExist.Code {
			err = errors.AccountDoesNotExist
		}
		return
	}

	return
}

// GetOrNewAccount loads the stored record, or a zero state one when
// the address was never written. Every address conceptually exists
// with zero stake, so callers never see a missing account error here.
func GetOrNewAccount(st *storage.LevelDBBackend, address string) (ac *Account, err error) {
	var exists bool
	if exists, err = ExistsAccount(st, address); err != nil {
		return
	}

	if !exists {
		ac = NewAccount(address)
		return
	}

	return GetAccount(st, address)
}

func GetAccountAddressesByCreated(st *storage.LevelDBBackend, options storage.ListOptions) (func() (string, bool, []byte), func()) {
	iterFunc, closeFunc := st.GetIterator(AccountPrefixCreated, options)

	return (func() (string, bool, []byte) {
			item, hasNext := iterFunc()
			if !hasNext {
				return "", false, item.Key
			}

			var address string
			json.Unmarshal(item.Value, &address)
			return address, hasNext, item.Key
		}), (func() {
			closeFunc()
		})
}

func GetAccountsByCreated(st *storage.LevelDBBackend, options storage.ListOptions) (func() (*Account, bool, []byte), func()) {
	iterFunc, closeFunc := GetAccountAddressesByCreated(st, options)

	return (func() (*Account, bool, []byte) {
			address, hasNext, cursor := iterFunc()
			if !hasNext {
				return nil, false, cursor
			}

			ac, err := GetAccount(st, address)
			if err != nil {
				return nil, false, cursor
			}
			return ac, hasNext, cursor
		}), (func() {
			closeFunc()
		})
}

func (ac *Account) GetBalance() common.Amount {
	return ac.Staked
}

// Credit adds staked value to the account.
//
// If the amount would push the stake over the full supply, an `error`
// is returned and the account is left untouched.
func (ac *Account) Credit(fund common.Amount) (err error) {
	var val common.Amount
	if val, err = ac.Staked.Add(fund); err != nil {
		return
	}
	ac.Staked = val

	return
}

// Debit removes staked value from the account.
//
// If the amount exceeds the current stake, `InsufficientBalance` is
// returned and the account is left untouched.
func (ac *Account) Debit(fund common.Amount) (err error) {
	var val common.Amount
	if val, err = ac.Staked.Sub(fund); err != nil {
		return errors.InsufficientBalance
	}
	ac.Staked = val

	return
}
