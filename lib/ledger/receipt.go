package ledger

import (
	"encoding/json"
	"fmt"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/observer"
	"stakegate.io/stakegate/lib/errors"
	"stakegate.io/stakegate/lib/operation"
	"stakegate.io/stakegate/lib/storage"
)

// Receipt is the audit record of one applied operation. the storage
// should support,
//  * find by `Hash`
//  * get list by `Source` and created order
//  * get list by `Target` and created order
//  * get list by created order

const ReceiptPrefixHash string = "rc-hash-"
const ReceiptPrefixSource string = "rc-source-"
const ReceiptPrefixTarget string = "rc-target-"
const ReceiptPrefixCreated string = "rc-created-"

type Receipt struct {
	Hash         string
	EnvelopeHash string

	Type   operation.OperationType
	Source string
	Target string
	Amount common.Amount

	// Requirement is the effective requirement of the acted-on account
	// at apply time, recorded so membership decisions stay auditable
	// after the policy moves on.
	Requirement common.Amount
	Events      []string

	SequenceID uint64
	Confirmed  string

	isSaved bool
}

func NewReceiptKey(op operation.Operation, ev operation.Envelope) string {
	return fmt.Sprintf("%s-%s", op.MakeHashString(), ev.GetHash())
}

func NewReceiptFromOperation(op operation.Operation, ev operation.Envelope) Receipt {
	return Receipt{
		Hash:         NewReceiptKey(op, ev),
		EnvelopeHash: ev.GetHash(),

		Type:   op.H.Type,
		Source: ev.B.Source,
		Target: op.Target(),
		Amount: op.Amount(),

		SequenceID: ev.B.SequenceID,
		Confirmed:  common.NowISO8601(),
	}
}

func (r *Receipt) RecordEvent(event string) {
	r.Events = append(r.Events, event)
}

func (r *Receipt) Save(st *storage.LevelDBBackend) (err error) {
	if r.isSaved {
		return errors.AlreadySaved
	}

	key := GetReceiptKey(r.Hash)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	} else if exists {
		return errors.StorageRecordAlreadyExists
	}

	if err = st.New(key, r); err != nil {
		return
	}
	if err = st.New(r.NewReceiptSourceKey(), r.Hash); err != nil {
		return
	}
	if len(r.Target) > 0 {
		if err = st.New(r.NewReceiptTargetKey(), r.Hash); err != nil {
			return
		}
	}
	if err = st.New(r.NewReceiptCreatedKey(), r.Hash); err != nil {
		return
	}
	r.isSaved = true

	if !st.InTransaction() {
		TriggerReceiptSaved(r)
	}

	return nil
}

// TriggerReceiptSaved fires the receipt observer. Save calls it for
// direct writes; the committer announces transactional writes after
// they are durable.
func TriggerReceiptSaved(r *Receipt) {
	event := "saved"
	event += " " + fmt.Sprintf("source-%s", r.Source)
	event += " " + fmt.Sprintf("hash-%s", r.Hash)
	if len(r.Target) > 0 {
		event += " " + fmt.Sprintf("target-%s", r.Target)
	}
	observer.ReceiptObserver.Trigger(event, r)

	keys := []string{
		observer.NewEvent(observer.ResourceReceipt, observer.ConditionAll, "").String(),
		observer.NewEvent(observer.ResourceReceipt, observer.ConditionSource, r.Source).String(),
		observer.NewEvent(observer.ResourceReceipt, observer.ConditionType, string(r.Type)).String(),
	}
	if len(r.Target) > 0 {
		keys = append(keys, observer.NewEvent(observer.ResourceReceipt, observer.ConditionTarget, r.Target).String())
	}
	for _, key := range keys {
		observer.ResourceObserver.Trigger(key, r)
	}
}

func (r Receipt) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(r)
	return
}

func (r Receipt) String() string {
	return string(common.MustMarshalJSON(r))
}

func GetReceiptKey(hash string) string {
	return fmt.Sprintf("%s%s", ReceiptPrefixHash, hash)
}

func GetReceiptKeyPrefixSource(source string) string {
	return fmt.Sprintf("%s%s-", ReceiptPrefixSource, source)
}

func GetReceiptKeyPrefixTarget(target string) string {
	return fmt.Sprintf("%s%s-", ReceiptPrefixTarget, target)
}

func (r Receipt) NewReceiptSourceKey() string {
	return fmt.Sprintf(
		"%s%s%s",
		GetReceiptKeyPrefixSource(r.Source),
		common.EncodeUint64ToByteSlice(r.SequenceID),
		common.GetUniqueIDFromUUID(),
	)
}

func (r Receipt) NewReceiptTargetKey() string {
	return fmt.Sprintf(
		"%s%s%s",
		GetReceiptKeyPrefixTarget(r.Target),
		common.EncodeUint64ToByteSlice(r.SequenceID),
		common.GetUniqueIDFromUUID(),
	)
}

func (r Receipt) NewReceiptCreatedKey() string {
	return fmt.Sprintf("%s%s", ReceiptPrefixCreated, common.GetUniqueIDFromUUID())
}

func ExistsReceipt(st *storage.LevelDBBackend, hash string) (bool, error) {
	return st.Has(GetReceiptKey(hash))
}

func GetReceipt(st *storage.LevelDBBackend, hash string) (r Receipt, err error) {
	if err = st.Get(GetReceiptKey(hash), &r); err != nil {
		if e, ok := err.(*errors.Error); ok && e.Code == errors.StorageRecordDoesNotExist.Code {
			err = errors.ReceiptDoesNotExist
		}
		return
	}

	r.isSaved = true
	return
}

func LoadReceiptsInsideIterator(
	st *storage.LevelDBBackend,
	iterFunc func() (storage.IterItem, bool),
	closeFunc func(),
) (
	func() (Receipt, bool, []byte),
	func(),
) {
	return (func() (Receipt, bool, []byte) {
			item, hasNext := iterFunc()
			if !hasNext {
				return Receipt{}, false, item.Key
			}

			var hash string
			json.Unmarshal(item.Value, &hash)

			r, err := GetReceipt(st, hash)
			if err != nil {
				return Receipt{}, false, item.Key
			}

			return r, hasNext, item.Key
		}), (func() {
			closeFunc()
		})
}

func GetReceiptsBySource(st *storage.LevelDBBackend, source string, options storage.ListOptions) (
	func() (Receipt, bool, []byte),
	func(),
) {
	iterFunc, closeFunc := st.GetIterator(GetReceiptKeyPrefixSource(source), options)

	return LoadReceiptsInsideIterator(st, iterFunc, closeFunc)
}

func GetReceiptsByTarget(st *storage.LevelDBBackend, target string, options storage.ListOptions) (
	func() (Receipt, bool, []byte),
	func(),
) {
	iterFunc, closeFunc := st.GetIterator(GetReceiptKeyPrefixTarget(target), options)

	return LoadReceiptsInsideIterator(st, iterFunc, closeFunc)
}

func GetReceiptsByCreated(st *storage.LevelDBBackend, options storage.ListOptions) (
	func() (Receipt, bool, []byte),
	func(),
) {
	iterFunc, closeFunc := st.GetIterator(ReceiptPrefixCreated, options)

	return LoadReceiptsInsideIterator(st, iterFunc, closeFunc)
}
